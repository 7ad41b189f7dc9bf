package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"regexp"

	"github.com/go-sql-driver/mysql"

	"funcapp/internal/config"
)

// 建表命令：按配置中的表名创建待办表（若不存在）。
// 用法：go run ./cmd/migrate [-dry-run] [-table ToDo]
func main() {
	dryRun := flag.Bool("dry-run", false, "print the DDL without executing it")
	table := flag.String("table", "", "override table.name from config")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	name := cfg.Table.Name
	if *table != "" {
		name = *table
	}
	ddl, err := createTableDDL(name)
	if err != nil {
		log.Fatalf("table name: %v", err)
	}
	if *dryRun {
		fmt.Println(ddl)
		return
	}

	dsn, err := mysql.ParseDSN(cfg.MySQL.DSN())
	if err != nil {
		log.Fatalf("parse dsn: %v", err)
	}
	db, err := sql.Open("mysql", dsn.FormatDSN())
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(ddl); err != nil {
		log.Fatalf("create table %s@%s/%s: %v", name, dsn.Addr, dsn.DBName, err)
	}
	fmt.Printf("table %s ready in %s\n", name, dsn.DBName)
}

var tableNameRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,63}$`)

// createTableDDL 生成与 storage.ToDo 对应的建表语句。
func createTableDDL(table string) (string, error) {
	if !tableNameRE.MatchString(table) {
		return "", fmt.Errorf("invalid table name %q", table)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS `%s` (\n"+
		"  `Id` VARCHAR(36) NOT NULL,\n"+
		"  `order` DOUBLE NULL,\n"+
		"  `title` VARCHAR(255) NULL,\n"+
		"  `url` VARCHAR(2048) NULL,\n"+
		"  `completed` BOOLEAN NOT NULL DEFAULT FALSE,\n"+
		"  PRIMARY KEY (`Id`)\n"+
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4", table), nil
}

package storage

import (
	"gorm.io/gorm"
)

// ToDo 为写入目标表的一行待办记录。
// 列名与既有表结构保持一致（Id、order、title、url、completed），order 为保留字由 GORM 负责转义。
type ToDo struct {
	ID        string   `gorm:"column:Id;primaryKey;size:36" json:"Id"`
	Order     *float64 `gorm:"column:order" json:"order"`
	Title     *string  `gorm:"column:title;size:255" json:"title"`
	URL       *string  `gorm:"column:url;size:2048" json:"url"`
	Completed bool     `gorm:"column:completed;not null" json:"completed"`
}

// AutoMigrate 在指定表名上执行自动迁移（表名来自配置，不使用 GORM 的复数化命名）。
func AutoMigrate(db *gorm.DB, table string) error {
	return db.Table(table).AutoMigrate(&ToDo{})
}

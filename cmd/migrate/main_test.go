package main

import (
	"strings"
	"testing"
)

func TestCreateTableDDL(t *testing.T) {
	ddl, err := createTableDDL("ToDo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, col := range []string{"`Id`", "`order`", "`title`", "`url`", "`completed`"} {
		if !strings.Contains(ddl, col) {
			t.Fatalf("ddl missing column %s:\n%s", col, ddl)
		}
	}
	if !strings.HasPrefix(ddl, "CREATE TABLE IF NOT EXISTS `ToDo`") {
		t.Fatalf("unexpected ddl prefix:\n%s", ddl)
	}
}

func TestCreateTableDDLRejectsInjection(t *testing.T) {
	for _, name := range []string{"", "dbo.ToDo", "x`; DROP TABLE y", "1abc"} {
		if _, err := createTableDDL(name); err == nil {
			t.Fatalf("expected error for %q", name)
		}
	}
}

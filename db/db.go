package db

import (
	"attendance/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var Instance *gorm.DB

func Init() {
	var err error
	var db *gorm.DB
	cfg := &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		// Needed to detect duplicate-key violations as gorm.ErrDuplicatedKey
		TranslateError: true,
	}
	if config.MYSQL_DSN != "" {
		db, err = gorm.Open(mysql.Open(config.MYSQL_DSN), cfg)
	} else {
		db, err = gorm.Open(sqlite.Open(config.SQLITE_FILE), cfg)
	}
	if err != nil || db == nil {
		panic(err)
	}
	Instance = db
}

// InitTest opens an in-memory SQLite database. Used by package tests only.
// cache=shared keeps all pooled connections on the same database.
func InitTest() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		panic(err)
	}
	Instance = db
}

package database

import (
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lromero/cajaclinic/internal/model"
)

// NewMySQLConnection opens the database and migrates the three tables. The
// DSN must carry parseTime=true so DATE columns scan into time.Time.
func NewMySQLConnection(dsn string) *gorm.DB {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("Fatal: cannot connect to database: %v", err)
	}

	if err := db.AutoMigrate(&model.Cut{}, &model.Expense{}, &model.User{}); err != nil {
		log.Fatalf("Fatal: database migration failed: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db
}

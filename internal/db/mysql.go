package db

import (
	"fmt"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Pool limits for the MySQL connection pool.
const (
	mysqlMaxOpenConns    = 20
	mysqlMaxIdleConns    = 5
	mysqlConnMaxLifetime = 30 * time.Minute
)

// NewMySQL connects to the portfolio database and sizes its pool. The DSN
// needs parseTime=True so timestamps scan into time.Time.
func NewMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: newLogger(os.Stdout),
	})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("mysql pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(mysqlMaxOpenConns)
	sqlDB.SetMaxIdleConns(mysqlMaxIdleConns)
	sqlDB.SetConnMaxLifetime(mysqlConnMaxLifetime)
	return db, nil
}

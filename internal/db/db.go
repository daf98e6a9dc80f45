package db

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"portfolio/internal/config"
	"portfolio/internal/model"
)

// Models lists every table owned by the service, children before parents
// so DropAll can remove them in order.
func Models() []interface{} {
	return []interface{}{
		&model.ProjectTechnology{},
		&model.Project{},
		&model.Skill{},
		&model.AboutInfo{},
		&model.ContactInfo{},
		&model.Message{},
		&model.Admin{},
	}
}

// newLogger logs slow queries and SQL errors to w. Lookups that find no row
// are expected (failed logins, unknown ids) and stay silent.
func newLogger(w io.Writer) logger.Interface {
	return logger.New(log.New(w, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  w == os.Stdout,
	})
}

// Open connects to the database selected by cfg.DBDriver.
func Open(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "mysql":
		return NewMySQL(cfg.MySQLDSN)
	case "sqlite":
		return NewSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// Migrate creates or updates every table.
func Migrate(gormDB *gorm.DB) error {
	// AutoMigrate orders the models by their relationships itself.
	if err := gormDB.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// DropAll drops every table. Failures are logged, tables may not exist yet.
func DropAll(gormDB *gorm.DB) {
	for _, table := range Models() {
		if err := gormDB.Migrator().DropTable(table); err != nil {
			log.Printf("Warning: Failed to drop table (may not exist): %v", err)
		}
	}
}

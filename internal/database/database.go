package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/config"
)

// DB is the process-wide handle; Connect must succeed before anything uses it.
var DB *gorm.DB

// Connect opens the postgres pool, applies the configured pool limits and
// verifies the server is reachable. All timestamps are written in UTC.
func Connect(cfg *config.DatabaseConfig) error {
	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("access connection pool: %w", err)
	}
	if err := cfg.TunePool(sqlDB); err != nil {
		return err
	}
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}

	DB = db
	log.Printf("connected to postgres at %s:%d/%s", cfg.Host, cfg.Port, cfg.Name)
	return nil
}

func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func GetDB() *gorm.DB {
	return DB
}

package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stratacloud/careers-backend/internal/config"
	"github.com/stratacloud/careers-backend/internal/models"
)

// Open selects the document store driver named by STORE_DRIVER.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StoreDriver {
	case "memory":
		slog.Warn("using in-memory document store; data is lost on restart")
		return NewMemoryStore(), nil
	case "dynamodb", "":
		client, err := NewDynamoClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		slog.Info("document store configured", "driver", "dynamodb", "table", cfg.DynamoDBTable)
		return NewDynamoStore(client, cfg.DynamoDBTable), nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

// ConnectLogDB opens the Postgres database that receives ERROR+ log records
// and migrates the system_logs table.
func ConnectLogDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to log database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.AutoMigrate(&models.SystemLog{}); err != nil {
		return nil, fmt.Errorf("failed to migrate system_logs: %w", err)
	}

	slog.Info("log database connected")
	return db, nil
}

func CloseLogDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

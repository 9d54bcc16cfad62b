package loader

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// PostgresTarget writes icon rows through GORM. The embedding column uses
// the pgvector extension's vector type.
type PostgresTarget struct {
	db *gorm.DB
}

// NewPostgresTarget opens the connection. The dialer itself does not
// round-trip; Ping is the first real probe.
func NewPostgresTarget(dsn string) (*PostgresTarget, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}
	return &PostgresTarget{db: db}, nil
}

// Ping runs the trivial timestamp query the loader uses as its
// connectivity probe.
func (t *PostgresTarget) Ping(ctx context.Context) error {
	var now time.Time
	if err := t.db.WithContext(ctx).Raw("SELECT NOW()").Scan(&now).Error; err != nil {
		return fmt.Errorf("connectivity check failed: %w", err)
	}
	return nil
}

// Insert writes a single icon row.
func (t *PostgresTarget) Insert(ctx context.Context, row *IconRow) error {
	if err := t.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("insert %s: %w", row.Name, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (t *PostgresTarget) Close() error {
	sqlDB, err := t.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

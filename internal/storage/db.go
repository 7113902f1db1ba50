// Package storage persists live feed snapshots to PostgreSQL for the
// fr24-collector service.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/JeanExtreme002/FlightRadarAPI/internal/config"
)

//go:embed schema.sql
var schemaSQL embed.FS

// DB wraps a database connection with helper methods.
type DB struct {
	*sql.DB
	config config.DatabaseConfig
}

// Connect establishes a connection to the PostgreSQL database.
func Connect(cfg config.DatabaseConfig) (*DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.Username,
		cfg.Password,
		cfg.Database,
		cfg.SSLMode,
	)

	sqlDB, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: sqlDB, config: cfg}, nil
}

// InitSchema creates or updates the database schema.
// This should be called once at application startup.
func (db *DB) InitSchema(ctx context.Context) error {
	schemaBytes, err := schemaSQL.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	if _, err := db.ExecContext(ctx, string(schemaBytes)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// CleanupOldData marks stale flights inactive and prunes old position
// history. Should be called periodically to prevent unbounded growth.
func (db *DB) CleanupOldData(ctx context.Context, maxAge time.Duration) error {
	cutoff := time.Now().UTC().Add(-maxAge)

	_, err := db.ExecContext(ctx,
		`UPDATE flights SET is_active = FALSE WHERE last_seen < $1`,
		cutoff,
	)
	if err != nil {
		return fmt.Errorf("failed to mark stale flights: %w", err)
	}

	// Keep the last 24 hours of position history.
	positionCutoff := time.Now().UTC().Add(-24 * time.Hour)
	_, err = db.ExecContext(ctx,
		`DELETE FROM flight_positions WHERE recorded_at < $1`,
		positionCutoff,
	)
	if err != nil {
		return fmt.Errorf("failed to delete old positions: %w", err)
	}

	// Drop inactive flights not seen in over an hour.
	deleteCutoff := time.Now().UTC().Add(-1 * time.Hour)
	_, err = db.ExecContext(ctx,
		`DELETE FROM flights WHERE last_seen < $1 AND is_active = FALSE`,
		deleteCutoff,
	)
	if err != nil {
		return fmt.Errorf("failed to delete old flights: %w", err)
	}

	return nil
}

// GetStats returns database statistics.
func (db *DB) GetStats(ctx context.Context) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var activeCount int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM flights WHERE is_active = TRUE`,
	).Scan(&activeCount)
	if err != nil {
		return nil, err
	}
	stats["active_flights"] = activeCount

	var airborneCount int
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM flights WHERE is_active = TRUE AND on_ground = FALSE`,
	).Scan(&airborneCount)
	if err != nil {
		return nil, err
	}
	stats["airborne_flights"] = airborneCount

	var positionCount int64
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM flight_positions`,
	).Scan(&positionCount)
	if err != nil {
		return nil, err
	}
	stats["position_records"] = positionCount

	return stats, nil
}

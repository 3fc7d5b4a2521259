package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS parking_checks (
		id              UUID PRIMARY KEY,
		direction       TEXT NOT NULL,
		commercial      BOOLEAN NOT NULL DEFAULT false,
		disabled_permit BOOLEAN NOT NULL DEFAULT false,
		can_park        BOOLEAN NOT NULL,
		heading         TEXT NOT NULL,
		sign_count      INT NOT NULL,
		raw_items       JSONB,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_parking_checks_created_at ON parking_checks(created_at);`,
	`CREATE INDEX IF NOT EXISTS idx_parking_checks_can_park ON parking_checks(can_park);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}

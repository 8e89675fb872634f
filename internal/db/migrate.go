package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and re-run
// on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

const hourColumns = `
		regular_h       REAL NOT NULL DEFAULT 0 CHECK(regular_h >= 0),
		night_h         REAL NOT NULL DEFAULT 0 CHECK(night_h >= 0),
		saturday_h      REAL NOT NULL DEFAULT 0 CHECK(saturday_h >= 0),
		sunday_h        REAL NOT NULL DEFAULT 0 CHECK(sunday_h >= 0),
		holiday_h       REAL NOT NULL DEFAULT 0 CHECK(holiday_h >= 0),
		driving_h       REAL NOT NULL DEFAULT 0 CHECK(driving_h >= 0),
		passenger_h     REAL NOT NULL DEFAULT 0 CHECK(passenger_h >= 0),
		equipment_h     REAL NOT NULL DEFAULT 0 CHECK(equipment_h >= 0),
		leave_h         REAL NOT NULL DEFAULT 0 CHECK(leave_h >= 0),
		medical_leave_h REAL NOT NULL DEFAULT 0 CHECK(medical_leave_h >= 0),`

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS shifts (
		id          TEXT PRIMARY KEY,
		subject_id  TEXT NOT NULL,
		started_at  TEXT NOT NULL,
		ended_at    TEXT,
		activity    TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_shifts_subject_started ON shifts(subject_id, started_at)`,
	`CREATE INDEX IF NOT EXISTS idx_shifts_started ON shifts(started_at)`,

	`CREATE TABLE IF NOT EXISTS daily_totals (
		subject_id  TEXT NOT NULL,
		work_date   TEXT NOT NULL,` + hourColumns + `
		gross_h     REAL NOT NULL DEFAULT 0,
		break_h     REAL NOT NULL DEFAULT 0,
		state       TEXT NOT NULL DEFAULT 'computed'
		            CHECK(state IN ('computed','overridden')),
		version     INTEGER NOT NULL DEFAULT 1 CHECK(version > 0),
		updated_at  TEXT NOT NULL,
		PRIMARY KEY (subject_id, work_date)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_daily_totals_date ON daily_totals(work_date)`,

	`CREATE TABLE IF NOT EXISTS manual_overrides (
		id          TEXT PRIMARY KEY,
		subject_id  TEXT NOT NULL,
		work_date   TEXT NOT NULL,` + hourColumns + `
		clock_h     REAL NOT NULL DEFAULT 0,
		reason      TEXT NOT NULL CHECK(length(trim(reason)) > 0),
		kind        TEXT NOT NULL CHECK(kind IN ('override','segmentation')),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		UNIQUE (subject_id, work_date)
	)`,

	`CREATE TABLE IF NOT EXISTS holidays (
		date        TEXT PRIMARY KEY,
		name        TEXT NOT NULL DEFAULT ''
	)`,
}

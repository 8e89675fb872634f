package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/timecard/internal/db"
	"github.com/alexanderramin/timecard/internal/domain"
)

// SQLiteTotalsRepo implements DailyTotalsRepo with optimistic versioning.
type SQLiteTotalsRepo struct {
	db db.DBTX
}

func NewSQLiteTotalsRepo(db db.DBTX) *SQLiteTotalsRepo {
	return &SQLiteTotalsRepo{db: db}
}

const totalsColumns = `subject_id, work_date, ` + hourColumns + `, gross_h, break_h, state, version, updated_at`

func (r *SQLiteTotalsRepo) Get(ctx context.Context, key domain.DayKey) (*domain.DailyTotals, error) {
	query := `SELECT ` + totalsColumns + ` FROM daily_totals WHERE subject_id = ? AND work_date = ?`
	t, err := scanTotals(r.db.QueryRowContext(ctx, query, key.SubjectID, key.WorkDate))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("daily totals %s: %w", key, ErrNotFound)
	}
	return t, err
}

func (r *SQLiteTotalsRepo) List(ctx context.Context, f TotalsFilter) ([]*domain.DailyTotals, error) {
	var where []string
	var args []any
	if f.SubjectID != "" {
		where = append(where, "subject_id = ?")
		args = append(args, f.SubjectID)
	}
	if f.FromDate != "" {
		where = append(where, "work_date >= ?")
		args = append(args, f.FromDate)
	}
	if f.ToDate != "" {
		where = append(where, "work_date <= ?")
		args = append(args, f.ToDate)
	}
	if f.State != "" {
		where = append(where, "state = ?")
		args = append(args, string(f.State))
	}

	query := `SELECT ` + totalsColumns + ` FROM daily_totals`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY subject_id, work_date"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing daily totals: %w", err)
	}
	defer rows.Close()

	var out []*domain.DailyTotals
	for rows.Next() {
		t, err := scanTotals(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating daily totals: %w", err)
	}
	return out, nil
}

func (r *SQLiteTotalsRepo) Save(ctx context.Context, t *domain.DailyTotals, expectedVersion int) error {
	hours := hourArgs(t.Hours)
	updatedAt := formatTime(t.UpdatedAt)

	if expectedVersion == 0 {
		query := `INSERT INTO daily_totals (` + totalsColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?)
			ON CONFLICT (subject_id, work_date) DO NOTHING`
		args := append([]any{t.SubjectID, t.WorkDate}, hours...)
		args = append(args, t.GrossHours, t.BreakHours, string(t.State), updatedAt)
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("inserting daily totals: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("daily totals %s already exists: %w", t.Key(), ErrVersionConflict)
		}
		t.Version = 1
		return nil
	}

	query := `UPDATE daily_totals SET
			regular_h = ?, night_h = ?, saturday_h = ?, sunday_h = ?, holiday_h = ?,
			driving_h = ?, passenger_h = ?, equipment_h = ?, leave_h = ?, medical_leave_h = ?,
			gross_h = ?, break_h = ?, state = ?, version = version + 1, updated_at = ?
		WHERE subject_id = ? AND work_date = ? AND version = ?`
	args := append(hours, t.GrossHours, t.BreakHours, string(t.State), updatedAt,
		t.SubjectID, t.WorkDate, expectedVersion)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating daily totals: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("daily totals %s at version %d: %w", t.Key(), expectedVersion, ErrVersionConflict)
	}
	t.Version = expectedVersion + 1
	return nil
}

func (r *SQLiteTotalsRepo) Delete(ctx context.Context, key domain.DayKey) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM daily_totals WHERE subject_id = ? AND work_date = ?`,
		key.SubjectID, key.WorkDate)
	if err != nil {
		return fmt.Errorf("deleting daily totals: %w", err)
	}
	return nil
}

func scanTotals(sc rowScanner) (*domain.DailyTotals, error) {
	var t domain.DailyTotals
	var state, updatedAt string

	dest := []any{&t.SubjectID, &t.WorkDate}
	dest = append(dest, hourDests(&t.Hours)...)
	dest = append(dest, &t.GrossHours, &t.BreakHours, &state, &t.Version, &updatedAt)
	if err := sc.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning daily totals: %w", err)
	}

	t.State = domain.TotalsState(state)
	var err error
	if t.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

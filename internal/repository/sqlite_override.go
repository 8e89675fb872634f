package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/timecard/internal/db"
	"github.com/alexanderramin/timecard/internal/domain"
)

// SQLiteOverrideRepo implements OverrideRepo. At most one override exists
// per subject and work date.
type SQLiteOverrideRepo struct {
	db db.DBTX
}

func NewSQLiteOverrideRepo(db db.DBTX) *SQLiteOverrideRepo {
	return &SQLiteOverrideRepo{db: db}
}

const overrideColumns = `id, subject_id, work_date, ` + hourColumns + `, clock_h, reason, kind, created_at, updated_at`

func (r *SQLiteOverrideRepo) Get(ctx context.Context, key domain.DayKey) (*domain.ManualOverride, error) {
	query := `SELECT ` + overrideColumns + ` FROM manual_overrides WHERE subject_id = ? AND work_date = ?`
	o, err := scanOverride(r.db.QueryRowContext(ctx, query, key.SubjectID, key.WorkDate))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("override %s: %w", key, ErrNotFound)
	}
	return o, err
}

// List returns overrides ordered by subject then date. An empty subjectID
// lists every subject.
func (r *SQLiteOverrideRepo) List(ctx context.Context, subjectID string) ([]*domain.ManualOverride, error) {
	query := `SELECT ` + overrideColumns + ` FROM manual_overrides`
	var args []any
	if subjectID != "" {
		query += ` WHERE subject_id = ?`
		args = append(args, subjectID)
	}
	query += ` ORDER BY subject_id, work_date`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing overrides: %w", err)
	}
	defer rows.Close()

	var out []*domain.ManualOverride
	for rows.Next() {
		o, err := scanOverride(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating overrides: %w", err)
	}
	return out, nil
}

// ListKeys returns the set of overridden days.
func (r *SQLiteOverrideRepo) ListKeys(ctx context.Context) (map[domain.DayKey]struct{}, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT subject_id, work_date FROM manual_overrides`)
	if err != nil {
		return nil, fmt.Errorf("listing override keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[domain.DayKey]struct{})
	for rows.Next() {
		var k domain.DayKey
		if err := rows.Scan(&k.SubjectID, &k.WorkDate); err != nil {
			return nil, fmt.Errorf("scanning override key: %w", err)
		}
		keys[k] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating override keys: %w", err)
	}
	return keys, nil
}

// Upsert creates the override for its day or replaces the allocation of the
// existing one. The stored id and created_at of an existing row are kept.
func (r *SQLiteOverrideRepo) Upsert(ctx context.Context, o *domain.ManualOverride) error {
	query := `INSERT INTO manual_overrides (` + overrideColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (subject_id, work_date) DO UPDATE SET
			regular_h = excluded.regular_h, night_h = excluded.night_h,
			saturday_h = excluded.saturday_h, sunday_h = excluded.sunday_h,
			holiday_h = excluded.holiday_h, driving_h = excluded.driving_h,
			passenger_h = excluded.passenger_h, equipment_h = excluded.equipment_h,
			leave_h = excluded.leave_h, medical_leave_h = excluded.medical_leave_h,
			clock_h = excluded.clock_h, reason = excluded.reason,
			kind = excluded.kind, updated_at = excluded.updated_at`
	args := append([]any{o.ID, o.SubjectID, o.WorkDate}, hourArgs(o.Hours)...)
	args = append(args, o.ClockTotal, o.Reason, string(o.Kind), formatTime(o.CreatedAt), formatTime(o.UpdatedAt))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upserting override: %w", err)
	}
	return nil
}

func (r *SQLiteOverrideRepo) Delete(ctx context.Context, key domain.DayKey) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM manual_overrides WHERE subject_id = ? AND work_date = ?`,
		key.SubjectID, key.WorkDate)
	if err != nil {
		return fmt.Errorf("deleting override: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("override %s: %w", key, ErrNotFound)
	}
	return nil
}

func scanOverride(sc rowScanner) (*domain.ManualOverride, error) {
	var o domain.ManualOverride
	var kind, createdAt, updatedAt string

	dest := []any{&o.ID, &o.SubjectID, &o.WorkDate}
	dest = append(dest, hourDests(&o.Hours)...)
	dest = append(dest, &o.ClockTotal, &o.Reason, &kind, &createdAt, &updatedAt)
	if err := sc.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning override: %w", err)
	}

	o.Kind = domain.OverrideKind(kind)
	var err error
	if o.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if o.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timecard/internal/db"
	"github.com/alexanderramin/timecard/internal/domain"
)

// SQLiteShiftRepo implements ShiftRepo using a SQLite database.
type SQLiteShiftRepo struct {
	db db.DBTX
}

func NewSQLiteShiftRepo(db db.DBTX) *SQLiteShiftRepo {
	return &SQLiteShiftRepo{db: db}
}

const shiftColumns = `id, subject_id, started_at, ended_at, activity, created_at, updated_at`

func (r *SQLiteShiftRepo) Create(ctx context.Context, s *domain.ShiftInterval) error {
	query := `INSERT INTO shifts (` + shiftColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.SubjectID,
		formatTime(s.Start),
		nullableTimeToString(s.End, time.RFC3339),
		s.Activity,
		formatTime(s.CreatedAt),
		formatTime(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting shift: %w", err)
	}
	return nil
}

func (r *SQLiteShiftRepo) GetByID(ctx context.Context, id string) (*domain.ShiftInterval, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = ?`
	return r.scanShift(r.db.QueryRowContext(ctx, query, id))
}

// GetOpenBySubject returns the most recent shift of subjectID without a
// clock-out.
func (r *SQLiteShiftRepo) GetOpenBySubject(ctx context.Context, subjectID string) (*domain.ShiftInterval, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts
		WHERE subject_id = ? AND ended_at IS NULL
		ORDER BY started_at DESC LIMIT 1`
	return r.scanShift(r.db.QueryRowContext(ctx, query, subjectID))
}

func (r *SQLiteShiftRepo) List(ctx context.Context, f ShiftFilter) ([]*domain.ShiftInterval, error) {
	var where []string
	var args []any
	if f.SubjectID != "" {
		where = append(where, "subject_id = ?")
		args = append(args, f.SubjectID)
	}
	if !f.StartFrom.IsZero() {
		where = append(where, "started_at >= ?")
		args = append(args, formatTime(f.StartFrom))
	}
	if !f.StartTo.IsZero() {
		where = append(where, "started_at < ?")
		args = append(args, formatTime(f.StartTo))
	}
	if !f.EndAfter.IsZero() {
		where = append(where, "(ended_at IS NULL OR ended_at > ?)")
		args = append(args, formatTime(f.EndAfter))
	}
	if f.OpenOnly {
		where = append(where, "ended_at IS NULL")
	}

	query := `SELECT ` + shiftColumns + ` FROM shifts`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY subject_id, started_at, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing shifts: %w", err)
	}
	defer rows.Close()
	return r.scanShifts(rows)
}

func (r *SQLiteShiftRepo) Update(ctx context.Context, s *domain.ShiftInterval) error {
	query := `UPDATE shifts SET subject_id = ?, started_at = ?, ended_at = ?, activity = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.SubjectID,
		formatTime(s.Start),
		nullableTimeToString(s.End, time.RFC3339),
		s.Activity,
		formatTime(s.UpdatedAt),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating shift: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("shift %s: %w", s.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteShiftRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shifts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting shift: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("shift %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteShiftRepo) scanShift(row *sql.Row) (*domain.ShiftInterval, error) {
	s, err := r.scanInto(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("shift: %w", ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

func (r *SQLiteShiftRepo) scanShifts(rows *sql.Rows) ([]*domain.ShiftInterval, error) {
	var shifts []*domain.ShiftInterval
	for rows.Next() {
		s, err := r.scanInto(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating shifts: %w", err)
	}
	return shifts, nil
}

func (r *SQLiteShiftRepo) scanInto(sc rowScanner) (*domain.ShiftInterval, error) {
	var s domain.ShiftInterval
	var startedAt, createdAt, updatedAt string
	var endedAt sql.NullString

	if err := sc.Scan(&s.ID, &s.SubjectID, &startedAt, &endedAt, &s.Activity, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning shift: %w", err)
	}

	var err error
	if s.Start, err = parseTime("started_at", startedAt); err != nil {
		return nil, err
	}
	s.End = parseNullableTime(endedAt, time.RFC3339)
	if s.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/timecard/internal/db"
	"github.com/alexanderramin/timecard/internal/domain"
)

type SQLiteHolidayRepo struct {
	db db.DBTX
}

func NewSQLiteHolidayRepo(db db.DBTX) *SQLiteHolidayRepo {
	return &SQLiteHolidayRepo{db: db}
}

func (r *SQLiteHolidayRepo) Upsert(ctx context.Context, h domain.Holiday) error {
	query := `INSERT INTO holidays (date, name) VALUES (?, ?)
		ON CONFLICT (date) DO UPDATE SET name = excluded.name`
	if _, err := r.db.ExecContext(ctx, query, h.Date, h.Name); err != nil {
		return fmt.Errorf("upserting holiday %s: %w", h.Date, err)
	}
	return nil
}

func (r *SQLiteHolidayRepo) List(ctx context.Context) ([]domain.Holiday, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT date, name FROM holidays ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("listing holidays: %w", err)
	}
	defer rows.Close()

	var out []domain.Holiday
	for rows.Next() {
		var h domain.Holiday
		if err := rows.Scan(&h.Date, &h.Name); err != nil {
			return nil, fmt.Errorf("scanning holiday: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating holidays: %w", err)
	}
	return out, nil
}

func (r *SQLiteHolidayRepo) Delete(ctx context.Context, date string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM holidays WHERE date = ?`, date)
	if err != nil {
		return fmt.Errorf("deleting holiday: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("holiday %s: %w", date, ErrNotFound)
	}
	return nil
}

package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/timecard/internal/db"
)

// FailOnNthExecUoW injects Err on the Nth ExecContext call within a
// transaction. Calls are counted from 1. Reads pass through.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failOnNthExec{DBTX: tx, failOn: u.FailOn, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failOnNthExec struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.count.Add(1)
	if n == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

// BumpVersionUoW simulates a competing writer. For the first Conflicts
// transactions it bumps every daily_totals version just before the first
// UPDATE of that table runs, so the guarded write matches no row.
type BumpVersionUoW struct {
	DB        *sql.DB
	Conflicts int32

	txs atomic.Int32
}

// Transactions returns how many transactions were started.
func (u *BumpVersionUoW) Transactions() int {
	return int(u.txs.Load())
}

func (u *BumpVersionUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	n := u.txs.Add(1)
	wrapped := &bumpVersion{DBTX: tx, armed: n <= u.Conflicts}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type bumpVersion struct {
	db.DBTX
	armed bool
}

func (b *bumpVersion) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if b.armed && strings.Contains(query, "UPDATE daily_totals") {
		b.armed = false
		if _, err := b.DBTX.ExecContext(ctx, `UPDATE daily_totals SET version = version + 1`); err != nil {
			return nil, err
		}
	}
	return b.DBTX.ExecContext(ctx, query, args...)
}

package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/sayanitariq-techno/Tariq/internal/db"
)

var writeTarget = regexp.MustCompile(`(?is)^\s*(?:INSERT\s+INTO|DELETE\s+FROM|UPDATE)\s+([a-z_]+)`)

// FailingWriteUoW runs the callback in a real transaction but fails one
// write to Table: the first Skip writes to it succeed and later ones return Err.
// Reads and writes to other tables pass through.
type FailingWriteUoW struct {
	DB    *sql.DB
	Table string
	Skip  int
	Err   error

	// Writes lists the table of every write that reached the database, in
	// order, for the most recent transaction.
	Writes []string
}

func (u *FailingWriteUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	u.Writes = nil

	if err := fn(ctx, &failingWrites{DBTX: tx, uow: u}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type failingWrites struct {
	db.DBTX
	uow  *FailingWriteUoW
	seen int
}

func (f *failingWrites) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	m := writeTarget.FindStringSubmatch(query)
	if m == nil {
		return f.DBTX.ExecContext(ctx, query, args...)
	}
	if m[1] == f.uow.Table {
		f.seen++
		if f.seen > f.uow.Skip {
			return nil, f.uow.Err
		}
	}
	res, err := f.DBTX.ExecContext(ctx, query, args...)
	if err == nil {
		f.uow.Writes = append(f.uow.Writes, m[1])
	}
	return res, err
}

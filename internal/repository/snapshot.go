package repository

import (
	"context"
	"fmt"

	"github.com/sayanitariq-techno/Tariq/internal/db"
	"github.com/sayanitariq-techno/Tariq/internal/store"
)

// SQLiteSnapshotStore writes whole store snapshots in one transaction and
// reads them back on startup. It satisfies store.Persister and store.Loader.
type SQLiteSnapshotStore struct {
	conn db.DBTX
	uow  db.UnitOfWork
}

// NewSQLiteSnapshotStore reads through conn and writes through uow.
func NewSQLiteSnapshotStore(conn db.DBTX, uow db.UnitOfWork) *SQLiteSnapshotStore {
	return &SQLiteSnapshotStore{conn: conn, uow: uow}
}

var (
	_ store.Persister = (*SQLiteSnapshotStore)(nil)
	_ store.Loader    = (*SQLiteSnapshotStore)(nil)
)

// Save upserts every row in snap and removes rows absent from it. Activities
// are deleted before packages and packages upserted before activities so
// foreign keys hold at every statement.
func (s *SQLiteSnapshotStore) Save(ctx context.Context, snap store.Snapshot) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		pkgRepo := NewSQLitePackageRepo(tx)
		actRepo := NewSQLiteActivityRepo(tx)

		keepActs := make(map[string]bool, len(snap.Activities))
		for _, a := range snap.Activities {
			keepActs[a.ID] = true
		}
		keepPkgs := make(map[string]bool, len(snap.Packages))
		for _, p := range snap.Packages {
			keepPkgs[p.ID] = true
		}

		actIDs, err := actRepo.ListIDs(ctx)
		if err != nil {
			return err
		}
		for _, id := range actIDs {
			if !keepActs[id] {
				if err := actRepo.Delete(ctx, id); err != nil {
					return err
				}
			}
		}

		pkgIDs, err := pkgRepo.ListIDs(ctx)
		if err != nil {
			return err
		}
		for _, id := range pkgIDs {
			if !keepPkgs[id] {
				if err := pkgRepo.Delete(ctx, id); err != nil {
					return err
				}
			}
		}

		for _, p := range snap.Packages {
			if err := pkgRepo.Upsert(ctx, p); err != nil {
				return fmt.Errorf("package %s: %w", p.ID, err)
			}
		}
		for _, a := range snap.Activities {
			if err := actRepo.Upsert(ctx, a); err != nil {
				return fmt.Errorf("activity %s: %w", a.ID, err)
			}
		}
		return nil
	})
}

func (s *SQLiteSnapshotStore) Load(ctx context.Context) (store.Snapshot, error) {
	pkgs, err := NewSQLitePackageRepo(s.conn).List(ctx)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("loading packages: %w", err)
	}
	acts, err := NewSQLiteActivityRepo(s.conn).List(ctx)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("loading activities: %w", err)
	}
	return store.Snapshot{Packages: pkgs, Activities: acts}, nil
}

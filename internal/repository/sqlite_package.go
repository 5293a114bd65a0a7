package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sayanitariq-techno/Tariq/internal/db"
	"github.com/sayanitariq-techno/Tariq/internal/domain"
)

const packageColumns = `id, name, description, priority, start_date, end_date, supervisor`

// SQLitePackageRepo implements PackageRepo using a SQLite database.
type SQLitePackageRepo struct {
	db db.DBTX
}

func NewSQLitePackageRepo(conn db.DBTX) *SQLitePackageRepo {
	return &SQLitePackageRepo{db: conn}
}

func (r *SQLitePackageRepo) Upsert(ctx context.Context, p domain.Package) error {
	query := `INSERT INTO packages (` + packageColumns + `, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			priority = excluded.priority,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			supervisor = excluded.supervisor,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		string(p.Priority),
		formatTime(p.StartDate),
		formatTime(p.EndDate),
		p.Supervisor,
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("upserting package: %w", err)
	}
	return nil
}

func (r *SQLitePackageRepo) GetByID(ctx context.Context, id string) (domain.Package, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+packageColumns+` FROM packages WHERE id = ?`, id)
	p, err := scanPackage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Package{}, fmt.Errorf("package %q: %w", id, domain.ErrNotFound)
	}
	return p, err
}

func (r *SQLitePackageRepo) List(ctx context.Context) ([]domain.Package, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+packageColumns+` FROM packages ORDER BY start_date, id`)
	if err != nil {
		return nil, fmt.Errorf("listing packages: %w", err)
	}
	defer rows.Close()

	var pkgs []domain.Package
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		pkgs = append(pkgs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating packages: %w", err)
	}
	return pkgs, nil
}

func (r *SQLitePackageRepo) ListIDs(ctx context.Context) ([]string, error) {
	return listIDs(ctx, r.db, `SELECT id FROM packages`, "package")
}

// Delete removes the package; activities and holds go with it via ON DELETE CASCADE.
func (r *SQLitePackageRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM packages WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting package: %w", err)
	}
	return nil
}

func scanPackage(row scanner) (domain.Package, error) {
	var p domain.Package
	var priority, start, end string
	err := row.Scan(&p.ID, &p.Name, &p.Description, &priority, &start, &end, &p.Supervisor)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, err
		}
		return p, fmt.Errorf("scanning package: %w", err)
	}
	p.Priority = domain.Priority(priority)
	if p.StartDate, err = parseTime("start_date", start); err != nil {
		return p, err
	}
	if p.EndDate, err = parseTime("end_date", end); err != nil {
		return p, err
	}
	return p, nil
}

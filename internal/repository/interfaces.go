package repository

import (
	"context"

	"github.com/sayanitariq-techno/Tariq/internal/domain"
)

type PackageRepo interface {
	Upsert(ctx context.Context, p domain.Package) error
	GetByID(ctx context.Context, id string) (domain.Package, error)
	List(ctx context.Context) ([]domain.Package, error)
	ListIDs(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id string) error
}

// ActivityRepo persists activities together with their hold history.
type ActivityRepo interface {
	Upsert(ctx context.Context, a domain.Activity) error
	GetByID(ctx context.Context, id string) (domain.Activity, error)
	List(ctx context.Context) ([]domain.Activity, error)
	ListByPackage(ctx context.Context, packageID string) ([]domain.Activity, error)
	ListIDs(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id string) error
}

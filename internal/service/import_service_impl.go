package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sayanitariq-techno/Tariq/internal/importer"
	"github.com/sayanitariq-techno/Tariq/internal/store"
)

type importService struct {
	store    *store.Store
	observer UseCaseObserver
}

func NewImportService(st *store.Store, observers ...UseCaseObserver) ImportService {
	return &importService{store: st, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) existingPackages() map[string]bool {
	out := make(map[string]bool)
	for _, p := range s.store.Packages() {
		out[p.ID] = true
	}
	return out
}

func (s *importService) Preview(_ context.Context, path string) (*ImportPreview, error) {
	schema, err := importer.LoadImportSchema(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return &ImportPreview{
		Packages:   len(schema.Packages),
		Activities: len(schema.Activities),
		Errors:     importer.ValidateImportSchema(schema, s.existingPackages()),
	}, nil
}

// Import applies the file only when every row validates.
func (s *importService) Import(ctx context.Context, path string) (_ *ImportResult, err error) {
	fields := map[string]any{"file": path}
	defer observe(ctx, s.observer, "import", fields, time.Now().UTC(), &err)

	schema, err := importer.LoadImportSchema(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	if errs := importer.ValidateImportSchema(schema, s.existingPackages()); len(errs) > 0 {
		fields["errors"] = len(errs)
		return nil, formatValidationErrors(errs)
	}

	converted, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import file: %w", err)
	}
	res, err := s.store.BulkMerge(ctx, converted.Packages, converted.Activities)
	if err != nil {
		return nil, fmt.Errorf("merging import: %w", err)
	}
	fields["packages"] = len(converted.Packages)
	fields["activities"] = len(converted.Activities)
	return &ImportResult{MergeResult: res}, nil
}

// ValidationError lists every problem that blocked an import.
type ValidationError struct {
	Errs []error
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(e.Errs))
	for _, err := range e.Errs {
		msg += "\n  - " + err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() []error { return e.Errs }

func formatValidationErrors(errs []error) error {
	return &ValidationError{Errs: errs}
}

// ValidationErrors extracts the row errors from an Import failure.
func ValidationErrors(err error) []error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Errs
	}
	return nil
}

package repository

import (
	"context"
	"errors"

	"github.com/bnema/dockyard/internal/domain/entity"
)

//go:generate mockgen -source=layout.go -destination=mocks/mock_layout.go -package=mock_repository

// ErrLayoutNotFound is returned when no layout has the requested name.
var ErrLayoutNotFound = errors.New("layout not found")

// LayoutRepository persists named layout snapshots.
type LayoutRepository interface {
	// Save inserts or replaces the layout with layout.Name. It reports
	// false when the stored content was already identical.
	Save(ctx context.Context, layout *entity.SavedLayout) (bool, error)

	// FindByName returns ErrLayoutNotFound when the name is unknown.
	FindByName(ctx context.Context, name string) (*entity.SavedLayout, error)

	// List returns every layout, most recently updated first.
	List(ctx context.Context) ([]*entity.SavedLayout, error)

	// Delete returns ErrLayoutNotFound when the name is unknown.
	Delete(ctx context.Context, name string) error
}

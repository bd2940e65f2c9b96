package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/repository"
	"github.com/bnema/dockyard/internal/logging"
)

// ManageSavedLayoutsUseCase captures and restores named layouts of a
// live docking session.
type ManageSavedLayoutsUseCase struct {
	repo repository.LayoutRepository
	host port.LayoutHost
}

// NewManageSavedLayoutsUseCase creates a saved layout use case. host may
// be nil for commands that only read the repository.
func NewManageSavedLayoutsUseCase(repo repository.LayoutRepository, host port.LayoutHost) *ManageSavedLayoutsUseCase {
	return &ManageSavedLayoutsUseCase{repo: repo, host: host}
}

// SaveLayoutOutput contains the stored layout.
type SaveLayoutOutput struct {
	Layout *entity.SavedLayout
	// Changed is false when the stored content was already identical.
	Changed bool
}

// LayoutSummary is one row of ListLayouts.
type LayoutSummary struct {
	Name      string
	Panes     int
	Windows   int
	UpdatedAt time.Time
}

// Save snapshots the live session under name.
func (uc *ManageSavedLayoutsUseCase) Save(ctx context.Context, name string, registry port.PaneRegistry) (*SaveLayoutOutput, error) {
	log := logging.FromContext(ctx)
	if uc.host == nil {
		return nil, fmt.Errorf("no docking session to save")
	}
	if strings.TrimSpace(name) == "" {
		return nil, entity.ErrEmptyLayoutName
	}

	layout := entity.NewSavedLayout(name, uc.host.SnapshotLayout(registry))
	changed, err := uc.repo.Save(ctx, layout)
	if err != nil {
		return nil, fmt.Errorf("failed to save layout %q: %w", layout.Name, err)
	}

	log.Info().
		Str("layout", layout.Name).
		Int("panes", layout.PaneCount()).
		Int("windows", layout.WindowCount()).
		Bool("changed", changed).
		Msg("layout saved")

	return &SaveLayoutOutput{Layout: layout, Changed: changed}, nil
}

// Restore replaces the live session with the stored layout. On error the
// session is unchanged.
func (uc *ManageSavedLayoutsUseCase) Restore(ctx context.Context, name string, registry port.PaneRegistry) (*entity.SavedLayout, error) {
	log := logging.FromContext(ctx)
	if uc.host == nil {
		return nil, fmt.Errorf("no docking session to restore into")
	}

	layout, err := uc.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := layout.Snapshot.CheckVersion(); err != nil {
		return nil, err
	}
	if err := uc.host.RestoreLayout(ctx, layout.Snapshot, registry); err != nil {
		return nil, fmt.Errorf("failed to restore layout %q: %w", name, err)
	}

	log.Info().Str("layout", name).Int("panes", layout.PaneCount()).Msg("layout restored")
	return layout, nil
}

// Show returns one stored layout.
func (uc *ManageSavedLayoutsUseCase) Show(ctx context.Context, name string) (*entity.SavedLayout, error) {
	return uc.repo.FindByName(ctx, name)
}

// List summarizes every stored layout, most recent first.
func (uc *ManageSavedLayoutsUseCase) List(ctx context.Context) ([]LayoutSummary, error) {
	layouts, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]LayoutSummary, 0, len(layouts))
	for _, l := range layouts {
		out = append(out, LayoutSummary{
			Name:      l.Name,
			Panes:     l.PaneCount(),
			Windows:   l.WindowCount(),
			UpdatedAt: l.UpdatedAt,
		})
	}
	return out, nil
}

// Delete removes a stored layout.
func (uc *ManageSavedLayoutsUseCase) Delete(ctx context.Context, name string) error {
	if err := uc.repo.Delete(ctx, name); err != nil {
		return err
	}
	logging.FromContext(ctx).Info().Str("layout", name).Msg("layout deleted")
	return nil
}

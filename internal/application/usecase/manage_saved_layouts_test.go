package usecase_test

import (
	"context"
	"testing"
	"time"

	portmocks "github.com/bnema/dockyard/internal/application/port/mocks"
	"github.com/bnema/dockyard/internal/application/usecase"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/repository"
	repomocks "github.com/bnema/dockyard/internal/domain/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func sampleSnapshot() entity.LayoutSnapshot {
	tree := entity.NewTabsTree("root", []entity.Pane{"editor", "logs"})
	return entity.LayoutSnapshot{
		Version: entity.LayoutSnapshotVersion,
		Root:    entity.SnapshotTree(tree, func(p entity.Pane) string { return p.(string) }),
	}
}

func TestSavedLayouts_Save(t *testing.T) {
	// Arrange
	ctx := testContext()
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockLayoutRepository(ctrl)
	host := portmocks.NewMockLayoutHost(ctrl)
	registry := portmocks.NewMockPaneRegistry(ctrl)
	snap := sampleSnapshot()

	host.EXPECT().SnapshotLayout(registry).Return(snap)
	repo.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, l *entity.SavedLayout) (bool, error) {
		assert.Equal(t, "work", l.Name)
		assert.Equal(t, snap, l.Snapshot)
		return true, nil
	})
	uc := usecase.NewManageSavedLayoutsUseCase(repo, host)

	// Act
	out, err := uc.Save(ctx, " work ", registry)

	// Assert
	require.NoError(t, err)
	assert.True(t, out.Changed)
	assert.Equal(t, 2, out.Layout.PaneCount())
}

func TestSavedLayouts_SaveRequiresName(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := usecase.NewManageSavedLayoutsUseCase(repomocks.NewMockLayoutRepository(ctrl), portmocks.NewMockLayoutHost(ctrl))

	_, err := uc.Save(testContext(), "  ", nil)

	assert.ErrorIs(t, err, entity.ErrEmptyLayoutName)
}

func TestSavedLayouts_Restore(t *testing.T) {
	ctx := testContext()
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockLayoutRepository(ctrl)
	host := portmocks.NewMockLayoutHost(ctrl)
	registry := portmocks.NewMockPaneRegistry(ctrl)
	stored := entity.NewSavedLayout("work", sampleSnapshot())

	repo.EXPECT().FindByName(ctx, "work").Return(stored, nil)
	host.EXPECT().RestoreLayout(ctx, stored.Snapshot, registry).Return(nil)
	uc := usecase.NewManageSavedLayoutsUseCase(repo, host)

	got, err := uc.Restore(ctx, "work", registry)

	require.NoError(t, err)
	assert.Same(t, stored, got)
}

func TestSavedLayouts_RestoreFailures(t *testing.T) {
	ctx := testContext()

	t.Run("unknown name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := repomocks.NewMockLayoutRepository(ctrl)
		repo.EXPECT().FindByName(ctx, "nope").Return(nil, repository.ErrLayoutNotFound)
		uc := usecase.NewManageSavedLayoutsUseCase(repo, portmocks.NewMockLayoutHost(ctrl))

		_, err := uc.Restore(ctx, "nope", nil)

		assert.ErrorIs(t, err, repository.ErrLayoutNotFound)
	})

	t.Run("foreign version never reaches the host", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := repomocks.NewMockLayoutRepository(ctrl)
		old := entity.NewSavedLayout("old", entity.LayoutSnapshot{Version: 1})
		repo.EXPECT().FindByName(ctx, "old").Return(old, nil)
		uc := usecase.NewManageSavedLayoutsUseCase(repo, portmocks.NewMockLayoutHost(ctrl))

		_, err := uc.Restore(ctx, "old", nil)

		var verr *entity.UnsupportedVersionError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, 1, verr.Found)
	})
}

func TestSavedLayouts_List(t *testing.T) {
	ctx := testContext()
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockLayoutRepository(ctrl)
	updated := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	stored := entity.NewSavedLayout("work", sampleSnapshot())
	stored.UpdatedAt = updated
	stored.Snapshot.Detached = []entity.DetachedSnapshot{{Serial: 1, Title: "logs", Tree: sampleSnapshot().Root}}
	repo.EXPECT().List(ctx).Return([]*entity.SavedLayout{stored}, nil)
	uc := usecase.NewManageSavedLayoutsUseCase(repo, nil)

	rows, err := uc.List(ctx)

	require.NoError(t, err)
	assert.Equal(t, []usecase.LayoutSummary{{Name: "work", Panes: 4, Windows: 1, UpdatedAt: updated}}, rows)
}

func TestSavedLayouts_Delete(t *testing.T) {
	ctx := testContext()
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockLayoutRepository(ctrl)
	repo.EXPECT().Delete(ctx, "work").Return(nil)
	uc := usecase.NewManageSavedLayoutsUseCase(repo, nil)

	assert.NoError(t, uc.Delete(ctx, "work"))
}

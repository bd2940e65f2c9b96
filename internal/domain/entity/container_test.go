package entity_test

import (
	"testing"

	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestTabsRemoveChild_SelectsSibling(t *testing.T) {
	tests := []struct {
		name       string
		children   []entity.TileID
		active     entity.TileID
		remove     entity.TileID
		wantIndex  int
		wantActive entity.TileID
	}{
		{name: "active middle picks next", children: []entity.TileID{1, 2, 3}, active: 2, remove: 2, wantIndex: 1, wantActive: 3},
		{name: "active last picks previous", children: []entity.TileID{1, 2, 3}, active: 3, remove: 3, wantIndex: 2, wantActive: 2},
		{name: "active first picks next", children: []entity.TileID{1, 2, 3}, active: 1, remove: 1, wantIndex: 0, wantActive: 2},
		{name: "only child clears", children: []entity.TileID{1}, active: 1, remove: 1, wantIndex: 0, wantActive: entity.NoTile},
		{name: "inactive child keeps active", children: []entity.TileID{1, 2, 3}, active: 2, remove: 3, wantIndex: 2, wantActive: 2},
		{name: "missing child", children: []entity.TileID{1, 2}, active: 1, remove: 9, wantIndex: -1, wantActive: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			tabs := entity.NewTabs(tt.children)
			tabs.Active = tt.active

			// Act
			idx := tabs.RemoveChild(tt.remove)

			// Assert
			assert.Equal(t, tt.wantIndex, idx)
			assert.Equal(t, tt.wantActive, tabs.Active)
		})
	}
}

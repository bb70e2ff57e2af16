package product_tag

import (
	"context"
	"errors"
	"testing"

	"github.com/anzhiyu-c/anheyu-catalog/pkg/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepo 是一个内存实现的关联仓储，记录调用顺序
type memoryRepo struct {
	rows      []model.ProductTag
	nextID    uint
	calls     []string
	createErr error
}

func (m *memoryRepo) ListByProduct(_ context.Context, productID uint) ([]model.ProductTag, error) {
	m.calls = append(m.calls, "list")
	var out []model.ProductTag
	for _, row := range m.rows {
		if row.ProductID == productID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *memoryRepo) BulkCreate(_ context.Context, rows []model.NewProductTag) error {
	m.calls = append(m.calls, "create")
	if m.createErr != nil {
		return m.createErr
	}
	for _, n := range rows {
		m.nextID++
		m.rows = append(m.rows, model.ProductTag{ID: m.nextID, ProductID: n.ProductID, TagID: n.TagID})
	}
	return nil
}

func (m *memoryRepo) DeleteByIDs(_ context.Context, ids []uint) error {
	m.calls = append(m.calls, "delete")
	drop := map[uint]bool{}
	for _, id := range ids {
		drop[id] = true
	}
	kept := m.rows[:0]
	for _, row := range m.rows {
		if !drop[row.ID] {
			kept = append(kept, row)
		}
	}
	m.rows = kept
	return nil
}

func (m *memoryRepo) DeleteByProduct(context.Context, uint) (int, error) { return 0, nil }
func (m *memoryRepo) DeleteOrphans(context.Context) (int, error) { return 0, nil }

func TestSync(t *testing.T) {
	ctx := context.Background()
	repo := &memoryRepo{
		rows:   []model.ProductTag{{ID: 1, ProductID: 7, TagID: 1}, {ID: 2, ProductID: 7, TagID: 2}, {ID: 3, ProductID: 8, TagID: 1}},
		nextID: 3,
	}

	delta, err := Sync(ctx, repo, 7, []uint{2, 3, 3})
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, delta.ToRemove)
	assert.Equal(t, []model.NewProductTag{{ProductID: 7, TagID: 3}}, delta.ToInsert)
	assert.Equal(t, []string{"list", "delete", "create"}, repo.calls)

	current, err := repo.ListByProduct(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, map[uint]int{2: 1, 3: 1}, tagSet(current))

	other, err := repo.ListByProduct(ctx, 8)
	require.NoError(t, err)
	assert.Len(t, other, 1, "其他商品的关联不受影响")

	t.Run("再次同步无操作", func(t *testing.T) {
		delta, err := Sync(ctx, repo, 7, []uint{3, 2})
		require.NoError(t, err)
		assert.True(t, delta.Empty())
	})
}

func TestSyncPropagatesStoreError(t *testing.T) {
	storeErr := errors.New("foreign key")
	repo := &memoryRepo{createErr: storeErr}

	_, err := Sync(context.Background(), repo, 7, []uint{99})
	assert.ErrorIs(t, err, storeErr)
}

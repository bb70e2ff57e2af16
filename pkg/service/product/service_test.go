package product

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/anzhiyu-c/anheyu-catalog/internal/infra/persistence/database"
	ent_repo "github.com/anzhiyu-c/anheyu-catalog/internal/infra/persistence/ent"
	"github.com/anzhiyu-c/anheyu-catalog/internal/pkg/event"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/constant"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/domain/repository"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/idgen"

	"entgo.io/ent/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc    *Service
	repos  repository.Repositories
	bus    *event.EventBus
	events *recorder
	tags   []string
	cat    string
}

type recorder struct {
	mu         sync.Mutex
	deleted    []uint
	reconciled []event.ProductTagsReconciledPayload
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, idgen.InitSqidsEncoder())

	db, err := sql.Open("sqlite3", database.SQLiteDSN(filepath.Join(t.TempDir(), "catalog.db")))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	drv := database.NewDriver(db, dialect.SQLite, false)
	require.NoError(t, database.Migrate(ctx, db, drv))

	f := &fixture{
		repos:  ent_repo.NewRepositories(drv, dialect.SQLite),
		bus:    event.NewEventBusWithWorkers(1, 64),
		events: &recorder{},
	}
	f.bus.Subscribe(event.ProductDeleted, func(payload interface{}) {
		f.events.mu.Lock()
		defer f.events.mu.Unlock()
		f.events.deleted = append(f.events.deleted, payload.(event.ProductDeletedPayload).ProductID)
	})
	f.bus.Subscribe(event.ProductTagsReconciled, func(payload interface{}) {
		f.events.mu.Lock()
		defer f.events.mu.Unlock()
		f.events.reconciled = append(f.events.reconciled, payload.(event.ProductTagsReconciledPayload))
	})
	t.Cleanup(f.bus.Shutdown)

	f.svc = NewService(f.repos.Product, ent_repo.NewEntTransactionManager(drv), f.bus)

	c, err := f.repos.Category.Create(ctx, "Shorts")
	require.NoError(t, err)
	f.cat = c.ID
	for _, name := range []string{"rock music", "pop music", "blue", "red"} {
		tag, err := f.repos.Tag.Create(ctx, name)
		require.NoError(t, err)
		f.tags = append(f.tags, tag.ID)
	}
	return f
}

func tagNames(p *model.ProductResponse) []string {
	names := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		names[i] = t.Name
	}
	return names
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	desc := "**Comfy** shorts <script>x</script>"
	p, err := f.svc.Create(ctx, &model.CreateProductRequest{
		Name:        " <b>Cargo</b> Shorts ",
		Price:       29.99,
		CategoryID:  &f.cat,
		Description: &desc,
		TagIDs:      []string{f.tags[0], f.tags[0], f.tags[2]},
	})
	require.NoError(t, err)

	assert.Equal(t, "Cargo Shorts", p.Name)
	assert.Equal(t, model.DefaultProductStock, p.Stock)
	require.NotNil(t, p.Category)
	assert.Equal(t, "Shorts", p.Category.Name)
	assert.Equal(t, []string{"rock music", "blue"}, tagNames(p), "重复的标签只写入一次")
	assert.Contains(t, p.DescriptionHTML, "<strong>Comfy</strong>")
	assert.NotContains(t, p.DescriptionHTML, "<script>")
	assert.Equal(t, desc, p.DescriptionMD)
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	missingTag, err := idgen.GeneratePublicID(999, idgen.EntityTypeTag)
	require.NoError(t, err)
	badCategory := "!!"

	testCases := []struct {
		name string
		req  *model.CreateProductRequest
	}{
		{"名称清理后为空", &model.CreateProductRequest{Name: "<i></i>", Price: 1}},
		{"无效的分类ID", &model.CreateProductRequest{Name: "x", Price: 1, CategoryID: &badCategory}},
		{"标签ID类型错误", &model.CreateProductRequest{Name: "x", Price: 1, TagIDs: []string{f.cat}}},
		{"标签不存在", &model.CreateProductRequest{Name: "x", Price: 1, TagIDs: []string{f.tags[0], missingTag}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, tc.req)
			assert.ErrorIs(t, err, constant.ErrBadRequest)
		})
	}

	count, err := f.repos.Product.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "失败的创建应整体回滚")
}

func TestUpdateReconcilesTags(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.svc.Create(ctx, &model.CreateProductRequest{
		Name:   "Vintage Cap",
		Price:  15,
		TagIDs: []string{f.tags[0], f.tags[1]},
	})
	require.NoError(t, err)

	t.Run("替换部分标签", func(t *testing.T) {
		got, err := f.svc.Update(ctx, p.ID, &model.UpdateProductRequest{TagIDs: []string{f.tags[1], f.tags[3]}})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"pop music", "red"}, tagNames(got))
	})

	t.Run("相同集合不做修改", func(t *testing.T) {
		got, err := f.svc.Update(ctx, p.ID, &model.UpdateProductRequest{TagIDs: []string{f.tags[3], f.tags[1], f.tags[3]}})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"pop music", "red"}, tagNames(got))
	})

	t.Run("空列表视为未提供", func(t *testing.T) {
		stock := 3
		got, err := f.svc.Update(ctx, p.ID, &model.UpdateProductRequest{Stock: &stock, TagIDs: []string{}})
		require.NoError(t, err)
		assert.Equal(t, 3, got.Stock)
		assert.ElementsMatch(t, []string{"pop music", "red"}, tagNames(got))
	})

	t.Run("标签不存在时整体回滚", func(t *testing.T) {
		missingTag, err := idgen.GeneratePublicID(999, idgen.EntityTypeTag)
		require.NoError(t, err)
		name := "Renamed Cap"
		_, err = f.svc.Update(ctx, p.ID, &model.UpdateProductRequest{Name: &name, TagIDs: []string{f.tags[0], missingTag}})
		assert.ErrorIs(t, err, constant.ErrBadRequest)

		got, err := f.svc.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Vintage Cap", got.Name)
		assert.ElementsMatch(t, []string{"pop music", "red"}, tagNames(got))
	})

	f.bus.Shutdown()
	f.events.mu.Lock()
	defer f.events.mu.Unlock()
	require.Len(t, f.events.reconciled, 1, "只有实际发生变化的调整才发布事件")
	assert.Equal(t, 1, f.events.reconciled[0].Inserted)
	assert.Equal(t, 1, f.events.reconciled[0].Removed)
}

func TestUpdateNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	missing, err := idgen.GeneratePublicID(404, idgen.EntityTypeProduct)
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, missing, &model.UpdateProductRequest{TagIDs: []string{f.tags[0]}})
	assert.ErrorIs(t, err, constant.ErrNotFound)

	_, err = f.svc.Update(ctx, f.tags[0], &model.UpdateProductRequest{})
	assert.ErrorIs(t, err, constant.ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.svc.Create(ctx, &model.CreateProductRequest{Name: "Plain T-Shirt", Price: 14.99, TagIDs: []string{f.tags[2]}})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, p.ID))
	_, err = f.svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, constant.ErrNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, p.ID), constant.ErrNotFound)

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	f.bus.Shutdown()
	f.events.mu.Lock()
	defer f.events.mu.Unlock()
	assert.Len(t, f.events.deleted, 1)
}

func TestUpdateReturnsReconciledTags(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.svc.Create(ctx, &model.CreateProductRequest{
		Name:       "Cargo Shorts",
		Price:      29.99,
		CategoryID: &f.cat,
		TagIDs:     []string{f.tags[0], f.tags[1], f.tags[2]},
	})
	require.NoError(t, err)

	got, err := f.svc.Update(ctx, p.ID, &model.UpdateProductRequest{TagIDs: []string{f.tags[3]}})
	require.NoError(t, err)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, f.tags[3], got.Tags[0].ID)
	assert.Equal(t, "red", got.Tags[0].Name)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Shorts", got.Category.Name)

	productID, err := idgen.DecodeEntityID(p.ID, idgen.EntityTypeProduct)
	require.NoError(t, err)
	tagID, err := idgen.DecodeEntityID(f.tags[3], idgen.EntityTypeTag)
	require.NoError(t, err)
	rows, err := f.repos.ProductTag.ListByProduct(ctx, productID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, tagID, rows[0].TagID)
}

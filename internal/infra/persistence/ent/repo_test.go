package ent

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/anzhiyu-c/anheyu-catalog/internal/infra/persistence/database"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/constant"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/domain/repository"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/idgen"

	"entgo.io/ent/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore 在临时目录中创建一个已迁移的 SQLite 数据库
func newTestStore(t *testing.T) (repository.Repositories, dialect.Driver) {
	t.Helper()
	require.NoError(t, idgen.InitSqidsEncoder())

	db, err := sql.Open("sqlite3", database.SQLiteDSN(filepath.Join(t.TempDir(), "catalog.db")))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	drv := database.NewDriver(db, dialect.SQLite, false)
	require.NoError(t, database.Migrate(context.Background(), db, drv))
	// PRAGMA 只作用于单个连接，测试里固定使用同一个连接
	db.SetMaxOpenConns(1)
	return NewRepositories(drv, dialect.SQLite), drv
}

func dbID(t *testing.T, publicID string, entityType uint64) uint {
	t.Helper()
	id, err := idgen.DecodeEntityID(publicID, entityType)
	require.NoError(t, err)
	return id
}

func TestCategoryRepo(t *testing.T) {
	ctx := context.Background()
	repos, _ := newTestStore(t)

	created, err := repos.Category.Create(ctx, "Shirts")
	require.NoError(t, err)
	assert.Equal(t, "Shirts", created.Name)
	assert.Empty(t, created.Products)

	categoryID := dbID(t, created.ID, idgen.EntityTypeCategory)
	_, err = repos.Product.Create(ctx, &model.CreateProductParams{Name: "Plain T-Shirt", Price: 14.99, Stock: 14, CategoryID: &categoryID})
	require.NoError(t, err)

	got, err := repos.Category.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Products, 1)
	assert.Equal(t, "Plain T-Shirt", got.Products[0].Name)
	assert.InDelta(t, 14.99, got.Products[0].Price, 0.001)

	newName := "T-Shirts"
	updated, err := repos.Category.Update(ctx, created.ID, &newName)
	require.NoError(t, err)
	assert.Equal(t, "T-Shirts", updated.Name)

	list, err := repos.Category.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repos.Category.Delete(ctx, created.ID))
	_, err = repos.Category.GetByID(ctx, created.ID)
	assert.True(t, errors.Is(err, constant.ErrNotFound))

	products, err := repos.Product.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Nil(t, products[0].Category, "删除分类后商品的分类应被置空")
}

func TestRepoNotFound(t *testing.T) {
	ctx := context.Background()
	repos, _ := newTestStore(t)

	tag, err := repos.Tag.Create(ctx, "rock music")
	require.NoError(t, err)
	missing, err := idgen.GeneratePublicID(999, idgen.EntityTypeTag)
	require.NoError(t, err)

	testCases := []struct {
		name string
		fn   func() error
	}{
		{"非法的公共ID", func() error { _, err := repos.Category.GetByID(ctx, "!!"); return err }},
		{"类型不匹配的公共ID", func() error { _, err := repos.Product.GetByID(ctx, tag.ID); return err }},
		{"不存在的标签", func() error { _, err := repos.Tag.GetByID(ctx, missing); return err }},
		{"更新不存在的标签", func() error { _, err := repos.Tag.Update(ctx, missing, nil); return err }},
		{"删除不存在的标签", func() error { return repos.Tag.Delete(ctx, missing) }},
		{"更新类型不匹配的商品", func() error { return repos.Product.Update(ctx, tag.ID, &model.UpdateProductParams{}) }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.fn(), constant.ErrNotFound)
		})
	}
}

func TestProductRepoCreateUpdate(t *testing.T) {
	ctx := context.Background()
	repos, _ := newTestStore(t)

	id, err := repos.Product.Create(ctx, &model.CreateProductParams{
		Name:            "Vintage Cap",
		Price:           15,
		Stock:           model.DefaultProductStock,
		DescriptionMD:   "**cap**",
		DescriptionHTML: "<p><strong>cap</strong></p>",
	})
	require.NoError(t, err)
	publicID, err := idgen.GeneratePublicID(id, idgen.EntityTypeProduct)
	require.NoError(t, err)

	got, err := repos.Product.GetByID(ctx, publicID)
	require.NoError(t, err)
	assert.Equal(t, "Vintage Cap", got.Name)
	assert.Equal(t, 10, got.Stock)
	assert.Nil(t, got.Category)
	assert.Empty(t, got.Tags)
	assert.Equal(t, "**cap**", got.DescriptionMD)

	stock := 0
	price := 18.5
	require.NoError(t, repos.Product.Update(ctx, publicID, &model.UpdateProductParams{Stock: &stock, Price: &price}))
	got, err = repos.Product.GetByID(ctx, publicID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)
	assert.InDelta(t, 18.5, got.Price, 0.001)
	assert.Equal(t, "Vintage Cap", got.Name, "未提供的字段保持不变")

	t.Run("不存在的分类被外键拒绝", func(t *testing.T) {
		missingCategory := uint(404)
		_, err := repos.Product.Create(ctx, &model.CreateProductParams{Name: "x", Price: 1, CategoryID: &missingCategory})
		assert.ErrorIs(t, err, constant.ErrBadRequest)
	})

	count, err := repos.Product.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestProductTagRepo(t *testing.T) {
	ctx := context.Background()
	repos, _ := newTestStore(t)

	productID, err := repos.Product.Create(ctx, &model.CreateProductParams{Name: "Running Sneakers", Price: 90, Stock: 25})
	require.NoError(t, err)
	var tagIDs []uint
	for _, name := range []string{"rock music", "pop music", "blue"} {
		tag, err := repos.Tag.Create(ctx, name)
		require.NoError(t, err)
		tagIDs = append(tagIDs, dbID(t, tag.ID, idgen.EntityTypeTag))
	}

	require.NoError(t, repos.ProductTag.BulkCreate(ctx, []model.NewProductTag{
		{ProductID: productID, TagID: tagIDs[2]},
		{ProductID: productID, TagID: tagIDs[0]},
	}))
	require.NoError(t, repos.ProductTag.BulkCreate(ctx, nil))

	rows, err := repos.ProductTag.ListByProduct(ctx, productID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, tagIDs[2], rows[0].TagID, "按写入顺序返回")
	assert.Equal(t, tagIDs[0], rows[1].TagID)

	t.Run("重复关联被唯一索引拒绝", func(t *testing.T) {
		err := repos.ProductTag.BulkCreate(ctx, []model.NewProductTag{{ProductID: productID, TagID: tagIDs[0]}})
		assert.ErrorIs(t, err, constant.ErrConflict)
	})

	t.Run("不存在的标签被外键拒绝", func(t *testing.T) {
		err := repos.ProductTag.BulkCreate(ctx, []model.NewProductTag{{ProductID: productID, TagID: 9999}})
		assert.ErrorIs(t, err, constant.ErrBadRequest)
	})

	require.NoError(t, repos.ProductTag.DeleteByIDs(ctx, []uint{rows[0].ID}))
	rows, err = repos.ProductTag.ListByProduct(ctx, productID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, tagIDs[0], rows[0].TagID)

	productPublicID, err := idgen.GeneratePublicID(productID, idgen.EntityTypeProduct)
	require.NoError(t, err)
	product, err := repos.Product.GetByID(ctx, productPublicID)
	require.NoError(t, err)
	require.Len(t, product.Tags, 1)
	assert.Equal(t, "rock music", product.Tags[0].Name)

	tagPublicID, err := idgen.GeneratePublicID(tagIDs[0], idgen.EntityTypeTag)
	require.NoError(t, err)
	tag, err := repos.Tag.GetByID(ctx, tagPublicID)
	require.NoError(t, err)
	require.Len(t, tag.Products, 1)
	assert.Equal(t, "Running Sneakers", tag.Products[0].Name)

	n, err := repos.ProductTag.DeleteByProduct(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	rows, err = repos.ProductTag.ListByProduct(ctx, productID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestProductDeleteCascadesJoinRows(t *testing.T) {
	ctx := context.Background()
	repos, _ := newTestStore(t)

	productID, err := repos.Product.Create(ctx, &model.CreateProductParams{Name: "Cargo Shorts", Price: 29.99, Stock: 22})
	require.NoError(t, err)
	tag, err := repos.Tag.Create(ctx, "gold")
	require.NoError(t, err)
	require.NoError(t, repos.ProductTag.BulkCreate(ctx, []model.NewProductTag{{ProductID: productID, TagID: dbID(t, tag.ID, idgen.EntityTypeTag)}}))

	productPublicID, err := idgen.GeneratePublicID(productID, idgen.EntityTypeProduct)
	require.NoError(t, err)
	require.NoError(t, repos.Product.Delete(ctx, productPublicID))

	rows, err := repos.ProductTag.ListByProduct(ctx, productID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	n, err := repos.ProductTag.DeleteOrphans(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestDeleteOrphans(t *testing.T) {
	ctx := context.Background()
	repos, drv := newTestStore(t)

	productID, err := repos.Product.Create(ctx, &model.CreateProductParams{Name: "Top 40 Music Compilation Vinyl Record", Price: 12.99, Stock: 50})
	require.NoError(t, err)
	tag, err := repos.Tag.Create(ctx, "pop music")
	require.NoError(t, err)
	tagID := dbID(t, tag.ID, idgen.EntityTypeTag)
	require.NoError(t, repos.ProductTag.BulkCreate(ctx, []model.NewProductTag{{ProductID: productID, TagID: tagID}}))

	// 关闭外键后手动写入悬空的关联，模拟未启用级联删除的旧数据
	var res sql.Result
	require.NoError(t, drv.Exec(ctx, "PRAGMA foreign_keys = OFF", []any{}, &res))
	require.NoError(t, drv.Exec(ctx, "INSERT INTO product_tags (product_id, tag_id) VALUES (?, ?), (?, ?)", []any{777, tagID, productID, 888}, &res))
	require.NoError(t, drv.Exec(ctx, "PRAGMA foreign_keys = ON", []any{}, &res))

	n, err := repos.ProductTag.DeleteOrphans(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rows, err := repos.ProductTag.ListByProduct(ctx, productID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, tagID, rows[0].TagID)
}

func TestTransactionManager(t *testing.T) {
	ctx := context.Background()
	repos, drv := newTestStore(t)
	tm := NewEntTransactionManager(drv)

	t.Run("出错时回滚", func(t *testing.T) {
		boom := errors.New("boom")
		err := tm.Do(ctx, func(tx repository.Repositories) error {
			if _, err := tx.Tag.Create(ctx, "rolled back"); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		count, err := repos.Tag.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("成功时提交", func(t *testing.T) {
		err := tm.Do(ctx, func(tx repository.Repositories) error {
			_, err := tx.Tag.Create(ctx, "committed")
			return err
		})
		require.NoError(t, err)

		count, err := repos.Tag.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestProductReadsJoinCategoryAndTags(t *testing.T) {
	ctx := context.Background()
	repos, _ := newTestStore(t)

	category, err := repos.Category.Create(ctx, "Shirts")
	require.NoError(t, err)
	categoryID := dbID(t, category.ID, idgen.EntityTypeCategory)
	productID, err := repos.Product.Create(ctx, &model.CreateProductParams{Name: "Plain T-Shirt", Price: 14.99, Stock: 14, CategoryID: &categoryID})
	require.NoError(t, err)

	white, err := repos.Tag.Create(ctx, "white")
	require.NoError(t, err)
	gold, err := repos.Tag.Create(ctx, "gold")
	require.NoError(t, err)
	require.NoError(t, repos.ProductTag.BulkCreate(ctx, []model.NewProductTag{
		{ProductID: productID, TagID: dbID(t, gold.ID, idgen.EntityTypeTag)},
		{ProductID: productID, TagID: dbID(t, white.ID, idgen.EntityTypeTag)},
	}))

	productPublicID, err := idgen.GeneratePublicID(productID, idgen.EntityTypeProduct)
	require.NoError(t, err)

	assertProduct := func(t *testing.T, p *model.Product) {
		t.Helper()
		assert.Equal(t, productPublicID, p.ID)
		assert.Equal(t, "Plain T-Shirt", p.Name)
		require.NotNil(t, p.Category)
		assert.Equal(t, category.ID, p.Category.ID)
		assert.Equal(t, "Shirts", p.Category.Name)
		require.Len(t, p.Tags, 2)
		assert.Equal(t, gold.ID, p.Tags[0].ID, "标签按关联写入顺序返回")
		assert.Equal(t, "gold", p.Tags[0].Name)
		assert.Equal(t, white.ID, p.Tags[1].ID)
		assert.Equal(t, "white", p.Tags[1].Name)
	}

	t.Run("按ID查询商品", func(t *testing.T) {
		got, err := repos.Product.GetByID(ctx, productPublicID)
		require.NoError(t, err)
		assertProduct(t, got)
	})

	t.Run("列出商品", func(t *testing.T) {
		list, err := repos.Product.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assertProduct(t, list[0])
	})

	t.Run("标签带出关联商品", func(t *testing.T) {
		got, err := repos.Tag.GetByID(ctx, gold.ID)
		require.NoError(t, err)
		require.Len(t, got.Products, 1)
		assert.Equal(t, productPublicID, got.Products[0].ID)
		assert.Equal(t, "Plain T-Shirt", got.Products[0].Name)

		tags, err := repos.Tag.List(ctx)
		require.NoError(t, err)
		require.Len(t, tags, 2)
		for _, tag := range tags {
			require.Len(t, tag.Products, 1, tag.Name)
		}
	})

	t.Run("新建和更新标签返回关联商品", func(t *testing.T) {
		name := "golden"
		updated, err := repos.Tag.Update(ctx, gold.ID, &name)
		require.NoError(t, err)
		assert.Equal(t, "golden", updated.Name)
		require.Len(t, updated.Products, 1)

		created, err := repos.Tag.Create(ctx, "green")
		require.NoError(t, err)
		assert.Empty(t, created.Products)
	})
}

// 不能并行：替换了包级的ID编码函数
func TestReadsReturnIDEncodingErrors(t *testing.T) {
	ctx := context.Background()
	repos, _ := newTestStore(t)

	category, err := repos.Category.Create(ctx, "Hats")
	require.NoError(t, err)
	categoryID := dbID(t, category.ID, idgen.EntityTypeCategory)
	productID, err := repos.Product.Create(ctx, &model.CreateProductParams{Name: "Branded Baseball Hat", Price: 22.99, Stock: 12, CategoryID: &categoryID})
	require.NoError(t, err)
	tag, err := repos.Tag.Create(ctx, "red")
	require.NoError(t, err)
	require.NoError(t, repos.ProductTag.BulkCreate(ctx, []model.NewProductTag{
		{ProductID: productID, TagID: dbID(t, tag.ID, idgen.EntityTypeTag)},
	}))
	productPublicID, err := idgen.GeneratePublicID(productID, idgen.EntityTypeProduct)
	require.NoError(t, err)

	errEncode := errors.New("encoder unavailable")
	original := generatePublicID
	generatePublicID = func(uint, uint64) (string, error) { return "", errEncode }
	t.Cleanup(func() { generatePublicID = original })

	_, err = repos.Product.GetByID(ctx, productPublicID)
	assert.ErrorIs(t, err, errEncode)
	_, err = repos.Product.List(ctx)
	assert.ErrorIs(t, err, errEncode)
	_, err = repos.Tag.List(ctx)
	assert.ErrorIs(t, err, errEncode)
	_, err = repos.Category.GetByID(ctx, category.ID)
	assert.ErrorIs(t, err, errEncode)
	_, err = repos.Tag.Create(ctx, "blue")
	assert.ErrorIs(t, err, errEncode)
}

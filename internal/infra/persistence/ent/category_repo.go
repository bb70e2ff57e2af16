/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-10-09 17:02:33
 * @LastEditTime: 2026-10-14 14:30:51
 * @LastEditors: 安知鱼
 */
package ent

import (
	"context"
	"fmt"
	"time"

	"github.com/anzhiyu-c/anheyu-catalog/internal/infra/persistence/database"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/constant"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/domain/repository"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/idgen"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

type categoryRepo struct {
	conn
}

// NewCategoryRepo 创建分类仓储，db 可以是连接池也可以是事务
func NewCategoryRepo(db dialect.ExecQuerier, dbType string) repository.CategoryRepository {
	return &categoryRepo{conn{drv: db, dialect: dbType}}
}

type categoryRow struct {
	id        uint
	createdAt time.Time
	updatedAt time.Time
	name      string
}

func (r *categoryRepo) toModel(row categoryRow) (*model.Category, error) {
	id, err := encodeID(row.id, idgen.EntityTypeCategory)
	if err != nil {
		return nil, err
	}
	return &model.Category{
		ID:        id,
		CreatedAt: row.createdAt,
		UpdatedAt: row.updatedAt,
		Name:      row.name,
		Products:  []*model.ProductSummary{},
	}, nil
}

func (r *categoryRepo) selectCategories() *entsql.Selector {
	t := r.builder().Table(database.CategoriesTableName)
	return r.builder().Select(
		t.C(database.ColumnID),
		t.C(database.ColumnCreatedAt),
		t.C(database.ColumnUpdatedAt),
		t.C(database.ColumnCategoryName),
	).From(t).OrderBy(t.C(database.ColumnID))
}

func (r *categoryRepo) scan(ctx context.Context, s *entsql.Selector) ([]categoryRow, error) {
	var rows []categoryRow
	err := r.query(ctx, s, func(rs *entsql.Rows) error {
		var row categoryRow
		if err := rs.Scan(&row.id, &row.createdAt, &row.updatedAt, &row.name); err != nil {
			return err
		}
		rows = append(rows, row)
		return nil
	})
	return rows, err
}

// List 列出所有分类及其下的商品
func (r *categoryRepo) List(ctx context.Context) ([]*model.Category, error) {
	rows, err := r.scan(ctx, r.selectCategories())
	if err != nil {
		return nil, fmt.Errorf("查询分类列表失败: %w", err)
	}
	return r.withProducts(ctx, rows)
}

func (r *categoryRepo) GetByID(ctx context.Context, publicID string) (*model.Category, error) {
	dbID, err := idgen.DecodeEntityID(publicID, idgen.EntityTypeCategory)
	if err != nil {
		return nil, fmt.Errorf("%w: 无效的分类ID", constant.ErrNotFound)
	}
	return r.getByDBID(ctx, dbID)
}

func (r *categoryRepo) getByDBID(ctx context.Context, dbID uint) (*model.Category, error) {
	s := r.selectCategories()
	rows, err := r.scan(ctx, s.Where(entsql.EQ(s.C(database.ColumnID), dbID)))
	if err != nil {
		return nil, fmt.Errorf("查询分类失败: %w", err)
	}
	if len(rows) == 0 {
		return nil, constant.ErrNotFound
	}
	categories, err := r.withProducts(ctx, rows)
	if err != nil {
		return nil, err
	}
	return categories[0], nil
}

func (r *categoryRepo) Create(ctx context.Context, name string) (*model.Category, error) {
	now := time.Now()
	id, err := r.insert(ctx, r.builder().Insert(database.CategoriesTableName).
		Columns(database.ColumnCreatedAt, database.ColumnUpdatedAt, database.ColumnCategoryName).
		Values(now, now, name))
	if err != nil {
		return nil, fmt.Errorf("创建分类失败: %w", err)
	}
	return r.getByDBID(ctx, id)
}

func (r *categoryRepo) Update(ctx context.Context, publicID string, name *string) (*model.Category, error) {
	dbID, err := idgen.DecodeEntityID(publicID, idgen.EntityTypeCategory)
	if err != nil {
		return nil, fmt.Errorf("%w: 无效的分类ID", constant.ErrNotFound)
	}
	ok, err := r.exists(ctx, database.CategoriesTableName, dbID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, constant.ErrNotFound
	}

	updater := r.builder().Update(database.CategoriesTableName).
		Set(database.ColumnUpdatedAt, time.Now()).
		Where(entsql.EQ(database.ColumnID, dbID))
	if name != nil {
		updater.Set(database.ColumnCategoryName, *name)
	}
	if _, err := r.exec(ctx, updater); err != nil {
		return nil, fmt.Errorf("更新分类失败: %w", err)
	}
	return r.getByDBID(ctx, dbID)
}

// Delete 删除分类，其下商品的 category_id 由外键置空
func (r *categoryRepo) Delete(ctx context.Context, publicID string) error {
	dbID, err := idgen.DecodeEntityID(publicID, idgen.EntityTypeCategory)
	if err != nil {
		return fmt.Errorf("%w: 无效的分类ID", constant.ErrNotFound)
	}
	return r.deleteByID(ctx, database.CategoriesTableName, dbID)
}

func (r *categoryRepo) Count(ctx context.Context) (int, error) {
	return r.count(ctx, database.CategoriesTableName)
}

// withProducts 为一组分类批量加载商品摘要
func (r *categoryRepo) withProducts(ctx context.Context, rows []categoryRow) ([]*model.Category, error) {
	categories := make([]*model.Category, len(rows))
	byID := make(map[uint]*model.Category, len(rows))
	ids := make([]uint, len(rows))
	for i, row := range rows {
		c, err := r.toModel(row)
		if err != nil {
			return nil, err
		}
		categories[i] = c
		byID[row.id] = c
		ids[i] = row.id
	}
	if len(ids) == 0 {
		return categories, nil
	}

	p := r.builder().Table(database.ProductsTableName)
	s := r.builder().Select(
		p.C(database.ColumnCategoryID),
		p.C(database.ColumnID),
		p.C(database.ColumnProductName),
		p.C(database.ColumnPrice),
		p.C(database.ColumnStock),
	).From(p).
		Where(entsql.In(p.C(database.ColumnCategoryID), uintArgs(ids)...)).
		OrderBy(p.C(database.ColumnID))

	err := r.query(ctx, s, func(rs *entsql.Rows) error {
		var categoryID uint
		var summary productSummaryRow
		if err := rs.Scan(&categoryID, &summary.id, &summary.name, &summary.price, &summary.stock); err != nil {
			return err
		}
		if c, ok := byID[categoryID]; ok {
			product, err := summary.toModel()
			if err != nil {
				return err
			}
			c.Products = append(c.Products, product)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("加载分类商品失败: %w", err)
	}
	return categories, nil
}

type productSummaryRow struct {
	id    uint
	name  string
	price float64
	stock int
}

func (row productSummaryRow) toModel() (*model.ProductSummary, error) {
	id, err := encodeID(row.id, idgen.EntityTypeProduct)
	if err != nil {
		return nil, err
	}
	return &model.ProductSummary{
		ID:    id,
		Name:  row.name,
		Price: row.price,
		Stock: row.stock,
	}, nil
}

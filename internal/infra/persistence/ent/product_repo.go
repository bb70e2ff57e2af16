/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-10-10 09:12:45
 * @LastEditTime: 2026-10-14 15:03:38
 * @LastEditors: 安知鱼
 */
package ent

import (
	"context"
	"database/sql"
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

type productRepo struct {
	conn
}

// NewProductRepo 创建商品仓储
func NewProductRepo(db dialect.ExecQuerier, dbType string) repository.ProductRepository {
	return &productRepo{conn{drv: db, dialect: dbType}}
}

type productRow struct {
	id              uint
	createdAt       time.Time
	updatedAt       time.Time
	name            string
	price           float64
	stock           int
	descriptionMD   string
	descriptionHTML string
	categoryID      sql.NullInt64
	categoryName    sql.NullString
}

func (r *productRepo) toModel(row productRow) (*model.Product, error) {
	id, err := encodeID(row.id, idgen.EntityTypeProduct)
	if err != nil {
		return nil, err
	}
	p := &model.Product{
		ID:              id,
		CreatedAt:       row.createdAt,
		UpdatedAt:       row.updatedAt,
		Name:            row.name,
		Price:           row.price,
		Stock:           row.stock,
		DescriptionMD:   row.descriptionMD,
		DescriptionHTML: row.descriptionHTML,
		Tags:            []*model.TagSummary{},
	}
	if categoryID := nullableID(row.categoryID); categoryID != nil {
		categoryPublicID, err := encodeID(*categoryID, idgen.EntityTypeCategory)
		if err != nil {
			return nil, err
		}
		p.Category = &model.CategorySummary{
			ID:   categoryPublicID,
			Name: row.categoryName.String,
		}
	}
	return p, nil
}

// selectProducts 查询商品并左连接分类名称。
// 连接的表必须显式起别名，否则 Join 会自动改名，已生成的列名随之失效。
func (r *productRepo) selectProducts() (*entsql.Selector, *entsql.SelectTable) {
	p := r.builder().Table(database.ProductsTableName).As("p")
	c := r.builder().Table(database.CategoriesTableName).As("c")
	s := r.builder().Select(
		p.C(database.ColumnID),
		p.C(database.ColumnCreatedAt),
		p.C(database.ColumnUpdatedAt),
		p.C(database.ColumnProductName),
		p.C(database.ColumnPrice),
		p.C(database.ColumnStock),
		p.C(database.ColumnDescriptionMD),
		p.C(database.ColumnDescriptionHTML),
		p.C(database.ColumnCategoryID),
		c.C(database.ColumnCategoryName),
	).From(p).
		LeftJoin(c).On(p.C(database.ColumnCategoryID), c.C(database.ColumnID)).
		OrderBy(p.C(database.ColumnID))
	return s, p
}

func (r *productRepo) scan(ctx context.Context, s *entsql.Selector) ([]productRow, error) {
	var rows []productRow
	err := r.query(ctx, s, func(rs *entsql.Rows) error {
		var row productRow
		if err := rs.Scan(
			&row.id, &row.createdAt, &row.updatedAt, &row.name, &row.price, &row.stock,
			&row.descriptionMD, &row.descriptionHTML, &row.categoryID, &row.categoryName,
		); err != nil {
			return err
		}
		rows = append(rows, row)
		return nil
	})
	return rows, err
}

// List 列出所有商品，包含分类和标签
func (r *productRepo) List(ctx context.Context) ([]*model.Product, error) {
	s, _ := r.selectProducts()
	rows, err := r.scan(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("查询商品列表失败: %w", err)
	}
	return r.withTags(ctx, rows)
}

func (r *productRepo) GetByID(ctx context.Context, publicID string) (*model.Product, error) {
	dbID, err := idgen.DecodeEntityID(publicID, idgen.EntityTypeProduct)
	if err != nil {
		return nil, fmt.Errorf("%w: 无效的商品ID", constant.ErrNotFound)
	}

	s, p := r.selectProducts()
	rows, err := r.scan(ctx, s.Where(entsql.EQ(p.C(database.ColumnID), dbID)))
	if err != nil {
		return nil, fmt.Errorf("查询商品失败: %w", err)
	}
	if len(rows) == 0 {
		return nil, constant.ErrNotFound
	}
	products, err := r.withTags(ctx, rows)
	if err != nil {
		return nil, err
	}
	return products[0], nil
}

func (r *productRepo) Create(ctx context.Context, params *model.CreateProductParams) (uint, error) {
	now := time.Now()
	var categoryID any
	if params.CategoryID != nil {
		categoryID = *params.CategoryID
	}
	id, err := r.insert(ctx, r.builder().Insert(database.ProductsTableName).
		Columns(
			database.ColumnCreatedAt,
			database.ColumnUpdatedAt,
			database.ColumnProductName,
			database.ColumnPrice,
			database.ColumnStock,
			database.ColumnDescriptionMD,
			database.ColumnDescriptionHTML,
			database.ColumnCategoryID,
		).
		Values(now, now, params.Name, params.Price, params.Stock, params.DescriptionMD, params.DescriptionHTML, categoryID))
	if err != nil {
		return 0, fmt.Errorf("创建商品失败: %w", translateConstraintError(err, "分类"))
	}
	return id, nil
}

func (r *productRepo) Update(ctx context.Context, publicID string, params *model.UpdateProductParams) error {
	dbID, err := idgen.DecodeEntityID(publicID, idgen.EntityTypeProduct)
	if err != nil {
		return fmt.Errorf("%w: 无效的商品ID", constant.ErrNotFound)
	}
	ok, err := r.exists(ctx, database.ProductsTableName, dbID)
	if err != nil {
		return err
	}
	if !ok {
		return constant.ErrNotFound
	}

	updater := r.builder().Update(database.ProductsTableName).
		Set(database.ColumnUpdatedAt, time.Now()).
		Where(entsql.EQ(database.ColumnID, dbID))
	if params.Name != nil {
		updater.Set(database.ColumnProductName, *params.Name)
	}
	if params.Price != nil {
		updater.Set(database.ColumnPrice, *params.Price)
	}
	if params.Stock != nil {
		updater.Set(database.ColumnStock, *params.Stock)
	}
	if params.CategoryID != nil {
		updater.Set(database.ColumnCategoryID, *params.CategoryID)
	}
	if params.DescriptionMD != nil {
		updater.Set(database.ColumnDescriptionMD, *params.DescriptionMD)
	}
	if params.DescriptionHTML != nil {
		updater.Set(database.ColumnDescriptionHTML, *params.DescriptionHTML)
	}
	if _, err := r.exec(ctx, updater); err != nil {
		return fmt.Errorf("更新商品失败: %w", translateConstraintError(err, "分类"))
	}
	return nil
}

// Delete 删除商品，关联记录由外键级联删除
func (r *productRepo) Delete(ctx context.Context, publicID string) error {
	dbID, err := idgen.DecodeEntityID(publicID, idgen.EntityTypeProduct)
	if err != nil {
		return fmt.Errorf("%w: 无效的商品ID", constant.ErrNotFound)
	}
	return r.deleteByID(ctx, database.ProductsTableName, dbID)
}

func (r *productRepo) Count(ctx context.Context) (int, error) {
	return r.count(ctx, database.ProductsTableName)
}

// withTags 通过关联表为一组商品批量加载标签摘要
func (r *productRepo) withTags(ctx context.Context, rows []productRow) ([]*model.Product, error) {
	products := make([]*model.Product, len(rows))
	byID := make(map[uint]*model.Product, len(rows))
	ids := make([]uint, len(rows))
	for i, row := range rows {
		p, err := r.toModel(row)
		if err != nil {
			return nil, err
		}
		products[i] = p
		byID[row.id] = p
		ids[i] = row.id
	}
	if len(ids) == 0 {
		return products, nil
	}

	pt := r.builder().Table(database.ProductTagsTableName).As("pt")
	t := r.builder().Table(database.TagsTableName).As("t")
	s := r.builder().Select(
		pt.C(database.ColumnProductID),
		t.C(database.ColumnID),
		t.C(database.ColumnTagName),
	).From(pt).
		Join(t).On(pt.C(database.ColumnTagID), t.C(database.ColumnID)).
		Where(entsql.In(pt.C(database.ColumnProductID), uintArgs(ids)...)).
		OrderBy(pt.C(database.ColumnID))

	err := r.query(ctx, s, func(rs *entsql.Rows) error {
		var productID, tagID uint
		var name string
		if err := rs.Scan(&productID, &tagID, &name); err != nil {
			return err
		}
		if p, ok := byID[productID]; ok {
			tagPublicID, err := encodeID(tagID, idgen.EntityTypeTag)
			if err != nil {
				return err
			}
			p.Tags = append(p.Tags, &model.TagSummary{ID: tagPublicID, Name: name})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("加载商品标签失败: %w", err)
	}
	return products, nil
}

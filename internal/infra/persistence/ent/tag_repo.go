/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-10-09 17:40:12
 * @LastEditTime: 2026-10-14 14:31:27
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

type tagRepo struct {
	conn
}

// NewTagRepo 创建标签仓储
func NewTagRepo(db dialect.ExecQuerier, dbType string) repository.TagRepository {
	return &tagRepo{conn{drv: db, dialect: dbType}}
}

type tagRow struct {
	id        uint
	createdAt time.Time
	updatedAt time.Time
	name      string
}

func (r *tagRepo) toModel(row tagRow) (*model.Tag, error) {
	id, err := encodeID(row.id, idgen.EntityTypeTag)
	if err != nil {
		return nil, err
	}
	return &model.Tag{
		ID:        id,
		CreatedAt: row.createdAt,
		UpdatedAt: row.updatedAt,
		Name:      row.name,
		Products:  []*model.ProductSummary{},
	}, nil
}

func (r *tagRepo) selectTags() *entsql.Selector {
	t := r.builder().Table(database.TagsTableName)
	return r.builder().Select(
		t.C(database.ColumnID),
		t.C(database.ColumnCreatedAt),
		t.C(database.ColumnUpdatedAt),
		t.C(database.ColumnTagName),
	).From(t).OrderBy(t.C(database.ColumnID))
}

func (r *tagRepo) scan(ctx context.Context, s *entsql.Selector) ([]tagRow, error) {
	var rows []tagRow
	err := r.query(ctx, s, func(rs *entsql.Rows) error {
		var row tagRow
		if err := rs.Scan(&row.id, &row.createdAt, &row.updatedAt, &row.name); err != nil {
			return err
		}
		rows = append(rows, row)
		return nil
	})
	return rows, err
}

// List 列出所有标签及关联的商品
func (r *tagRepo) List(ctx context.Context) ([]*model.Tag, error) {
	rows, err := r.scan(ctx, r.selectTags())
	if err != nil {
		return nil, fmt.Errorf("查询标签列表失败: %w", err)
	}
	return r.withProducts(ctx, rows)
}

func (r *tagRepo) GetByID(ctx context.Context, publicID string) (*model.Tag, error) {
	dbID, err := idgen.DecodeEntityID(publicID, idgen.EntityTypeTag)
	if err != nil {
		return nil, fmt.Errorf("%w: 无效的标签ID", constant.ErrNotFound)
	}
	return r.getByDBID(ctx, dbID)
}

func (r *tagRepo) getByDBID(ctx context.Context, dbID uint) (*model.Tag, error) {
	s := r.selectTags()
	rows, err := r.scan(ctx, s.Where(entsql.EQ(s.C(database.ColumnID), dbID)))
	if err != nil {
		return nil, fmt.Errorf("查询标签失败: %w", err)
	}
	if len(rows) == 0 {
		return nil, constant.ErrNotFound
	}
	tags, err := r.withProducts(ctx, rows)
	if err != nil {
		return nil, err
	}
	return tags[0], nil
}

func (r *tagRepo) Create(ctx context.Context, name string) (*model.Tag, error) {
	now := time.Now()
	id, err := r.insert(ctx, r.builder().Insert(database.TagsTableName).
		Columns(database.ColumnCreatedAt, database.ColumnUpdatedAt, database.ColumnTagName).
		Values(now, now, name))
	if err != nil {
		return nil, fmt.Errorf("创建标签失败: %w", err)
	}
	return r.getByDBID(ctx, id)
}

func (r *tagRepo) Update(ctx context.Context, publicID string, name *string) (*model.Tag, error) {
	dbID, err := idgen.DecodeEntityID(publicID, idgen.EntityTypeTag)
	if err != nil {
		return nil, fmt.Errorf("%w: 无效的标签ID", constant.ErrNotFound)
	}
	ok, err := r.exists(ctx, database.TagsTableName, dbID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, constant.ErrNotFound
	}

	updater := r.builder().Update(database.TagsTableName).
		Set(database.ColumnUpdatedAt, time.Now()).
		Where(entsql.EQ(database.ColumnID, dbID))
	if name != nil {
		updater.Set(database.ColumnTagName, *name)
	}
	if _, err := r.exec(ctx, updater); err != nil {
		return nil, fmt.Errorf("更新标签失败: %w", err)
	}
	return r.getByDBID(ctx, dbID)
}

// Delete 删除标签，关联记录由外键级联删除
func (r *tagRepo) Delete(ctx context.Context, publicID string) error {
	dbID, err := idgen.DecodeEntityID(publicID, idgen.EntityTypeTag)
	if err != nil {
		return fmt.Errorf("%w: 无效的标签ID", constant.ErrNotFound)
	}
	return r.deleteByID(ctx, database.TagsTableName, dbID)
}

func (r *tagRepo) Count(ctx context.Context) (int, error) {
	return r.count(ctx, database.TagsTableName)
}

// withProducts 通过关联表为一组标签批量加载商品摘要
func (r *tagRepo) withProducts(ctx context.Context, rows []tagRow) ([]*model.Tag, error) {
	tags := make([]*model.Tag, len(rows))
	byID := make(map[uint]*model.Tag, len(rows))
	ids := make([]uint, len(rows))
	for i, row := range rows {
		t, err := r.toModel(row)
		if err != nil {
			return nil, err
		}
		tags[i] = t
		byID[row.id] = t
		ids[i] = row.id
	}
	if len(ids) == 0 {
		return tags, nil
	}

	pt := r.builder().Table(database.ProductTagsTableName).As("pt")
	p := r.builder().Table(database.ProductsTableName).As("p")
	s := r.builder().Select(
		pt.C(database.ColumnTagID),
		p.C(database.ColumnID),
		p.C(database.ColumnProductName),
		p.C(database.ColumnPrice),
		p.C(database.ColumnStock),
	).From(pt).
		Join(p).On(pt.C(database.ColumnProductID), p.C(database.ColumnID)).
		Where(entsql.In(pt.C(database.ColumnTagID), uintArgs(ids)...)).
		OrderBy(pt.C(database.ColumnID))

	err := r.query(ctx, s, func(rs *entsql.Rows) error {
		var tagID uint
		var summary productSummaryRow
		if err := rs.Scan(&tagID, &summary.id, &summary.name, &summary.price, &summary.stock); err != nil {
			return err
		}
		if t, ok := byID[tagID]; ok {
			product, err := summary.toModel()
			if err != nil {
				return err
			}
			t.Products = append(t.Products, product)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("加载标签商品失败: %w", err)
	}
	return tags, nil
}

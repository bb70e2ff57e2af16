package ent

import (
	"context"
	"fmt"

	"github.com/anzhiyu-c/anheyu-catalog/internal/infra/persistence/database"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/domain/repository"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

type productTagRepo struct {
	conn
}

// NewProductTagRepo 创建商品标签关联仓储
func NewProductTagRepo(db dialect.ExecQuerier, dbType string) repository.ProductTagRepository {
	return &productTagRepo{conn{drv: db, dialect: dbType}}
}

func (r *productTagRepo) ListByProduct(ctx context.Context, productID uint) ([]model.ProductTag, error) {
	t := r.builder().Table(database.ProductTagsTableName)
	s := r.builder().Select(
		t.C(database.ColumnID),
		t.C(database.ColumnProductID),
		t.C(database.ColumnTagID),
	).From(t).
		Where(entsql.EQ(t.C(database.ColumnProductID), productID)).
		OrderBy(t.C(database.ColumnID))

	rows := []model.ProductTag{}
	err := r.query(ctx, s, func(rs *entsql.Rows) error {
		var row model.ProductTag
		if err := rs.Scan(&row.ID, &row.ProductID, &row.TagID); err != nil {
			return err
		}
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("查询商品标签关联失败: %w", err)
	}
	return rows, nil
}

// BulkCreate 用一条 INSERT 写入所有关联
func (r *productTagRepo) BulkCreate(ctx context.Context, rows []model.NewProductTag) error {
	if len(rows) == 0 {
		return nil
	}
	insert := r.builder().Insert(database.ProductTagsTableName).
		Columns(database.ColumnProductID, database.ColumnTagID)
	for _, row := range rows {
		insert.Values(row.ProductID, row.TagID)
	}
	if _, err := r.exec(ctx, insert); err != nil {
		return fmt.Errorf("写入商品标签关联失败: %w", translateConstraintError(err, "商品或标签"))
	}
	return nil
}

func (r *productTagRepo) DeleteByIDs(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.exec(ctx, r.builder().Delete(database.ProductTagsTableName).
		Where(entsql.In(database.ColumnID, uintArgs(ids)...)))
	if err != nil {
		return fmt.Errorf("删除商品标签关联失败: %w", err)
	}
	return nil
}

func (r *productTagRepo) DeleteByProduct(ctx context.Context, productID uint) (int, error) {
	res, err := r.exec(ctx, r.builder().Delete(database.ProductTagsTableName).
		Where(entsql.EQ(database.ColumnProductID, productID)))
	if err != nil {
		return 0, fmt.Errorf("删除商品的全部标签关联失败: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (r *productTagRepo) DeleteOrphans(ctx context.Context) (int, error) {
	b := r.builder()
	products := b.Select(database.ColumnID).From(b.Table(database.ProductsTableName))
	tags := b.Select(database.ColumnID).From(b.Table(database.TagsTableName))

	res, err := r.exec(ctx, b.Delete(database.ProductTagsTableName).Where(
		entsql.Or(
			entsql.NotIn(database.ColumnProductID, products),
			entsql.NotIn(database.ColumnTagID, tags),
		),
	))
	if err != nil {
		return 0, fmt.Errorf("清理孤立的商品标签关联失败: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

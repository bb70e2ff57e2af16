package repository

import (
	"context"

	"github.com/anzhiyu-c/anheyu-catalog/pkg/domain/model"
)

// ProductTagRepository 是商品与标签关联表的数据仓库接口，只使用数据库ID。
type ProductTagRepository interface {
	// ListByProduct 按写入顺序返回商品现有的全部关联
	ListByProduct(ctx context.Context, productID uint) ([]model.ProductTag, error)
	// BulkCreate 批量写入关联，标签不存在时由外键约束拒绝
	BulkCreate(ctx context.Context, rows []model.NewProductTag) error
	DeleteByIDs(ctx context.Context, ids []uint) error
	DeleteByProduct(ctx context.Context, productID uint) (int, error)
	// DeleteOrphans 删除商品或标签已不存在的关联
	DeleteOrphans(ctx context.Context) (int, error)
}

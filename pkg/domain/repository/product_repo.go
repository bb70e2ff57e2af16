/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-10-09 14:11:37
 * @LastEditTime: 2026-10-14 10:20:13
 * @LastEditors: 安知鱼
 */
package repository

import (
	"context"

	"github.com/anzhiyu-c/anheyu-catalog/pkg/domain/model"
)

// ProductRepository 定义了商品的数据仓库接口。
// 读取方法返回的商品都带有分类摘要和标签摘要。
type ProductRepository interface {
	List(ctx context.Context) ([]*model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
	// Create 返回新商品的数据库ID
	Create(ctx context.Context, params *model.CreateProductParams) (uint, error)
	Update(ctx context.Context, id string, params *model.UpdateProductParams) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

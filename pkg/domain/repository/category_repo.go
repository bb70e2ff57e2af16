/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-10-09 14:02:18
 * @LastEditTime: 2026-10-13 17:05:44
 * @LastEditors: 安知鱼
 */
package repository

import (
	"context"

	"github.com/anzhiyu-c/anheyu-catalog/pkg/domain/model"
)

// CategoryRepository 定义了商品分类的数据仓库接口。
// 所有 id 参数均为公共ID，无法解码时返回 constant.ErrNotFound。
type CategoryRepository interface {
	List(ctx context.Context) ([]*model.Category, error)
	GetByID(ctx context.Context, id string) (*model.Category, error)
	Create(ctx context.Context, name string) (*model.Category, error)
	Update(ctx context.Context, id string, name *string) (*model.Category, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-10-09 14:06:51
 * @LastEditTime: 2026-10-13 17:06:02
 * @LastEditors: 安知鱼
 */
package repository

import (
	"context"

	"github.com/anzhiyu-c/anheyu-catalog/pkg/domain/model"
)

// TagRepository 定义了商品标签的数据仓库接口。
type TagRepository interface {
	List(ctx context.Context) ([]*model.Tag, error)
	GetByID(ctx context.Context, id string) (*model.Tag, error)
	Create(ctx context.Context, name string) (*model.Tag, error)
	Update(ctx context.Context, id string, name *string) (*model.Tag, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-10-10 11:05:52
 * @LastEditTime: 2026-10-14 16:52:30
 * @LastEditors: 安知鱼
 */
package product_tag

import (
	"context"
	"fmt"

	"github.com/anzhiyu-c/anheyu-catalog/pkg/domain/repository"
)

// Sync 读取商品现有的关联，计算差异并写回，返回实际执行的 Delta。
// 调用方负责把它放进事务，删除和新增任一失败时一起回滚。
func Sync(ctx context.Context, repo repository.ProductTagRepository, productID uint, desired []uint) (Delta, error) {
	current, err := repo.ListByProduct(ctx, productID)
	if err != nil {
		return Delta{}, fmt.Errorf("获取商品现有标签失败: %w", err)
	}

	delta := Reconcile(productID, desired, current)

	if err := repo.DeleteByIDs(ctx, delta.ToRemove); err != nil {
		return Delta{}, fmt.Errorf("移除商品标签失败: %w", err)
	}
	if err := repo.BulkCreate(ctx, delta.ToInsert); err != nil {
		return Delta{}, fmt.Errorf("添加商品标签失败: %w", err)
	}
	return delta, nil
}

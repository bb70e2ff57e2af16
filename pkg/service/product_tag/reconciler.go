/*
 * @Description: 商品标签集合的调整计算
 * @Author: 安知鱼
 * @Date: 2026-10-10 10:41:06
 * @LastEditTime: 2026-10-14 16:47:19
 * @LastEditors: 安知鱼
 */
package product_tag

import "github.com/anzhiyu-c/anheyu-catalog/pkg/domain/model"

// Delta 是把商品现有标签调整为目标集合所需的写操作，ToInsert 与 ToRemove 互不相交。
type Delta struct {
	ToInsert []model.NewProductTag
	ToRemove []uint // 关联记录ID
}

// Empty 表示现有标签已经与目标集合一致
func (d Delta) Empty() bool {
	return len(d.ToInsert) == 0 && len(d.ToRemove) == 0
}

// Reconcile 计算把 current 调整为 desired 需要新增和删除的关联。
// desired 中的重复ID只产生一条新增；两边都有的标签保持不动。
// ToInsert 按 desired 中首次出现的顺序排列，ToRemove 按 current 的顺序排列。
func Reconcile(productID uint, desired []uint, current []model.ProductTag) Delta {
	currentMap := make(map[uint]bool, len(current))
	for _, row := range current {
		currentMap[row.TagID] = true
	}
	desiredMap := make(map[uint]bool, len(desired))

	var delta Delta
	for _, tagID := range desired {
		if desiredMap[tagID] {
			continue
		}
		desiredMap[tagID] = true
		if !currentMap[tagID] {
			delta.ToInsert = append(delta.ToInsert, model.NewProductTag{ProductID: productID, TagID: tagID})
		}
	}
	for _, row := range current {
		if !desiredMap[row.TagID] {
			delta.ToRemove = append(delta.ToRemove, row.ID)
		}
	}
	return delta
}

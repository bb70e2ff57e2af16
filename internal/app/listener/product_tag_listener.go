/*
 * @Description: 监听商品事件，维护商品标签关联
 * @Author: 安知鱼
 * @Date: 2026-10-11 10:14:27
 * @LastEditTime: 2026-10-15 14:20:03
 * @LastEditors: 安知鱼
 */
package listener

import (
	"context"
	"log"
	"time"

	"github.com/anzhiyu-c/anheyu-catalog/internal/pkg/event"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/domain/repository"
)

// ProductTagListener 在商品删除后清理其标签关联，并记录标签调整的结果。
// 启用外键级联时删除商品已经带走了关联，这里的删除通常不会命中任何行。
type ProductTagListener struct {
	repo    repository.ProductTagRepository
	timeout time.Duration
}

// NewProductTagListener 是 ProductTagListener 的构造函数，同时完成事件订阅。
func NewProductTagListener(eventBus *event.EventBus, repo repository.ProductTagRepository) *ProductTagListener {
	listener := &ProductTagListener{
		repo:    repo,
		timeout: 30 * time.Second,
	}
	eventBus.Subscribe(event.ProductDeleted, listener.handleProductDeleted)
	eventBus.Subscribe(event.ProductTagsReconciled, listener.handleTagsReconciled)
	return listener
}

func (l *ProductTagListener) handleProductDeleted(payload interface{}) {
	p, ok := payload.(event.ProductDeletedPayload)
	if !ok {
		log.Printf("[ProductTagListener] 错误：收到的 ProductDeleted 事件负载类型不正确: %T", payload)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()

	n, err := l.repo.DeleteByProduct(ctx, p.ProductID)
	if err != nil {
		log.Printf("[ProductTagListener] 错误: 清理商品 %d 的标签关联失败: %v", p.ProductID, err)
		return
	}
	if n > 0 {
		log.Printf("[ProductTagListener] 已清理商品 %d 残留的 %d 条标签关联", p.ProductID, n)
	}
}

func (l *ProductTagListener) handleTagsReconciled(payload interface{}) {
	p, ok := payload.(event.ProductTagsReconciledPayload)
	if !ok {
		log.Printf("[ProductTagListener] 错误：收到的 ProductTagsReconciled 事件负载类型不正确: %T", payload)
		return
	}
	log.Printf("[ProductTagListener] 商品 %d 标签已调整：新增 %d，移除 %d", p.ProductID, p.Inserted, p.Removed)
}

/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-07-13 23:40:12
 * @LastEditTime: 2026-10-14 15:22:40
 * @LastEditors: 安知鱼
 */
package ent

import (
	"context"
	"fmt"

	"github.com/anzhiyu-c/anheyu-catalog/pkg/domain/repository"

	"entgo.io/ent/dialect"
)

// NewRepositories 在给定的连接（连接池或事务）上构造全部仓储。
func NewRepositories(db dialect.ExecQuerier, dbType string) repository.Repositories {
	return repository.Repositories{
		Category:   NewCategoryRepo(db, dbType),
		Product:    NewProductRepo(db, dbType),
		Tag:        NewTagRepo(db, dbType),
		ProductTag: NewProductTagRepo(db, dbType),
	}
}

// entTransactionManager 是基于 ent SQL 驱动的事务管理器实现。
type entTransactionManager struct {
	drv dialect.Driver
}

// NewEntTransactionManager 是 entTransactionManager 的构造函数。
func NewEntTransactionManager(drv dialect.Driver) repository.TransactionManager {
	return &entTransactionManager{drv: drv}
}

// Do 实现了 TransactionManager 接口。
// 它会开启一个事务，并将 Repositories 结构体中定义的所有仓库包裹在这个事务中。
func (tm *entTransactionManager) Do(ctx context.Context, fn func(repos repository.Repositories) error) error {
	tx, err := tm.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("开启事务失败: %w", err)
	}

	// 使用 defer 来确保 panic 时事务被回滚
	defer func() {
		if v := recover(); v != nil {
			tx.Rollback()
			panic(v)
		}
	}()

	repos := NewRepositories(tx, tm.drv.Dialect())

	// 执行业务逻辑
	if err := fn(repos); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			return fmt.Errorf("事务执行失败: %w, 回滚事务也失败: %v", err, rerr)
		}
		return err
	}

	return tx.Commit()
}

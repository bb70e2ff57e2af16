/*
 * @Description: 基于 ent SQL 构建器的查询执行辅助
 * @Author: 安知鱼
 * @Date: 2026-10-09 16:20:54
 * @LastEditTime: 2026-10-14 14:12:09
 * @LastEditors: 安知鱼
 */
package ent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/anzhiyu-c/anheyu-catalog/internal/infra/persistence/database"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/constant"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/idgen"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
)

// conn 包装一个可执行查询的连接（连接池或事务）及其方言。
type conn struct {
	drv     dialect.ExecQuerier
	dialect string
}

func (c conn) builder() *entsql.DialectBuilder {
	return entsql.Dialect(c.dialect)
}

// query 执行查询并对每一行调用 scan
func (c conn) query(ctx context.Context, q entsql.Querier, scan func(rows *entsql.Rows) error) error {
	query, args := q.Query()
	rows := &entsql.Rows{}
	if err := c.drv.Query(ctx, query, args, rows); err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (c conn) exec(ctx context.Context, q entsql.Querier) (sql.Result, error) {
	query, args := q.Query()
	var res sql.Result
	if err := c.drv.Exec(ctx, query, args, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// insert 执行插入并返回新行的自增ID。PostgreSQL 不支持 LastInsertId，改用 RETURNING。
func (c conn) insert(ctx context.Context, b *entsql.InsertBuilder) (uint, error) {
	if c.dialect == dialect.Postgres {
		var id int64
		found := false
		err := c.query(ctx, b.Returning(database.ColumnID), func(rows *entsql.Rows) error {
			found = true
			return rows.Scan(&id)
		})
		if err != nil {
			return 0, err
		}
		if !found {
			return 0, errors.New("插入后未返回ID")
		}
		return uint(id), nil
	}

	res, err := c.exec(ctx, b)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// deleteByID 删除单行，行不存在时返回 constant.ErrNotFound
func (c conn) deleteByID(ctx context.Context, table string, id uint) error {
	res, err := c.exec(ctx, c.builder().Delete(table).Where(entsql.EQ(database.ColumnID, id)))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return constant.ErrNotFound
	}
	return nil
}

func (c conn) exists(ctx context.Context, table string, id uint) (bool, error) {
	var n int
	err := c.query(ctx,
		c.builder().Select(entsql.Count("*")).From(c.builder().Table(table)).Where(entsql.EQ(database.ColumnID, id)),
		func(rows *entsql.Rows) error { return rows.Scan(&n) },
	)
	return n > 0, err
}

func (c conn) count(ctx context.Context, table string) (int, error) {
	var n int
	err := c.query(ctx,
		c.builder().Select(entsql.Count("*")).From(c.builder().Table(table)),
		func(rows *entsql.Rows) error { return rows.Scan(&n) },
	)
	return n, err
}

// translateConstraintError 把约束冲突转换为领域错误：外键失败视为错误请求，唯一约束冲突视为资源冲突
func translateConstraintError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case sqlgraph.IsForeignKeyConstraintError(err):
		return fmt.Errorf("%w: %s引用的记录不存在", constant.ErrBadRequest, what)
	case sqlgraph.IsUniqueConstraintError(err):
		return fmt.Errorf("%w: %s已存在", constant.ErrConflict, what)
	default:
		return err
	}
}

var generatePublicID = idgen.GeneratePublicID

// encodeID 生成对外的公共ID，编码失败时返回错误而不是空字符串
func encodeID(dbID uint, entityType uint64) (string, error) {
	id, err := generatePublicID(dbID, entityType)
	if err != nil {
		return "", fmt.Errorf("生成公共ID失败: %w", err)
	}
	return id, nil
}

func uintArgs(ids []uint) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

func nullableID(v sql.NullInt64) *uint {
	if !v.Valid {
		return nil
	}
	id := uint(v.Int64)
	return &id
}

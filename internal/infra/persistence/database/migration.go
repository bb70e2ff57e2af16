/*
 * @Description: 数据库迁移服务（处理表结构迁移前的数据修正）
 * @Author: 安知鱼
 * @Date: 2025-12-08
 */
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"entgo.io/ent/dialect"
)

// MigrationService 数据库迁移服务
type MigrationService struct {
	db     *sql.DB
	dbType string
}

// NewMigrationService 创建迁移服务，dbType 为 ent 方言名称
func NewMigrationService(db *sql.DB, dbType string) *MigrationService {
	return &MigrationService{
		db:     db,
		dbType: dbType,
	}
}

// RunMigrations 执行所有迁移
func (m *MigrationService) RunMigrations(ctx context.Context) error {
	log.Println("📋 开始执行数据库迁移...")

	if err := m.dedupeProductTags(ctx); err != nil {
		return fmt.Errorf("商品标签关联去重失败: %w", err)
	}

	log.Println("✅ 数据库迁移完成")
	return nil
}

// dedupeProductTags 删除重复的 (product_id, tag_id) 关联，只保留最早的一条，
// 否则唯一索引无法在旧数据上建立。
func (m *MigrationService) dedupeProductTags(ctx context.Context) error {
	exists, err := m.tableExists(ctx, ProductTagsTableName)
	if err != nil {
		return err
	}
	if !exists {
		log.Println("  ✓ product_tags 表尚未创建，跳过去重")
		return nil
	}

	// MySQL 不允许在 DELETE 的子查询中直接引用目标表，需要多包一层派生表
	res, err := m.db.ExecContext(ctx, `
		DELETE FROM product_tags
		WHERE id NOT IN (
			SELECT id FROM (
				SELECT MIN(id) AS id FROM product_tags GROUP BY product_id, tag_id
			) AS keep_rows
		)
	`)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n > 0 {
		log.Printf("  ✓ 已删除 %d 条重复的商品标签关联", n)
	} else {
		log.Println("  ✓ 没有重复的商品标签关联")
	}
	return nil
}

// tableExists 检查表是否存在
func (m *MigrationService) tableExists(ctx context.Context, tableName string) (bool, error) {
	var query string

	switch m.dbType {
	case dialect.MySQL:
		query = `
			SELECT COUNT(*)
			FROM INFORMATION_SCHEMA.TABLES
			WHERE TABLE_SCHEMA = DATABASE()
			AND TABLE_NAME = ?
		`
	case dialect.Postgres:
		query = `
			SELECT COUNT(*)
			FROM information_schema.tables
			WHERE table_schema = current_schema()
			AND table_name = $1
		`
	case dialect.SQLite:
		query = `
			SELECT COUNT(*)
			FROM sqlite_master
			WHERE type = 'table'
			AND name = ?
		`
	default:
		return false, fmt.Errorf("不支持的数据库类型: %s", m.dbType)
	}

	var count int
	if err := m.db.QueryRowContext(ctx, query, tableName).Scan(&count); err != nil {
		return false, err
	}

	return count > 0, nil
}

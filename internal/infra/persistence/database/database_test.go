package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"entgo.io/ent/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", SQLiteDSN(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrateCreatesTables(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	drv := NewDriver(db, dialect.SQLite, false)

	require.NoError(t, Migrate(ctx, db, drv))
	// 重复执行不应报错
	require.NoError(t, Migrate(ctx, db, drv))

	svc := NewMigrationService(db, dialect.SQLite)
	for _, name := range []string{CategoriesTableName, ProductsTableName, TagsTableName, ProductTagsTableName} {
		exists, err := svc.tableExists(ctx, name)
		require.NoError(t, err)
		assert.True(t, exists, name)
	}
}

func TestMigrateRejectsDuplicateProductTag(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	drv := NewDriver(db, dialect.SQLite, false)
	require.NoError(t, Migrate(ctx, db, drv))

	_, err := db.ExecContext(ctx, `INSERT INTO categories (created_at, updated_at, category_name) VALUES (CURRENT_TIMESTAMP, CURRENT_TIMESTAMP, 'c')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO products (created_at, updated_at, product_name, price, stock, description_md, description_html) VALUES (CURRENT_TIMESTAMP, CURRENT_TIMESTAMP, 'p', 1.5, 10, '', '')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO tags (created_at, updated_at, tag_name) VALUES (CURRENT_TIMESTAMP, CURRENT_TIMESTAMP, 't')`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO product_tags (product_id, tag_id) VALUES (1, 1)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO product_tags (product_id, tag_id) VALUES (1, 1)`)
	assert.Error(t, err, "唯一索引应拒绝重复关联")

	_, err = db.ExecContext(ctx, `INSERT INTO product_tags (product_id, tag_id) VALUES (1, 99)`)
	assert.Error(t, err, "外键应拒绝不存在的标签")
}

func TestDedupeProductTags(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	svc := NewMigrationService(db, dialect.SQLite)

	t.Run("表不存在时跳过", func(t *testing.T) {
		require.NoError(t, svc.RunMigrations(ctx))
	})

	t.Run("保留每组最早的关联", func(t *testing.T) {
		_, err := db.ExecContext(ctx, `CREATE TABLE product_tags (id INTEGER PRIMARY KEY AUTOINCREMENT, product_id INTEGER, tag_id INTEGER)`)
		require.NoError(t, err)
		_, err = db.ExecContext(ctx, `INSERT INTO product_tags (product_id, tag_id) VALUES (1, 1), (1, 1), (1, 2), (2, 1), (1, 2)`)
		require.NoError(t, err)

		require.NoError(t, svc.RunMigrations(ctx))

		rows, err := db.QueryContext(ctx, `SELECT id FROM product_tags ORDER BY id`)
		require.NoError(t, err)
		defer rows.Close()
		var ids []int
		for rows.Next() {
			var id int
			require.NoError(t, rows.Scan(&id))
			ids = append(ids, id)
		}
		require.NoError(t, rows.Err())
		assert.Equal(t, []int{1, 3, 4}, ids)
	})
}

func TestSQLiteDSNEnablesForeignKeys(t *testing.T) {
	db := openTestDB(t)
	var on int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&on))
	assert.Equal(t, 1, on)
}

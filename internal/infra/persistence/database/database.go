/*
 * @Description: 数据库连接管理 (支持多种数据库)
 * @Author: 安知鱼
 * @Date: 2025-07-12 16:09:46
 * @LastEditTime: 2026-10-14 11:37:20
 * @LastEditors: 安知鱼
 */
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/anzhiyu-c/anheyu-catalog/pkg/config"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// Dialect 把配置中的数据库类型归一化为 ent 方言名称，未配置时默认 sqlite。
func Dialect(cfg *config.Config) (string, error) {
	switch t := cfg.GetString(config.KeyDBType); t {
	case "", "sqlite", "sqlite3":
		return dialect.SQLite, nil
	case "mysql", "mariadb":
		return dialect.MySQL, nil
	case "postgres", "postgresql":
		return dialect.Postgres, nil
	default:
		return "", fmt.Errorf("不支持的数据库驱动: %s (支持: mysql/mariadb, postgres, sqlite)", t)
	}
}

// SQLiteDSN 返回启用外键约束的 SQLite 连接串
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
}

// NewSQLDB 创建并返回一个标准的 *sql.DB 连接池，支持 MySQL、PostgreSQL 和 SQLite。
func NewSQLDB(cfg *config.Config) (*sql.DB, error) {
	dialectName, err := Dialect(cfg)
	if err != nil {
		return nil, err
	}

	var dsn string
	var driverName string

	dbUser := cfg.GetString(config.KeyDBUser)
	dbPass := cfg.GetString(config.KeyDBPassword)
	dbHost := cfg.GetString(config.KeyDBHost)
	dbPort := cfg.GetString(config.KeyDBPort)
	dbName := cfg.GetString(config.KeyDBName)

	switch dialectName {
	case dialect.MySQL:
		driverName = "mysql"
		if dbUser == "" || dbHost == "" || dbPort == "" || dbName == "" {
			return nil, fmt.Errorf("MySQL 连接参数不完整 (需要 User, Host, Port, Name)")
		}
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			dbUser, dbPass, dbHost, dbPort, dbName)
	case dialect.Postgres:
		driverName = "postgres"
		if dbUser == "" || dbHost == "" || dbPort == "" || dbName == "" {
			return nil, fmt.Errorf("PostgreSQL 连接参数不完整 (需要 User, Host, Port, Name)")
		}
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbHost, dbPort, dbUser, dbPass, dbName)
	case dialect.SQLite:
		driverName = "sqlite3"

		dataDir := "./data"
		if err := os.MkdirAll(dataDir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("无法创建 data 目录: %w", err)
		}

		finalDbName := dbName
		if finalDbName == "" {
			finalDbName = "catalog.db"
		}

		finalPath := filepath.Join(dataDir, finalDbName)
		log.Printf("【提示】SQLite 数据库路径: %s\n", finalPath)
		dsn = SQLiteDSN(finalPath)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("打开 sql.DB 连接失败 (驱动: %s): %w", driverName, err)
	}

	// 设置连接池参数
	db.SetMaxIdleConns(10)
	db.SetMaxOpenConns(100)
	db.SetConnMaxLifetime(time.Hour)

	// 验证数据库连接
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("无法 Ping 通数据库 (驱动: %s): %w", driverName, err)
	}

	log.Printf("✅ %s 数据库连接池创建成功！\n", dialectName)
	return db, nil
}

// NewDriver 用 ent 的 SQL 驱动包装连接池，Debug 模式下打印所有执行的 SQL 语句。
func NewDriver(db *sql.DB, dialectName string, debug bool) dialect.Driver {
	var drv dialect.Driver = entsql.OpenDB(dialectName, db)
	if debug {
		drv = dialect.Debug(drv)
		log.Println("【数据库】Debug模式已开启，将打印所有执行的SQL语句。")
	}
	return drv
}

// Migrate 先处理历史数据，再把表结构迁移到最新版本。
func Migrate(ctx context.Context, db *sql.DB, drv dialect.Driver) error {
	migrationSvc := NewMigrationService(db, drv.Dialect())
	if err := migrationSvc.RunMigrations(ctx); err != nil {
		return fmt.Errorf("SQL 数据迁移失败: %w", err)
	}

	log.Println("⚡ 开始数据库表结构迁移...")
	if err := CreateSchema(ctx, drv); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}
	log.Println("✅ 数据库表结构迁移成功")
	return nil
}

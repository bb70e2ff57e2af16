// internal/app/bootstrap/bootstrap.go
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/anzhiyu-c/anheyu-catalog/internal/infra/persistence/database"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/domain/repository"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/idgen"

	"entgo.io/ent/dialect"
)

type Bootstrapper struct {
	db        *sql.DB
	drv       dialect.Driver
	repos     repository.Repositories
	txManager repository.TransactionManager
	seed      bool
}

func NewBootstrapper(db *sql.DB, drv dialect.Driver, repos repository.Repositories, txManager repository.TransactionManager, seed bool) *Bootstrapper {
	return &Bootstrapper{
		db:        db,
		drv:       drv,
		repos:     repos,
		txManager: txManager,
		seed:      seed,
	}
}

func (b *Bootstrapper) InitializeDatabase(ctx context.Context) error {
	log.Println("--- 开始执行数据库初始化引导程序 ---")

	if err := database.Migrate(ctx, b.db, b.drv); err != nil {
		return fmt.Errorf("数据库 schema 创建/更新失败: %w", err)
	}
	log.Println("--- 数据库 Schema 同步成功 ---")

	if b.seed {
		if err := b.seedCatalog(ctx); err != nil {
			return fmt.Errorf("写入示例数据失败: %w", err)
		}
	}

	log.Println("--- 数据库初始化引导程序执行完成 ---")
	return nil
}

type seedProduct struct {
	name     string
	price    float64
	stock    int
	category int
	tags     []int
}

var (
	seedCategories = []string{"Shirts", "Shorts", "Music", "Hats", "Shoes"}
	seedTags       = []string{"rock music", "pop music", "blue", "red", "green", "white", "gold", "pop culture"}
	seedProducts   = []seedProduct{
		{name: "Plain T-Shirt", price: 14.99, stock: 14, category: 0, tags: []int{5, 6, 7}},
		{name: "Running Sneakers", price: 90.00, stock: 25, category: 4, tags: []int{5}},
		{name: "Branded Baseball Hat", price: 22.99, stock: 12, category: 3, tags: []int{0, 2, 3, 7}},
		{name: "Top 40 Music Compilation Vinyl Record", price: 12.99, stock: 50, category: 2, tags: []int{0}},
		{name: "Cargo Shorts", price: 29.99, stock: 22, category: 1, tags: []int{1, 4}},
	}
)

// seedCatalog 只在商品目录完全为空时写入示例数据，重复启动不会产生重复记录。
func (b *Bootstrapper) seedCatalog(ctx context.Context) error {
	log.Println("--- 开始检查示例数据 ---")
	categories, err := b.repos.Category.Count(ctx)
	if err != nil {
		return err
	}
	products, err := b.repos.Product.Count(ctx)
	if err != nil {
		return err
	}
	tags, err := b.repos.Tag.Count(ctx)
	if err != nil {
		return err
	}
	if categories+products+tags > 0 {
		log.Println("--- 商品目录已有数据，跳过示例数据写入 ---")
		return nil
	}

	return b.txManager.Do(ctx, func(repos repository.Repositories) error {
		categoryIDs := make([]uint, len(seedCategories))
		for i, name := range seedCategories {
			c, err := repos.Category.Create(ctx, name)
			if err != nil {
				return fmt.Errorf("创建分类 '%s' 失败: %w", name, err)
			}
			if categoryIDs[i], err = idgen.DecodeEntityID(c.ID, idgen.EntityTypeCategory); err != nil {
				return err
			}
		}

		tagIDs := make([]uint, len(seedTags))
		for i, name := range seedTags {
			t, err := repos.Tag.Create(ctx, name)
			if err != nil {
				return fmt.Errorf("创建标签 '%s' 失败: %w", name, err)
			}
			if tagIDs[i], err = idgen.DecodeEntityID(t.ID, idgen.EntityTypeTag); err != nil {
				return err
			}
		}

		for _, sp := range seedProducts {
			categoryID := categoryIDs[sp.category]
			productID, err := repos.Product.Create(ctx, &model.CreateProductParams{
				Name:       sp.name,
				Price:      sp.price,
				Stock:      sp.stock,
				CategoryID: &categoryID,
			})
			if err != nil {
				return fmt.Errorf("创建商品 '%s' 失败: %w", sp.name, err)
			}
			rows := make([]model.NewProductTag, 0, len(sp.tags))
			for _, idx := range sp.tags {
				rows = append(rows, model.NewProductTag{ProductID: productID, TagID: tagIDs[idx]})
			}
			if err := repos.ProductTag.BulkCreate(ctx, rows); err != nil {
				return fmt.Errorf("关联商品 '%s' 的标签失败: %w", sp.name, err)
			}
		}

		log.Printf("--- 示例数据写入完成：%d 个分类，%d 个标签，%d 个商品 ---", len(seedCategories), len(seedTags), len(seedProducts))
		return nil
	})
}

/*
 * @Description: 商品目录的表结构定义
 * @Author: 安知鱼
 * @Date: 2026-10-09 15:12:40
 * @LastEditTime: 2026-10-14 11:02:18
 * @LastEditors: 安知鱼
 */
package database

import (
	"context"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// 表名与列名，仓储层拼装查询时共用
const (
	CategoriesTableName  = "categories"
	ProductsTableName    = "products"
	TagsTableName        = "tags"
	ProductTagsTableName = "product_tags"

	ColumnID              = "id"
	ColumnCreatedAt       = "created_at"
	ColumnUpdatedAt       = "updated_at"
	ColumnCategoryName    = "category_name"
	ColumnProductName     = "product_name"
	ColumnPrice           = "price"
	ColumnStock           = "stock"
	ColumnDescriptionMD   = "description_md"
	ColumnDescriptionHTML = "description_html"
	ColumnCategoryID      = "category_id"
	ColumnTagName         = "tag_name"
	ColumnProductID       = "product_id"
	ColumnTagID           = "tag_id"
)

var (
	// CategoriesColumns holds the columns for the "categories" table.
	CategoriesColumns = []*schema.Column{
		{Name: ColumnID, Type: field.TypeUint, Increment: true},
		{Name: ColumnCreatedAt, Type: field.TypeTime},
		{Name: ColumnUpdatedAt, Type: field.TypeTime},
		{Name: ColumnCategoryName, Type: field.TypeString, Size: 100},
	}
	// CategoriesTable holds the schema information for the "categories" table.
	CategoriesTable = &schema.Table{
		Name:       CategoriesTableName,
		Columns:    CategoriesColumns,
		PrimaryKey: []*schema.Column{CategoriesColumns[0]},
	}
	// ProductsColumns holds the columns for the "products" table.
	ProductsColumns = []*schema.Column{
		{Name: ColumnID, Type: field.TypeUint, Increment: true},
		{Name: ColumnCreatedAt, Type: field.TypeTime},
		{Name: ColumnUpdatedAt, Type: field.TypeTime},
		{Name: ColumnProductName, Type: field.TypeString, Size: 255},
		{Name: ColumnPrice, Type: field.TypeFloat64, SchemaType: map[string]string{dialect.MySQL: "decimal(10,2)", dialect.Postgres: "numeric(10,2)"}},
		{Name: ColumnStock, Type: field.TypeInt, Default: 10},
		{Name: ColumnDescriptionMD, Type: field.TypeString, Size: 2147483647},
		{Name: ColumnDescriptionHTML, Type: field.TypeString, Size: 2147483647},
		{Name: ColumnCategoryID, Type: field.TypeUint, Nullable: true},
	}
	// ProductsTable holds the schema information for the "products" table.
	ProductsTable = &schema.Table{
		Name:       ProductsTableName,
		Columns:    ProductsColumns,
		PrimaryKey: []*schema.Column{ProductsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "products_categories_products",
				Columns:    []*schema.Column{ProductsColumns[8]},
				RefColumns: []*schema.Column{CategoriesColumns[0]},
				OnDelete:   schema.SetNull,
			},
		},
	}
	// TagsColumns holds the columns for the "tags" table.
	TagsColumns = []*schema.Column{
		{Name: ColumnID, Type: field.TypeUint, Increment: true},
		{Name: ColumnCreatedAt, Type: field.TypeTime},
		{Name: ColumnUpdatedAt, Type: field.TypeTime},
		{Name: ColumnTagName, Type: field.TypeString, Size: 100},
	}
	// TagsTable holds the schema information for the "tags" table.
	TagsTable = &schema.Table{
		Name:       TagsTableName,
		Columns:    TagsColumns,
		PrimaryKey: []*schema.Column{TagsColumns[0]},
	}
	// ProductTagsColumns holds the columns for the "product_tags" table.
	ProductTagsColumns = []*schema.Column{
		{Name: ColumnID, Type: field.TypeUint, Increment: true},
		{Name: ColumnProductID, Type: field.TypeUint},
		{Name: ColumnTagID, Type: field.TypeUint},
	}
	// ProductTagsTable holds the schema information for the "product_tags" table.
	ProductTagsTable = &schema.Table{
		Name:       ProductTagsTableName,
		Columns:    ProductTagsColumns,
		PrimaryKey: []*schema.Column{ProductTagsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "product_tags_products_product",
				Columns:    []*schema.Column{ProductTagsColumns[1]},
				RefColumns: []*schema.Column{ProductsColumns[0]},
				OnDelete:   schema.Cascade,
			},
			{
				Symbol:     "product_tags_tags_tag",
				Columns:    []*schema.Column{ProductTagsColumns[2]},
				RefColumns: []*schema.Column{TagsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "producttag_product_id_tag_id",
				Unique:  true,
				Columns: []*schema.Column{ProductTagsColumns[1], ProductTagsColumns[2]},
			},
			{
				Name:    "producttag_tag_id",
				Unique:  false,
				Columns: []*schema.Column{ProductTagsColumns[2]},
			},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		CategoriesTable,
		ProductsTable,
		TagsTable,
		ProductTagsTable,
	}
)

func init() {
	ProductsTable.ForeignKeys[0].RefTable = CategoriesTable
	ProductTagsTable.ForeignKeys[0].RefTable = ProductsTable
	ProductTagsTable.ForeignKeys[1].RefTable = TagsTable
}

// CreateSchema 创建或更新所有表、索引和外键
func CreateSchema(ctx context.Context, drv dialect.Driver) error {
	migrate, err := schema.NewMigrate(drv, schema.WithForeignKeys(true), schema.WithDropIndex(true))
	if err != nil {
		return err
	}
	return migrate.Create(ctx, Tables...)
}

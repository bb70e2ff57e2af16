/*
 * @Description: 商品领域模型
 * @Author: 安知鱼
 * @Date: 2026-10-09 11:31:15
 * @LastEditTime: 2026-10-14 10:02:51
 * @LastEditors: 安知鱼
 */
package model

import "time"

// DefaultProductStock 创建商品时未指定库存使用的默认值
const DefaultProductStock = 10

// --- 核心领域对象 (Domain Object) ---

// Product 是商品的核心领域模型。
type Product struct {
	ID              string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Name            string
	Price           float64
	Stock           int
	DescriptionMD   string
	DescriptionHTML string
	Category        *CategorySummary
	Tags            []*TagSummary
}

// ProductSummary 是分类、标签详情中列出的商品摘要。
type ProductSummary struct {
	ID    string
	Name  string
	Price float64
	Stock int
}

// CreateProductParams 是仓储层创建商品所需的参数，ID 均为数据库ID。
type CreateProductParams struct {
	Name            string
	Price           float64
	Stock           int
	CategoryID      *uint
	DescriptionMD   string
	DescriptionHTML string
}

// UpdateProductParams 是仓储层更新商品所需的参数，nil 字段保持不变。
type UpdateProductParams struct {
	Name            *string
	Price           *float64
	Stock           *int
	CategoryID      *uint
	DescriptionMD   *string
	DescriptionHTML *string
}

// --- API 数据传输对象 (Data Transfer Objects) ---

// CreateProductRequest 定义了创建商品的请求体
type CreateProductRequest struct {
	Name        string   `json:"product_name" binding:"required"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Stock       *int     `json:"stock" binding:"omitempty,gte=0"`
	CategoryID  *string  `json:"category_id"`
	Description *string  `json:"description"`
	TagIDs      []string `json:"tagIds"`
}

// UpdateProductRequest 定义了更新商品的请求体。
// TagIDs 非空时商品的标签集合会被调整为与之一致。
type UpdateProductRequest struct {
	Name        *string  `json:"product_name"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	Stock       *int     `json:"stock" binding:"omitempty,gte=0"`
	CategoryID  *string  `json:"category_id"`
	Description *string  `json:"description"`
	TagIDs      []string `json:"tagIds"`
}

// ProductResponse 定义了商品的标准 API 响应结构
type ProductResponse struct {
	ID              string                   `json:"id"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
	Name            string                   `json:"product_name"`
	Price           float64                  `json:"price"`
	Stock           int                      `json:"stock"`
	DescriptionMD   string                   `json:"description"`
	DescriptionHTML string                   `json:"description_html"`
	Category        *CategorySummaryResponse `json:"category"`
	Tags            []*TagSummaryResponse    `json:"tags"`
}

type ProductSummaryResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"product_name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// NewProductSummaryResponses 把商品摘要列表转换为响应结构，空列表输出为 []
func NewProductSummaryResponses(items []*ProductSummary) []*ProductSummaryResponse {
	out := make([]*ProductSummaryResponse, 0, len(items))
	for _, p := range items {
		out = append(out, &ProductSummaryResponse{
			ID:    p.ID,
			Name:  p.Name,
			Price: p.Price,
			Stock: p.Stock,
		})
	}
	return out
}

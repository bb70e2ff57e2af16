/*
 * @Description: 商品分类领域模型
 * @Author: 安知鱼
 * @Date: 2026-10-09 11:20:03
 * @LastEditTime: 2026-10-13 16:41:29
 * @LastEditors: 安知鱼
 */
package model

import "time"

// --- 核心领域对象 (Domain Object) ---

// Category 是商品分类的核心领域模型。
type Category struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string
	Products  []*ProductSummary
}

// CategorySummary 是嵌入在商品中的分类摘要。
type CategorySummary struct {
	ID   string
	Name string
}

// --- API 数据传输对象 (Data Transfer Objects) ---

// CreateCategoryRequest 定义了创建分类的请求体
type CreateCategoryRequest struct {
	Name string `json:"category_name" binding:"required"`
}

// UpdateCategoryRequest 定义了更新分类的请求体
type UpdateCategoryRequest struct {
	Name *string `json:"category_name"`
}

// CategoryResponse 定义了分类的标准 API 响应结构
type CategoryResponse struct {
	ID        string                    `json:"id"`
	CreatedAt time.Time                 `json:"created_at"`
	UpdatedAt time.Time                 `json:"updated_at"`
	Name      string                    `json:"category_name"`
	Products  []*ProductSummaryResponse `json:"products"`
}

type CategorySummaryResponse struct {
	ID   string `json:"id"`
	Name string `json:"category_name"`
}

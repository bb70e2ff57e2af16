/*
 * @Description: 商品标签领域模型
 * @Author: 安知鱼
 * @Date: 2026-10-09 11:24:47
 * @LastEditTime: 2026-10-13 16:42:10
 * @LastEditors: 安知鱼
 */
package model

import "time"

// Tag 是商品标签的核心领域模型。
type Tag struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string
	Products  []*ProductSummary
}

// TagSummary 是嵌入在商品中的标签摘要。
type TagSummary struct {
	ID   string
	Name string
}

// CreateTagRequest 定义了创建标签的请求体
type CreateTagRequest struct {
	Name string `json:"tag_name" binding:"required"`
}

// UpdateTagRequest 定义了更新标签的请求体
type UpdateTagRequest struct {
	Name *string `json:"tag_name"`
}

// TagResponse 定义了标签的标准 API 响应结构
type TagResponse struct {
	ID        string                    `json:"id"`
	CreatedAt time.Time                 `json:"created_at"`
	UpdatedAt time.Time                 `json:"updated_at"`
	Name      string                    `json:"tag_name"`
	Products  []*ProductSummaryResponse `json:"products"`
}

type TagSummaryResponse struct {
	ID   string `json:"id"`
	Name string `json:"tag_name"`
}

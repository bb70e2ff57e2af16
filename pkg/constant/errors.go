/*
 * @Description: 业务错误定义
 * @Author: 安知鱼
 * @Date: 2026-10-09 10:12:41
 * @LastEditTime: 2026-10-12 16:40:03
 * @LastEditors: 安知鱼
 */
package constant

import "errors"

// 定义业务逻辑相关的标准错误
var (
	// ErrNotFound 表示资源未找到，可以由 Handler 转换为 404
	ErrNotFound = errors.New("资源未找到")

	// ErrBadRequest 表示请求参数错误，可以由 Handler 转换为 400
	ErrBadRequest = errors.New("错误的请求")

	// ErrConflict 表示资源冲突，例如同一商品重复关联同一标签
	ErrConflict = errors.New("资源冲突")
)

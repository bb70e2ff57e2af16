/*
 * @Description: 统一响应结构
 * @Author: 安知鱼
 * @Date: 2026-10-09 10:20:18
 * @LastEditTime: 2026-10-13 09:41:57
 * @LastEditors: 安知鱼
 */
package response

import (
	"errors"
	"net/http"

	"github.com/anzhiyu-c/anheyu-catalog/pkg/constant"

	"github.com/gin-gonic/gin"
)

// Response 是统一的API返回结构体
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}, message string) {
	SuccessWithStatus(c, http.StatusOK, data, message)
}

// Created 资源创建成功，返回 201
func Created(c *gin.Context, data interface{}, message string) {
	SuccessWithStatus(c, http.StatusCreated, data, message)
}

// NoContent 删除等操作成功后不返回响应体
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Fail 失败响应
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// Error 按领域错误选择状态码：未找到 404，错误请求 400，冲突 409，其余使用 fallback
func Error(c *gin.Context, err error, fallback int, message string) {
	code := fallback
	switch {
	case errors.Is(err, constant.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, constant.ErrBadRequest):
		code = http.StatusBadRequest
	case errors.Is(err, constant.ErrConflict):
		code = http.StatusConflict
	}
	Fail(c, code, message+": "+err.Error())
}

// SuccessWithStatus 成功响应，但允许自定义 HTTP 状态码。
func SuccessWithStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

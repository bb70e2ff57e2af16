/*
 * @Description: 商品接口
 * @Author: 安知鱼
 * @Date: 2026-10-10 16:30:12
 * @LastEditTime: 2026-10-15 09:47:55
 * @LastEditors: 安知鱼
 */
package product

import (
	"net/http"

	"github.com/anzhiyu-c/anheyu-catalog/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/response"

	product_service "github.com/anzhiyu-c/anheyu-catalog/pkg/service/product"

	"github.com/gin-gonic/gin"
)

// Handler 封装了所有与商品相关的 HTTP 处理器。
type Handler struct {
	svc *product_service.Service
}

// NewHandler 是 Handler 的构造函数。
func NewHandler(svc *product_service.Service) *Handler {
	return &Handler{svc: svc}
}

// List
// @Summary      获取商品列表
// @Description  获取所有商品，包含所属分类和标签
// @Tags         商品
// @Produce      json
// @Success      200 {object} response.Response{data=[]model.ProductResponse} "成功响应"
// @Failure      500 {object} response.Response "服务器内部错误"
// @Router       /products [get]
func (h *Handler) List(c *gin.Context) {
	products, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "获取商品列表失败: "+err.Error())
		return
	}
	response.Success(c, products, "获取列表成功")
}

// Get
// @Summary      获取单个商品
// @Description  根据商品ID获取商品，包含所属分类和标签
// @Tags         商品
// @Produce      json
// @Param        id path string true "商品ID"
// @Success      200 {object} response.Response{data=model.ProductResponse} "成功响应"
// @Failure      404 {object} response.Response "商品不存在"
// @Failure      500 {object} response.Response "服务器内部错误"
// @Router       /products/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	product, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err, http.StatusInternalServerError, "获取商品失败")
		return
	}
	response.Success(c, product, "获取成功")
}

// Create
// @Summary      创建新商品
// @Description  创建商品，并为 tagIds 中的每个标签建立关联
// @Tags         商品
// @Accept       json
// @Produce      json
// @Param        product body model.CreateProductRequest true "创建商品的请求体"
// @Success      201 {object} response.Response{data=model.ProductResponse} "创建成功"
// @Failure      400 {object} response.Response "请求参数错误或标签不存在"
// @Router       /products [post]
func (h *Handler) Create(c *gin.Context) {
	var req model.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求参数无效: "+err.Error())
		return
	}

	product, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err, http.StatusBadRequest, "创建商品失败")
		return
	}
	response.Created(c, product, "创建成功")
}

// Update
// @Summary      更新商品
// @Description  更新商品字段；tagIds 非空时把商品的标签调整为与之一致，新增缺少的、删除多余的
// @Tags         商品
// @Accept       json
// @Produce      json
// @Param        id path string true "商品ID"
// @Param        product body model.UpdateProductRequest true "更新商品的请求体"
// @Success      200 {object} response.Response{data=model.ProductResponse} "成功响应"
// @Failure      400 {object} response.Response "请求参数错误或标签不存在"
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /products/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var req model.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求参数无效: "+err.Error())
		return
	}

	product, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.Error(c, err, http.StatusBadRequest, "更新商品失败")
		return
	}
	response.Success(c, product, "更新成功")
}

// Delete
// @Summary      删除商品
// @Description  根据商品ID删除，商品的标签关联一并删除
// @Tags         商品
// @Param        id path string true "商品ID"
// @Success      204 "删除成功"
// @Failure      404 {object} response.Response "商品不存在"
// @Failure      500 {object} response.Response "服务器内部错误"
// @Router       /products/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err, http.StatusInternalServerError, "删除商品失败")
		return
	}
	response.NoContent(c)
}

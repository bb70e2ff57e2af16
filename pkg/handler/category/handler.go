package category

import (
	"net/http"

	"github.com/anzhiyu-c/anheyu-catalog/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/response"

	category_service "github.com/anzhiyu-c/anheyu-catalog/pkg/service/category"

	"github.com/gin-gonic/gin"
)

// Handler 封装了所有与商品分类相关的 HTTP 处理器。
type Handler struct {
	svc *category_service.Service
}

// NewHandler 是 Handler 的构造函数。
func NewHandler(svc *category_service.Service) *Handler {
	return &Handler{svc: svc}
}

// List
// @Summary      获取分类列表
// @Description  获取所有分类及其下的商品
// @Tags         商品分类
// @Produce      json
// @Success      200 {object} response.Response{data=[]model.CategoryResponse} "成功响应"
// @Failure      500 {object} response.Response "服务器内部错误"
// @Router       /categories [get]
func (h *Handler) List(c *gin.Context) {
	categories, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "获取分类列表失败: "+err.Error())
		return
	}
	response.Success(c, categories, "获取列表成功")
}

// Get
// @Summary      获取单个分类
// @Description  根据分类ID获取分类及其下的商品
// @Tags         商品分类
// @Produce      json
// @Param        id path string true "分类ID"
// @Success      200 {object} response.Response{data=model.CategoryResponse} "成功响应"
// @Failure      404 {object} response.Response "分类不存在"
// @Failure      500 {object} response.Response "服务器内部错误"
// @Router       /categories/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	category, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err, http.StatusInternalServerError, "获取分类失败")
		return
	}
	response.Success(c, category, "获取成功")
}

// Create
// @Summary      创建新分类
// @Description  根据提供的请求体创建一个新分类
// @Tags         商品分类
// @Accept       json
// @Produce      json
// @Param        category body model.CreateCategoryRequest true "创建分类的请求体"
// @Success      201 {object} response.Response{data=model.CategoryResponse} "创建成功"
// @Failure      400 {object} response.Response "请求参数错误"
// @Router       /categories [post]
func (h *Handler) Create(c *gin.Context) {
	var req model.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求参数无效: "+err.Error())
		return
	}

	category, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err, http.StatusBadRequest, "创建分类失败")
		return
	}
	response.Created(c, category, "创建成功")
}

// Update
// @Summary      更新分类
// @Description  根据分类ID和请求体更新分类名称
// @Tags         商品分类
// @Accept       json
// @Produce      json
// @Param        id path string true "分类ID"
// @Param        category body model.UpdateCategoryRequest true "更新分类的请求体"
// @Success      200 {object} response.Response{data=model.CategoryResponse} "成功响应"
// @Failure      400 {object} response.Response "请求参数错误"
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /categories/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var req model.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求参数无效: "+err.Error())
		return
	}

	category, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.Error(c, err, http.StatusBadRequest, "更新分类失败")
		return
	}
	response.Success(c, category, "更新成功")
}

// Delete
// @Summary      删除分类
// @Description  根据分类ID删除，其下商品的分类被置空
// @Tags         商品分类
// @Param        id path string true "分类ID"
// @Success      204 "删除成功"
// @Failure      404 {object} response.Response "分类不存在"
// @Failure      500 {object} response.Response "服务器内部错误"
// @Router       /categories/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err, http.StatusInternalServerError, "删除分类失败")
		return
	}
	response.NoContent(c)
}

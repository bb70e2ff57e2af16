package tag

import (
	"net/http"

	"github.com/anzhiyu-c/anheyu-catalog/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/response"

	tag_service "github.com/anzhiyu-c/anheyu-catalog/pkg/service/tag"

	"github.com/gin-gonic/gin"
)

// Handler 封装了所有与商品标签相关的 HTTP 处理器。
type Handler struct {
	svc *tag_service.Service
}

// NewHandler 是 Handler 的构造函数。
func NewHandler(svc *tag_service.Service) *Handler {
	return &Handler{svc: svc}
}

// List
// @Summary      获取标签列表
// @Description  获取所有标签及关联的商品
// @Tags         商品标签
// @Produce      json
// @Success      200 {object} response.Response{data=[]model.TagResponse} "成功响应"
// @Failure      500 {object} response.Response "服务器内部错误"
// @Router       /tags [get]
func (h *Handler) List(c *gin.Context) {
	tags, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "获取标签列表失败: "+err.Error())
		return
	}
	response.Success(c, tags, "获取列表成功")
}

// Get
// @Summary      获取单个标签
// @Description  根据标签ID获取标签及关联的商品
// @Tags         商品标签
// @Produce      json
// @Param        id path string true "标签ID"
// @Success      200 {object} response.Response{data=model.TagResponse} "成功响应"
// @Failure      404 {object} response.Response "标签不存在"
// @Failure      500 {object} response.Response "服务器内部错误"
// @Router       /tags/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	tag, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err, http.StatusInternalServerError, "获取标签失败")
		return
	}
	response.Success(c, tag, "获取成功")
}

// Create
// @Summary      创建新标签
// @Description  根据提供的请求体创建一个新标签
// @Tags         商品标签
// @Accept       json
// @Produce      json
// @Param        tag body model.CreateTagRequest true "创建标签的请求体"
// @Success      201 {object} response.Response{data=model.TagResponse} "创建成功"
// @Failure      400 {object} response.Response "请求参数错误"
// @Router       /tags [post]
func (h *Handler) Create(c *gin.Context) {
	var req model.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求参数无效: "+err.Error())
		return
	}

	tag, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err, http.StatusBadRequest, "创建标签失败")
		return
	}
	response.Created(c, tag, "创建成功")
}

// Update
// @Summary      更新标签
// @Description  根据标签ID和请求体更新标签名称
// @Tags         商品标签
// @Accept       json
// @Produce      json
// @Param        id path string true "标签ID"
// @Param        tag body model.UpdateTagRequest true "更新标签的请求体"
// @Success      200 {object} response.Response{data=model.TagResponse} "成功响应"
// @Failure      400 {object} response.Response "请求参数错误"
// @Failure      404 {object} response.Response "标签不存在"
// @Router       /tags/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var req model.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求参数无效: "+err.Error())
		return
	}

	tag, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.Error(c, err, http.StatusBadRequest, "更新标签失败")
		return
	}
	response.Success(c, tag, "更新成功")
}

// Delete
// @Summary      删除标签
// @Description  根据标签ID删除，商品上的该标签关联一并删除
// @Tags         商品标签
// @Param        id path string true "标签ID"
// @Success      204 "删除成功"
// @Failure      404 {object} response.Response "标签不存在"
// @Failure      500 {object} response.Response "服务器内部错误"
// @Router       /tags/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err, http.StatusInternalServerError, "删除标签失败")
		return
	}
	response.NoContent(c)
}

/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-06-15 11:30:55
 * @LastEditTime: 2026-10-15 11:20:48
 * @LastEditors: 安知鱼
 */
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/anheyu-catalog/internal/app/middleware"
	category_handler "github.com/anzhiyu-c/anheyu-catalog/pkg/handler/category"
	product_handler "github.com/anzhiyu-c/anheyu-catalog/pkg/handler/product"
	tag_handler "github.com/anzhiyu-c/anheyu-catalog/pkg/handler/tag"
	version_handler "github.com/anzhiyu-c/anheyu-catalog/pkg/handler/version"
)

// NoCacheMiddleware 反缓存中间件，确保所有API响应都不会被CDN缓存
func NoCacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate, private, max-age=0")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Header("X-Content-Type-Options", "nosniff")

		c.Next()
	}
}

// RateLimitOptions 写接口的限流参数
type RateLimitOptions struct {
	WritePerMinute int
	WriteBurst     int
}

// Router 封装了应用的所有路由和其依赖的处理器。
type Router struct {
	categoryHandler *category_handler.Handler
	productHandler  *product_handler.Handler
	tagHandler      *tag_handler.Handler
	versionHandler  *version_handler.Handler
	rateLimit       RateLimitOptions
}

// NewRouter 是 Router 的构造函数，通过依赖注入接收所有处理器。
func NewRouter(
	categoryHandler *category_handler.Handler,
	productHandler *product_handler.Handler,
	tagHandler *tag_handler.Handler,
	versionHandler *version_handler.Handler,
	rateLimit RateLimitOptions,
) *Router {
	return &Router{
		categoryHandler: categoryHandler,
		productHandler:  productHandler,
		tagHandler:      tagHandler,
		versionHandler:  versionHandler,
		rateLimit:       rateLimit,
	}
}

// Setup 将所有路由注册到 Gin 引擎
func (r *Router) Setup(engine *gin.Engine) {
	engine.Use(middleware.Cors())

	// 创建 /api 分组
	apiGroup := engine.Group("/api")
	apiGroup.Use(NoCacheMiddleware())
	if r.rateLimit.WritePerMinute > 0 {
		apiGroup.Use(middleware.WriteRateLimit(r.rateLimit.WritePerMinute, r.rateLimit.WriteBurst))
	}

	// 注册各个模块的路由
	r.registerCategoryRoutes(apiGroup)
	r.registerProductRoutes(apiGroup)
	r.registerTagRoutes(apiGroup)
	r.registerVersionRoutes(apiGroup)
}

func (r *Router) registerCategoryRoutes(api *gin.RouterGroup) {
	categories := api.Group("/categories")
	{
		categories.GET("", r.categoryHandler.List)
		categories.GET("/:id", r.categoryHandler.Get)
		categories.POST("", r.categoryHandler.Create)
		categories.PUT("/:id", r.categoryHandler.Update)
		categories.DELETE("/:id", r.categoryHandler.Delete)
	}
}

func (r *Router) registerProductRoutes(api *gin.RouterGroup) {
	products := api.Group("/products")
	{
		products.GET("", r.productHandler.List)
		products.GET("/:id", r.productHandler.Get)
		products.POST("", r.productHandler.Create)
		products.PUT("/:id", r.productHandler.Update)
		products.DELETE("/:id", r.productHandler.Delete)
	}
}

func (r *Router) registerTagRoutes(api *gin.RouterGroup) {
	tags := api.Group("/tags")
	{
		tags.GET("", r.tagHandler.List)
		tags.GET("/:id", r.tagHandler.Get)
		tags.POST("", r.tagHandler.Create)
		tags.PUT("/:id", r.tagHandler.Update)
		tags.DELETE("/:id", r.tagHandler.Delete)
	}
}

func (r *Router) registerVersionRoutes(api *gin.RouterGroup) {
	api.GET("/version", r.versionHandler.GetVersion)
}

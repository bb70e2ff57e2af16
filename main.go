/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-06-28 00:21:55
 * @LastEditTime: 2026-10-16 09:50:31
 * @LastEditors: 安知鱼
 */
package main

import (
	"log"

	"github.com/anzhiyu-c/anheyu-catalog/cmd/server"
)

// @title           Anheyu Catalog API
// @version         1.0
// @description     商品、分类与标签管理接口文档

// @contact.name   安知鱼
// @contact.url    https://github.com/anzhiyu-c/anheyu-catalog

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8091
// @BasePath  /api
func main() {
	// 调用位于 cmd/server 包中的 NewApp 函数来构建整个应用
	app, cleanup, err := server.NewApp()
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		log.Printf("应用初始化失败: %v", err)
		return
	}

	// 确保后台任务在程序退出时被停止
	defer app.Stop()

	app.PrintBanner()

	// 启动应用
	if err := app.Run(); err != nil {
		log.Printf("应用运行失败: %v", err)
	}
}

/*
 * @Description: 应用装配与生命周期
 * @Author: 安知鱼
 * @Date: 2025-10-17 10:35:28
 * @LastEditTime: 2026-10-16 09:42:15
 * @LastEditors: 安知鱼
 */
// anheyu-catalog/cmd/server/app.go
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/anheyu-catalog/internal/app/bootstrap"
	"github.com/anzhiyu-c/anheyu-catalog/internal/app/listener"
	"github.com/anzhiyu-c/anheyu-catalog/internal/app/task"
	"github.com/anzhiyu-c/anheyu-catalog/internal/infra/persistence/database"
	ent_impl "github.com/anzhiyu-c/anheyu-catalog/internal/infra/persistence/ent"
	"github.com/anzhiyu-c/anheyu-catalog/internal/infra/router"
	"github.com/anzhiyu-c/anheyu-catalog/internal/pkg/event"
	"github.com/anzhiyu-c/anheyu-catalog/internal/pkg/version"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/config"
	category_handler "github.com/anzhiyu-c/anheyu-catalog/pkg/handler/category"
	product_handler "github.com/anzhiyu-c/anheyu-catalog/pkg/handler/product"
	tag_handler "github.com/anzhiyu-c/anheyu-catalog/pkg/handler/tag"
	version_handler "github.com/anzhiyu-c/anheyu-catalog/pkg/handler/version"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/idgen"
	category_service "github.com/anzhiyu-c/anheyu-catalog/pkg/service/category"
	product_service "github.com/anzhiyu-c/anheyu-catalog/pkg/service/product"
	tag_service "github.com/anzhiyu-c/anheyu-catalog/pkg/service/tag"
)

// App 结构体，用于封装应用的所有核心组件
type App struct {
	cfg       *config.Config
	engine    *gin.Engine
	scheduler *task.Scheduler
	sqlDB     *sql.DB
	eventBus  *event.EventBus
}

func (a *App) PrintBanner() {
	log.Println("--------------------------------------------------------")
	log.Printf(" Anheyu Catalog: %s", version.GetVersionString())
	log.Println("--------------------------------------------------------")
}

// NewApp 是应用的构造函数，它执行所有的初始化和依赖注入工作
func NewApp() (*App, func(), error) {
	// --- Phase 1: 加载外部配置 ---
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}

	// --- Phase 2: 初始化 ID 编码器 ---
	if seed := cfg.GetString(config.KeyServerIDSeed); seed != "" {
		err = idgen.InitSqidsEncoderWithSeed(seed)
	} else {
		err = idgen.InitSqidsEncoder()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("初始化 ID 编码器失败: %w", err)
	}
	log.Println("✅ ID 编码器初始化成功")

	// --- Phase 3: 初始化基础设施 ---
	dbType, err := database.Dialect(cfg)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := database.NewSQLDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("创建数据库连接池失败: %w", err)
	}
	drv := database.NewDriver(sqlDB, dbType, cfg.GetBool(config.KeyDBDebug))

	cleanup := func() {
		log.Println("执行清理操作：关闭数据库连接...")
		sqlDB.Close()
	}

	// --- Phase 4: 初始化数据仓库层 ---
	repos := ent_impl.NewRepositories(drv, dbType)
	txManager := ent_impl.NewEntTransactionManager(drv)

	// --- Phase 5: 初始化应用引导程序 ---
	bootstrapper := bootstrap.NewBootstrapper(sqlDB, drv, repos, txManager, cfg.GetBool(config.KeyServerSeed))
	if err := bootstrapper.InitializeDatabase(context.Background()); err != nil {
		return nil, cleanup, fmt.Errorf("数据库初始化失败: %w", err)
	}

	// --- Phase 6: 初始化事件总线与监听器 ---
	eventBus := event.NewEventBus()
	listener.NewProductTagListener(eventBus, repos.ProductTag)

	// --- Phase 7: 初始化业务逻辑层 ---
	categorySvc := category_service.NewService(repos.Category)
	tagSvc := tag_service.NewService(repos.Tag)
	productSvc := product_service.NewService(repos.Product, txManager, eventBus)

	// --- Phase 8: 初始化处理器层 ---
	appRouter := router.NewRouter(
		category_handler.NewHandler(categorySvc),
		product_handler.NewHandler(productSvc),
		tag_handler.NewHandler(tagSvc),
		version_handler.NewHandler(),
		router.RateLimitOptions{
			WritePerMinute: cfg.GetInt(config.KeyRateLimitWritePerMinute),
			WriteBurst:     cfg.GetInt(config.KeyRateLimitWriteBurst),
		},
	)

	// --- Phase 9: 配置 Gin 引擎 ---
	if cfg.GetBool(config.KeyServerDebug) {
		gin.SetMode(gin.DebugMode)
		log.Println("运行模式: Debug (Gin 将打印详细路由日志)")
	} else {
		gin.SetMode(gin.ReleaseMode)
		log.Println("运行模式: Release (Gin 启动日志已禁用)")
	}

	engine := gin.Default()
	err = engine.SetTrustedProxies([]string{"127.0.0.1", "::1", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"})
	if err != nil {
		return nil, cleanup, fmt.Errorf("设置信任代理失败: %w", err)
	}
	engine.ForwardedByClientIP = true
	appRouter.Setup(engine)

	// --- Phase 10: 初始化定时任务 ---
	scheduler := task.NewScheduler(os.Stdout, repos.ProductTag, cfg.GetString(config.KeyTaskPruneSchedule))

	app := &App{
		cfg:       cfg,
		engine:    engine,
		scheduler: scheduler,
		sqlDB:     sqlDB,
		eventBus:  eventBus,
	}
	return app, cleanup, nil
}

func (a *App) Config() *config.Config {
	return a.cfg
}

func (a *App) Engine() *gin.Engine {
	return a.engine
}

func (a *App) Run() error {
	if err := a.scheduler.RegisterJobs(); err != nil {
		return fmt.Errorf("注册定时任务失败: %w", err)
	}
	a.scheduler.Start()

	port := a.cfg.GetString(config.KeyServerPort)
	if port == "" {
		port = "8091"
	}
	fmt.Printf("应用程序启动成功，正在监听端口: %s\n", port)

	return a.engine.Run(":" + port)
}

func (a *App) Stop() {
	if a.scheduler != nil {
		a.scheduler.Stop()
		log.Println("任务调度器已停止。")
	}
	if a.eventBus != nil {
		a.eventBus.Shutdown()
		log.Println("事件总线已关闭。")
	}
}

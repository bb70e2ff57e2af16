/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-07-12 16:09:46
 * @LastEditTime: 2026-10-15 13:40:22
 * @LastEditors: 安知鱼
 */
package task

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/anzhiyu-c/anheyu-catalog/pkg/domain/repository"

	"github.com/robfig/cron/v3"
)

// DefaultPruneSchedule 每天凌晨 4 点清理孤立的商品标签关联
const DefaultPruneSchedule = "0 0 4 * * *"

// Scheduler 封装了 cron 实例和其依赖。
// 它是整个定时任务模块的核心协调者，负责任务的注册、启动和停止。
type Scheduler struct {
	cron           *cron.Cron
	logger         *slog.Logger
	productTagRepo repository.ProductTagRepository
	pruneSchedule  string
}

// NewScheduler 是 Scheduler 的构造函数，日志写入 out。
func NewScheduler(out io.Writer, productTagRepo repository.ProductTagRepository, pruneSchedule string) *Scheduler {
	// 创建一个带固定 "system":"cron" 属性的 slog.Logger
	slogHandler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(slogHandler).With("system", "cron")

	c := cron.New(
		cron.WithSeconds(),
		// 从外到内：跳过重叠执行 -> panic 恢复 -> 日志
		cron.WithChain(
			cron.SkipIfStillRunning(cron.DiscardLogger),
			NewPanicRecoveryWrapper(logger),
			NewLoggingWrapper(logger),
		),
	)

	if pruneSchedule == "" {
		pruneSchedule = DefaultPruneSchedule
	}

	return &Scheduler{
		cron:           c,
		logger:         logger,
		productTagRepo: productTagRepo,
		pruneSchedule:  pruneSchedule,
	}
}

// RegisterJobs 在调度器中注册所有定义好的定时任务。
func (s *Scheduler) RegisterJobs() error {
	s.logger.Info("Registering all periodic jobs...")

	pruneJob := NewProductTagPruneJob(s.productTagRepo, s.logger)
	if _, err := s.cron.AddJob(s.pruneSchedule, pruneJob); err != nil {
		s.logger.Error("Failed to add 'ProductTagPruneJob'", slog.Any("error", err))
		return fmt.Errorf("注册定时任务 '%s' 失败: %w", pruneJob.Name(), err)
	}
	s.logger.Info("-> Successfully registered 'ProductTagPruneJob'", "schedule", s.pruneSchedule)

	s.logger.Info("All periodic jobs registered.")
	return nil
}

// Entries 返回已注册的任务数量
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// Start 启动 cron 调度器。
func (s *Scheduler) Start() {
	s.logger.Info("Cron scheduler started.")
	s.cron.Start()
}

// Stop 优雅地停止 cron 调度器，等待正在运行的任务结束。
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Cron scheduler gracefully stopped.")
}

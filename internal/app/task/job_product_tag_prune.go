package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/anzhiyu-c/anheyu-catalog/pkg/domain/repository"
)

// ProductTagPruneJob 删除商品或标签已不存在的关联记录。
// 外键级联正常时通常没有可删除的数据，它用于兜底未启用外键的数据库。
type ProductTagPruneJob struct {
	repo    repository.ProductTagRepository
	logger  *slog.Logger
	timeout time.Duration
}

// NewProductTagPruneJob 是任务的构造函数。
func NewProductTagPruneJob(repo repository.ProductTagRepository, logger *slog.Logger) *ProductTagPruneJob {
	return &ProductTagPruneJob{
		repo:    repo,
		logger:  logger,
		timeout: time.Minute,
	}
}

// Name 返回任务的可读名称
func (j *ProductTagPruneJob) Name() string {
	return "ProductTagPruneJob"
}

// Run 是 cron.Job 接口要求实现的方法。
func (j *ProductTagPruneJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	deleted, err := j.repo.DeleteOrphans(ctx)
	if err != nil {
		j.logger.Error("Failed to prune orphan product tags", slog.String("job_name", j.Name()), slog.Any("error", err))
		return
	}
	if deleted > 0 {
		j.logger.Info("Pruned orphan product tags", slog.String("job_name", j.Name()), slog.Int("deleted", deleted))
	}
}

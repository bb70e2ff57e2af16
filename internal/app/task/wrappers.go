/*
 * @Description: 提供了用于 cron 任务的健壮的中间件（装饰器）。
 * @Author: 安知鱼
 * @Date: 2025-06-29 22:36:09
 * @LastEditTime: 2026-10-15 13:52:10
 * @LastEditors: 安知鱼
 */
package task

import (
	"log/slog"
	"reflect"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// JobWrapper 是 cron.JobWrapper 的类型别名，用于简化代码。
type JobWrapper = cron.JobWrapper

// NamedJob 是带有可读名称的任务
type NamedJob interface {
	cron.Job
	Name() string
}

// namedFuncJob 让装饰后的任务保留原任务的名称，外层装饰器记录日志时仍能识别
type namedFuncJob struct {
	name string
	run  func()
}

func (j namedFuncJob) Run() { j.run() }
func (j namedFuncJob) Name() string { return j.name }

// NewLoggingWrapper 创建一个日志装饰器。
// 它使用结构化日志记录每个任务的开始和结束，并包含一个唯一的执行ID。
func NewLoggingWrapper(logger *slog.Logger) JobWrapper {
	return func(j cron.Job) cron.Job {
		jobName := getJobName(j)
		return namedFuncJob{name: jobName, run: func() {
			// 为本次执行生成一个唯一的ID，便于追踪
			jobLogger := logger.With(
				slog.String("job_name", jobName),
				slog.String("execution_id", uuid.New().String()),
			)

			startTime := time.Now()
			jobLogger.Info("Job execution started")

			j.Run()

			jobLogger.Info("Job execution finished", slog.Duration("duration", time.Since(startTime)))
		}}
	}
}

// NewPanicRecoveryWrapper 创建一个 panic 恢复装饰器。
// 任务发生 panic 时记录错误信息和堆栈，但不会导致整个应用程序崩溃。
func NewPanicRecoveryWrapper(logger *slog.Logger) JobWrapper {
	return func(j cron.Job) cron.Job {
		jobName := getJobName(j)
		return namedFuncJob{name: jobName, run: func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("Job panicked",
						slog.String("job_name", jobName),
						slog.Any("panic", r),
						slog.String("stack_trace", string(debug.Stack())),
					)
				}
			}()

			j.Run()
		}}
	}
}

// getJobName 优先使用任务的 Name() 方法，否则通过反射取其类型名，例如 "task.MyJob"。
func getJobName(j cron.Job) string {
	if namedJob, ok := j.(NamedJob); ok {
		return namedJob.Name()
	}

	jobType := reflect.TypeOf(j)
	if jobType.Kind() == reflect.Ptr {
		return jobType.Elem().String()
	}
	return jobType.String()
}

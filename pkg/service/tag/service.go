/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-10-10 13:48:02
 * @LastEditTime: 2026-10-14 17:12:31
 * @LastEditors: 安知鱼
 */
package tag

import (
	"context"
	"fmt"

	"github.com/anzhiyu-c/anheyu-catalog/internal/pkg/parser"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/constant"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/domain/repository"
)

// Service 封装了商品标签的业务逻辑。
type Service struct {
	repo repository.TagRepository
}

// NewService 是 Tag Service 的构造函数。
func NewService(repo repository.TagRepository) *Service {
	return &Service{repo: repo}
}

// toAPIResponse 将领域模型转换为用于API响应的DTO。
func (s *Service) toAPIResponse(t *model.Tag) *model.TagResponse {
	if t == nil {
		return nil
	}
	return &model.TagResponse{
		ID:        t.ID,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		Name:      t.Name,
		Products:  model.NewProductSummaryResponses(t.Products),
	}
}

// cleanName 清理标签名称，清理后为空视为错误请求
func cleanName(name string) (string, error) {
	cleaned := parser.SanitizeName(name)
	if cleaned == "" {
		return "", fmt.Errorf("%w: 标签名称不能为空", constant.ErrBadRequest)
	}
	return cleaned, nil
}

// List 获取所有标签及其商品
func (s *Service) List(ctx context.Context) ([]*model.TagResponse, error) {
	tags, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*model.TagResponse, len(tags))
	for i, t := range tags {
		responses[i] = s.toAPIResponse(t)
	}
	return responses, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.TagResponse, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toAPIResponse(t), nil
}

// Create 处理创建新标签的业务逻辑。
func (s *Service) Create(ctx context.Context, req *model.CreateTagRequest) (*model.TagResponse, error) {
	name, err := cleanName(req.Name)
	if err != nil {
		return nil, err
	}
	t, err := s.repo.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.toAPIResponse(t), nil
}

// Update 更新标签并返回更新后的完整数据
func (s *Service) Update(ctx context.Context, id string, req *model.UpdateTagRequest) (*model.TagResponse, error) {
	var name *string
	if req.Name != nil {
		cleaned, err := cleanName(*req.Name)
		if err != nil {
			return nil, err
		}
		name = &cleaned
	}
	t, err := s.repo.Update(ctx, id, name)
	if err != nil {
		return nil, err
	}
	return s.toAPIResponse(t), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

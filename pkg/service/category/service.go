/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-10-10 13:22:19
 * @LastEditTime: 2026-10-14 17:10:44
 * @LastEditors: 安知鱼
 */
package category

import (
	"context"
	"fmt"

	"github.com/anzhiyu-c/anheyu-catalog/internal/pkg/parser"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/constant"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/domain/repository"
)

// Service 封装了商品分类的业务逻辑。
type Service struct {
	repo repository.CategoryRepository
}

// NewService 是 Category Service 的构造函数。
func NewService(repo repository.CategoryRepository) *Service {
	return &Service{repo: repo}
}

// toAPIResponse 将领域模型转换为用于API响应的DTO。
func (s *Service) toAPIResponse(c *model.Category) *model.CategoryResponse {
	if c == nil {
		return nil
	}
	return &model.CategoryResponse{
		ID:        c.ID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Name:      c.Name,
		Products:  model.NewProductSummaryResponses(c.Products),
	}
}

// cleanName 清理分类名称，清理后为空视为错误请求
func cleanName(name string) (string, error) {
	cleaned := parser.SanitizeName(name)
	if cleaned == "" {
		return "", fmt.Errorf("%w: 分类名称不能为空", constant.ErrBadRequest)
	}
	return cleaned, nil
}

// List 获取所有分类及其商品
func (s *Service) List(ctx context.Context) ([]*model.CategoryResponse, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*model.CategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = s.toAPIResponse(c)
	}
	return responses, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.CategoryResponse, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toAPIResponse(c), nil
}

// Create 处理创建新分类的业务逻辑。
func (s *Service) Create(ctx context.Context, req *model.CreateCategoryRequest) (*model.CategoryResponse, error) {
	name, err := cleanName(req.Name)
	if err != nil {
		return nil, err
	}
	c, err := s.repo.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.toAPIResponse(c), nil
}

// Update 更新分类并返回更新后的完整数据
func (s *Service) Update(ctx context.Context, id string, req *model.UpdateCategoryRequest) (*model.CategoryResponse, error) {
	var name *string
	if req.Name != nil {
		cleaned, err := cleanName(*req.Name)
		if err != nil {
			return nil, err
		}
		name = &cleaned
	}
	c, err := s.repo.Update(ctx, id, name)
	if err != nil {
		return nil, err
	}
	return s.toAPIResponse(c), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

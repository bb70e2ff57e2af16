/*
 * @Description: 商品业务逻辑，包含标签集合的调整
 * @Author: 安知鱼
 * @Date: 2026-10-10 14:05:37
 * @LastEditTime: 2026-10-15 10:18:26
 * @LastEditors: 安知鱼
 */
package product

import (
	"context"
	"fmt"
	"log"

	"github.com/anzhiyu-c/anheyu-catalog/internal/pkg/event"
	"github.com/anzhiyu-c/anheyu-catalog/internal/pkg/parser"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/constant"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/domain/repository"
	"github.com/anzhiyu-c/anheyu-catalog/pkg/idgen"
	product_tag_service "github.com/anzhiyu-c/anheyu-catalog/pkg/service/product_tag"
)

// Service 封装了商品的业务逻辑。
type Service struct {
	repo      repository.ProductRepository
	txManager repository.TransactionManager
	eventBus  *event.EventBus
}

// NewService 是 Product Service 的构造函数，eventBus 可以为 nil。
func NewService(repo repository.ProductRepository, txManager repository.TransactionManager, eventBus *event.EventBus) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		eventBus:  eventBus,
	}
}

func (s *Service) toAPIResponse(p *model.Product) *model.ProductResponse {
	if p == nil {
		return nil
	}
	resp := &model.ProductResponse{
		ID:              p.ID,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		Name:            p.Name,
		Price:           p.Price,
		Stock:           p.Stock,
		DescriptionMD:   p.DescriptionMD,
		DescriptionHTML: p.DescriptionHTML,
		Tags:            make([]*model.TagSummaryResponse, 0, len(p.Tags)),
	}
	if p.Category != nil {
		resp.Category = &model.CategorySummaryResponse{ID: p.Category.ID, Name: p.Category.Name}
	}
	for _, t := range p.Tags {
		resp.Tags = append(resp.Tags, &model.TagSummaryResponse{ID: t.ID, Name: t.Name})
	}
	return resp
}

func (s *Service) publish(topic event.Topic, payload interface{}) {
	if s.eventBus != nil {
		s.eventBus.Publish(topic, payload)
	}
}

// List 获取所有商品，包含分类和标签
func (s *Service) List(ctx context.Context) ([]*model.ProductResponse, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*model.ProductResponse, len(products))
	for i, p := range products {
		responses[i] = s.toAPIResponse(p)
	}
	return responses, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.ProductResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toAPIResponse(p), nil
}

// Create 创建商品，并为 tagIds 中的每个标签写入一条关联
func (s *Service) Create(ctx context.Context, req *model.CreateProductRequest) (*model.ProductResponse, error) {
	name := parser.SanitizeName(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: 商品名称不能为空", constant.ErrBadRequest)
	}

	params := &model.CreateProductParams{
		Name:  name,
		Price: req.Price,
		Stock: model.DefaultProductStock,
	}
	if req.Stock != nil {
		params.Stock = *req.Stock
	}

	categoryID, err := decodeCategoryID(req.CategoryID)
	if err != nil {
		return nil, err
	}
	params.CategoryID = categoryID

	if req.Description != nil {
		params.DescriptionMD = *req.Description
		if params.DescriptionHTML, err = parser.MarkdownToHTML(*req.Description); err != nil {
			return nil, fmt.Errorf("渲染商品描述失败: %w", err)
		}
	}

	tagIDs, err := decodeTagIDs(req.TagIDs)
	if err != nil {
		return nil, err
	}

	var productID uint
	err = s.txManager.Do(ctx, func(repos repository.Repositories) error {
		id, err := repos.Product.Create(ctx, params)
		if err != nil {
			return err
		}
		productID = id

		delta := product_tag_service.Reconcile(id, tagIDs, nil)
		if err := repos.ProductTag.BulkCreate(ctx, delta.ToInsert); err != nil {
			return fmt.Errorf("添加商品标签失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	publicID, err := idgen.GeneratePublicID(productID, idgen.EntityTypeProduct)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, publicID)
}

// Update 更新商品字段；tagIds 非空时，在同一个事务中把商品的标签调整为 tagIds。
// tagIds 为空或缺省时标签保持不变。
func (s *Service) Update(ctx context.Context, id string, req *model.UpdateProductRequest) (*model.ProductResponse, error) {
	productID, err := idgen.DecodeEntityID(id, idgen.EntityTypeProduct)
	if err != nil {
		return nil, fmt.Errorf("%w: 无效的商品ID", constant.ErrNotFound)
	}

	params := &model.UpdateProductParams{
		Price: req.Price,
		Stock: req.Stock,
	}
	if req.Name != nil {
		name := parser.SanitizeName(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: 商品名称不能为空", constant.ErrBadRequest)
		}
		params.Name = &name
	}
	if params.CategoryID, err = decodeCategoryID(req.CategoryID); err != nil {
		return nil, err
	}
	if req.Description != nil {
		html, err := parser.MarkdownToHTML(*req.Description)
		if err != nil {
			return nil, fmt.Errorf("渲染商品描述失败: %w", err)
		}
		params.DescriptionMD = req.Description
		params.DescriptionHTML = &html
	}

	tagIDs, err := decodeTagIDs(req.TagIDs)
	if err != nil {
		return nil, err
	}

	var delta product_tag_service.Delta
	err = s.txManager.Do(ctx, func(repos repository.Repositories) error {
		if err := repos.Product.Update(ctx, id, params); err != nil {
			return err
		}
		if len(tagIDs) == 0 {
			return nil
		}
		d, err := product_tag_service.Sync(ctx, repos.ProductTag, productID, tagIDs)
		if err != nil {
			return err
		}
		delta = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !delta.Empty() {
		s.publish(event.ProductTagsReconciled, event.ProductTagsReconciledPayload{
			ProductID: productID,
			Inserted:  len(delta.ToInsert),
			Removed:   len(delta.ToRemove),
		})
	}
	return s.Get(ctx, id)
}

// Delete 删除商品，成功后发布 ProductDeleted 事件
func (s *Service) Delete(ctx context.Context, id string) error {
	productID, err := idgen.DecodeEntityID(id, idgen.EntityTypeProduct)
	if err != nil {
		return fmt.Errorf("%w: 无效的商品ID", constant.ErrNotFound)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("[商品] 已删除商品 %s", id)
	s.publish(event.ProductDeleted, event.ProductDeletedPayload{ProductID: productID})
	return nil
}

func decodeCategoryID(publicID *string) (*uint, error) {
	if publicID == nil || *publicID == "" {
		return nil, nil
	}
	id, err := idgen.DecodeEntityID(*publicID, idgen.EntityTypeCategory)
	if err != nil {
		return nil, fmt.Errorf("%w: 无效的分类ID '%s'", constant.ErrBadRequest, *publicID)
	}
	return &id, nil
}

func decodeTagIDs(publicIDs []string) ([]uint, error) {
	ids, err := idgen.DecodeEntityIDBatch(publicIDs, idgen.EntityTypeTag)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", constant.ErrBadRequest, err)
	}
	return ids, nil
}

package service

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/datatypes"

	"edumall_v1_202608/internal/api/dto"
	"edumall_v1_202608/internal/model"
	"edumall_v1_202608/internal/repository"
)

// ==================== ProductService 商品服务 ====================

// ProductService 商品服务：后台维护 + 商城查询 + 变体定价
type ProductService struct {
	productRepo repository.ProductRepository
	linkChecker LinkChecker
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, linkChecker LinkChecker) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		linkChecker: linkChecker,
	}
}

// ==================== 后台维护 ====================

// CreateProduct 创建商品（连带变体）
func (s *ProductService) CreateProduct(ctx context.Context, req *dto.SaveProductRequest) (*dto.ProductInfo, error) {
	if err := checkLinks(ctx, s.linkChecker, req.Images...); err != nil {
		return nil, err
	}

	product := s.fromRequest(req)
	product.Variants = buildVariants(req.Variants)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return s.toProductInfo(product), nil
}

// UpdateProduct 更新商品，变体整组重建
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, req *dto.SaveProductRequest) (*dto.ProductInfo, error) {
	existing, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrProductNotFound
	}

	if err := checkLinks(ctx, s.linkChecker, req.Images...); err != nil {
		return nil, err
	}

	updated := s.fromRequest(req)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := s.productRepo.Update(ctx, updated); err != nil {
		return nil, err
	}
	if err := s.productRepo.ReplaceVariants(ctx, id, buildVariants(req.Variants)); err != nil {
		return nil, err
	}

	return s.GetProduct(ctx, id)
}

// DeleteProduct 删除商品
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	existing, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(ctx, id)
}

// GetProduct 商品详情
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*dto.ProductInfo, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return s.toProductInfo(product), nil
}

// ==================== 商城查询 ====================

// ListShop 商城列表，只含已上架商品
func (s *ProductService) ListShop(ctx context.Context, req *dto.ShopQueryRequest) (*dto.ShopListResponse, error) {
	filter := repository.ShopFilter{
		Keyword:       req.Keyword,
		Category:      req.Category,
		Tags:          req.Tags,
		MinPrice:      req.MinPrice,
		MaxPrice:      req.MaxPrice,
		PublishedOnly: true,
		Page:          req.Page,
		PageSize:      req.PageSize,
	}

	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ProductInfo, 0, len(products))
	for i := range products {
		items = append(items, s.toProductInfo(&products[i]))
	}

	return &dto.ShopListResponse{
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Items:    items,
	}, nil
}

// ListAdmin 后台列表，含未上架
func (s *ProductService) ListAdmin(ctx context.Context, req *dto.ShopQueryRequest) (*dto.ShopListResponse, error) {
	filter := repository.ShopFilter{
		Keyword:  req.Keyword,
		Category: req.Category,
		Tags:     req.Tags,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ProductInfo, 0, len(products))
	for i := range products {
		items = append(items, s.toProductInfo(&products[i]))
	}

	return &dto.ShopListResponse{
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Items:    items,
	}, nil
}

// ==================== 转换 ====================

// fromRequest 组装商品主体
func (s *ProductService) fromRequest(req *dto.SaveProductRequest) *model.Product {
	images, _ := json.Marshal(req.Images)
	return &model.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		BasePrice:   req.BasePrice,
		Tags:        req.Tags,
		Images:      datatypes.JSON(images),
		Published:   req.Published,
	}
}

// buildVariants 组装变体
func buildVariants(inputs []dto.VariantInput) []model.ProductVariant {
	variants := make([]model.ProductVariant, 0, len(inputs))
	for _, in := range inputs {
		props, _ := json.Marshal(in.Properties)
		enabled := true
		if in.IsEnabled != nil {
			enabled = *in.IsEnabled
		}
		variants = append(variants, model.ProductVariant{
			Name:       in.Name,
			Properties: datatypes.JSON(props),
			PriceDelta: in.PriceDelta,
			Stock:      in.Stock,
			IsEnabled:  enabled,
		})
	}
	return variants
}

// toProductInfo 转换为 DTO，变体带上算好的实际单价
func (s *ProductService) toProductInfo(product *model.Product) *dto.ProductInfo {
	var images []string
	_ = json.Unmarshal(product.Images, &images)

	variants := make([]dto.VariantInfo, 0, len(product.Variants))
	for i := range product.Variants {
		v := &product.Variants[i]
		var props map[string]string
		_ = json.Unmarshal(v.Properties, &props)
		variants = append(variants, dto.VariantInfo{
			ID:         v.ID,
			Name:       v.Name,
			Properties: props,
			PriceDelta: v.PriceDelta,
			Price:      product.BasePrice + v.PriceDelta,
			Stock:      v.Stock,
			IsEnabled:  v.IsEnabled,
		})
	}

	return &dto.ProductInfo{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Category:    product.Category,
		BasePrice:   product.BasePrice,
		Tags:        product.Tags,
		Images:      images,
		Published:   product.Published,
		Variants:    variants,
		CreatedAt:   product.CreatedAt,
	}
}

// ==================== 错误定义 ====================

var ErrProductNotFound = errors.New("商品不存在")

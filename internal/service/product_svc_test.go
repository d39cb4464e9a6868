package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"edumall_v1_202608/internal/api/dto"
	"edumall_v1_202608/internal/model"
	"edumall_v1_202608/internal/repository"
)

// ==================== 测试模型 ====================

// TestProductRow 建表用镜像模型
// products 表的 tags 列在 Postgres 里是 text[]，sqlite 建不出来
type TestProductRow struct {
	model.BaseModel

	Name        string
	Description string
	Category    string
	BasePrice   int64
	Tags        string
	Images      datatypes.JSON
	Published   bool
}

func (TestProductRow) TableName() string { return "products" }

// ==================== 测试辅助 ====================

func newProductServiceForTest(t *testing.T) (*ProductService, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&TestProductRow{}, &model.ProductVariant{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return NewProductService(repository.NewProductRepository(db), nil), db
}

func sampleProductRequest(published bool) *dto.SaveProductRequest {
	return &dto.SaveProductRequest{
		Name:      "T 恤",
		Category:  "apparel",
		BasePrice: 2000,
		Published: published,
		Images:    []string{"https://cdn.example.com/tshirt.jpg"},
		Variants: []dto.VariantInput{
			{Name: "红色 / M", Properties: map[string]string{"Color": "Red", "Size": "M"}, PriceDelta: 0, Stock: 10},
			{Name: "红色 / XL", Properties: map[string]string{"Color": "Red", "Size": "XL"}, PriceDelta: 300, Stock: 5},
		},
	}
}

// ==================== 后台维护 ====================

func TestProductService_CreateWithVariants(t *testing.T) {
	svc, _ := newProductServiceForTest(t)

	info, err := svc.CreateProduct(context.Background(), sampleProductRequest(true))
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	if len(info.Variants) != 2 {
		t.Fatalf("variants = %d, want 2", len(info.Variants))
	}
	// 变体价格 = 基础价 + 差价
	if info.Variants[0].Price != 2000 {
		t.Errorf("price = %d, want 2000", info.Variants[0].Price)
	}
	if info.Variants[1].Price != 2300 {
		t.Errorf("price = %d, want 2300", info.Variants[1].Price)
	}
	if len(info.Images) != 1 {
		t.Errorf("images = %d, want 1", len(info.Images))
	}
}

func TestProductService_UpdateReplacesVariants(t *testing.T) {
	svc, db := newProductServiceForTest(t)
	ctx := context.Background()

	info, err := svc.CreateProduct(ctx, sampleProductRequest(true))
	if err != nil {
		t.Fatalf("创建商品失败: %v", err)
	}

	// 更新时变体整组重建
	req := sampleProductRequest(true)
	req.BasePrice = 2500
	req.Variants = []dto.VariantInput{
		{Name: "蓝色 / L", Properties: map[string]string{"Color": "Blue", "Size": "L"}, PriceDelta: 100},
	}
	updated, err := svc.UpdateProduct(ctx, info.ID, req)
	if err != nil {
		t.Fatalf("更新商品失败: %v", err)
	}

	if len(updated.Variants) != 1 {
		t.Fatalf("variants = %d, want 1", len(updated.Variants))
	}
	if updated.Variants[0].Price != 2600 {
		t.Errorf("price = %d, want 2600", updated.Variants[0].Price)
	}

	// 旧变体不残留
	var count int64
	db.Model(&model.ProductVariant{}).Where("product_id = ?", info.ID).Count(&count)
	if count != 1 {
		t.Errorf("存活变体 = %d, want 1", count)
	}
}

func TestProductService_GetNotFound(t *testing.T) {
	svc, _ := newProductServiceForTest(t)

	_, err := svc.GetProduct(context.Background(), 9999)
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("err = %v, want ErrProductNotFound", err)
	}
}

// ==================== 商城查询 ====================

func TestProductService_ListShop_PublishedOnly(t *testing.T) {
	svc, _ := newProductServiceForTest(t)
	ctx := context.Background()

	svc.CreateProduct(ctx, sampleProductRequest(true))
	svc.CreateProduct(ctx, sampleProductRequest(false))

	resp, err := svc.ListShop(ctx, &dto.ShopQueryRequest{})
	if err != nil {
		t.Fatalf("商城列表失败: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("total = %d, want 1（只看已上架）", resp.Total)
	}

	respAdmin, _ := svc.ListAdmin(ctx, &dto.ShopQueryRequest{})
	if respAdmin.Total != 2 {
		t.Errorf("admin total = %d, want 2", respAdmin.Total)
	}
}

func TestProductService_ListShop_TagOverlap(t *testing.T) {
	svc, _ := newProductServiceForTest(t)
	ctx := context.Background()

	tee := sampleProductRequest(true)
	tee.Tags = []string{"summer", "cotton"}
	svc.CreateProduct(ctx, tee)

	hoodie := sampleProductRequest(true)
	hoodie.Name = "连帽衫"
	hoodie.Tags = []string{"winter", "cottonblend"}
	svc.CreateProduct(ctx, hoodie)

	// 任一标签重叠即命中
	resp, err := svc.ListShop(ctx, &dto.ShopQueryRequest{Tags: []string{"summer", "sale"}})
	if err != nil {
		t.Fatalf("商城列表失败: %v", err)
	}
	if resp.Total != 1 || resp.Items[0].Name != "T 恤" {
		t.Errorf("按标签筛选失败: total = %d", resp.Total)
	}

	// 元素整体匹配，cotton 不应命中 cottonblend
	resp, _ = svc.ListShop(ctx, &dto.ShopQueryRequest{Tags: []string{"cotton"}})
	if resp.Total != 1 || resp.Items[0].Name != "T 恤" {
		t.Errorf("标签应整体匹配: total = %d", resp.Total)
	}

	// 无重叠
	resp, _ = svc.ListShop(ctx, &dto.ShopQueryRequest{Tags: []string{"sale"}})
	if resp.Total != 0 {
		t.Errorf("total = %d, want 0", resp.Total)
	}
}

func TestProductService_ListShop_PriceRange(t *testing.T) {
	svc, _ := newProductServiceForTest(t)
	ctx := context.Background()

	cheap := sampleProductRequest(true)
	cheap.Name = "便宜货"
	cheap.BasePrice = 500
	svc.CreateProduct(ctx, cheap)

	svc.CreateProduct(ctx, sampleProductRequest(true))

	minPrice := int64(1000)
	resp, err := svc.ListShop(ctx, &dto.ShopQueryRequest{MinPrice: &minPrice})
	if err != nil {
		t.Fatalf("商城列表失败: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("total = %d, want 1", resp.Total)
	}

	maxPrice := int64(600)
	resp, _ = svc.ListShop(ctx, &dto.ShopQueryRequest{MaxPrice: &maxPrice})
	if resp.Total != 1 || resp.Items[0].Name != "便宜货" {
		t.Errorf("按最高价筛选失败: total = %d", resp.Total)
	}
}

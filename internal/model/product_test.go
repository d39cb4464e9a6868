package model

import "testing"

// ==================== 价格计算 ====================

func sampleProduct() *Product {
	return &Product{
		BaseModel: BaseModel{ID: 1},
		Name:      "T 恤",
		BasePrice: 2000,
		Variants: []ProductVariant{
			{BaseModel: BaseModel{ID: 11}, Name: "红色", PriceDelta: 0},
			{BaseModel: BaseModel{ID: 12}, Name: "XL", PriceDelta: 300},
			{BaseModel: BaseModel{ID: 13}, Name: "清仓款", PriceDelta: -500},
		},
	}
}

func TestProduct_PriceFor(t *testing.T) {
	p := sampleProduct()

	if got := p.PriceFor(nil); got != 2000 {
		t.Errorf("无变体价格 = %d, want 2000", got)
	}
	if got := p.PriceFor([]int64{11, 12}); got != 2300 {
		t.Errorf("红色+XL = %d, want 2300", got)
	}
	// 负差价
	if got := p.PriceFor([]int64{13}); got != 1500 {
		t.Errorf("清仓款 = %d, want 1500", got)
	}
	// 未知变体被忽略
	if got := p.PriceFor([]int64{999}); got != 2000 {
		t.Errorf("未知变体 = %d, want 2000", got)
	}
}

func TestProduct_FindVariants(t *testing.T) {
	p := sampleProduct()

	variants, ok := p.FindVariants([]int64{12, 11})
	if !ok {
		t.Fatal("已知变体应全部命中")
	}
	if len(variants) != 2 {
		t.Fatalf("variants = %d, want 2", len(variants))
	}
	// 返回按 ID 排序
	if variants[0].ID != 11 || variants[1].ID != 12 {
		t.Errorf("排序错误: %d, %d", variants[0].ID, variants[1].ID)
	}

	if _, ok := p.FindVariants([]int64{11, 999}); ok {
		t.Error("含未知变体时不应命中")
	}
}

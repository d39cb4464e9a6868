package dto

import "time"

// ==================== 商品维护（管理员） ====================

// VariantInput 变体输入
type VariantInput struct {
	Name       string            `json:"name" binding:"required,max=100"`
	Properties map[string]string `json:"properties"`
	PriceDelta int64             `json:"price_delta"`
	Stock      int               `json:"stock" binding:"omitempty,min=0"`
	IsEnabled  *bool             `json:"is_enabled"`
}

// SaveProductRequest 创建/更新商品请求
// Variants 整组提交，保存时整组重建
type SaveProductRequest struct {
	Name        string         `json:"name" binding:"required,max=255"`
	Description string         `json:"description"`
	Category    string         `json:"category" binding:"omitempty,max=100"`
	BasePrice   int64          `json:"base_price" binding:"min=0"`
	Tags        []string       `json:"tags"`
	Images      []string       `json:"images" binding:"omitempty,dive,url"`
	Published   bool           `json:"published"`
	Variants    []VariantInput `json:"variants"`
}

// ==================== 商品视图 ====================

// VariantInfo 变体视图
type VariantInfo struct {
	ID         int64             `json:"id"`
	Name       string            `json:"name"`
	Properties map[string]string `json:"properties,omitempty"`
	PriceDelta int64             `json:"price_delta"`
	// Price 基础价 + 差价后的实际单价，方便前端直接展示
	Price     int64 `json:"price"`
	Stock     int   `json:"stock"`
	IsEnabled bool  `json:"is_enabled"`
}

// ProductInfo 商品视图
type ProductInfo struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	BasePrice   int64         `json:"base_price"`
	Tags        []string      `json:"tags"`
	Images      []string      `json:"images"`
	Published   bool          `json:"published"`
	Variants    []VariantInfo `json:"variants"`
	CreatedAt   time.Time     `json:"created_at"`
}

// ==================== 商城查询 ====================

// ShopQueryRequest /shop 查询串
type ShopQueryRequest struct {
	Keyword  string   `form:"q"`
	Category string   `form:"category"`
	Tags     []string `form:"tags"`
	MinPrice *int64   `form:"min_price"`
	MaxPrice *int64   `form:"max_price"`
	Page     int      `form:"page,default=1"`
	PageSize int      `form:"page_size,default=20"`
}

// ShopListResponse 商城列表响应
type ShopListResponse struct {
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Items    []*ProductInfo `json:"items"`
}

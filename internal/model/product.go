package model

import (
	"sort"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// ==================== Product 商品 ====================

type Product struct {
	BaseModel

	// --- 商品基本信息 ---
	Name        string `gorm:"size:255;not null;index"`
	Description string `gorm:"type:text"`
	Category    string `gorm:"size:100;index"`

	// --- 价格 ---
	// 基础价格，单位为分，变体只存差价
	BasePrice int64 `gorm:"default:0;not null"`

	// --- 数组/标签类数据 (Postgres Array) ---
	Tags pq.StringArray `gorm:"type:text[]"`

	// --- 图片 ---
	Images datatypes.JSON `gorm:"type:jsonb"` // ["https://...", ...]

	// --- 上架状态 ---
	Published bool `gorm:"default:false;index"`

	// --- 关联关系 ---
	Variants []ProductVariant `gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string {
	return "products"
}

// PriceFor 计算某变体组合的单价 = 基础价 + 各变体差价之和
// 未知的 variantID 会被忽略（调用方应先校验）
func (p *Product) PriceFor(variantIDs []int64) int64 {
	price := p.BasePrice
	for _, id := range variantIDs {
		for i := range p.Variants {
			if p.Variants[i].ID == id {
				price += p.Variants[i].PriceDelta
				break
			}
		}
	}
	return price
}

// FindVariants 按 ID 取出变体，返回是否全部命中
func (p *Product) FindVariants(variantIDs []int64) ([]ProductVariant, bool) {
	out := make([]ProductVariant, 0, len(variantIDs))
	for _, id := range variantIDs {
		found := false
		for i := range p.Variants {
			if p.Variants[i].ID == id {
				out = append(out, p.Variants[i])
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, true
}

// ==================== ProductVariant 商品变体 ====================

type ProductVariant struct {
	BaseModel
	// --- 关联 ---
	ProductID int64    `gorm:"index;not null"`
	Product   *Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	// --- 规格 ---
	Name       string         `gorm:"size:100;not null"` // 如 "红色 / XL"
	Properties datatypes.JSON `gorm:"type:jsonb"`        // {"Color":"Red","Size":"XL"}

	// --- 价格与库存 ---
	PriceDelta int64 `gorm:"default:0"` // 相对基础价的差价（分），可为负
	// Stock 仅作展示参考，下单流程不扣减
	Stock     int  `gorm:"default:0"`
	IsEnabled bool `gorm:"default:true"`
}

func (ProductVariant) TableName() string {
	return "product_variants"
}

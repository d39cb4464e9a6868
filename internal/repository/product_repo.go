package repository

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"edumall_v1_202608/internal/model"
)

// ==================== ProductRepository 商品仓库 ====================

// ProductRepository 商品仓库接口
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ShopFilter) ([]model.Product, int64, error)
	// ReplaceVariants 整组重建变体：删旧插新，单事务内完成
	ReplaceVariants(ctx context.Context, productID int64, variants []model.ProductVariant) error
}

// ShopFilter 商城筛选条件（对应 /shop 的查询串）
type ShopFilter struct {
	Keyword       string
	Category      string
	Tags          []string
	MinPrice      *int64
	MaxPrice      *int64
	PublishedOnly bool
	Page          int
	PageSize      int
}

// ==================== 实现 ====================

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create 创建商品（连带变体）
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// GetByID 根据 ID 获取商品，预加载变体
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

// Update 更新商品主体（不动变体）
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Omit("Variants").Save(product).Error
}

// Delete 删除商品及其变体
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductVariant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Product{}, id).Error
	})
}

// List 商城商品列表
func (r *productRepository) List(ctx context.Context, filter ShopFilter) ([]model.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.PublishedOnly {
		query = query.Where("published = ?", true)
	}

	// 文本搜索
	if filter.Keyword != "" {
		keyword := "%" + filter.Keyword + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", keyword, keyword)
	}

	// 分类
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	// 标签重叠匹配：Postgres 走 && 运算符
	// 其余方言（sqlite 等）里 text[] 以 {a,b} 文本落库，按元素精确匹配
	if len(filter.Tags) > 0 {
		if r.db.Dialector.Name() == "postgres" {
			query = query.Where("tags && ?", pq.StringArray(filter.Tags))
		} else {
			cond := r.db.Session(&gorm.Session{NewDB: true})
			for i, tag := range filter.Tags {
				pattern := "%," + tag + ",%"
				if i == 0 {
					cond = cond.Where("',' || trim(tags, '{}') || ',' LIKE ?", pattern)
				} else {
					cond = cond.Or("',' || trim(tags, '{}') || ',' LIKE ?", pattern)
				}
			}
			query = query.Where(cond)
		}
	}

	// 价格区间（按基础价过滤）
	if filter.MinPrice != nil {
		query = query.Where("base_price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("base_price <= ?", *filter.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	var products []model.Product
	err := query.
		Preload("Variants").
		Order("id DESC").
		Offset(offset).
		Limit(filter.PageSize).
		Find(&products).Error

	return products, total, err
}

// ReplaceVariants 整组重建变体
// 删除和插入放在同一事务里，失败整体回滚，不会留下半套变体
func (r *productRepository) ReplaceVariants(ctx context.Context, productID int64, variants []model.ProductVariant) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("product_id = ?", productID).
			Delete(&model.ProductVariant{}).Error; err != nil {
			return err
		}

		for i := range variants {
			variants[i].ID = 0
			variants[i].ProductID = productID
		}
		if len(variants) == 0 {
			return nil
		}
		return tx.Create(&variants).Error
	})
}

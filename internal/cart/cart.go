package cart

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// ==================== Cart 购物车 ====================

// 购物车归客户端持有，服务端不落库
// 同一商品 + 同一规格组合视为同一行，重复加购只累加数量

var (
	ErrInvalidQuantity = errors.New("数量必须大于 0")
	ErrLineNotFound    = errors.New("购物车中不存在该商品行")
)

// LineKey 购物车行的唯一标识
// 由商品 ID 和排序后的规格 ID 列表构成，具备值相等语义
type LineKey string

// NewLineKey 生成行标识，规格 ID 顺序无关
func NewLineKey(productID int64, variantIDs []int64) LineKey {
	ids := make([]int64, len(variantIDs))
	copy(ids, variantIDs)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var b strings.Builder
	b.WriteString(strconv.FormatInt(productID, 10))
	for _, id := range ids {
		b.WriteByte(':')
		b.WriteString(strconv.FormatInt(id, 10))
	}
	return LineKey(b.String())
}

// Line 购物车行
// UnitPrice 为加购时的快照单价（分），后续商品调价不影响已加购行
type Line struct {
	Key        LineKey `json:"key"`
	ProductID  int64   `json:"product_id"`
	VariantIDs []int64 `json:"variant_ids"`
	Name       string  `json:"name"`
	UnitPrice  int64   `json:"unit_price"`
	Quantity   int     `json:"quantity"`
}

// Subtotal 行小计（分）
func (l *Line) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Cart 购物车
type Cart struct {
	mu    sync.Mutex
	lines map[LineKey]*Line
	order []LineKey // 保持加购顺序
	store Store
}

// New 创建购物车；store 非 nil 时先从持久层恢复已有内容
func New(store Store) (*Cart, error) {
	c := &Cart{
		lines: make(map[LineKey]*Line),
		store: store,
	}

	if store != nil {
		saved, err := store.Load()
		if err != nil {
			return nil, err
		}
		for _, l := range saved {
			line := l
			c.lines[line.Key] = &line
			c.order = append(c.order, line.Key)
		}
	}

	return c, nil
}

// Add 加入购物车
// 同一 LineKey 已存在时累加数量，单价保留首次加购时的快照
func (c *Cart) Add(productID int64, variantIDs []int64, name string, unitPrice int64, quantity int) (LineKey, error) {
	if quantity <= 0 {
		return "", ErrInvalidQuantity
	}

	key := NewLineKey(productID, variantIDs)

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.lines[key]; ok {
		existing.Quantity += quantity
	} else {
		ids := make([]int64, len(variantIDs))
		copy(ids, variantIDs)
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		c.lines[key] = &Line{
			Key:        key,
			ProductID:  productID,
			VariantIDs: ids,
			Name:       name,
			UnitPrice:  unitPrice,
			Quantity:   quantity,
		}
		c.order = append(c.order, key)
	}

	return key, c.persistLocked()
}

// UpdateQuantity 修改行数量；数量小于等于 0 等价于移除该行
func (c *Cart) UpdateQuantity(key LineKey, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.lines[key]; !ok {
		return ErrLineNotFound
	}

	if quantity <= 0 {
		c.removeLocked(key)
	} else {
		c.lines[key].Quantity = quantity
	}

	return c.persistLocked()
}

// Remove 移除行
func (c *Cart) Remove(key LineKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.lines[key]; !ok {
		return ErrLineNotFound
	}

	c.removeLocked(key)
	return c.persistLocked()
}

// Clear 清空购物车
func (c *Cart) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = make(map[LineKey]*Line)
	c.order = nil
	return c.persistLocked()
}

// Lines 按加购顺序返回所有行的副本
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.linesLocked()
}

// Total 购物车总价（分）
func (c *Cart) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total int64
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

// ItemCount 商品总件数
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) removeLocked(key LineKey) {
	delete(c.lines, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Cart) linesLocked() []Line {
	out := make([]Line, 0, len(c.order))
	for _, key := range c.order {
		if l, ok := c.lines[key]; ok {
			out = append(out, *l)
		}
	}
	return out
}

func (c *Cart) persistLocked() error {
	if c.store == nil {
		return nil
	}
	return c.store.Save(c.linesLocked())
}

package helper

import (
	"strings"

	"coffeetek_pos/constants"
	"coffeetek_pos/model"
)

// CartItem là một dòng trong giỏ, mang giá đã snapshot giống hệt dòng món
// server sẽ lưu. Key là khóa gộp dòng (xem DedupKey).
type CartItem struct {
	Key         string
	ProductID   uint
	ProductName string
	UnitPrice   float64
	Quantity    int
	Modifiers   []model.OrderModifierInput
	Note        string
	TotalPrice  float64
}

// Cart là giỏ hàng của một phiên bán tại quầy. Mỗi phiên một instance,
// truyền qua luồng order chứ không dùng biến toàn cục, để luật gộp dòng và
// luật tính giá có thể test độc lập với server.
type Cart struct {
	items          []CartItem
	currentOrderID *uint
}

func NewCart() *Cart {
	return &Cart{}
}

// NewCartItem tạo dòng giỏ hàng từ catalog qua đúng đường tính giá của server
// (BuildOrderDetail), nên báo giá trước khi gửi luôn khớp giá trị được lưu.
func NewCartItem(product *model.Product, quantity int, selections []model.OrderModifierInput, note string) (CartItem, error) {
	detail, err := BuildOrderDetail(product, quantity, selections, note)
	if err != nil {
		return CartItem{}, err
	}

	mods := make([]model.OrderModifierInput, 0, len(detail.Modifiers))
	ids := make([]uint, 0, len(detail.Modifiers))
	for _, m := range detail.Modifiers {
		mods = append(mods, model.OrderModifierInput{
			ModifierID:   m.ModifierID,
			ModifierName: m.ModifierName,
			ExtraPrice:   m.Price,
			GroupName:    m.GroupName,
		})
		ids = append(ids, m.ModifierID)
	}

	return CartItem{
		Key:         DedupKey(product.ID, ids, note),
		ProductID:   product.ID,
		ProductName: detail.ProductName,
		UnitPrice:   detail.Price,
		Quantity:    quantity,
		Modifiers:   mods,
		Note:        strings.TrimSpace(note),
		TotalPrice:  detail.TotalLineAmount,
	}, nil
}

// Add gộp vào dòng cũ nếu trùng khóa (cộng số lượng và thành tiền), ngược lại thêm dòng mới
func (c *Cart) Add(item CartItem) {
	for i := range c.items {
		if c.items[i].Key == item.Key {
			c.items[i].Quantity += item.Quantity
			c.items[i].TotalPrice += item.TotalPrice
			return
		}
	}
	c.items = append(c.items, item)
}

func (c *Cart) Remove(key string) {
	kept := c.items[:0]
	for _, it := range c.items {
		if it.Key != key {
			kept = append(kept, it)
		}
	}
	c.items = kept
}

// ChangeQuantity tăng/giảm số lượng một dòng. Thành tiền tính lại theo tỷ lệ
// từ giá trị đã lưu trong dòng, không tra lại catalog. Về 0 thì xóa dòng.
func (c *Cart) ChangeQuantity(key string, delta int) {
	for i := range c.items {
		if c.items[i].Key != key {
			continue
		}
		newQty := c.items[i].Quantity + delta
		if newQty <= 0 {
			c.Remove(key)
			return
		}
		unit := 0.0
		if c.items[i].Quantity > 0 {
			unit = c.items[i].TotalPrice / float64(c.items[i].Quantity)
		}
		c.items[i].Quantity = newQty
		c.items[i].TotalPrice = unit * float64(newQty)
		return
	}
}

func (c *Cart) Total() float64 {
	total := 0.0
	for _, it := range c.items {
		total += it.TotalPrice
	}
	return total
}

func (c *Cart) Count() int {
	count := 0
	for _, it := range c.items {
		count += it.Quantity
	}
	return count
}

func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) CurrentOrderID() *uint {
	return c.currentOrderID
}

func (c *Cart) Clear() {
	c.items = nil
	c.currentOrderID = nil
}

// LoadFromOrder dựng lại giỏ từ đơn đã lưu để sửa. Giá lấy nguyên từ snapshot
// trong đơn, tuyệt đối không lấy giá catalog hiện tại, để phiên sửa không làm
// trôi giá của đơn cũ.
func (c *Cart) LoadFromOrder(order *model.Order) {
	c.items = nil
	c.currentOrderID = &order.ID

	for _, item := range order.Items {
		if item.ItemStatus == constants.ItemCancelled {
			continue
		}
		mods := make([]model.OrderModifierInput, 0, len(item.Modifiers))
		ids := make([]uint, 0, len(item.Modifiers))
		for _, m := range item.Modifiers {
			mods = append(mods, model.OrderModifierInput{
				ModifierID:   m.ModifierID,
				ModifierName: m.ModifierName,
				ExtraPrice:   m.Price,
				GroupName:    m.GroupName,
			})
			ids = append(ids, m.ModifierID)
		}
		c.items = append(c.items, CartItem{
			Key:         DedupKey(item.ProductID, ids, item.Note),
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.Price,
			Quantity:    item.Quantity,
			Modifiers:   mods,
			Note:        strings.TrimSpace(item.Note),
			TotalPrice:  item.TotalLineAmount,
		})
	}
}

// ToOrderItems xuất giỏ thành payload gửi server
func (c *Cart) ToOrderItems() []model.OrderItemInput {
	out := make([]model.OrderItemInput, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, model.OrderItemInput{
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			Price:           it.UnitPrice,
			Quantity:        it.Quantity,
			TotalLineAmount: it.TotalPrice,
			Note:            it.Note,
			Modifiers:       it.Modifiers,
		})
	}
	return out
}

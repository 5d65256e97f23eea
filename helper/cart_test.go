package helper

import (
	"testing"

	"coffeetek_pos/constants"
	"coffeetek_pos/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddMergesDuplicateLines(t *testing.T) {
	product := catalogProduct()
	cart := NewCart()

	first, err := NewCartItem(product, 1, []model.OrderModifierInput{{ModifierID: 11}}, "ít đá")
	require.NoError(t, err)
	// Cùng món, cùng topping nhưng chọn theo thứ tự khác, ghi chú thừa khoảng trắng
	second, err := NewCartItem(product, 2, []model.OrderModifierInput{{ModifierID: 11}}, "  ít đá ")
	require.NoError(t, err)
	other, err := NewCartItem(product, 1, []model.OrderModifierInput{{ModifierID: 10}}, "ít đá")
	require.NoError(t, err)

	cart.Add(first)
	cart.Add(second)
	cart.Add(other)

	items := cart.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 3, items[0].Quantity)
	assert.InDelta(t, 105000, items[0].TotalPrice, 0.001) // 35000 × 3
	assert.Equal(t, 4, cart.Count())
	assert.InDelta(t, 135000, cart.Total(), 0.001)
}

func TestCartChangeQuantityProportional(t *testing.T) {
	product := catalogProduct()
	cart := NewCart()

	item, err := NewCartItem(product, 2, []model.OrderModifierInput{{ModifierID: 11}, {ModifierID: 20}}, "")
	require.NoError(t, err)
	cart.Add(item) // (30000+5000+7000) × 2 = 84000

	cart.ChangeQuantity(item.Key, 1)
	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.InDelta(t, 126000, items[0].TotalPrice, 0.001)

	cart.ChangeQuantity(item.Key, -3)
	assert.Empty(t, cart.Items())
}

func TestCartRemove(t *testing.T) {
	product := catalogProduct()
	cart := NewCart()

	a, err := NewCartItem(product, 1, []model.OrderModifierInput{{ModifierID: 10}}, "")
	require.NoError(t, err)
	b, err := NewCartItem(product, 1, []model.OrderModifierInput{{ModifierID: 11}}, "")
	require.NoError(t, err)
	cart.Add(a)
	cart.Add(b)

	cart.Remove(a.Key)
	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, b.Key, items[0].Key)
}

func TestCartLoadFromOrderKeepsSnapshotPrices(t *testing.T) {
	orderID := uint(7)
	order := &model.Order{
		DTO: model.DTO{ID: orderID},
		Items: []model.OrderDetail{
			{
				ProductID:       5,
				ProductName:     "Cà phê sữa đá",
				Price:           28000, // giá cũ, catalog hiện tại đã là 30000
				Quantity:        2,
				TotalLineAmount: 66000,
				ItemStatus:      constants.ItemPending,
				Modifiers: []model.OrderModifierDetail{
					{ModifierID: 11, ModifierName: "Size L", Price: 5000, GroupName: "Size"},
				},
			},
			{
				ProductID:       9,
				ProductName:     "Món đã hủy",
				Price:           10000,
				Quantity:        1,
				TotalLineAmount: 10000,
				ItemStatus:      constants.ItemCancelled,
			},
		},
	}

	cart := NewCart()
	cart.LoadFromOrder(order)

	require.NotNil(t, cart.CurrentOrderID())
	assert.Equal(t, orderID, *cart.CurrentOrderID())

	items := cart.Items()
	require.Len(t, items, 1) // dòng CANCELLED không quay lại giỏ
	assert.Equal(t, 28000.0, items[0].UnitPrice)
	assert.InDelta(t, 66000, items[0].TotalPrice, 0.001)

	// Sửa số lượng trong phiên sửa đơn vẫn tính theo giá snapshot
	cart.ChangeQuantity(items[0].Key, 1)
	assert.InDelta(t, 99000, cart.Total(), 0.001)

	// Payload gửi lại server giữ nguyên giá snapshot
	payload := cart.ToOrderItems()
	require.Len(t, payload, 1)
	assert.Equal(t, 28000.0, payload[0].Price)
	assert.Equal(t, 3, payload[0].Quantity)
	assert.InDelta(t, 99000, payload[0].TotalLineAmount, 0.001)
}

func TestCartClear(t *testing.T) {
	product := catalogProduct()
	cart := NewCart()

	item, err := NewCartItem(product, 1, []model.OrderModifierInput{{ModifierID: 10}}, "")
	require.NoError(t, err)
	cart.Add(item)
	cart.LoadFromOrder(&model.Order{DTO: model.DTO{ID: 3}})

	cart.Clear()
	assert.Empty(t, cart.Items())
	assert.Nil(t, cart.CurrentOrderID())
	assert.Zero(t, cart.Total())
}

package helper

import (
	"fmt"
	"sort"
	"strings"

	"coffeetek_pos/constants"
	"coffeetek_pos/model"
)

// BuildOrderDetail tạo một dòng món với giá snapshot tại thời điểm thêm món:
// tên món, đơn giá và giá topping được copy từ catalog hiện tại vào dòng,
// totalLineAmount tính đúng một lần ở đây. Các tổng về sau chỉ cộng lại giá trị
// đã lưu, không bao giờ tra lại catalog.
func BuildOrderDetail(product *model.Product, quantity int, selections []model.OrderModifierInput, note string) (model.OrderDetail, error) {
	if err := ValidateSelections(product.ModifierGroups, selections); err != nil {
		return model.OrderDetail{}, err
	}

	detail := model.OrderDetail{
		ProductID:   product.ID,
		ProductName: product.ProductName,
		Price:       product.PriceValue,
		Quantity:    quantity,
		Note:        strings.TrimSpace(note),
		ItemStatus:  constants.ItemPending,
	}

	extraTotal := 0.0
	for _, sel := range selections {
		mod, group := FindModifier(product.ModifierGroups, sel.ModifierID)
		if mod == nil {
			return model.OrderDetail{}, &SelectionError{Code: SelectionUnknownModifier, ModifierID: sel.ModifierID}
		}
		detail.Modifiers = append(detail.Modifiers, model.OrderModifierDetail{
			ModifierID:   mod.ID,
			ModifierName: mod.ModifierName,
			Price:        mod.ExtraPrice,
			Quantity:     1,
			GroupName:    group.GroupName,
		})
		extraTotal += mod.ExtraPrice
	}

	detail.TotalLineAmount = (detail.Price + extraTotal) * float64(quantity)
	return detail, nil
}

// DedupKey sinh khóa gộp dòng: cùng món + cùng bộ topping + cùng ghi chú là một dòng.
// Client và server phải dùng đúng một luật này, nếu lệch nhau thì giỏ hàng gửi lại
// sẽ âm thầm lệch tổng với server.
func DedupKey(productID uint, modifierIDs []uint, note string) string {
	ids := make([]uint, len(modifierIDs))
	copy(ids, modifierIDs)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return fmt.Sprintf("%d_%s_%s", productID, strings.Join(parts, "-"), strings.TrimSpace(note))
}

func itemInputKey(item model.OrderItemInput) string {
	ids := make([]uint, 0, len(item.Modifiers))
	for _, m := range item.Modifiers {
		ids = append(ids, m.ModifierID)
	}
	return DedupKey(item.ProductID, ids, item.Note)
}

// NormalizeOrderItems gộp các dòng trùng khóa trong payload gửi lên
// (cộng dồn số lượng và thành tiền), giữ nguyên thứ tự xuất hiện đầu tiên.
func NormalizeOrderItems(items []model.OrderItemInput) []model.OrderItemInput {
	merged := make([]model.OrderItemInput, 0, len(items))
	index := map[string]int{}

	for _, item := range items {
		key := itemInputKey(item)
		if at, ok := index[key]; ok {
			merged[at].Quantity += item.Quantity
			merged[at].TotalLineAmount += item.TotalLineAmount
			continue
		}
		index[key] = len(merged)
		merged = append(merged, item)
	}
	return merged
}

// SumLineItems cộng thành tiền của các dòng chưa hủy
func SumLineItems(items []model.OrderDetail) float64 {
	total := 0.0
	for _, it := range items {
		if it.ItemStatus != constants.ItemCancelled {
			total += it.TotalLineAmount
		}
	}
	return total
}

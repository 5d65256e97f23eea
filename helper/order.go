package helper

import (
	"errors"
	"fmt"
	"math"
	"time"

	"coffeetek_pos/constants"
	"coffeetek_pos/model"

	"gorm.io/gorm"
)

// FetchOrder đọc đơn đầy đủ (dòng món + topping), không cần khóa ghi
func FetchOrder(db *gorm.DB, orderID uint) (*model.Order, error) {
	var order model.Order
	if err := db.
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("order_details.id ASC") }).
		Preload("Items.Modifiers").
		First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// CreateDineInOrder tạo đơn tại bàn và ràng buộc bàn với đơn trong một
// transaction: bàn phải AVAILABLE, món được snapshot giá từ catalog ngay lúc
// tạo, bind thất bại thì cả đơn rollback — không bao giờ để đơn mồ côi.
func CreateDineInOrder(db *gorm.DB, input model.CreateOrderInput) (*model.Order, error) {
	var created model.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var table model.Table
		if err := lockForUpdate(tx).First(&table, input.TableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTableNotFound
			}
			return err
		}
		if table.Status != constants.TableAvailable {
			return ErrTableNotAvailable
		}

		items, total, err := snapshotItems(tx, input.Items)
		if err != nil {
			return err
		}

		orderType := input.OrderType
		if orderType == "" {
			orderType = constants.OrderTypeDineIn
		}

		order := model.Order{
			OrderCode:     GenerateOrderCode(),
			TableID:       &table.ID,
			OrderType:     orderType,
			Status:        constants.OrderPending,
			PaymentStatus: constants.PaymentUnpaid,
			TotalAmount:   total,
			Note:          input.Note,
			CreatedBy:     input.CreatedBy,
			Items:         items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if err := bindTable(tx, &table, order.ID); err != nil {
			return err
		}
		if err := verifyTableBinding(tx, table.ID); err != nil {
			return err
		}

		if err := writeOrderLog(tx, order.ID, "", constants.OrderPending,
			constants.LogActionCreate, input.CreatedBy, "Tạo đơn tại bàn "+table.TableName); err != nil {
			return err
		}

		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// snapshotItems gộp dòng trùng rồi snapshot giá từng món từ catalog trong cùng transaction
func snapshotItems(tx *gorm.DB, inputs []model.OrderItemInput) ([]model.OrderDetail, float64, error) {
	normalized := NormalizeOrderItems(inputs)

	details := make([]model.OrderDetail, 0, len(normalized))
	total := 0.0
	for _, in := range normalized {
		var product model.Product
		if err := tx.Preload("ModifierGroups.Modifiers").First(&product, in.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, fmt.Errorf("%w: món id=%d không tồn tại", ErrInvalidLineItems, in.ProductID)
			}
			return nil, 0, err
		}
		if !product.IsActive {
			return nil, 0, fmt.Errorf("%w: món %q đã ngừng bán", ErrInvalidLineItems, product.ProductName)
		}

		detail, err := BuildOrderDetail(&product, in.Quantity, in.Modifiers, in.Note)
		if err != nil {
			return nil, 0, err
		}
		details = append(details, detail)
		total += detail.TotalLineAmount
	}
	return details, total, nil
}

// ReplaceOrder thay toàn bộ dòng món của một đơn PENDING (xóa hết, ghi lại —
// đúng mô hình client gửi lại cả đơn, không diff). Giá trong payload là giá
// snapshot client giữ từ lần đọc trước nên được giữ nguyên, chỉ kiểm tra
// số học từng dòng.
func ReplaceOrder(db *gorm.DB, orderID uint, input model.UpdateOrderInput) (*model.Order, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		var order model.Order
		if err := lockForUpdate(tx).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if order.Status != constants.OrderPending {
			return ErrOrderNotEditable
		}

		details, total, err := rebuildDetails(input.Items)
		if err != nil {
			return err
		}
		if input.TotalAmount > 0 && math.Abs(input.TotalAmount-total) > 0.01 {
			return fmt.Errorf("%w: tổng gửi lên %.0f khác tổng các dòng %.0f",
				ErrInvalidLineItems, input.TotalAmount, total)
		}

		// Xóa nguyên bộ dòng cũ trước khi ghi bộ mới
		var oldDetailIDs []uint
		if err := tx.Model(&model.OrderDetail{}).
			Where("order_id = ?", orderID).
			Pluck("id", &oldDetailIDs).Error; err != nil {
			return err
		}
		if len(oldDetailIDs) > 0 {
			if err := tx.Where("order_detail_id IN ?", oldDetailIDs).
				Delete(&model.OrderModifierDetail{}).Error; err != nil {
				return err
			}
			if err := tx.Where("order_id = ?", orderID).
				Delete(&model.OrderDetail{}).Error; err != nil {
				return err
			}
		}

		for i := range details {
			details[i].OrderID = orderID
		}
		if err := tx.Create(&details).Error; err != nil {
			return err
		}

		if err := tx.Model(&order).Updates(map[string]any{
			"total_amount":    total,
			"discount_amount": input.DiscountAmount,
			"note":            input.Note,
		}).Error; err != nil {
			return err
		}

		return writeOrderLog(tx, order.ID, constants.OrderPending, constants.OrderPending,
			constants.LogActionUpdate, input.UpdatedBy, "Cập nhật đơn hàng")
	})
	if err != nil {
		return nil, err
	}
	return FetchOrder(db, orderID)
}

// rebuildDetails dựng lại bộ dòng món từ payload sửa đơn, giữ nguyên giá snapshot
func rebuildDetails(inputs []model.OrderItemInput) ([]model.OrderDetail, float64, error) {
	normalized := NormalizeOrderItems(inputs)

	details := make([]model.OrderDetail, 0, len(normalized))
	total := 0.0
	for _, in := range normalized {
		extraTotal := 0.0
		mods := make([]model.OrderModifierDetail, 0, len(in.Modifiers))
		for _, m := range in.Modifiers {
			mods = append(mods, model.OrderModifierDetail{
				ModifierID:   m.ModifierID,
				ModifierName: m.ModifierName,
				Price:        m.ExtraPrice,
				Quantity:     1,
				GroupName:    m.GroupName,
			})
			extraTotal += m.ExtraPrice
		}

		lineTotal := (in.Price + extraTotal) * float64(in.Quantity)
		if in.TotalLineAmount > 0 && math.Abs(in.TotalLineAmount-lineTotal) > 0.01 {
			return nil, 0, fmt.Errorf("%w: thành tiền món %q không khớp đơn giá × số lượng",
				ErrInvalidLineItems, in.ProductName)
		}

		details = append(details, model.OrderDetail{
			ProductID:       in.ProductID,
			ProductName:     in.ProductName,
			Price:           in.Price,
			Quantity:        in.Quantity,
			TotalLineAmount: lineTotal,
			Note:            in.Note,
			ItemStatus:      constants.ItemPending,
			Modifiers:       mods,
		})
		total += lineTotal
	}
	return details, total, nil
}

// SettleOrder chốt đơn: COMPLETED/PAID, ghi giảm giá + tiền khách đưa + tiền
// thối, các món PENDING chuyển SERVED, bàn chuyển CLEANING — tất cả trong một
// transaction.
func SettleOrder(db *gorm.DB, orderID uint, input model.SettleOrderInput) (*model.Order, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		var order model.Order
		if err := lockForUpdate(tx).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if order.Status != constants.OrderPending {
			return ErrOrderNotPending
		}

		change := input.PayerAmount - input.FinalAmount
		if change < 0 {
			change = 0
		}

		now := time.Now()
		if err := tx.Model(&order).Updates(map[string]any{
			"status":          constants.OrderCompleted,
			"payment_status":  constants.PaymentPaid,
			"payment_method":  input.PaymentMethod,
			"total_amount":    input.FinalAmount,
			"discount_amount": input.DiscountAmount,
			"payer_amount":    input.PayerAmount,
			"change_amount":   change,
			"completed_at":    now,
		}).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.OrderDetail{}).
			Where("order_id = ? AND item_status = ?", order.ID, constants.ItemPending).
			Update("item_status", constants.ItemServed).Error; err != nil {
			return err
		}

		if order.TableID != nil {
			var table model.Table
			if err := lockForUpdate(tx).First(&table, *order.TableID).Error; err != nil {
				return err
			}
			if err := releaseTable(tx, &table, constants.TableCleaning); err != nil {
				return err
			}
			if err := verifyTableBinding(tx, table.ID); err != nil {
				return err
			}
		}

		return writeOrderLog(tx, order.ID, constants.OrderPending, constants.OrderCompleted,
			constants.LogActionSettle, input.SettledBy,
			fmt.Sprintf("Thanh toán %s, giảm %.0f, khách đưa %.0f", input.PaymentMethod, input.DiscountAmount, input.PayerAmount))
	})
	if err != nil {
		return nil, err
	}
	return FetchOrder(db, orderID)
}

// CancelOrder hủy một đơn PENDING và trả bàn về AVAILABLE (chưa thanh toán
// thì không cần dọn bàn)
func CancelOrder(db *gorm.DB, orderID uint, reason string, cancelledBy uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var order model.Order
		if err := lockForUpdate(tx).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if order.Status != constants.OrderPending {
			return ErrOrderNotPending
		}

		if err := cancelOrderTx(tx, &order, reason, cancelledBy); err != nil {
			return err
		}

		if order.TableID != nil {
			var table model.Table
			if err := lockForUpdate(tx).First(&table, *order.TableID).Error; err != nil {
				return err
			}
			if err := releaseTable(tx, &table, constants.TableAvailable); err != nil {
				return err
			}
			if err := verifyTableBinding(tx, table.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

// cancelOrderTx là bước hủy dùng chung cho hủy trực tiếp và gộp bàn:
// đơn về CANCELLED, tổng về 0, mọi dòng còn lại bị đánh dấu CANCELLED.
// Không đụng tới bàn — caller tự quyết định trả bàn thế nào.
func cancelOrderTx(tx *gorm.DB, order *model.Order, reason string, cancelledBy uint) error {
	now := time.Now()
	if err := tx.Model(order).Updates(map[string]any{
		"status":       constants.OrderCancelled,
		"total_amount": 0,
		"cancelled_at": now,
	}).Error; err != nil {
		return err
	}

	if err := tx.Model(&model.OrderDetail{}).
		Where("order_id = ?", order.ID).
		Update("item_status", constants.ItemCancelled).Error; err != nil {
		return err
	}

	return writeOrderLog(tx, order.ID, constants.OrderPending, constants.OrderCancelled,
		constants.LogActionCancel, cancelledBy, reason)
}

func writeOrderLog(tx *gorm.DB, orderID uint, oldStatus, newStatus, action string, userID uint, note string) error {
	return tx.Create(&model.OrderLog{
		OrderID:         orderID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
		Action:          action,
		ChangedByUserID: userID,
		Note:            note,
	}).Error
}

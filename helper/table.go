package helper

import (
	"errors"
	"fmt"

	"coffeetek_pos/constants"
	"coffeetek_pos/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate khóa hàng sắp mutate (SELECT ... FOR UPDATE) để hai terminal
// không cùng thấy một bàn AVAILABLE. SQLite trong test không hỗ trợ cú pháp này.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// bindTable gắn đơn vào bàn AVAILABLE. Caller phải đang giữ khóa hàng của bàn.
func bindTable(tx *gorm.DB, table *model.Table, orderID uint) error {
	if table.Status != constants.TableAvailable {
		return ErrTableNotAvailable
	}
	return tx.Model(table).Updates(map[string]any{
		"status":           constants.TableOccupied,
		"current_order_id": orderID,
	}).Error
}

// releaseTable gỡ đơn khỏi bàn, chuyển sang nextStatus (AVAILABLE hoặc CLEANING)
func releaseTable(tx *gorm.DB, table *model.Table, nextStatus string) error {
	return tx.Model(table).Updates(map[string]any{
		"status":           nextStatus,
		"current_order_id": nil,
	}).Error
}

// verifyTableBinding khẳng định invariant hai chiều trước khi commit:
// bàn OCCUPIED <=> current_order_id trỏ tới một đơn PENDING có table_id trỏ
// ngược lại bàn. Không tin mỗi phía tự giữ đúng phía của mình.
func verifyTableBinding(tx *gorm.DB, tableID uint) error {
	var table model.Table
	if err := tx.First(&table, tableID).Error; err != nil {
		return err
	}

	if table.Status != constants.TableOccupied {
		if table.CurrentOrderID != nil {
			return fmt.Errorf("%w: bàn %d %s nhưng vẫn giữ đơn %d",
				ErrBindingCorrupted, table.ID, table.Status, *table.CurrentOrderID)
		}
		return nil
	}

	if table.CurrentOrderID == nil {
		return fmt.Errorf("%w: bàn %d OCCUPIED nhưng không giữ đơn nào", ErrBindingCorrupted, table.ID)
	}

	var order model.Order
	if err := tx.First(&order, *table.CurrentOrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: bàn %d trỏ tới đơn %d không tồn tại",
				ErrBindingCorrupted, table.ID, *table.CurrentOrderID)
		}
		return err
	}
	if order.Status != constants.OrderPending {
		return fmt.Errorf("%w: bàn %d giữ đơn %d ở trạng thái %s",
			ErrBindingCorrupted, table.ID, order.ID, order.Status)
	}
	if order.TableID == nil || *order.TableID != table.ID {
		return fmt.Errorf("%w: đơn %d không trỏ ngược về bàn %d", ErrBindingCorrupted, order.ID, table.ID)
	}
	return nil
}

// MoveOrder chuyển một đơn PENDING sang bàn trống khác. Bốn bước (đổi table_id,
// bind bàn đích, trả bàn cũ, kiểm tra invariant) commit cùng nhau; bàn đích có
// khách thì fail sạch, không đổi gì — không tự động biến thành gộp bàn.
func MoveOrder(db *gorm.DB, orderID, targetTableID uint) error {
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
		sourceTableID := order.TableID

		var target model.Table
		if err := lockForUpdate(tx).First(&target, targetTableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTableNotFound
			}
			return err
		}
		if target.Status != constants.TableAvailable {
			return ErrTargetTableOccupied
		}

		if err := tx.Model(&order).Update("table_id", targetTableID).Error; err != nil {
			return err
		}
		if err := bindTable(tx, &target, order.ID); err != nil {
			return err
		}

		if sourceTableID != nil {
			var source model.Table
			if err := lockForUpdate(tx).First(&source, *sourceTableID).Error; err != nil {
				return err
			}
			if err := releaseTable(tx, &source, constants.TableAvailable); err != nil {
				return err
			}
			if err := verifyTableBinding(tx, source.ID); err != nil {
				return err
			}
		}
		if err := verifyTableBinding(tx, target.ID); err != nil {
			return err
		}

		return writeOrderLog(tx, order.ID, constants.OrderPending, constants.OrderPending,
			constants.LogActionMoveTable, order.CreatedBy,
			fmt.Sprintf("Chuyển sang bàn %s", target.TableName))
	})
}

// MergeOrder gộp đơn nguồn vào đơn đang mở trên bàn đích: các dòng chưa hủy
// chuyển quyền sở hữu (không copy), tổng đơn đích tính lại từ chính các dòng
// của nó chứ không cộng hai tổng cũ, đơn nguồn bị hủy và bàn nguồn được trả.
func MergeOrder(db *gorm.DB, sourceOrderID, targetTableID uint) (*model.Order, error) {
	var targetOrderID uint

	err := db.Transaction(func(tx *gorm.DB) error {
		var source model.Order
		if err := lockForUpdate(tx).First(&source, sourceOrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if source.Status != constants.OrderPending {
			return ErrOrderNotPending
		}

		var target model.Table
		if err := lockForUpdate(tx).First(&target, targetTableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTableNotFound
			}
			return err
		}
		// Gộp cần bàn đích đang có đơn mở; bàn trống thì phải dùng chuyển bàn
		if target.Status != constants.TableOccupied || target.CurrentOrderID == nil ||
			*target.CurrentOrderID == source.ID {
			return ErrTargetTableEmpty
		}

		var targetOrder model.Order
		if err := lockForUpdate(tx).First(&targetOrder, *target.CurrentOrderID).Error; err != nil {
			return err
		}
		if targetOrder.Status != constants.OrderPending {
			return fmt.Errorf("%w: bàn %d giữ đơn %d ở trạng thái %s",
				ErrBindingCorrupted, target.ID, targetOrder.ID, targetOrder.Status)
		}

		// Chuyển quyền sở hữu các dòng chưa hủy sang đơn đích
		if err := tx.Model(&model.OrderDetail{}).
			Where("order_id = ? AND item_status <> ?", source.ID, constants.ItemCancelled).
			Update("order_id", targetOrder.ID).Error; err != nil {
			return err
		}

		// Tính lại tổng đơn đích từ các dòng hiện có của nó
		var items []model.OrderDetail
		if err := tx.Where("order_id = ?", targetOrder.ID).Find(&items).Error; err != nil {
			return err
		}
		if err := tx.Model(&targetOrder).
			Update("total_amount", SumLineItems(items)).Error; err != nil {
			return err
		}

		if err := cancelOrderTx(tx, &source, "Đã gộp sang đơn "+targetOrder.OrderCode, 0); err != nil {
			return err
		}

		if source.TableID != nil {
			var sourceTable model.Table
			if err := lockForUpdate(tx).First(&sourceTable, *source.TableID).Error; err != nil {
				return err
			}
			if err := releaseTable(tx, &sourceTable, constants.TableAvailable); err != nil {
				return err
			}
			if err := verifyTableBinding(tx, sourceTable.ID); err != nil {
				return err
			}
		}
		if err := verifyTableBinding(tx, target.ID); err != nil {
			return err
		}

		targetOrderID = targetOrder.ID
		return writeOrderLog(tx, targetOrder.ID, constants.OrderPending, constants.OrderPending,
			constants.LogActionMergeTable, 0,
			fmt.Sprintf("Gộp đơn %s từ bàn khác sang", source.OrderCode))
	})
	if err != nil {
		return nil, err
	}
	return FetchOrder(db, targetOrderID)
}

// ConfirmTableCleaned xác nhận dọn bàn xong: chỉ CLEANING -> AVAILABLE
func ConfirmTableCleaned(db *gorm.DB, tableID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var table model.Table
		if err := lockForUpdate(tx).First(&table, tableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTableNotFound
			}
			return err
		}
		if table.Status != constants.TableCleaning {
			return ErrTableNotCleaning
		}
		return tx.Model(&table).Update("status", constants.TableAvailable).Error
	})
}

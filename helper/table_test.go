package helper

import (
	"testing"

	"coffeetek_pos/constants"
	"coffeetek_pos/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openOrderAt(t *testing.T, db *gorm.DB, fx fixture, tableID uint, items []model.OrderItemInput) *model.Order {
	t.Helper()
	order, err := CreateDineInOrder(db, model.CreateOrderInput{
		TableID:   tableID,
		CreatedBy: 1,
		Items:     items,
	})
	require.NoError(t, err)
	return order
}

func coffeeItems(fx fixture, quantity int) []model.OrderItemInput {
	return []model.OrderItemInput{
		{ProductID: fx.CoffeeMilk.ID, Quantity: quantity, Modifiers: sizeMSelection(fx)},
	}
}

func TestMoveOrder(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)

	order := openOrderAt(t, db, fx, fx.Tables[0].ID, coffeeItems(fx, 2))

	require.NoError(t, MoveOrder(db, order.ID, fx.Tables[1].ID))

	var source, target model.Table
	require.NoError(t, db.First(&source, fx.Tables[0].ID).Error)
	require.NoError(t, db.First(&target, fx.Tables[1].ID).Error)

	assert.Equal(t, constants.TableAvailable, source.Status)
	assert.Nil(t, source.CurrentOrderID)
	assert.Equal(t, constants.TableOccupied, target.Status)
	require.NotNil(t, target.CurrentOrderID)
	assert.Equal(t, order.ID, *target.CurrentOrderID)

	moved, err := FetchOrder(db, order.ID)
	require.NoError(t, err)
	require.NotNil(t, moved.TableID)
	assert.Equal(t, fx.Tables[1].ID, *moved.TableID)
	assert.InDelta(t, 60000, moved.TotalAmount, 0.001)

	var logs []model.OrderLog
	require.NoError(t, db.Where("order_id = ? AND action = ?", order.ID, constants.LogActionMoveTable).
		Find(&logs).Error)
	assert.Len(t, logs, 1)
}

func TestMoveOrderTargetBusyChangesNothing(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)

	order := openOrderAt(t, db, fx, fx.Tables[0].ID, coffeeItems(fx, 2))
	other := openOrderAt(t, db, fx, fx.Tables[1].ID, coffeeItems(fx, 1))

	err := MoveOrder(db, order.ID, fx.Tables[1].ID)
	assert.ErrorIs(t, err, ErrTargetTableOccupied)

	// Không bàn nào, đơn nào bị chạm tới
	var source, target model.Table
	require.NoError(t, db.First(&source, fx.Tables[0].ID).Error)
	require.NoError(t, db.First(&target, fx.Tables[1].ID).Error)
	assert.Equal(t, constants.TableOccupied, source.Status)
	require.NotNil(t, source.CurrentOrderID)
	assert.Equal(t, order.ID, *source.CurrentOrderID)
	require.NotNil(t, target.CurrentOrderID)
	assert.Equal(t, other.ID, *target.CurrentOrderID)

	kept, err := FetchOrder(db, order.ID)
	require.NoError(t, err)
	require.NotNil(t, kept.TableID)
	assert.Equal(t, fx.Tables[0].ID, *kept.TableID)

	// Thao tác thất bại có thể thử lại nguyên văn sau khi bàn đích trống
	require.NoError(t, CancelOrder(db, other.ID, "đóng bàn", 1))
	require.NoError(t, MoveOrder(db, order.ID, fx.Tables[1].ID))
}

func TestMoveOrderRejectsNonPending(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)

	order := openOrderAt(t, db, fx, fx.Tables[0].ID, coffeeItems(fx, 1))
	_, err := SettleOrder(db, order.ID, model.SettleOrderInput{
		PaymentMethod: "CASH", FinalAmount: 30000, PayerAmount: 30000,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, MoveOrder(db, order.ID, fx.Tables[1].ID), ErrOrderNotPending)
}

func TestMergeOrder(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)

	source := openOrderAt(t, db, fx, fx.Tables[0].ID, coffeeItems(fx, 2)) // 60000
	target := openOrderAt(t, db, fx, fx.Tables[1].ID, []model.OrderItemInput{
		{ProductID: fx.BlackTea.ID, Quantity: 1}, // 45000
	})

	merged, err := MergeOrder(db, source.ID, fx.Tables[1].ID)
	require.NoError(t, err)

	// Tổng tiền bảo toàn: 60000 + 45000
	assert.Equal(t, target.ID, merged.ID)
	assert.InDelta(t, 105000, merged.TotalAmount, 0.001)
	require.Len(t, merged.Items, 2)

	// Đơn nguồn bị hủy, tổng về 0
	cancelled, err := FetchOrder(db, source.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.OrderCancelled, cancelled.Status)
	assert.Zero(t, cancelled.TotalAmount)
	assert.Empty(t, cancelled.Items)

	// Bàn nguồn được trả, bàn đích vẫn giữ đơn đích
	var sourceTable, targetTable model.Table
	require.NoError(t, db.First(&sourceTable, fx.Tables[0].ID).Error)
	require.NoError(t, db.First(&targetTable, fx.Tables[1].ID).Error)
	assert.Equal(t, constants.TableAvailable, sourceTable.Status)
	assert.Nil(t, sourceTable.CurrentOrderID)
	assert.Equal(t, constants.TableOccupied, targetTable.Status)
	require.NotNil(t, targetTable.CurrentOrderID)
	assert.Equal(t, target.ID, *targetTable.CurrentOrderID)
}

func TestMergeOrderSkipsCancelledLines(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)

	source := openOrderAt(t, db, fx, fx.Tables[0].ID, []model.OrderItemInput{
		{ProductID: fx.CoffeeMilk.ID, Quantity: 2, Modifiers: sizeMSelection(fx)},
		{ProductID: fx.BlackTea.ID, Quantity: 1},
	})
	openOrderAt(t, db, fx, fx.Tables[1].ID, []model.OrderItemInput{
		{ProductID: fx.BlackTea.ID, Quantity: 1},
	})

	// Một dòng của đơn nguồn đã bị hủy từ trước, không được theo sang đơn đích
	require.NoError(t, db.Model(&model.OrderDetail{}).
		Where("order_id = ? AND product_id = ?", source.ID, fx.BlackTea.ID).
		Update("item_status", constants.ItemCancelled).Error)

	merged, err := MergeOrder(db, source.ID, fx.Tables[1].ID)
	require.NoError(t, err)

	require.Len(t, merged.Items, 2)
	assert.InDelta(t, 105000, merged.TotalAmount, 0.001) // 60000 + 45000, không tính dòng hủy

	// Dòng hủy ở lại đơn nguồn làm vết
	var leftover []model.OrderDetail
	require.NoError(t, db.Where("order_id = ?", source.ID).Find(&leftover).Error)
	require.Len(t, leftover, 1)
	assert.Equal(t, constants.ItemCancelled, leftover[0].ItemStatus)
}

func TestMergeOrderIntoEmptyTableFails(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)

	source := openOrderAt(t, db, fx, fx.Tables[0].ID, coffeeItems(fx, 2))

	_, err := MergeOrder(db, source.ID, fx.Tables[1].ID)
	assert.ErrorIs(t, err, ErrTargetTableEmpty)

	// Gộp vào chính bàn của mình cũng bị từ chối
	_, err = MergeOrder(db, source.ID, fx.Tables[0].ID)
	assert.ErrorIs(t, err, ErrTargetTableEmpty)

	// Không có gì thay đổi
	kept, err := FetchOrder(db, source.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.OrderPending, kept.Status)
	assert.InDelta(t, 60000, kept.TotalAmount, 0.001)

	var table model.Table
	require.NoError(t, db.First(&table, fx.Tables[0].ID).Error)
	assert.Equal(t, constants.TableOccupied, table.Status)
	require.NotNil(t, table.CurrentOrderID)
	assert.Equal(t, source.ID, *table.CurrentOrderID)
}

func TestConfirmTableCleaned(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)

	// Bàn trống thì không có gì để xác nhận dọn
	assert.ErrorIs(t, ConfirmTableCleaned(db, fx.Tables[0].ID), ErrTableNotCleaning)

	order := openOrderAt(t, db, fx, fx.Tables[0].ID, coffeeItems(fx, 1))

	// Bàn đang có khách cũng không
	assert.ErrorIs(t, ConfirmTableCleaned(db, fx.Tables[0].ID), ErrTableNotCleaning)

	_, err := SettleOrder(db, order.ID, model.SettleOrderInput{
		PaymentMethod: "CASH", FinalAmount: 30000, PayerAmount: 30000,
	})
	require.NoError(t, err)

	require.NoError(t, ConfirmTableCleaned(db, fx.Tables[0].ID))

	var table model.Table
	require.NoError(t, db.First(&table, fx.Tables[0].ID).Error)
	assert.Equal(t, constants.TableAvailable, table.Status)

	assert.ErrorIs(t, ConfirmTableCleaned(db, 404), ErrTableNotFound)
}

func TestAuditBindings(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)

	openOrderAt(t, db, fx, fx.Tables[0].ID, coffeeItems(fx, 1))
	assert.Zero(t, AuditBindings(db))

	// Làm hỏng một phía của ràng buộc bằng tay: bàn OCCUPIED nhưng mất đơn
	require.NoError(t, db.Model(&model.Table{}).
		Where("id = ?", fx.Tables[1].ID).
		Update("status", constants.TableOccupied).Error)

	assert.Equal(t, 1, AuditBindings(db))
}

package constants

// Trạng thái bàn
const (
	TableAvailable = "AVAILABLE"
	TableOccupied  = "OCCUPIED"
	TableCleaning  = "CLEANING"
)

// Trạng thái đơn hàng
const (
	OrderPending   = "PENDING"
	OrderCompleted = "COMPLETED"
	OrderCancelled = "CANCELLED"
)

// Trạng thái thanh toán
const (
	PaymentUnpaid = "UNPAID"
	PaymentPaid   = "PAID"
)

// Trạng thái từng món trong đơn
const (
	ItemPending   = "PENDING"
	ItemServed    = "SERVED"
	ItemCancelled = "CANCELLED"
)

// Loại đơn
const (
	OrderTypeDineIn   = "DINE_IN"
	OrderTypeTakeAway = "TAKE_AWAY"
)

// Hành động ghi log đơn hàng
const (
	LogActionCreate     = "CREATE"
	LogActionUpdate     = "UPDATE"
	LogActionMoveTable  = "MOVE_TABLE"
	LogActionMergeTable = "MERGE_TABLE"
	LogActionSettle     = "SETTLE"
	LogActionCancel     = "CANCEL"
)

const (
	ROLE_ADMIN   = "ADMIN"
	ROLE_CASHIER = "CASHIER"
	ROLE_WAITER  = "WAITER"
)

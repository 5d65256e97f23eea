package model

import "time"

type Order struct {
	DTO
	OrderCode      string     `gorm:"unique;size:20" json:"orderCode"` // Mã đơn công khai (ORD-XXXXXX)
	TableID        *uint      `gorm:"default:null" json:"tableId"`     // Null với đơn mang đi hoặc sau thanh toán
	Table          *Table     `gorm:"foreignKey:TableID" json:"-"`
	OrderType      string     `gorm:"not null;default:'DINE_IN'" json:"orderType"`
	Status         string     `gorm:"not null;default:'PENDING'" json:"status"`        // PENDING, COMPLETED, CANCELLED
	PaymentStatus  string     `gorm:"not null;default:'UNPAID'" json:"paymentStatus"`  // UNPAID, PAID
	PaymentMethod  string     `json:"paymentMethod"`                                   // CASH, CARD, TRANSFER
	TotalAmount    float64    `json:"totalAmount"`
	DiscountAmount float64    `json:"discountAmount"`
	PayerAmount    float64    `json:"payerAmount"`  // Tiền khách đưa
	ChangeAmount   float64    `json:"changeAmount"` // Tiền thối lại
	Note           string     `json:"note"`
	CreatedBy      uint       `json:"createdBy"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	CancelledAt    *time.Time `json:"cancelledAt,omitempty"`
	Items          []OrderDetail `gorm:"foreignKey:OrderID" json:"items"`
}

// OrderDetail là một dòng món trong đơn. Tên món, đơn giá và giá topping được
// snapshot tại thời điểm thêm món, không tham chiếu lại catalog về sau.
type OrderDetail struct {
	DTO
	OrderID         uint                  `gorm:"index;not null" json:"orderId"`
	ProductID       uint                  `json:"productId"`
	ProductName     string                `gorm:"not null" json:"productName"`
	Price           float64               `gorm:"not null" json:"price"` // Đơn giá snapshot
	Quantity        int                   `gorm:"not null" json:"quantity"`
	TotalLineAmount float64               `gorm:"not null" json:"totalLineAmount"`
	Note            string                `json:"note"`
	ItemStatus      string                `gorm:"not null;default:'PENDING'" json:"itemStatus"` // PENDING, SERVED, CANCELLED
	Modifiers       []OrderModifierDetail `gorm:"foreignKey:OrderDetailID" json:"modifiers"`
}

type OrderModifierDetail struct {
	DTO
	OrderDetailID uint    `gorm:"index;not null" json:"orderDetailId"`
	ModifierID    uint    `json:"modifierId"`
	ModifierName  string  `gorm:"not null" json:"modifierName"` // Snapshot
	Price         float64 `json:"price"`                        // Giá thêm snapshot
	Quantity      int     `gorm:"default:1" json:"quantity"`
	GroupName     string  `json:"groupName"`
}

// OrderLog ghi lại mọi chuyển trạng thái của đơn, cùng transaction với thao tác chính
type OrderLog struct {
	DTO
	OrderID         uint   `gorm:"index;not null" json:"orderId"`
	OldStatus       string `json:"oldStatus"`
	NewStatus       string `json:"newStatus"`
	Action          string `gorm:"not null" json:"action"`
	ChangedByUserID uint   `json:"changedByUserId"`
	Note            string `json:"note"`
}

type OrderModifierInput struct {
	ModifierID   uint    `json:"modifierId" validate:"required"`
	ModifierName string  `json:"modifierName"`
	ExtraPrice   float64 `json:"extraPrice" validate:"gte=0"`
	GroupName    string  `json:"groupName"`
}

type OrderItemInput struct {
	ProductID       uint                 `json:"productId" validate:"required"`
	ProductName     string               `json:"productName"`
	Price           float64              `json:"price" validate:"gte=0"`
	Quantity        int                  `json:"quantity" validate:"required,min=1"`
	TotalLineAmount float64              `json:"totalLineAmount" validate:"gte=0"`
	Note            string               `json:"note"`
	Modifiers       []OrderModifierInput `json:"modifiers" validate:"dive"`
}

type CreateOrderInput struct {
	TableID   uint             `json:"tableId" validate:"required"`
	OrderType string           `json:"orderType" validate:"omitempty,oneof=DINE_IN TAKE_AWAY"`
	Note      string           `json:"note"`
	CreatedBy uint             `json:"createdBy" validate:"required"`
	Items     []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

type UpdateOrderInput struct {
	Items          []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	TotalAmount    float64          `json:"totalAmount" validate:"gte=0"`
	DiscountAmount float64          `json:"discountAmount" validate:"gte=0"`
	Note           string           `json:"note"`
	UpdatedBy      uint             `json:"updatedBy"`
}

type SettleOrderInput struct {
	PaymentMethod  string  `json:"paymentMethod" validate:"required,oneof=CASH CARD TRANSFER"`
	DiscountAmount float64 `json:"discountAmount" validate:"gte=0"`
	FinalAmount    float64 `json:"finalAmount" validate:"gte=0"`
	PayerAmount    float64 `json:"payerAmount" validate:"gte=0"`
	SettledBy      uint    `json:"settledBy"`
}

type CancelOrderInput struct {
	Reason      string `json:"reason"`
	CancelledBy uint   `json:"cancelledBy"`
}

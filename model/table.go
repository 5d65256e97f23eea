package model

// Table là bàn trong quán. Invariant: CurrentOrderID khác nil <=> Status = OCCUPIED,
// và đơn được trỏ tới phải là PENDING với TableID trỏ ngược lại bàn này.
type Table struct {
	DTO
	TableName      string  `gorm:"unique;not null" json:"tableName"`
	Status         string  `gorm:"not null;default:'AVAILABLE'" json:"status"` // AVAILABLE, OCCUPIED, CLEANING
	CurrentOrderID *uint   `gorm:"default:null" json:"currentOrderId"`
	IsActive       bool    `gorm:"default:true" json:"isActive"`
	Shape          string  `gorm:"default:'SQUARE'" json:"shape"`
	Color          string  `gorm:"default:'#FFFFFF'" json:"color"`
	PosX           float64 `json:"posX"`
	PosY           float64 `json:"posY"`
	Width          float64 `gorm:"default:0.15" json:"width"`
	Height         float64 `gorm:"default:0.15" json:"height"`
}

type CreateTableInput struct {
	TableName string `json:"tableName" validate:"required"`
	Shape     string `json:"shape" validate:"omitempty,oneof=SQUARE CIRCLE RECT"`
	Color     string `json:"color" validate:"omitempty,hexcolor"`
	IsActive  *bool  `json:"isActive"`
}

type UpdateTableInput struct {
	TableName string `json:"tableName" validate:"required"`
	IsActive  *bool  `json:"isActive"`
	Shape     string `json:"shape" validate:"omitempty,oneof=SQUARE CIRCLE RECT"`
	Color     string `json:"color" validate:"omitempty,hexcolor"`
}

type TablePositionInput struct {
	ID     uint    `json:"id" validate:"required"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Shape  string  `json:"shape"`
	Color  string  `json:"color"`
}

type MoveOrderInput struct {
	OrderID       uint `json:"orderId" validate:"required"`
	TargetTableID uint `json:"targetTableId" validate:"required"`
}

type MergeOrderInput struct {
	SourceOrderID uint `json:"sourceOrderId" validate:"required"`
	TargetTableID uint `json:"targetTableId" validate:"required"`
}

package model

type Category struct {
	DTO
	CategoryName string    `gorm:"unique;not null" json:"categoryName"`
	Products     []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

type Product struct {
	DTO
	ProductName string   `gorm:"not null" json:"productName"`
	Slug        string   `gorm:"uniqueIndex" json:"slug"`
	PriceValue  float64  `gorm:"not null" json:"priceValue"`
	ImageUrl    *string  `json:"imageUrl"`
	CategoryID  uint     `json:"categoryId"`
	Category    Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	IsActive    bool     `gorm:"default:true" json:"isActive"`
	// Nhóm tùy chọn gắn với món, đọc-only đối với luồng bán hàng
	ModifierGroups []ModifierGroup `gorm:"many2many:product_modifier_groups" json:"modifierGroups,omitempty"`
}

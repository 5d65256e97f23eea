package model

type ModifierGroup struct {
	DTO
	GroupName     string     `gorm:"not null" json:"groupName"`
	IsMultiSelect bool       `gorm:"default:false" json:"isMultiSelect"`
	IsRequired    bool       `gorm:"default:false" json:"isRequired"`
	Modifiers     []Modifier `gorm:"foreignKey:GroupID" json:"modifiers"`
}

type Modifier struct {
	DTO
	ModifierName    string  `gorm:"not null" json:"modifierName"`
	GroupID         uint    `gorm:"index;not null" json:"groupId"`
	ExtraPrice      float64 `gorm:"default:0" json:"extraPrice"`
	IsInputRequired bool    `gorm:"default:false" json:"isInputRequired"`
}

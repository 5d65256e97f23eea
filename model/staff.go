package model

// Staff chỉ dùng làm tham chiếu created_by cho đơn hàng.
// Quản lý nhân viên đầy đủ nằm ở hệ thống khác.
type Staff struct {
	DTO
	Username string `gorm:"unique;not null" json:"username"`
	Password string `json:"-"`
	FullName string `json:"fullName"`
	Role     string `gorm:"not null" json:"role"`
	Active   bool   `gorm:"default:true" json:"active"`
}

package helper

import (
	"errors"
	"fmt"
)

// Lỗi tiền điều kiện: trả về nguyên văn cho thu ngân, không retry
var (
	ErrTableNotFound       = errors.New("TABLE_NOT_FOUND")
	ErrTableNotAvailable   = errors.New("TABLE_NOT_AVAILABLE")
	ErrTableNotCleaning    = errors.New("TABLE_NOT_CLEANING")
	ErrTableOccupied       = errors.New("TABLE_OCCUPIED")
	ErrTargetTableOccupied = errors.New("TARGET_TABLE_OCCUPIED")
	ErrTargetTableEmpty    = errors.New("TARGET_TABLE_EMPTY")
	ErrOrderNotFound       = errors.New("ORDER_NOT_FOUND")
	ErrOrderNotPending     = errors.New("ORDER_NOT_PENDING")
	ErrOrderNotEditable    = errors.New("ORDER_NOT_EDITABLE")
	ErrInvalidLineItems    = errors.New("INVALID_LINE_ITEMS")
	ErrBindingCorrupted    = errors.New("TABLE_ORDER_BINDING_CORRUPTED")
)

// Mã lỗi chọn topping
const (
	SelectionMissingRequired = "MISSING_REQUIRED_GROUP"
	SelectionMultiNotAllowed = "MULTI_SELECT_NOT_ALLOWED"
	SelectionUnknownModifier = "UNKNOWN_MODIFIER"
)

// SelectionError mô tả vì sao bộ topping của một món bị từ chối
type SelectionError struct {
	Code       string
	GroupID    uint
	GroupName  string
	ModifierID uint
}

func (e *SelectionError) Error() string {
	switch e.Code {
	case SelectionMissingRequired:
		return fmt.Sprintf("%s: nhóm bắt buộc %q (id=%d) chưa được chọn", e.Code, e.GroupName, e.GroupID)
	case SelectionMultiNotAllowed:
		return fmt.Sprintf("%s: nhóm %q (id=%d) chỉ cho chọn một", e.Code, e.GroupName, e.GroupID)
	default:
		return fmt.Sprintf("%s: modifier id=%d không thuộc món này", e.Code, e.ModifierID)
	}
}

func (e *SelectionError) Unwrap() error {
	return ErrInvalidLineItems
}

package handler

import (
	"coffeetek_pos/database"
	"coffeetek_pos/model"
	"coffeetek_pos/utils"

	"github.com/gofiber/fiber/v2"
)

// Bề mặt menu chỉ đọc phục vụ màn hình bán hàng; quản trị menu nằm ở hệ thống khác

func GetProducts(c *fiber.Ctx) error {
	pagination := parsePagination(c)

	var totalCount int64
	if err := database.DB.Model(&model.Product{}).
		Where("is_active = ?", true).
		Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Lỗi lấy danh sách món", err)
	}

	query := database.DB.
		Preload("Category").
		Where("is_active = ?", true).
		Order("product_name asc")
	query = utils.ApplyPagination(query, pagination.Limit, pagination.Page)

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Lỗi lấy danh sách món", err)
	}
	return utils.SuccessResponse(c, 200, model.ResponseCustom{
		Rows:       products,
		Limit:      pagination.Limit,
		Page:       pagination.Page,
		TotalCount: totalCount,
	})
}

// GetProductModifiers trả về các nhóm tùy chọn gắn với một món (kèm luật
// required/multi-select) để client dựng màn hình chọn topping
func GetProductModifiers(c *fiber.Ctx) error {
	productId, err := c.ParamsInt("productId")
	if err != nil || productId <= 0 {
		return utils.ErrorResponse(c, 400, "Mã món không hợp lệ", err)
	}

	var product model.Product
	if err := database.DB.
		Preload("ModifierGroups.Modifiers").
		First(&product, productId).Error; err != nil {
		return utils.ErrorResponse(c, 404, "Món không tồn tại", err)
	}

	return utils.SuccessResponse(c, 200, product.ModifierGroups)
}

// GetAllModifiers trả về cây nhóm -> tùy chọn
func GetAllModifiers(c *fiber.Ctx) error {
	var groups []model.ModifierGroup
	if err := database.DB.
		Preload("Modifiers").
		Order("id desc").
		Find(&groups).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Lỗi lấy danh sách tùy chọn", err)
	}
	return utils.SuccessResponse(c, 200, groups)
}

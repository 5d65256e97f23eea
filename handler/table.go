package handler

import (
	"coffeetek_pos/constants"
	"coffeetek_pos/database"
	"coffeetek_pos/helper"
	"coffeetek_pos/model"
	"coffeetek_pos/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func GetTables(c *fiber.Ctx) error {
	activeOnly := c.Query("active_only") == "true"

	query := database.DB.Order("table_name asc")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var tables []model.Table
	if err := query.Find(&tables).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Lỗi lấy danh sách bàn", err)
	}
	return utils.SuccessResponse(c, 200, tables)
}

func CreateTable(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateTableInput)

	newTable := new(model.Table)
	copier.Copy(&newTable, input)
	newTable.Status = constants.TableAvailable
	if input.IsActive == nil {
		newTable.IsActive = true
	}
	if newTable.Shape == "" {
		newTable.Shape = "SQUARE"
	}
	if newTable.Color == "" {
		newTable.Color = "#FFFFFF"
	}

	if err := database.DB.Create(&newTable).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Lỗi tạo bàn", err)
	}

	BroadcastTables()
	return utils.SuccessResponse(c, 201, newTable)
}

func UpdateTableInfo(c *fiber.Ctx) error {
	tableId, err := c.ParamsInt("tableId")
	if err != nil || tableId <= 0 {
		return utils.ErrorResponse(c, 400, "Mã bàn không hợp lệ", err)
	}
	input := c.Locals("input").(model.UpdateTableInput)

	var table model.Table
	if err := database.DB.First(&table, tableId).Error; err != nil {
		return utils.ErrorResponse(c, 404, "Bàn không tồn tại", err)
	}

	copier.CopyWithOption(&table, input, copier.Option{IgnoreEmpty: true})
	if input.IsActive != nil {
		table.IsActive = *input.IsActive
	}

	if err := database.DB.Save(&table).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Lỗi cập nhật bàn", err)
	}

	BroadcastTables()
	return utils.SuccessResponse(c, 200, table)
}

// UpdateTablePositions lưu sơ đồ bàn (vị trí, kích thước, màu) theo lô
func UpdateTablePositions(c *fiber.Ctx) error {
	inputs := c.Locals("input").([]model.TablePositionInput)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for _, in := range inputs {
			updates := map[string]any{
				"pos_x": in.X,
				"pos_y": in.Y,
			}
			if in.Width > 0 {
				updates["width"] = in.Width
			}
			if in.Height > 0 {
				updates["height"] = in.Height
			}
			if in.Shape != "" {
				updates["shape"] = in.Shape
			}
			if in.Color != "" {
				updates["color"] = in.Color
			}
			if err := tx.Model(&model.Table{}).Where("id = ?", in.ID).Updates(updates).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return utils.ErrorResponse(c, 500, "Lỗi cập nhật sơ đồ bàn", err)
	}

	return utils.SuccessResponse(c, 200, fiber.Map{"message": "Đã cập nhật sơ đồ bàn thành công"})
}

// DeleteTable chỉ cho xóa bàn không có khách
func DeleteTable(c *fiber.Ctx) error {
	tableId, err := c.ParamsInt("tableId")
	if err != nil || tableId <= 0 {
		return utils.ErrorResponse(c, 400, "Mã bàn không hợp lệ", err)
	}

	var table model.Table
	if err := database.DB.First(&table, tableId).Error; err != nil {
		return utils.ErrorResponse(c, 404, "Bàn không tồn tại", err)
	}
	if table.Status == constants.TableOccupied {
		return respondCoreError(c, helper.ErrTableOccupied)
	}

	if err := database.DB.Delete(&table).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Lỗi xóa bàn", err)
	}

	BroadcastTables()
	return utils.SuccessResponse(c, 200, fiber.Map{"message": "Đã xóa bàn"})
}

// ClearTable xác nhận đã dọn xong: CLEANING -> AVAILABLE
func ClearTable(c *fiber.Ctx) error {
	tableId, err := c.ParamsInt("tableId")
	if err != nil || tableId <= 0 {
		return utils.ErrorResponse(c, 400, "Mã bàn không hợp lệ", err)
	}

	if err := helper.ConfirmTableCleaned(database.DB, uint(tableId)); err != nil {
		return respondCoreError(c, err)
	}

	BroadcastTables()
	return utils.SuccessResponse(c, 200, fiber.Map{"message": "Đã dọn bàn xong"})
}

func MoveTable(c *fiber.Ctx) error {
	input := c.Locals("input").(model.MoveOrderInput)

	if err := helper.MoveOrder(database.DB, input.OrderID, input.TargetTableID); err != nil {
		return respondCoreError(c, err)
	}

	BroadcastTables()
	return utils.SuccessResponse(c, 200, fiber.Map{"message": "Chuyển bàn thành công"})
}

func MergeTable(c *fiber.Ctx) error {
	input := c.Locals("input").(model.MergeOrderInput)

	targetOrder, err := helper.MergeOrder(database.DB, input.SourceOrderID, input.TargetTableID)
	if err != nil {
		return respondCoreError(c, err)
	}

	BroadcastTables()
	return utils.SuccessResponse(c, 200, fiber.Map{
		"message":       "Gộp bàn thành công",
		"targetOrderId": targetOrder.ID,
		"totalAmount":   targetOrder.TotalAmount,
	})
}

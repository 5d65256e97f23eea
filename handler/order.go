package handler

import (
	"errors"

	"coffeetek_pos/constants"
	"coffeetek_pos/database"
	"coffeetek_pos/helper"
	"coffeetek_pos/model"
	"coffeetek_pos/utils"

	"github.com/gofiber/fiber/v2"
)

// parsePagination đọc limit/page từ query string của các endpoint danh sách
func parsePagination(c *fiber.Ctx) model.Pagination {
	pagination := model.Pagination{}
	if limit := c.QueryInt("limit"); limit > 0 {
		pagination.Limit = utils.Ptr(limit)
	}
	if page := c.QueryInt("page"); page > 0 {
		pagination.Page = utils.Ptr(page)
	}
	return pagination
}

// respondCoreError dịch lỗi từ core sang response: lỗi tiền điều kiện và lỗi
// validate trả nguyên văn cho thu ngân, còn lại là lỗi hệ thống
func respondCoreError(c *fiber.Ctx, err error) error {
	var selErr *helper.SelectionError
	switch {
	case errors.Is(err, helper.ErrOrderNotFound):
		return utils.ErrorResponse(c, 404, "Không tìm thấy đơn hàng", err)
	case errors.Is(err, helper.ErrTableNotFound):
		return utils.ErrorResponse(c, 404, "Bàn không tồn tại", err)
	case errors.Is(err, helper.ErrTableNotAvailable):
		return utils.ErrorResponse(c, 400, "Bàn đang có khách hoặc chưa dọn xong", err)
	case errors.Is(err, helper.ErrTargetTableOccupied):
		return utils.ErrorResponse(c, 400, "Bàn đích đang có khách, vui lòng chọn Gộp bàn hoặc bàn khác", err)
	case errors.Is(err, helper.ErrTargetTableEmpty):
		return utils.ErrorResponse(c, 400, "Bàn đích đang trống, hãy dùng chức năng Chuyển bàn", err)
	case errors.Is(err, helper.ErrOrderNotPending):
		return utils.ErrorResponse(c, 400, "Đơn hàng đã hoàn thành hoặc đã hủy", err)
	case errors.Is(err, helper.ErrOrderNotEditable):
		return utils.ErrorResponse(c, 400, "Đơn hàng không còn sửa được", err)
	case errors.Is(err, helper.ErrTableNotCleaning):
		return utils.ErrorResponse(c, 400, "Bàn không ở trạng thái chờ dọn", err)
	case errors.Is(err, helper.ErrTableOccupied):
		return utils.ErrorResponse(c, 400, "Không thể xóa bàn đang có khách", err)
	case errors.As(err, &selErr), errors.Is(err, helper.ErrInvalidLineItems):
		return utils.ErrorResponse(c, 400, "INVALID_LINE_ITEMS", err)
	case errors.Is(err, helper.ErrBindingCorrupted):
		return utils.ErrorResponse(c, 500, "Dữ liệu bàn-đơn không nhất quán, vui lòng báo quản lý", err)
	default:
		return utils.ErrorResponse(c, 500, "Lỗi hệ thống", err)
	}
}

func CreateOrder(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateOrderInput)

	order, err := helper.CreateDineInOrder(database.DB, input)
	if err != nil {
		return respondCoreError(c, err)
	}

	BroadcastTables()

	return c.Status(201).JSON(fiber.Map{
		"message":    "Tạo đơn hàng thành công",
		"order_id":   order.ID,
		"order_code": order.OrderCode,
	})
}

func GetPendingOrders(c *fiber.Ctx) error {
	pagination := parsePagination(c)

	var totalCount int64
	if err := database.DB.Model(&model.Order{}).
		Where("status = ?", constants.OrderPending).
		Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Lỗi lấy danh sách đơn chờ", err)
	}

	query := database.DB.
		Preload("Table").
		Where("status = ?", constants.OrderPending).
		Order("created_at desc")
	query = utils.ApplyPagination(query, pagination.Limit, pagination.Page)

	var orders []model.Order
	if err := query.Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Lỗi lấy danh sách đơn chờ", err)
	}

	rows := make([]fiber.Map, 0, len(orders))
	for _, order := range orders {
		tableName := ""
		if order.Table != nil {
			tableName = order.Table.TableName
		}
		rows = append(rows, fiber.Map{
			"orderId":     order.ID,
			"orderCode":   order.OrderCode,
			"tableId":     order.TableID,
			"tableName":   tableName,
			"totalAmount": order.TotalAmount,
			"createdAt":   order.CreatedAt,
		})
	}
	return utils.SuccessResponse(c, 200, model.ResponseCustom{
		Rows:       rows,
		Limit:      pagination.Limit,
		Page:       pagination.Page,
		TotalCount: totalCount,
	})
}

func GetOrderById(c *fiber.Ctx) error {
	orderId, err := c.ParamsInt("id")
	if err != nil || orderId <= 0 {
		return utils.ErrorResponse(c, 400, "Mã đơn hàng không hợp lệ", err)
	}

	order, err := helper.FetchOrder(database.DB, uint(orderId))
	if err != nil {
		return respondCoreError(c, err)
	}

	tableName := ""
	if order.TableID != nil {
		var table model.Table
		if err := database.DB.First(&table, *order.TableID).Error; err == nil {
			tableName = table.TableName
		}
	}

	// Lấy ảnh món theo catalog hiện tại (chỉ để hiển thị, không đụng tới giá snapshot)
	productIds := make([]uint, 0, len(order.Items))
	for _, item := range order.Items {
		productIds = append(productIds, item.ProductID)
	}
	imageByProduct := map[uint]*string{}
	if len(productIds) > 0 {
		var products []model.Product
		if err := database.DB.Where("id IN ?", productIds).Find(&products).Error; err == nil {
			for i := range products {
				imageByProduct[products[i].ID] = products[i].ImageUrl
			}
		}
	}

	items := make([]fiber.Map, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, fiber.Map{
			"productId":       item.ProductID,
			"productName":     item.ProductName,
			"price":           item.Price,
			"quantity":        item.Quantity,
			"totalLineAmount": item.TotalLineAmount,
			"note":            item.Note,
			"itemStatus":      item.ItemStatus,
			"imageUrl":        imageByProduct[item.ProductID],
			"modifiers":       item.Modifiers,
		})
	}

	return utils.SuccessResponse(c, 200, fiber.Map{
		"orderId":        order.ID,
		"orderCode":      order.OrderCode,
		"tableId":        order.TableID,
		"tableName":      tableName,
		"status":         order.Status,
		"paymentStatus":  order.PaymentStatus,
		"paymentMethod":  order.PaymentMethod,
		"totalAmount":    order.TotalAmount,
		"discountAmount": order.DiscountAmount,
		"payerAmount":    order.PayerAmount,
		"changeAmount":   order.ChangeAmount,
		"note":           order.Note,
		"createdAt":      order.CreatedAt,
		"items":          items,
		"qrCode":         utils.QRCodeDataURL(order.OrderCode, 400),
	})
}

// UpdateOrder thay toàn bộ dòng món của đơn (client gửi lại cả đơn, không diff)
func UpdateOrder(c *fiber.Ctx) error {
	orderId, err := c.ParamsInt("id")
	if err != nil || orderId <= 0 {
		return utils.ErrorResponse(c, 400, "Mã đơn hàng không hợp lệ", err)
	}
	input := c.Locals("input").(model.UpdateOrderInput)

	order, err := helper.ReplaceOrder(database.DB, uint(orderId), input)
	if err != nil {
		return respondCoreError(c, err)
	}

	return utils.SuccessResponse(c, 200, fiber.Map{
		"message":     "Cập nhật đơn hàng thành công",
		"orderId":     order.ID,
		"totalAmount": order.TotalAmount,
	})
}

func SettleOrder(c *fiber.Ctx) error {
	orderId, err := c.ParamsInt("id")
	if err != nil || orderId <= 0 {
		return utils.ErrorResponse(c, 400, "Mã đơn hàng không hợp lệ", err)
	}
	input := c.Locals("input").(model.SettleOrderInput)

	order, err := helper.SettleOrder(database.DB, uint(orderId), input)
	if err != nil {
		return respondCoreError(c, err)
	}

	BroadcastTables()

	return utils.SuccessResponse(c, 200, fiber.Map{
		"message":      "Thanh toán thành công",
		"orderCode":    order.OrderCode,
		"totalAmount":  order.TotalAmount,
		"changeAmount": order.ChangeAmount,
	})
}

func CancelOrder(c *fiber.Ctx) error {
	orderId, err := c.ParamsInt("id")
	if err != nil || orderId <= 0 {
		return utils.ErrorResponse(c, 400, "Mã đơn hàng không hợp lệ", err)
	}
	input := c.Locals("input").(model.CancelOrderInput)

	if err := helper.CancelOrder(database.DB, uint(orderId), input.Reason, input.CancelledBy); err != nil {
		return respondCoreError(c, err)
	}

	BroadcastTables()

	return utils.SuccessResponse(c, 200, fiber.Map{"message": "Hủy đơn hàng thành công"})
}

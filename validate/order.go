package validate

import (
	"coffeetek_pos/model"
	"coffeetek_pos/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateOrderInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, "Dữ liệu không hợp lệ", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, err.Error(), err)
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func UpdateOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateOrderInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, "Dữ liệu không hợp lệ", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, err.Error(), err)
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func SettleOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.SettleOrderInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, "Dữ liệu không hợp lệ", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, err.Error(), err)
		}
		// Tiền mặt thì khách phải đưa đủ số cần trả
		if input.PaymentMethod == "CASH" && input.PayerAmount < input.FinalAmount {
			return utils.ErrorResponse(c, 400, "Tiền khách đưa chưa đủ", nil)
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func CancelOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CancelOrderInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, "Dữ liệu không hợp lệ", err)
		}
		c.Locals("input", input)
		return c.Next()
	}
}

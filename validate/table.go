package validate

import (
	"coffeetek_pos/model"
	"coffeetek_pos/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateTable() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateTableInput
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

func UpdateTable() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateTableInput
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

func UpdateTablePositions() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var inputs []model.TablePositionInput
		if err := c.BodyParser(&inputs); err != nil {
			return utils.ErrorResponse(c, 400, "Dữ liệu không hợp lệ", err)
		}
		if len(inputs) == 0 {
			return utils.ErrorResponse(c, 400, "Danh sách bàn trống", nil)
		}
		for _, in := range inputs {
			if err := validate.Struct(in); err != nil {
				return utils.ErrorResponse(c, 400, err.Error(), err)
			}
		}
		c.Locals("input", inputs)
		return c.Next()
	}
}

func MoveOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.MoveOrderInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, "Thiếu thông tin đơn hàng hoặc bàn đích", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, err.Error(), err)
		}
		c.Locals("input", input)
		return c.Next()
	}
}

func MergeOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.MergeOrderInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, 400, "Thiếu thông tin để gộp bàn", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, 400, err.Error(), err)
		}
		c.Locals("input", input)
		return c.Next()
	}
}

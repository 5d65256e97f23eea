package middleware

import (
	"context"
	"time"

	"coffeetek_pos/database"
	"coffeetek_pos/utils"

	"github.com/gofiber/fiber/v2"
)

const idempotencyTTL = 15 * time.Minute

// Idempotency chặn double-apply khi client retry một thao tác ghi với cùng
// X-Request-Id (retry mù một lệnh chuyển/gộp bàn có thể trả bàn hai lần).
// Request đã xử lý xong thì trả lại đúng response đã lưu; đang xử lý dở thì
// báo trùng lặp. Không có header hoặc không có Redis thì cho qua.
func Idempotency() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestId := c.Get("X-Request-Id")
		if requestId == "" || database.Redis == nil {
			return c.Next()
		}

		ctx := context.Background()
		lockKey := "idem:" + requestId
		respKey := "idem:resp:" + requestId

		ok, err := database.Redis.SetNX(ctx, lockKey, "PROCESSING", idempotencyTTL).Result()
		if err != nil {
			// Redis lỗi thì bỏ qua idempotency, không chặn nghiệp vụ
			return c.Next()
		}
		if !ok {
			stored, err := database.Redis.Get(ctx, respKey).Bytes()
			if err == nil {
				c.Set("Content-Type", "application/json")
				return c.Send(stored)
			}
			return utils.ErrorResponse(c, 409, "Yêu cầu đang được xử lý, vui lòng không gửi lại", nil)
		}

		if err := c.Next(); err != nil {
			return err
		}

		// Chỉ lưu lại response thành công; thất bại cho phép retry lần nữa
		if c.Response().StatusCode() < 400 {
			database.Redis.Set(ctx, respKey, c.Response().Body(), idempotencyTTL)
		} else {
			database.Redis.Del(ctx, lockKey)
		}
		return nil
	}
}

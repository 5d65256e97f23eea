package router

import (
	"coffeetek_pos/handler"
	"coffeetek_pos/middleware"
	"coffeetek_pos/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	order := v1.Group("/orders", logger.New())
	order.Get("/pending", handler.GetPendingOrders)
	order.Get("/:id", handler.GetOrderById)
	order.Post("/", middleware.Idempotency(), validate.CreateOrder(), handler.CreateOrder)
	order.Put("/:id", middleware.Idempotency(), validate.UpdateOrder(), handler.UpdateOrder)
	order.Put("/:id/settle", middleware.Idempotency(), validate.SettleOrder(), handler.SettleOrder)
	order.Post("/:id/cancel", middleware.Idempotency(), validate.CancelOrder(), handler.CancelOrder)

	table := v1.Group("/tables", logger.New())
	table.Get("/", handler.GetTables)
	table.Post("/", validate.CreateTable(), handler.CreateTable)
	table.Post("/move", middleware.Idempotency(), validate.MoveOrder(), handler.MoveTable)
	table.Post("/merge", middleware.Idempotency(), validate.MergeOrder(), handler.MergeTable)
	table.Put("/positions", validate.UpdateTablePositions(), handler.UpdateTablePositions)
	table.Put("/:tableId", validate.UpdateTable(), handler.UpdateTableInfo)
	table.Put("/:tableId/clear", handler.ClearTable)
	table.Delete("/:tableId", handler.DeleteTable)

	menu := v1.Group("/products", logger.New())
	menu.Get("/", handler.GetProducts)
	menu.Get("/:productId/modifiers", handler.GetProductModifiers)

	v1.Get("/modifiers", handler.GetAllModifiers)

	app.Get("/ws/tables", websocket.New(handler.TableWebsocket))
}

package main

import (
	"log"

	"coffeetek_pos/database"
	"coffeetek_pos/handler"
	"coffeetek_pos/helper"
	"coffeetek_pos/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173/",
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept, X-Request-Id",
		AllowCredentials: true,
		MaxAge:           600,
	}))

	database.ConnectDB()
	database.ConnectRedis()

	handler.StartTableFanout()
	helper.StartBindingAudit(database.DB)
	defer helper.StopBindingAudit()

	router.SetupRoutes(app)
	log.Fatal(app.Listen(":3000"))
}

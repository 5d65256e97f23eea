package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config đọc biến môi trường, ưu tiên file .env nếu có
func Config(key string) string {
	godotenv.Load(".env")
	return os.Getenv(key)
}

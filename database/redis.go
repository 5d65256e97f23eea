package database

import (
	"context"
	"log"

	"coffeetek_pos/config"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

// ConnectRedis khởi tạo client dùng chung cho idempotency và pub/sub sơ đồ bàn.
// Redis hỏng thì app vẫn chạy, chỉ mất hai tính năng đó.
func ConnectRedis() {
	addr := config.Config("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("Không kết nối được Redis (%s): %v", addr, err)
		return
	}
	Redis = client
	log.Println("Đã kết nối Redis")
}

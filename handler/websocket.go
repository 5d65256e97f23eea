package handler

import (
	"context"
	"log"
	"sync"

	"coffeetek_pos/database"
	"coffeetek_pos/model"

	"github.com/gofiber/contrib/websocket"
)

var (
	tableConns = make(map[*websocket.Conn]bool)
	tableMu    sync.Mutex
)

const tableChannel = "tables:update"

// TableWebsocket đẩy sơ đồ bàn realtime cho các terminal
func TableWebsocket(c *websocket.Conn) {
	tableMu.Lock()
	tableConns[c] = true
	total := len(tableConns)
	tableMu.Unlock()

	log.Printf("WS sơ đồ bàn: thêm kết nối, tổng %d", total)

	defer func() {
		tableMu.Lock()
		delete(tableConns, c)
		tableMu.Unlock()
		c.Close()
	}()

	// Gửi ngay snapshot hiện tại cho client mới connect
	writeTableSnapshot(c)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}

func loadTableSnapshot() []model.Table {
	var tables []model.Table
	if err := database.DB.Order("table_name asc").Find(&tables).Error; err != nil {
		log.Printf("Lỗi tải sơ đồ bàn cho broadcast: %v", err)
		return nil
	}
	return tables
}

// writeTableSnapshot gửi snapshot cho một kết nối. Mọi WriteJSON đều phải chạy
// dưới tableMu: websocket chỉ cho một writer tại một thời điểm trên mỗi conn.
func writeTableSnapshot(c *websocket.Conn) {
	tables := loadTableSnapshot()
	if tables == nil {
		return
	}

	tableMu.Lock()
	defer tableMu.Unlock()
	if err := c.WriteJSON(tables); err != nil {
		log.Printf("Lỗi gửi snapshot bàn: %v", err)
	}
}

// BroadcastTables đẩy trạng thái bàn mới nhất cho mọi kết nối local và publish
// qua Redis cho các instance khác
func BroadcastTables() {
	broadcastTablesLocal()

	if database.Redis != nil {
		if err := database.Redis.Publish(context.Background(), tableChannel, "changed").Err(); err != nil {
			log.Printf("Lỗi publish Redis kênh %s: %v", tableChannel, err)
		}
	}
}

func broadcastTablesLocal() {
	tables := loadTableSnapshot()
	if tables == nil {
		return
	}

	// Giữ khóa suốt vòng gửi: hai broadcast chạy song song không được phép
	// cùng ghi vào một conn
	tableMu.Lock()
	defer tableMu.Unlock()
	for conn := range tableConns {
		if err := conn.WriteJSON(tables); err != nil {
			log.Printf("Lỗi broadcast sơ đồ bàn: %v", err)
		}
	}
}

// StartTableFanout lắng nghe Redis để re-broadcast thay đổi từ instance khác
func StartTableFanout() {
	if database.Redis == nil {
		return
	}
	go func() {
		pubsub := database.Redis.Subscribe(context.Background(), tableChannel)
		defer pubsub.Close()

		for range pubsub.Channel() {
			broadcastTablesLocal()
		}
	}()
}

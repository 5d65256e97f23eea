package handler

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"coffeetek_pos/constants"
	"coffeetek_pos/database"
	"coffeetek_pos/model"

	"github.com/gofiber/contrib/websocket"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Broadcast từ nhiều handler cùng lúc phải được tuần tự hóa dưới tableMu:
// mọi WriteJSON và mọi thao tác trên tableConns đều chạy trong critical
// section, không có writer song song trên cùng một conn. Chạy với -race.
func TestBroadcastTablesConcurrent(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Table{}))
	require.NoError(t, db.Create(&model.Table{
		TableName: "Bàn 01", Status: constants.TableAvailable, IsActive: true,
	}).Error)
	database.DB = db

	var wg sync.WaitGroup

	// Mô phỏng các handler (tạo đơn, chuyển bàn, thanh toán) cùng bắn broadcast
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			BroadcastTables()
		}()
	}

	// Mô phỏng terminal connect/disconnect xen kẽ với broadcast. Conn được gỡ
	// ngay trong cùng critical section nên vòng gửi không bao giờ thấy nó;
	// race detector vẫn bắt được mọi truy cập tableConns ngoài khóa.
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				conn := new(websocket.Conn)
				tableMu.Lock()
				tableConns[conn] = true
				delete(tableConns, conn)
				tableMu.Unlock()
			}
		}()
	}

	wg.Wait()

	tableMu.Lock()
	defer tableMu.Unlock()
	require.Empty(t, tableConns)
}

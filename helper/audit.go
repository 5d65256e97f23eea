package helper

import (
	"log"
	"time"

	"coffeetek_pos/model"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

var auditScheduler gocron.Scheduler

// AuditBindings quét toàn bộ bàn và kiểm tra invariant bàn<->đơn ngoài mọi
// transaction nghiệp vụ. Vi phạm chỉ được log để người vận hành xử lý,
// không tự sửa dữ liệu.
func AuditBindings(db *gorm.DB) int {
	var tables []model.Table
	if err := db.Find(&tables).Error; err != nil {
		log.Printf("Lỗi audit bàn: %v", err)
		return 0
	}

	violations := 0
	for _, table := range tables {
		if err := verifyTableBinding(db, table.ID); err != nil {
			violations++
			log.Printf("Audit binding: %v", err)
		}
	}
	return violations
}

// StartBindingAudit chạy audit định kỳ 5 phút
func StartBindingAudit(db *gorm.DB) {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.FixedZone("ICT", 7*3600)),
	)
	if err != nil {
		log.Printf("Lỗi khởi tạo scheduler audit: %v", err)
		return
	}

	_, err = s.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(func() {
			if n := AuditBindings(db); n > 0 {
				log.Printf("Audit binding: phát hiện %d bàn lệch trạng thái", n)
			}
		}),
	)
	if err != nil {
		log.Printf("Lỗi đăng ký job audit: %v", err)
		return
	}

	s.Start()
	auditScheduler = s
	log.Println("Audit binding bàn-đơn đã khởi động (mỗi 5 phút)")
}

func StopBindingAudit() {
	if auditScheduler != nil {
		auditScheduler.Shutdown()
	}
}

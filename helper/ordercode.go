package helper

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateOrderCode sinh mã đơn công khai dạng ORD-YYMMDD-XXXXXX
func GenerateOrderCode() string {
	return fmt.Sprintf("ORD-%s-%s",
		time.Now().Format("060102"),
		strings.ToUpper(uuid.New().String()[:6]))
}

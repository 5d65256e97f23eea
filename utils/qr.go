package utils

import (
	"encoding/base64"

	"github.com/skip2/go-qrcode"
)

// GenerateQRCode trả về PNG bytes của mã QR
func GenerateQRCode(content string, size int) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, size)
}

// QRCodeDataURL render QR thành data URL để client hiển thị trực tiếp
func QRCodeDataURL(content string, size int) string {
	raw, err := GenerateQRCode(content, size)
	if err != nil {
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)
}

package service

import "aliascore/internal/domain/entity"

// QRCodeService defines the interface for share QR code generation and parsing
type QRCodeService interface {
	// GenerateShareQR encodes payload as a PNG QR code
	GenerateShareQR(payload *entity.SharePayload) ([]byte, error)

	// ParseShareQR decodes the text content of a share QR code
	ParseShareQR(qrData string) (*entity.SharePayload, error)
}

package qrcode

import (
	"encoding/json"
	"strings"

	"aliascore/internal/domain/entity"
	"aliascore/internal/domain/service"
	"aliascore/internal/errors"

	"github.com/skip2/go-qrcode"
)

const defaultSize = 256

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	if size <= 0 {
		size = defaultSize
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: recoveryLevel(errorCorrectionLevel),
	}
}

func recoveryLevel(level string) qrcode.RecoveryLevel {
	switch strings.ToUpper(level) {
	case "L":
		return qrcode.Low
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// GenerateShareQR encodes the share payload as JSON inside a PNG QR code
func (s *qrcodeService) GenerateShareQR(payload *entity.SharePayload) ([]byte, error) {
	if payload == nil || payload.ShareSlug == "" {
		return nil, errors.New("share payload requires a slug")
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal share payload")
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ParseShareQR parses scanned QR text back into a share payload
func (s *qrcodeService) ParseShareQR(qrData string) (*entity.SharePayload, error) {
	var payload entity.SharePayload
	if err := json.Unmarshal([]byte(qrData), &payload); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal QR code data")
	}

	if payload.Type != entity.SharePayloadType {
		return nil, errors.Errorf("invalid QR code type: %s", payload.Type)
	}
	if payload.ShareSlug == "" {
		return nil, errors.New("QR code has no share slug")
	}

	return &payload, nil
}

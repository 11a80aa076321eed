package usecase

import (
	"context"

	"aliascore/internal/domain/entity"
)

// ShareUsecase defines the interface for public profile sharing.
type ShareUsecase interface {
	SharePayload(ctx context.Context, userID, domainID string) (*entity.SharePayload, error)
	// ShareQR renders the share payload as a PNG QR code.
	ShareQR(ctx context.Context, userID, domainID string) ([]byte, error)
}

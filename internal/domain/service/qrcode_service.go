package service

import (
	"github.com/google/uuid"
)

// QRCodeService renders and parses walker profile QR codes.
type QRCodeService interface {
	// GenerateWalkerQR renders a PNG QR code pointing at the walker's profile.
	GenerateWalkerQR(walkerID uuid.UUID) ([]byte, error)

	// ParseWalkerQR returns the walker id encoded in a QR payload.
	ParseWalkerQR(qrData string) (uuid.UUID, error)
}

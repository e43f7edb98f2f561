// Package qrcode renders shareable walker profile links as QR codes.
package qrcode

import (
	"net/url"
	"strings"

	"doggywalk/config"
	"doggywalk/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const (
	defaultSize    = 256
	walkerPathPart = "walkers"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeService builds the service from the qrcode config section; missing
// values fall back to a 256px medium-recovery code with relative links.
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg == nil || cfg.QRCode == nil {
		return newQRCodeService(defaultSize, "", "")
	}

	return newQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

func newQRCodeService(size int, errorCorrectionLevel, baseURL string) *qrcodeService {
	var level qrcode.RecoveryLevel
	switch strings.ToUpper(errorCorrectionLevel) {
	case "L":
		level = qrcode.Low
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}
	if size <= 0 {
		size = defaultSize
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              strings.TrimRight(baseURL, "/"),
	}
}

// GenerateWalkerQR encodes the walker's public profile link.
func (s *qrcodeService) GenerateWalkerQR(walkerID uuid.UUID) ([]byte, error) {
	if walkerID == uuid.Nil {
		return nil, errors.New("walker id is required")
	}

	qrCode, err := qrcode.New(s.profileLink(walkerID), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ParseWalkerQR accepts a profile link produced by GenerateWalkerQR, with or
// without the host part.
func (s *qrcodeService) ParseWalkerQR(qrData string) (uuid.UUID, error) {
	link, err := url.Parse(strings.TrimSpace(qrData))
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse QR code link")
	}

	segments := strings.Split(strings.Trim(link.Path, "/"), "/")
	if len(segments) < 2 || segments[len(segments)-2] != walkerPathPart {
		return uuid.Nil, errors.Errorf("not a walker profile link: %s", qrData)
	}

	walkerID, err := uuid.Parse(segments[len(segments)-1])
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse walker ID")
	}

	return walkerID, nil
}

func (s *qrcodeService) profileLink(walkerID uuid.UUID) string {
	return s.baseURL + "/" + walkerPathPart + "/" + walkerID.String()
}

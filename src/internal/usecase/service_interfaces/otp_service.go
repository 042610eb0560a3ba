package service_interfaces

import (
	"context"

	"github.com/api-sage/voice-banking/src/internal/adapter/http/models"
)

type OTPService interface {
	Issue() (models.IssuedOTP, error)
	Verify(hash, submitted string) error
	MaxAttempts() int
}

// OTPSender delivers the plaintext code out-of-band.
type OTPSender interface {
	SendTransferOTP(ctx context.Context, email, code, amount, recipient string) error
}

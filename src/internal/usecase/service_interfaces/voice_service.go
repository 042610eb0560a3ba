package service_interfaces

import (
	"context"

	"github.com/api-sage/voice-banking/src/internal/adapter/http/models"
	"github.com/api-sage/voice-banking/src/internal/voice"
)

type VoiceService interface {
	Process(ctx context.Context, accountNumber string, req models.VoiceCommandRequest) models.VoiceResponse
	VerifyOTP(ctx context.Context, accountNumber string, req models.OTPVerificationRequest) models.VoiceResponse
	Cancel(ctx context.Context, accountNumber string, req models.CancelTransferRequest) models.VoiceResponse
	Commands() []voice.Command
}

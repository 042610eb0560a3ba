package service_interfaces

import (
	"context"

	"github.com/api-sage/voice-banking/src/internal/adapter/http/models"
	"github.com/shopspring/decimal"
)

type TransferService interface {
	Initiate(ctx context.Context, senderAccountNumber, recipientIdentifier string, amount decimal.Decimal, description string) (models.TransferPending, error)
	Verify(ctx context.Context, senderAccountNumber, transactionID, submittedOTP string) (models.TransferReceipt, error)
	Cancel(ctx context.Context, senderAccountNumber, transactionID string) error
	ExpireStale(ctx context.Context) (int64, error)
}

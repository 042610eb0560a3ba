package repo_interfaces

import (
	"context"

	"github.com/api-sage/voice-banking/src/internal/domain"
)

type TransactionRepository interface {
	ListByAccount(ctx context.Context, accountNumber string, limit int) ([]domain.Transaction, error)
	RecentRecipients(ctx context.Context, accountNumber string, limit int) ([]domain.AccountSummary, error)
}

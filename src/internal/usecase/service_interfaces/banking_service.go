package service_interfaces

import (
	"context"

	"github.com/api-sage/voice-banking/src/internal/adapter/http/models"
	"github.com/api-sage/voice-banking/src/internal/domain"
)

type BankingService interface {
	GetBalance(ctx context.Context, accountNumber string) (models.BalanceData, error)
	GetTransactionHistory(ctx context.Context, accountNumber string, limit int) ([]models.TransactionData, error)
	LookupAccount(ctx context.Context, identifier string) (domain.AccountSummary, error)
	SearchAccounts(ctx context.Context, query, excludeAccountNumber string) ([]models.AccountSummaryData, error)
	RecentRecipients(ctx context.Context, accountNumber string) ([]models.AccountSummaryData, error)
}

package repo_interfaces

import (
	"context"

	"github.com/api-sage/voice-banking/src/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error)
	GetByUsername(ctx context.Context, username string) (domain.Account, error)
	Search(ctx context.Context, query string, excludeAccountNumber string, limit int) ([]domain.AccountSummary, error)
}

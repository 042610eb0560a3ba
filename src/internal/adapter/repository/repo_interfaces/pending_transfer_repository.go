package repo_interfaces

import (
	"context"

	"github.com/api-sage/voice-banking/src/internal/domain"
)

type PendingTransferRepository interface {
	Create(ctx context.Context, transfer domain.PendingTransfer) (domain.PendingTransfer, error)
	GetByTransactionID(ctx context.Context, transactionID string) (domain.PendingTransfer, error)
	GetLiveBySender(ctx context.Context, senderAccountNumber string) (domain.PendingTransfer, error)

	// UpdateStatus is a conditional write: the row moves from `from` to `to`
	// or the call fails with domain.ErrConcurrencyConflict.
	UpdateStatus(ctx context.Context, transactionID string, from, to domain.PendingTransferStatus) error

	// IncrementAttempts bumps attempts_used while the transfer is still
	// awaiting OTP and returns the new count.
	IncrementAttempts(ctx context.Context, transactionID string) (int, error)

	// Commit finalizes a verified transfer as a single database transaction:
	// status AWAITING_OTP -> VERIFIED, balance re-check, debit sender, credit
	// recipient and append the paired transaction records. Returns the
	// sender's new balance.
	Commit(ctx context.Context, transfer domain.PendingTransfer) (string, error)

	// ExpireStale reaps CREATED/AWAITING_OTP rows past their OTP expiry.
	// Optional sweep; expiry is also enforced lazily at verify time.
	ExpireStale(ctx context.Context) (int64, error)
}

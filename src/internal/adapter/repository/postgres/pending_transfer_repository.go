package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/voice-banking/src/internal/domain"
	"github.com/api-sage/voice-banking/src/internal/logger"
)

type PendingTransferRepository struct {
	db *sql.DB
}

func NewPendingTransferRepository(db *sql.DB) *PendingTransferRepository {
	return &PendingTransferRepository{db: db}
}

func (r *PendingTransferRepository) Create(ctx context.Context, transfer domain.PendingTransfer) (domain.PendingTransfer, error) {
	logger.Info("pending transfer repository create", logger.Fields{
		"transactionId":          transfer.TransactionID,
		"senderAccountNumber":    transfer.SenderAccountNumber,
		"recipientAccountNumber": transfer.RecipientAccountNumber,
		"status":                 transfer.Status,
	})

	const query = `
INSERT INTO pending_transfers (
	transaction_id,
	sender_account_number,
	recipient_account_number,
	amount,
	description,
	otp_code_hash,
	otp_expires_at,
	attempts_used,
	status
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9
)
RETURNING created_at, updated_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		transfer.TransactionID,
		transfer.SenderAccountNumber,
		transfer.RecipientAccountNumber,
		transfer.Amount,
		transfer.Description,
		transfer.OTPCodeHash,
		transfer.OTPExpiresAt,
		transfer.AttemptsUsed,
		transfer.Status,
	).Scan(&transfer.CreatedAt, &transfer.UpdatedAt); err != nil {
		logger.Error("pending transfer repository create failed", err, logger.Fields{
			"transactionId": transfer.TransactionID,
		})
		return domain.PendingTransfer{}, fmt.Errorf("create pending transfer: %w", err)
	}

	return transfer, nil
}

func (r *PendingTransferRepository) GetByTransactionID(ctx context.Context, transactionID string) (domain.PendingTransfer, error) {
	const query = `
SELECT transaction_id,
       sender_account_number,
       recipient_account_number,
       amount,
       description,
       otp_code_hash,
       otp_expires_at,
       attempts_used,
       status,
       created_at,
       updated_at
FROM pending_transfers
WHERE transaction_id = $1`

	return r.scanPendingTransfer(r.db.QueryRowContext(ctx, query, transactionID))
}

func (r *PendingTransferRepository) GetLiveBySender(ctx context.Context, senderAccountNumber string) (domain.PendingTransfer, error) {
	const query = `
SELECT transaction_id,
       sender_account_number,
       recipient_account_number,
       amount,
       description,
       otp_code_hash,
       otp_expires_at,
       attempts_used,
       status,
       created_at,
       updated_at
FROM pending_transfers
WHERE sender_account_number = $1
  AND status IN ('CREATED', 'AWAITING_OTP')
  AND otp_expires_at > NOW()
ORDER BY created_at DESC
LIMIT 1`

	return r.scanPendingTransfer(r.db.QueryRowContext(ctx, query, senderAccountNumber))
}

func (r *PendingTransferRepository) scanPendingTransfer(row *sql.Row) (domain.PendingTransfer, error) {
	var transfer domain.PendingTransfer

	if err := row.Scan(
		&transfer.TransactionID,
		&transfer.SenderAccountNumber,
		&transfer.RecipientAccountNumber,
		&transfer.Amount,
		&transfer.Description,
		&transfer.OTPCodeHash,
		&transfer.OTPExpiresAt,
		&transfer.AttemptsUsed,
		&transfer.Status,
		&transfer.CreatedAt,
		&transfer.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.PendingTransfer{}, domain.ErrRecordNotFound
		}
		logger.Error("pending transfer repository scan failed", err, nil)
		return domain.PendingTransfer{}, fmt.Errorf("get pending transfer: %w", err)
	}

	return transfer, nil
}

// UpdateStatus performs a compare-and-swap on the status column. A zero-row
// update means another handler moved the record first.
func (r *PendingTransferRepository) UpdateStatus(ctx context.Context, transactionID string, from, to domain.PendingTransferStatus) error {
	logger.Info("pending transfer repository update status", logger.Fields{
		"transactionId": transactionID,
		"from":          from,
		"to":            to,
	})

	const query = `
UPDATE pending_transfers
SET status = $3::varchar,
    updated_at = NOW()
WHERE transaction_id = $1
  AND status = $2::varchar`

	result, err := r.db.ExecContext(ctx, query, transactionID, from, to)
	if err != nil {
		logger.Error("pending transfer repository update status failed", err, logger.Fields{
			"transactionId": transactionID,
		})
		return fmt.Errorf("update pending transfer status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update pending transfer status rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrConcurrencyConflict
	}

	return nil
}

func (r *PendingTransferRepository) IncrementAttempts(ctx context.Context, transactionID string) (int, error) {
	const query = `
UPDATE pending_transfers
SET attempts_used = attempts_used + 1,
    updated_at = NOW()
WHERE transaction_id = $1
  AND status = 'AWAITING_OTP'
RETURNING attempts_used`

	var attempts int
	if err := r.db.QueryRowContext(ctx, query, transactionID).Scan(&attempts); err != nil {
		if err == sql.ErrNoRows {
			return 0, domain.ErrConcurrencyConflict
		}
		logger.Error("pending transfer repository increment attempts failed", err, logger.Fields{
			"transactionId": transactionID,
		})
		return 0, fmt.Errorf("increment pending transfer attempts: %w", err)
	}

	return attempts, nil
}

// Commit finalizes a verified transfer in one database transaction. The CAS
// to VERIFIED serializes concurrent verify calls: exactly one commits, the
// rest roll back without touching balances. The debit statement re-checks
// the sender balance so a balance drop since initiate fails the commit.
func (r *PendingTransferRepository) Commit(ctx context.Context, transfer domain.PendingTransfer) (string, error) {
	logger.Info("pending transfer repository commit", logger.Fields{
		"transactionId":          transfer.TransactionID,
		"senderAccountNumber":    transfer.SenderAccountNumber,
		"recipientAccountNumber": transfer.RecipientAccountNumber,
		"amount":                 transfer.Amount,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("pending transfer repository begin tx failed", err, nil)
		return "", fmt.Errorf("begin commit transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const claimQuery = `
UPDATE pending_transfers
SET status = 'VERIFIED',
    updated_at = NOW()
WHERE transaction_id = $1
  AND status = 'AWAITING_OTP'`

	result, err := tx.ExecContext(ctx, claimQuery, transfer.TransactionID)
	if err != nil {
		return "", fmt.Errorf("claim pending transfer: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("claim pending transfer rows affected: %w", err)
	}
	if rows == 0 {
		err = domain.ErrConcurrencyConflict
		return "", err
	}

	const debitQuery = `
UPDATE accounts
SET balance = balance - $2::numeric,
    updated_at = NOW()
WHERE account_number = $1
  AND balance >= $2::numeric
RETURNING balance::text`

	var senderBalance string
	if err = tx.QueryRowContext(ctx, debitQuery, transfer.SenderAccountNumber, transfer.Amount).Scan(&senderBalance); err != nil {
		if err == sql.ErrNoRows {
			err = domain.ErrInsufficientBalance
		}
		return "", err
	}

	const creditQuery = `
UPDATE accounts
SET balance = balance + $2::numeric,
    updated_at = NOW()
WHERE account_number = $1
RETURNING balance::text`

	var recipientBalance string
	if err = tx.QueryRowContext(ctx, creditQuery, transfer.RecipientAccountNumber, transfer.Amount).Scan(&recipientBalance); err != nil {
		if err == sql.ErrNoRows {
			err = domain.ErrRecordNotFound
		}
		return "", err
	}

	const insertTransactionQuery = `
INSERT INTO transactions (
	account_number,
	transaction_type,
	amount,
	description,
	balance_after,
	counterparty_account
) VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err = tx.ExecContext(
		ctx,
		insertTransactionQuery,
		transfer.SenderAccountNumber,
		domain.TransactionTypeDebit,
		transfer.Amount,
		transfer.Description,
		senderBalance,
		transfer.RecipientAccountNumber,
	); err != nil {
		return "", fmt.Errorf("insert debit transaction: %w", err)
	}

	if _, err = tx.ExecContext(
		ctx,
		insertTransactionQuery,
		transfer.RecipientAccountNumber,
		domain.TransactionTypeCredit,
		transfer.Amount,
		transfer.Description,
		recipientBalance,
		transfer.SenderAccountNumber,
	); err != nil {
		return "", fmt.Errorf("insert credit transaction: %w", err)
	}

	if err = tx.Commit(); err != nil {
		logger.Error("pending transfer repository commit tx failed", err, logger.Fields{
			"transactionId": transfer.TransactionID,
		})
		return "", fmt.Errorf("commit transfer transaction: %w", err)
	}

	logger.Info("pending transfer repository commit success", logger.Fields{
		"transactionId": transfer.TransactionID,
	})
	return senderBalance, nil
}

func (r *PendingTransferRepository) ExpireStale(ctx context.Context) (int64, error) {
	const query = `
UPDATE pending_transfers
SET status = 'EXPIRED',
    updated_at = NOW()
WHERE status IN ('CREATED', 'AWAITING_OTP')
  AND otp_expires_at <= NOW()`

	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		logger.Error("pending transfer repository expire stale failed", err, nil)
		return 0, fmt.Errorf("expire stale pending transfers: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("expire stale rows affected: %w", err)
	}

	if rows > 0 {
		logger.Info("pending transfer repository expired stale records", logger.Fields{
			"count": rows,
		})
	}
	return rows, nil
}

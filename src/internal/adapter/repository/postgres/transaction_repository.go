package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/voice-banking/src/internal/domain"
	"github.com/api-sage/voice-banking/src/internal/logger"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) ListByAccount(ctx context.Context, accountNumber string, limit int) ([]domain.Transaction, error) {
	logger.Info("transaction repository list", logger.Fields{
		"accountNumber": accountNumber,
		"limit":         limit,
	})

	const query = `
SELECT id,
       account_number,
       transaction_type,
       amount,
       description,
       balance_after,
       counterparty_account,
       created_at
FROM transactions
WHERE account_number = $1
ORDER BY created_at DESC
LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, accountNumber, limit)
	if err != nil {
		logger.Error("transaction repository list failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0, limit)
	for rows.Next() {
		var (
			transaction  domain.Transaction
			counterparty sql.NullString
		)
		if err := rows.Scan(
			&transaction.ID,
			&transaction.AccountNumber,
			&transaction.Type,
			&transaction.Amount,
			&transaction.Description,
			&transaction.BalanceAfter,
			&counterparty,
			&transaction.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if counterparty.Valid {
			value := counterparty.String
			transaction.CounterpartyAccount = &value
		}
		transactions = append(transactions, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return transactions, nil
}

func (r *TransactionRepository) RecentRecipients(ctx context.Context, accountNumber string, limit int) ([]domain.AccountSummary, error) {
	const query = `
SELECT account_number, username, full_name
FROM (
	SELECT DISTINCT ON (a.account_number)
	       a.account_number,
	       a.username,
	       a.full_name,
	       t.created_at AS last_sent
	FROM transactions t
	JOIN accounts a ON a.account_number = t.counterparty_account
	WHERE t.account_number = $1
	  AND t.transaction_type = 'debit'
	  AND t.counterparty_account IS NOT NULL
	ORDER BY a.account_number, t.created_at DESC
) recent
ORDER BY last_sent DESC
LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, accountNumber, limit)
	if err != nil {
		logger.Error("transaction repository recent recipients failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return nil, fmt.Errorf("recent recipients: %w", err)
	}
	defer rows.Close()

	recipients := make([]domain.AccountSummary, 0, limit)
	for rows.Next() {
		var (
			summary  domain.AccountSummary
			fullName sql.NullString
		)
		if err := rows.Scan(&summary.AccountNumber, &summary.Username, &fullName); err != nil {
			return nil, fmt.Errorf("scan recent recipient: %w", err)
		}
		if fullName.Valid {
			value := fullName.String
			summary.FullName = &value
		}
		recipients = append(recipients, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recent recipients: %w", err)
	}

	return recipients, nil
}

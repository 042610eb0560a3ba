package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/voice-banking/src/internal/domain"
	"github.com/api-sage/voice-banking/src/internal/logger"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	logger.Info("account repository create", logger.Fields{
		"username":      account.Username,
		"accountNumber": account.AccountNumber,
	})

	const query = `
INSERT INTO accounts (
	username,
	email,
	full_name,
	password_hash,
	account_number,
	balance
) VALUES (
	$1, $2, $3, $4, $5, $6
)
RETURNING id, created_at, updated_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.Username,
		account.Email,
		account.FullName,
		account.PasswordHash,
		account.AccountNumber,
		account.Balance,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt); err != nil {
		logger.Error("account repository create failed", err, logger.Fields{
			"username": account.Username,
		})
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	const query = `
SELECT id, username, email, full_name, password_hash, account_number, balance, created_at, updated_at
FROM accounts
WHERE account_number = $1`

	return r.scanAccount(ctx, query, accountNumber)
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	const query = `
SELECT id, username, email, full_name, password_hash, account_number, balance, created_at, updated_at
FROM accounts
WHERE LOWER(username) = LOWER($1)`

	return r.scanAccount(ctx, query, username)
}

func (r *AccountRepository) scanAccount(ctx context.Context, query string, arg any) (domain.Account, error) {
	var (
		account  domain.Account
		fullName sql.NullString
	)

	if err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&account.ID,
		&account.Username,
		&account.Email,
		&fullName,
		&account.PasswordHash,
		&account.AccountNumber,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.Account{}, domain.ErrRecordNotFound
		}
		logger.Error("account repository get failed", err, nil)
		return domain.Account{}, fmt.Errorf("get account: %w", err)
	}

	if fullName.Valid {
		value := fullName.String
		account.FullName = &value
	}

	return account, nil
}

func (r *AccountRepository) Search(ctx context.Context, query string, excludeAccountNumber string, limit int) ([]domain.AccountSummary, error) {
	logger.Info("account repository search", logger.Fields{
		"query": query,
		"limit": limit,
	})

	const searchQuery = `
SELECT account_number, username, full_name
FROM accounts
WHERE (username ILIKE '%' || $1 || '%'
   OR account_number ILIKE '%' || $1 || '%'
   OR full_name ILIKE '%' || $1 || '%')
  AND account_number <> $2
ORDER BY username
LIMIT $3`

	rows, err := r.db.QueryContext(ctx, searchQuery, query, excludeAccountNumber, limit)
	if err != nil {
		logger.Error("account repository search failed", err, logger.Fields{
			"query": query,
		})
		return nil, fmt.Errorf("search accounts: %w", err)
	}
	defer rows.Close()

	summaries := make([]domain.AccountSummary, 0, limit)
	for rows.Next() {
		var (
			summary  domain.AccountSummary
			fullName sql.NullString
		)
		if err := rows.Scan(&summary.AccountNumber, &summary.Username, &fullName); err != nil {
			return nil, fmt.Errorf("scan account summary: %w", err)
		}
		if fullName.Valid {
			value := fullName.String
			summary.FullName = &value
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account summaries: %w", err)
	}

	return summaries, nil
}

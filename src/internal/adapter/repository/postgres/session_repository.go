package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/voice-banking/src/internal/domain"
	"github.com/api-sage/voice-banking/src/internal/logger"
)

type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session domain.Session) error {
	const query = `
INSERT INTO sessions (token, account_number, expires_at)
VALUES ($1, $2, $3)`

	if _, err := r.db.ExecContext(ctx, query, session.Token, session.AccountNumber, session.ExpiresAt); err != nil {
		logger.Error("session repository create failed", err, logger.Fields{
			"accountNumber": session.AccountNumber,
		})
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetByToken(ctx context.Context, token string) (domain.Session, error) {
	const query = `
SELECT token, account_number, expires_at, created_at
FROM sessions
WHERE token = $1
  AND expires_at > NOW()`

	var session domain.Session
	if err := r.db.QueryRowContext(ctx, query, token).Scan(
		&session.Token,
		&session.AccountNumber,
		&session.ExpiresAt,
		&session.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.Session{}, domain.ErrRecordNotFound
		}
		logger.Error("session repository get failed", err, nil)
		return domain.Session{}, fmt.Errorf("get session: %w", err)
	}

	return session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	const query = `DELETE FROM sessions WHERE token = $1`

	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

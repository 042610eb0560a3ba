package repo_interfaces

import (
	"context"

	"github.com/api-sage/voice-banking/src/internal/domain"
)

type SessionRepository interface {
	Create(ctx context.Context, session domain.Session) error
	GetByToken(ctx context.Context, token string) (domain.Session, error)
	Delete(ctx context.Context, token string) error
}

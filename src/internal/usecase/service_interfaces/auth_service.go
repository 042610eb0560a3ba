package service_interfaces

import (
	"context"

	"github.com/api-sage/voice-banking/src/internal/adapter/http/models"
	"github.com/api-sage/voice-banking/src/internal/commons"
	"github.com/api-sage/voice-banking/src/internal/domain"
)

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (commons.Response[models.RegisterResponse], error)
	Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.LoginResponse], error)
	Authenticate(ctx context.Context, token string) (domain.Account, error)
}

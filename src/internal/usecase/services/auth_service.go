package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/voice-banking/src/internal/adapter/http/models"
	"github.com/api-sage/voice-banking/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/voice-banking/src/internal/commons"
	"github.com/api-sage/voice-banking/src/internal/domain"
	"github.com/api-sage/voice-banking/src/internal/logger"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

const openingBalance = "1000.00"

type AuthService struct {
	accountRepo repo_interfaces.AccountRepository
	sessionRepo repo_interfaces.SessionRepository
	sessionTTL  time.Duration
}

func NewAuthService(
	accountRepo repo_interfaces.AccountRepository,
	sessionRepo repo_interfaces.SessionRepository,
	sessionTTL time.Duration,
) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		sessionRepo: sessionRepo,
		sessionTTL:  sessionTTL,
	}
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (commons.Response[models.RegisterResponse], error) {
	logger.Info("auth service register request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.RegisterResponse]("validation failed", err.Error()), err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return commons.ErrorResponse[models.RegisterResponse]("failed to register", "Unable to register right now"), err
	}

	var fullName *string
	if trimmed := strings.TrimSpace(req.FullName); trimmed != "" {
		fullName = &trimmed
	}

	account := domain.Account{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		FullName:     fullName,
		PasswordHash: string(passwordHash),
		Balance:      openingBalance,
	}

	var created domain.Account
	for attempt := 0; attempt < 5; attempt++ {
		account.AccountNumber = generateAccountNumber()
		created, err = s.accountRepo.Create(ctx, account)
		if err == nil {
			break
		}
		if !isUniqueViolation(err) {
			return commons.ErrorResponse[models.RegisterResponse]("failed to register", "Unable to register right now"), err
		}
		if isUniqueViolationOn(err, "accounts_username_key") || isUniqueViolationOn(err, "accounts_email_key") {
			return commons.ErrorResponse[models.RegisterResponse]("validation failed", "username or email is already taken"), err
		}
	}
	if err != nil {
		return commons.ErrorResponse[models.RegisterResponse]("failed to register", "Unable to register right now"), err
	}

	logger.Info("auth service register success", logger.Fields{
		"username":      created.Username,
		"accountNumber": created.AccountNumber,
	})

	return commons.SuccessResponse("registration successful", models.RegisterResponse{
		Username:      created.Username,
		AccountNumber: created.AccountNumber,
	}), nil
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.LoginResponse], error) {
	logger.Info("auth service login request", logger.Fields{
		"username": req.Username,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.LoginResponse]("validation failed", err.Error()), err
	}

	account, err := s.accountRepo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.LoginResponse]("invalid credentials"), domain.ErrRecordNotFound
		}
		return commons.ErrorResponse[models.LoginResponse]("failed to login", "Unable to login right now"), err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		logger.Info("auth service login rejected", logger.Fields{
			"username": req.Username,
		})
		return commons.ErrorResponse[models.LoginResponse]("invalid credentials"), fmt.Errorf("invalid credentials")
	}

	token, err := generateSessionToken()
	if err != nil {
		return commons.ErrorResponse[models.LoginResponse]("failed to login", "Unable to login right now"), err
	}

	session := domain.Session{
		Token:         token,
		AccountNumber: account.AccountNumber,
		ExpiresAt:     time.Now().UTC().Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return commons.ErrorResponse[models.LoginResponse]("failed to login", "Unable to login right now"), err
	}

	return commons.SuccessResponse("login successful", models.LoginResponse{
		Token:         token,
		AccountNumber: account.AccountNumber,
		Username:      account.Username,
		ExpiresAt:     session.ExpiresAt,
	}), nil
}

// Authenticate resolves a session token to its account. Used by the HTTP
// middleware on every protected route.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Account, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return domain.Account{}, domain.ErrRecordNotFound
	}

	session, err := s.sessionRepo.GetByToken(ctx, trimmed)
	if err != nil {
		return domain.Account{}, err
	}

	return s.accountRepo.GetByAccountNumber(ctx, session.AccountNumber)
}

func generateSessionToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

func generateAccountNumber() string {
	raw := make([]byte, 5)
	if _, err := rand.Read(raw); err != nil {
		return domain.AccountNumberPrefix + fmt.Sprintf("%010d", time.Now().UnixNano()%10000000000)
	}

	digits := make([]byte, 10)
	for i := range digits {
		digits[i] = '0' + (raw[i/2]>>(4*uint(i%2)))%10
	}
	return domain.AccountNumberPrefix + string(digits)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == "23505"
	}
	return false
}

func isUniqueViolationOn(err error, constraint string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == "23505" && pqErr.Constraint == constraint
	}
	return false
}

package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/api-sage/voice-banking/src/internal/adapter/http/models"
	"github.com/api-sage/voice-banking/src/internal/domain"
	"github.com/api-sage/voice-banking/src/internal/usecase/services"
	"golang.org/x/crypto/bcrypt"
)

type sessionRepoStub struct {
	createFn     func(ctx context.Context, session domain.Session) error
	getByTokenFn func(ctx context.Context, token string) (domain.Session, error)
	deleteFn     func(ctx context.Context, token string) error
}

func (s sessionRepoStub) Create(ctx context.Context, session domain.Session) error {
	if s.createFn != nil {
		return s.createFn(ctx, session)
	}
	return nil
}

func (s sessionRepoStub) GetByToken(ctx context.Context, token string) (domain.Session, error) {
	if s.getByTokenFn != nil {
		return s.getByTokenFn(ctx, token)
	}
	return domain.Session{}, domain.ErrRecordNotFound
}

func (s sessionRepoStub) Delete(ctx context.Context, token string) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, token)
	}
	return nil
}

func TestAuthServiceRegisterValidationError(t *testing.T) {
	svc := services.NewAuthService(accountRepoStub{}, sessionRepoStub{}, time.Hour)

	resp, err := svc.Register(context.Background(), models.RegisterRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty register request")
	}
	if resp.Message != "validation failed" {
		t.Fatalf("expected validation failed message, got %q", resp.Message)
	}
}

func TestAuthServiceRegisterSuccess(t *testing.T) {
	var stored domain.Account
	accountRepo := accountRepoStub{
		createFn: func(_ context.Context, account domain.Account) (domain.Account, error) {
			stored = account
			return account, nil
		},
	}

	svc := services.NewAuthService(accountRepo, sessionRepoStub{}, time.Hour)

	resp, err := svc.Register(context.Background(), models.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Doe",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !resp.Success || resp.Data == nil {
		t.Fatal("expected successful response with data")
	}
	if resp.Data.Username != "alice" {
		t.Fatalf("expected username alice, got %s", resp.Data.Username)
	}
	if len(resp.Data.AccountNumber) != domain.AccountNumberLength || !strings.HasPrefix(resp.Data.AccountNumber, domain.AccountNumberPrefix) {
		t.Fatalf("expected a generated account number, got %q", resp.Data.AccountNumber)
	}
	if stored.Balance != "1000.00" {
		t.Fatalf("expected opening balance 1000.00, got %s", stored.Balance)
	}
	if stored.PasswordHash == "hunter2hunter2" || stored.PasswordHash == "" {
		t.Fatal("expected the password to be stored hashed")
	}
}

func TestAuthServiceLoginInvalidPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	accountRepo := accountRepoStub{
		getByUsernameFn: func(context.Context, string) (domain.Account, error) {
			account := senderAccount()
			account.PasswordHash = string(hash)
			return account, nil
		},
	}

	svc := services.NewAuthService(accountRepo, sessionRepoStub{}, time.Hour)

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Username: "alice",
		Password: "wrong-password1",
	})
	if err == nil {
		t.Fatal("expected invalid credentials error")
	}
	if resp.Message != "invalid credentials" {
		t.Fatalf("expected invalid credentials message, got %q", resp.Message)
	}
}

func TestAuthServiceLoginUnknownUserHidesExistence(t *testing.T) {
	svc := services.NewAuthService(accountRepoStub{}, sessionRepoStub{}, time.Hour)

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Username: "ghost",
		Password: "whatever1",
	})
	if err == nil {
		t.Fatal("expected an error for an unknown user")
	}
	if resp.Message != "invalid credentials" {
		t.Fatalf("expected the same message as a wrong password, got %q", resp.Message)
	}
}

func TestAuthServiceLoginCreatesSession(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	accountRepo := accountRepoStub{
		getByUsernameFn: func(context.Context, string) (domain.Account, error) {
			account := senderAccount()
			account.PasswordHash = string(hash)
			return account, nil
		},
	}

	var session domain.Session
	sessionRepo := sessionRepoStub{
		createFn: func(_ context.Context, s domain.Session) error {
			session = s
			return nil
		},
	}

	svc := services.NewAuthService(accountRepo, sessionRepo, time.Hour)

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Username: "alice",
		Password: "correct-horse1",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !resp.Success || resp.Data == nil {
		t.Fatal("expected successful response with data")
	}
	if resp.Data.Token == "" || resp.Data.Token != session.Token {
		t.Fatal("expected the issued token to match the stored session")
	}
	if session.AccountNumber != "ACC1111111111" {
		t.Fatalf("expected session bound to the account, got %s", session.AccountNumber)
	}
	if time.Until(session.ExpiresAt) <= 0 {
		t.Fatal("expected a future session expiry")
	}
}

func TestAuthServiceAuthenticateResolvesAccount(t *testing.T) {
	sessionRepo := sessionRepoStub{
		getByTokenFn: func(_ context.Context, token string) (domain.Session, error) {
			if token != "tok-1" {
				return domain.Session{}, domain.ErrRecordNotFound
			}
			return domain.Session{
				Token:         "tok-1",
				AccountNumber: "ACC1111111111",
				ExpiresAt:     time.Now().UTC().Add(time.Hour),
			}, nil
		},
	}

	svc := services.NewAuthService(accountsByNumber(senderAccount()), sessionRepo, time.Hour)

	account, err := svc.Authenticate(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if account.AccountNumber != "ACC1111111111" {
		t.Fatalf("expected account ACC1111111111, got %s", account.AccountNumber)
	}

	if _, err := svc.Authenticate(context.Background(), ""); err == nil {
		t.Fatal("expected an error for an empty token")
	}
}

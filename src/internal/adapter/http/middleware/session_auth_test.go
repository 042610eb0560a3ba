package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/api-sage/voice-banking/src/internal/domain"
)

type authenticatorStub struct {
	authenticateFn func(ctx context.Context, token string) (domain.Account, error)
}

func (s authenticatorStub) Authenticate(ctx context.Context, token string) (domain.Account, error) {
	if s.authenticateFn != nil {
		return s.authenticateFn(ctx, token)
	}
	return domain.Account{}, domain.ErrRecordNotFound
}

func TestSessionAuth_AllowsValidToken(t *testing.T) {
	mw := SessionAuth(authenticatorStub{
		authenticateFn: func(_ context.Context, token string) (domain.Account, error) {
			if token != "tok-1" {
				return domain.Account{}, domain.ErrRecordNotFound
			}
			return domain.Account{AccountNumber: "ACC1111111111", Username: "alice"}, nil
		},
	})

	var seen domain.Account
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account, ok := AccountFrom(r.Context())
		if !ok {
			t.Fatal("expected the account in the request context")
		}
		seen = account
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok-1")

	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if seen.AccountNumber != "ACC1111111111" {
		t.Fatalf("expected account ACC1111111111, got %s", seen.AccountNumber)
	}
}

func TestSessionAuth_RejectsInvalidToken(t *testing.T) {
	mw := SessionAuth(authenticatorStub{})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bogus")

	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestSessionAuth_RejectsMissingHeader(t *testing.T) {
	mw := SessionAuth(authenticatorStub{})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestSessionAuth_RejectsNonBearerScheme(t *testing.T) {
	mw := SessionAuth(authenticatorStub{})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

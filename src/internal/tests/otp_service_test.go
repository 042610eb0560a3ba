package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/api-sage/voice-banking/src/internal/domain"
	"github.com/api-sage/voice-banking/src/internal/usecase/services"
)

func TestOTPServiceIssueProducesFixedLengthCode(t *testing.T) {
	svc := services.NewOTPService(6, 5*time.Minute, 3)

	issued, err := svc.Issue()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(issued.Code) != 6 {
		t.Fatalf("expected a 6 digit code, got %q", issued.Code)
	}
	for _, ch := range issued.Code {
		if ch < '0' || ch > '9' {
			t.Fatalf("expected digits only, got %q", issued.Code)
		}
	}
	if issued.Hash == "" || issued.Hash == issued.Code {
		t.Fatal("expected the stored hash to differ from the plaintext code")
	}

	remaining := time.Until(issued.ExpiresAt)
	if remaining < 4*time.Minute || remaining > 6*time.Minute {
		t.Fatalf("expected expiry about 5 minutes out, got %s", remaining)
	}
}

func TestOTPServiceVerifyRoundTrip(t *testing.T) {
	svc := services.NewOTPService(6, 5*time.Minute, 3)

	issued, err := svc.Issue()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if err := svc.Verify(issued.Hash, issued.Code); err != nil {
		t.Fatalf("expected the issued code to verify, got %v", err)
	}

	wrong := "000000"
	if issued.Code == wrong {
		wrong = "111111"
	}
	if err := svc.Verify(issued.Hash, wrong); !errors.Is(err, domain.ErrOTPMismatch) {
		t.Fatalf("expected ErrOTPMismatch for a wrong code, got %v", err)
	}
}

func TestOTPServiceMaxAttempts(t *testing.T) {
	svc := services.NewOTPService(6, 5*time.Minute, 3)

	if svc.MaxAttempts() != 3 {
		t.Fatalf("expected 3 attempts, got %d", svc.MaxAttempts())
	}
}

package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/api-sage/voice-banking/src/internal/adapter/http/models"
	"github.com/api-sage/voice-banking/src/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type OTPService struct {
	length      int
	expiry      time.Duration
	maxAttempts int
}

func NewOTPService(length int, expiry time.Duration, maxAttempts int) *OTPService {
	return &OTPService{
		length:      length,
		expiry:      expiry,
		maxAttempts: maxAttempts,
	}
}

// Issue generates a fixed-length numeric code from a cryptographically strong
// random source. The plaintext leaves this method only for out-of-band
// delivery; callers persist the hash.
func (s *OTPService) Issue() (models.IssuedOTP, error) {
	code, err := randomDigits(s.length)
	if err != nil {
		return models.IssuedOTP{}, fmt.Errorf("generate otp: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return models.IssuedOTP{}, fmt.Errorf("hash otp: %w", err)
	}

	return models.IssuedOTP{
		Code:      code,
		Hash:      string(hash),
		ExpiresAt: time.Now().UTC().Add(s.expiry),
	}, nil
}

// Verify compares a submitted code against the stored hash. bcrypt comparison
// does not leak timing on the code contents.
func (s *OTPService) Verify(hash, submitted string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(submitted)); err != nil {
		return domain.ErrOTPMismatch
	}
	return nil
}

func (s *OTPService) MaxAttempts() int {
	return s.maxAttempts
}

func randomDigits(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

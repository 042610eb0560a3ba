package models

import (
	"strings"
	"testing"
)

func TestVoiceCommandRequestValidate(t *testing.T) {
	if err := (VoiceCommandRequest{Transcript: "check balance"}).Validate(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := (VoiceCommandRequest{Transcript: "   "}).Validate(); err == nil {
		t.Fatal("expected validation error for blank transcript")
	}
}

func TestOTPVerificationRequestValidate(t *testing.T) {
	valid := OTPVerificationRequest{TransactionID: "tx-1", OTP: "123456"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	cases := []OTPVerificationRequest{
		{TransactionID: "", OTP: "123456"},
		{TransactionID: "tx-1", OTP: "12345"},
		{TransactionID: "tx-1", OTP: "1234567"},
		{TransactionID: "tx-1", OTP: "12a456"},
		{TransactionID: "tx-1", OTP: ""},
	}
	for _, c := range cases {
		if err := c.Validate(); err == nil {
			t.Fatalf("expected validation error for %+v", c)
		}
	}

	err := OTPVerificationRequest{}.Validate()
	if err == nil || !strings.Contains(err.Error(), "; ") {
		t.Fatalf("expected joined validation errors, got %v", err)
	}
}

func TestRegisterRequestValidate(t *testing.T) {
	valid := RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	cases := []RegisterRequest{
		{Username: "", Email: "alice@example.com", Password: "hunter2hunter2"},
		{Username: "alice", Email: "not-an-email", Password: "hunter2hunter2"},
		{Username: "alice", Email: "alice@example.com", Password: "short1"},
		{Username: "alice", Email: "alice@example.com", Password: "lettersonly"},
		{Username: "alice", Email: "alice@example.com", Password: "12345678"},
	}
	for _, c := range cases {
		if err := c.Validate(); err == nil {
			t.Fatalf("expected validation error for %+v", c)
		}
	}
}

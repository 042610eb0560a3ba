package models

import (
	"errors"
	"strings"
)

// Voice envelope actions consumed by the UI.
const (
	ActionCheckBalance       = "check_balance"
	ActionTransfer           = "transfer"
	ActionTransferPending    = "transfer_pending"
	ActionTransactionHistory = "transaction_history"
	ActionHelp               = "help"
	ActionRejected           = "rejected"
	ActionClarify            = "clarify"
	ActionUnknown            = "unknown"
	ActionError              = "error"
	ActionTransferFailed     = "transfer_failed"
	ActionTransferCancelled  = "transfer_cancelled"
)

type VoiceCommandRequest struct {
	Transcript string `json:"transcript"`
}

func (r VoiceCommandRequest) Validate() error {
	if strings.TrimSpace(r.Transcript) == "" {
		return errors.New("transcript is required")
	}
	return nil
}

type OTPVerificationRequest struct {
	TransactionID string `json:"transaction_id"`
	OTP           string `json:"otp"`
}

func (r OTPVerificationRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.TransactionID) == "" {
		errs = append(errs, "transaction_id is required")
	}

	otp := strings.TrimSpace(r.OTP)
	if len(otp) != 6 || !digitsOnly(otp) {
		errs = append(errs, "otp must be exactly 6 digits")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type CancelTransferRequest struct {
	TransactionID string `json:"transaction_id"`
}

func (r CancelTransferRequest) Validate() error {
	if strings.TrimSpace(r.TransactionID) == "" {
		return errors.New("transaction_id is required")
	}
	return nil
}

// VoiceResponse is the uniform envelope every voice endpoint returns.
type VoiceResponse struct {
	Action        string   `json:"action"`
	Message       string   `json:"message"`
	Data          any      `json:"data,omitempty"`
	Suggestions   []string `json:"suggestions,omitempty"`
	RequiresOTP   bool     `json:"requires_otp,omitempty"`
	TransactionID string   `json:"transaction_id,omitempty"`
}

func digitsOnly(value string) bool {
	for _, ch := range value {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

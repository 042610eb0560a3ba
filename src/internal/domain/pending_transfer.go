package domain

import "time"

type PendingTransferStatus string

const (
	PendingTransferStatusCreated     PendingTransferStatus = "CREATED"
	PendingTransferStatusAwaitingOTP PendingTransferStatus = "AWAITING_OTP"
	PendingTransferStatusVerified    PendingTransferStatus = "VERIFIED"
	PendingTransferStatusExpired     PendingTransferStatus = "EXPIRED"
	PendingTransferStatusCancelled   PendingTransferStatus = "CANCELLED"
	PendingTransferStatusFailed      PendingTransferStatus = "FAILED"
)

// IsTerminal reports whether no further transition is allowed from the status.
func (s PendingTransferStatus) IsTerminal() bool {
	switch s {
	case PendingTransferStatusVerified,
		PendingTransferStatusExpired,
		PendingTransferStatusCancelled,
		PendingTransferStatusFailed:
		return true
	}
	return false
}

// PendingTransfer is the staged, not-yet-committed record of a transfer
// awaiting OTP confirmation. Only the hash of the OTP is ever stored.
type PendingTransfer struct {
	TransactionID          string
	SenderAccountNumber    string
	RecipientAccountNumber string
	Amount                 string
	Description            string
	OTPCodeHash            string
	OTPExpiresAt           time.Time
	AttemptsUsed           int
	Status                 PendingTransferStatus
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

package models

import "time"

// TransferPending is what initiate hands back: the staged transfer summary
// echoed to the caller while the funds stay untouched.
type TransferPending struct {
	TransactionID    string `json:"transaction_id"`
	Amount           string `json:"amount"`
	Recipient        string `json:"recipient"`
	RecipientAccount string `json:"recipient_account"`
	OTPSent          bool   `json:"otp_sent"`
	Reused           bool   `json:"-"`
}

// TransferReceipt is the committed-transfer result returned by verify.
type TransferReceipt struct {
	TransactionID string `json:"transaction_id"`
	Amount        string `json:"amount"`
	NewBalance    string `json:"new_balance"`
}

// IssuedOTP carries a freshly generated one-time code. Only the hash is ever
// persisted; the plaintext goes out-of-band and is dropped.
type IssuedOTP struct {
	Code      string
	Hash      string
	ExpiresAt time.Time
}

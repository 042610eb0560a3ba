package domain

import "time"

type Session struct {
	Token         string
	AccountNumber string
	ExpiresAt     time.Time
	CreatedAt     time.Time
}

package domain

import "time"

// Account numbers are a fixed "ACC" prefix followed by ten digits.
const (
	AccountNumberPrefix = "ACC"
	AccountNumberLength = 13
)

type Account struct {
	ID            string
	Username      string
	Email         string
	FullName      *string
	PasswordHash  string
	AccountNumber string
	Balance       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AccountSummary is the public shape returned by lookups and search,
// it never carries the balance or password hash.
type AccountSummary struct {
	AccountNumber string
	Username      string
	FullName      *string
}

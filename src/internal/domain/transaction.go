package domain

import "time"

type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "debit"
	TransactionTypeCredit TransactionType = "credit"
)

// Transaction rows are append only. They are written by a committed transfer
// and never mutated afterwards.
type Transaction struct {
	ID                  string
	AccountNumber       string
	Type                TransactionType
	Amount              string
	Description         string
	BalanceAfter        string
	CounterpartyAccount *string
	Timestamp           time.Time
}

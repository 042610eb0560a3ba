package models

import "time"

type BalanceData struct {
	Balance       string `json:"balance"`
	AccountNumber string `json:"account_number"`
	Username      string `json:"username"`
}

type TransactionData struct {
	ID                  string    `json:"id"`
	Type                string    `json:"type"`
	Amount              string    `json:"amount"`
	Description         string    `json:"description"`
	BalanceAfter        string    `json:"balance_after"`
	CounterpartyAccount *string   `json:"counterparty_account,omitempty"`
	Timestamp           time.Time `json:"timestamp"`
}

type TransactionHistoryData struct {
	Transactions []TransactionData `json:"transactions"`
}

type AccountSummaryData struct {
	AccountNumber string  `json:"account_number"`
	Username      string  `json:"username"`
	FullName      *string `json:"full_name,omitempty"`
}

type CommandCatalogData struct {
	Commands any `json:"commands"`
}

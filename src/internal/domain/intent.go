package domain

import "github.com/shopspring/decimal"

type IntentKind string

const (
	IntentCheckBalance       IntentKind = "check_balance"
	IntentTransfer           IntentKind = "transfer"
	IntentTransactionHistory IntentKind = "transaction_history"
	IntentHelp               IntentKind = "help"
	IntentRejected           IntentKind = "rejected"
	IntentClarify            IntentKind = "clarify"
	IntentUnknown            IntentKind = "unknown"
)

// Confidence is a discrete tier, not a probability. It only decides whether
// a partial match short-circuits to clarify.
type Confidence string

const (
	ConfidenceHigh Confidence = "high"
	ConfidenceLow  Confidence = "low"
)

// Entities holds the structured values extracted from a transcript.
// Every field is optional and absence is meaningful.
type Entities struct {
	Amount              *decimal.Decimal
	RecipientIdentifier string
	HistoryCount        int
}

// Intent is the classified purpose of a single transcript. Produced fresh
// per transcript and never mutated.
type Intent struct {
	Kind        IntentKind
	Entities    Entities
	Confidence  Confidence
	Message     string
	Suggestions []string
	Transcript  string
}

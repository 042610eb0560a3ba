package voice

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/api-sage/voice-banking/src/internal/domain"
)

// Rule classifies a normalized transcript. Rules are evaluated in priority
// order so a more specific rule pre-empts a generic one; the first rule that
// matches wins.
type Rule struct {
	Name  string
	Apply func(transcript string) (domain.Intent, bool)
}

var punctuationPattern = regexp.MustCompile(`[!?,;:"']`)
var whitespacePattern = regexp.MustCompile(`\s+`)

var balanceKeywords = []string{"account balance", "balance", "how much"}
var transferVerbs = []string{"transfer", "send", "pay", "give"}
var historyKeywords = []string{"transaction", "history", "statement"}
var helpKeywords = []string{"what can you do", "help", "commands"}

var outOfDomainKeywords = []string{
	"mobile balance", "phone balance", "recharge", "top up",
	"weather", "joke", "music", "song", "movie", "news",
	"order food", "pizza", "taxi", "ride",
}

var exampleCommands = []string{
	"Check balance",
	"Transfer 100 to ACC1234567890",
	"Show last 5 transactions",
	"Help",
}

// Parse maps a free-text transcript to a structured banking intent. It is
// pure and side-effect free; recipient usernames are resolved downstream.
func Parse(transcript string) domain.Intent {
	normalized := Normalize(transcript)

	for _, rule := range Rules() {
		if intent, ok := rule.Apply(normalized); ok {
			intent.Transcript = transcript
			return intent
		}
	}

	return domain.Intent{
		Kind:       domain.IntentUnknown,
		Confidence: domain.ConfidenceLow,
		Message:    fmt.Sprintf("I couldn't understand %q. Here are some things you can try.", transcript),
		Suggestions: exampleCommands,
		Transcript:  transcript,
	}
}

// Normalize lowercases, strips punctuation and collapses whitespace.
// Periods are kept inside numbers ("45.50") but trimmed from the tail.
func Normalize(transcript string) string {
	normalized := strings.ToLower(strings.TrimSpace(transcript))
	normalized = punctuationPattern.ReplaceAllString(normalized, " ")
	normalized = whitespacePattern.ReplaceAllString(normalized, " ")
	normalized = strings.TrimRight(strings.TrimSpace(normalized), ".")
	return normalized
}

// Rules returns the ordered rule set. Out-of-domain detection runs first so
// "mobile balance" never reaches the balance rule.
func Rules() []Rule {
	return []Rule{
		{Name: "out_of_domain", Apply: applyOutOfDomainRule},
		{Name: "balance", Apply: applyBalanceRule},
		{Name: "transfer", Apply: applyTransferRule},
		{Name: "history", Apply: applyHistoryRule},
		{Name: "help", Apply: applyHelpRule},
	}
}

func applyOutOfDomainRule(transcript string) (domain.Intent, bool) {
	keyword, ok := containsAny(transcript, outOfDomainKeywords)
	if !ok {
		return domain.Intent{}, false
	}

	return domain.Intent{
		Kind:       domain.IntentRejected,
		Confidence: domain.ConfidenceHigh,
		Message: fmt.Sprintf(
			"I can only help with banking services like checking your balance, transferring money, or viewing transactions. I cannot help with %s.",
			keyword,
		),
	}, true
}

func applyBalanceRule(transcript string) (domain.Intent, bool) {
	keyword, ok := containsAny(transcript, balanceKeywords)
	if !ok {
		return domain.Intent{}, false
	}

	return domain.Intent{
		Kind:       domain.IntentCheckBalance,
		Confidence: confidenceFor(transcript, keyword),
	}, true
}

func applyTransferRule(transcript string) (domain.Intent, bool) {
	verb, ok := containsAnyWord(transcript, transferVerbs)
	if !ok {
		return domain.Intent{}, false
	}

	amount, hasAmount := ParseAmount(transcript)
	if !hasAmount {
		return domain.Intent{
			Kind:       domain.IntentClarify,
			Confidence: domain.ConfidenceLow,
			Message:    "How much would you like to transfer?",
			Suggestions: []string{"Transfer 100 to ACC1234567890"},
		}, true
	}
	if amount.IsNegative() || amount.IsZero() {
		return domain.Intent{
			Kind:       domain.IntentClarify,
			Confidence: domain.ConfidenceLow,
			Message:    "The transfer amount must be greater than zero. How much would you like to transfer?",
		}, true
	}

	recipient, hasRecipient := ParseRecipient(transcript)
	if !hasRecipient {
		return domain.Intent{
			Kind:       domain.IntentClarify,
			Confidence: domain.ConfidenceLow,
			Message:    "Who would you like to transfer to? You can say an account number or a username.",
			Suggestions: []string{"Transfer 100 to ACC1234567890", "Send 50 to user bob"},
		}, true
	}

	return domain.Intent{
		Kind:       domain.IntentTransfer,
		Confidence: confidenceFor(transcript, verb),
		Entities: domain.Entities{
			Amount:              &amount,
			RecipientIdentifier: recipient,
		},
	}, true
}

func applyHistoryRule(transcript string) (domain.Intent, bool) {
	keyword, ok := containsAny(transcript, historyKeywords)
	if !ok {
		return domain.Intent{}, false
	}

	return domain.Intent{
		Kind:       domain.IntentTransactionHistory,
		Confidence: confidenceFor(transcript, keyword),
		Entities: domain.Entities{
			HistoryCount: ParseHistoryCount(transcript),
		},
	}, true
}

func applyHelpRule(transcript string) (domain.Intent, bool) {
	keyword, ok := containsAny(transcript, helpKeywords)
	if !ok {
		return domain.Intent{}, false
	}

	return domain.Intent{
		Kind:       domain.IntentHelp,
		Confidence: confidenceFor(transcript, keyword),
	}, true
}

func containsAny(transcript string, keywords []string) (string, bool) {
	for _, keyword := range keywords {
		if strings.Contains(transcript, keyword) {
			return keyword, true
		}
	}
	return "", false
}

func containsAnyWord(transcript string, words []string) (string, bool) {
	tokens := strings.Fields(transcript)
	for _, word := range words {
		for _, token := range tokens {
			if token == word {
				return word, true
			}
		}
	}
	return "", false
}

// confidenceFor is a discrete tier, not a score: an exact keyword hit on a
// short transcript is high, anything longer or fuzzier is low.
func confidenceFor(transcript, keyword string) domain.Confidence {
	if transcript == keyword {
		return domain.ConfidenceHigh
	}
	if len(strings.Fields(transcript)) <= 2*len(strings.Fields(keyword))+4 {
		return domain.ConfidenceHigh
	}
	return domain.ConfidenceLow
}

// Command describes one supported voice command for the help catalog.
type Command struct {
	Command  string   `json:"command"`
	Examples []string `json:"examples"`
	Action   string   `json:"action"`
}

// Commands lists every supported voice command with usage examples.
func Commands() []Command {
	return []Command{
		{
			Command: "Check Balance",
			Examples: []string{
				"Check balance",
				"What is my balance",
				"Show my account balance",
			},
			Action: string(domain.IntentCheckBalance),
		},
		{
			Command: "Transfer Funds",
			Examples: []string{
				"Transfer 100 to ACC1234567890",
				"Send 50 to user bob",
				"Pay 25 to ACC5555555555",
			},
			Action: string(domain.IntentTransfer),
		},
		{
			Command: "Transaction History",
			Examples: []string{
				"Show transaction history",
				"Show last 5 transactions",
			},
			Action: string(domain.IntentTransactionHistory),
		},
		{
			Command: "Help",
			Examples: []string{
				"Help",
				"What can you do",
			},
			Action: string(domain.IntentHelp),
		},
	}
}

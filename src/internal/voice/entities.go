package voice

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/api-sage/voice-banking/src/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	DefaultHistoryCount = 10
	MaxHistoryCount     = 50
)

var accountNumberPattern = regexp.MustCompile(`\bacc\d{10}\b`)
var numericAmountPattern = regexp.MustCompile(`^\$?\d+(\.\d+)?$`)
var historyCountPattern = regexp.MustCompile(`(?:last\s+)?(\d+)\s+(?:recent\s+)?transactions?\b`)

var smallNumberWords = map[string]int64{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19, "twenty": 20,
	"thirty": 30, "forty": 40, "fifty": 50, "sixty": 60, "seventy": 70,
	"eighty": 80, "ninety": 90,
}

var multiplierWords = map[string]int64{
	"hundred":  100,
	"thousand": 1000,
}

var currencyWords = map[string]struct{}{
	"dollar": {}, "dollars": {}, "bucks": {}, "usd": {},
}

// ParseAmount extracts the first contiguous monetary amount from a normalized
// transcript. Supports digits ("100", "$45.50") and spelled-out small numbers
// ("fifty", "one hundred"). A count that qualifies "transactions" is not an
// amount.
func ParseAmount(transcript string) (decimal.Decimal, bool) {
	tokens := strings.Fields(transcript)

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]

		if numericAmountPattern.MatchString(token) {
			if qualifiesTransactions(tokens, i) {
				continue
			}
			value, err := decimal.NewFromString(strings.TrimPrefix(token, "$"))
			if err != nil {
				continue
			}
			return value, true
		}

		if value, consumed, ok := parseSpelledNumber(tokens[i:]); ok {
			if qualifiesTransactions(tokens, i+consumed-1) {
				continue
			}
			return decimal.NewFromInt(value), true
		}
	}

	return decimal.Zero, false
}

// qualifiesTransactions reports whether the token at index i is a history
// count ("last 5 transactions") rather than a monetary amount.
func qualifiesTransactions(tokens []string, i int) bool {
	if i+1 >= len(tokens) {
		return false
	}
	next := tokens[i+1]
	if next == "recent" && i+2 < len(tokens) {
		next = tokens[i+2]
	}
	return next == "transaction" || next == "transactions"
}

func parseSpelledNumber(tokens []string) (int64, int, bool) {
	if len(tokens) == 0 {
		return 0, 0, false
	}

	base, ok := smallNumberWords[tokens[0]]
	if !ok {
		if mult, isMult := multiplierWords[tokens[0]]; isMult {
			// "hundred dollars" on its own means one hundred
			return mult, 1, true
		}
		return 0, 0, false
	}

	total := base
	consumed := 1

	for consumed < len(tokens) {
		token := tokens[consumed]
		if mult, isMult := multiplierWords[token]; isMult {
			total *= mult
			consumed++
			continue
		}
		if addend, isSmall := smallNumberWords[token]; isSmall && total > addend {
			total += addend
			consumed++
			continue
		}
		break
	}

	return total, consumed, true
}

// ParseRecipient extracts the recipient identifier from a normalized
// transcript. A token matching the fixed account-number pattern wins;
// otherwise the phrase after "to"/"into"/"user" is returned as a raw
// username for later resolution.
func ParseRecipient(transcript string) (string, bool) {
	if match := accountNumberPattern.FindString(transcript); match != "" {
		return strings.ToUpper(match), true
	}

	tokens := strings.Fields(transcript)
	for i, token := range tokens {
		if token != "to" && token != "into" && token != "user" {
			continue
		}
		if i+1 >= len(tokens) {
			continue
		}
		candidate := tokens[i+1]
		if candidate == "user" && i+2 < len(tokens) {
			candidate = tokens[i+2]
		}
		if isRecipientNoise(candidate) {
			continue
		}
		return candidate, true
	}

	return "", false
}

func isRecipientNoise(token string) bool {
	switch token {
	case "my", "me", "the", "a", "an":
		return true
	}
	if numericAmountPattern.MatchString(token) {
		return true
	}
	if _, ok := currencyWords[token]; ok {
		return true
	}
	return false
}

// ParseHistoryCount extracts "last N transactions" style counts. Absent or
// out-of-range counts fall back to the default, capped at the maximum.
func ParseHistoryCount(transcript string) int {
	match := historyCountPattern.FindStringSubmatch(transcript)
	if match == nil {
		return DefaultHistoryCount
	}

	count, err := strconv.Atoi(match[1])
	if err != nil || count < 1 {
		return DefaultHistoryCount
	}
	if count > MaxHistoryCount {
		return MaxHistoryCount
	}
	return count
}

// IsAccountNumber reports whether the identifier is a full account number
// (fixed prefix plus ten digits, 13 characters total).
func IsAccountNumber(identifier string) bool {
	trimmed := strings.ToUpper(strings.TrimSpace(identifier))
	if len(trimmed) != domain.AccountNumberLength {
		return false
	}
	if !strings.HasPrefix(trimmed, domain.AccountNumberPrefix) {
		return false
	}
	for _, ch := range trimmed[len(domain.AccountNumberPrefix):] {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

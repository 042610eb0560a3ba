package voice

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		transcript string
		want       string
		found      bool
	}{
		{"transfer 100 to bob", "100", true},
		{"send $45.50 to alice", "45.5", true},
		{"pay fifty bucks to bob", "50", true},
		{"transfer one hundred to bob", "100", true},
		{"send twenty five to bob", "25", true},
		{"transfer one thousand to acc1234567890", "1000", true},
		{"show last 5 transactions", "", false},
		{"show last 5 recent transactions", "", false},
		{"transfer money to bob", "", false},
		{"check balance", "", false},
	}

	for _, c := range cases {
		amount, found := ParseAmount(c.transcript)
		if found != c.found {
			t.Fatalf("transcript %q: want found=%v, got %v", c.transcript, c.found, found)
		}
		if found && amount.String() != c.want {
			t.Fatalf("transcript %q: want amount %s, got %s", c.transcript, c.want, amount.String())
		}
	}
}

func TestParseRecipient(t *testing.T) {
	cases := []struct {
		transcript string
		want       string
		found      bool
	}{
		{"transfer 100 to acc1234567890", "ACC1234567890", true},
		{"send 50 to user bob", "bob", true},
		{"pay 25 to alice", "alice", true},
		{"move 10 into savings", "savings", true},
		{"transfer 100", "", false},
		{"send 50 to 100", "", false},
		{"send 50 to the", "", false},
	}

	for _, c := range cases {
		recipient, found := ParseRecipient(c.transcript)
		if found != c.found {
			t.Fatalf("transcript %q: want found=%v, got %v", c.transcript, c.found, found)
		}
		if found && recipient != c.want {
			t.Fatalf("transcript %q: want recipient %q, got %q", c.transcript, c.want, recipient)
		}
	}
}

func TestParseHistoryCount(t *testing.T) {
	cases := []struct {
		transcript string
		want       int
	}{
		{"show last 5 transactions", 5},
		{"show 20 transactions", 20},
		{"show transaction history", DefaultHistoryCount},
		{"show last 500 transactions", MaxHistoryCount},
		{"show last 0 transactions", DefaultHistoryCount},
	}

	for _, c := range cases {
		if got := ParseHistoryCount(c.transcript); got != c.want {
			t.Fatalf("transcript %q: want %d, got %d", c.transcript, c.want, got)
		}
	}
}

func TestIsAccountNumber(t *testing.T) {
	cases := []struct {
		identifier string
		want       bool
	}{
		{"ACC1234567890", true},
		{"acc1234567890", true},
		{"  ACC1234567890  ", true},
		{"ACC12345", false},
		{"ACC12345678901", false},
		{"ACC12345678xx", false},
		{"bob", false},
		{"", false},
	}

	for _, c := range cases {
		if got := IsAccountNumber(c.identifier); got != c.want {
			t.Fatalf("identifier %q: want %v, got %v", c.identifier, c.want, got)
		}
	}
}

package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/api-sage/voice-banking/src/internal/adapter/http/models"
	"github.com/api-sage/voice-banking/src/internal/domain"
	"github.com/api-sage/voice-banking/src/internal/usecase/services"
	"github.com/shopspring/decimal"
)

type bankingServiceStub struct {
	getBalanceFn            func(ctx context.Context, accountNumber string) (models.BalanceData, error)
	getTransactionHistoryFn func(ctx context.Context, accountNumber string, limit int) ([]models.TransactionData, error)
	lookupAccountFn         func(ctx context.Context, identifier string) (domain.AccountSummary, error)
	searchAccountsFn        func(ctx context.Context, query, excludeAccountNumber string) ([]models.AccountSummaryData, error)
	recentRecipientsFn      func(ctx context.Context, accountNumber string) ([]models.AccountSummaryData, error)
}

func (s bankingServiceStub) GetBalance(ctx context.Context, accountNumber string) (models.BalanceData, error) {
	if s.getBalanceFn != nil {
		return s.getBalanceFn(ctx, accountNumber)
	}
	return models.BalanceData{}, nil
}

func (s bankingServiceStub) GetTransactionHistory(ctx context.Context, accountNumber string, limit int) ([]models.TransactionData, error) {
	if s.getTransactionHistoryFn != nil {
		return s.getTransactionHistoryFn(ctx, accountNumber, limit)
	}
	return nil, nil
}

func (s bankingServiceStub) LookupAccount(ctx context.Context, identifier string) (domain.AccountSummary, error) {
	if s.lookupAccountFn != nil {
		return s.lookupAccountFn(ctx, identifier)
	}
	return domain.AccountSummary{}, domain.ErrRecordNotFound
}

func (s bankingServiceStub) SearchAccounts(ctx context.Context, query, excludeAccountNumber string) ([]models.AccountSummaryData, error) {
	if s.searchAccountsFn != nil {
		return s.searchAccountsFn(ctx, query, excludeAccountNumber)
	}
	return nil, nil
}

func (s bankingServiceStub) RecentRecipients(ctx context.Context, accountNumber string) ([]models.AccountSummaryData, error) {
	if s.recentRecipientsFn != nil {
		return s.recentRecipientsFn(ctx, accountNumber)
	}
	return nil, nil
}

type transferServiceStub struct {
	initiateFn    func(ctx context.Context, senderAccountNumber, recipientIdentifier string, amount decimal.Decimal, description string) (models.TransferPending, error)
	verifyFn      func(ctx context.Context, senderAccountNumber, transactionID, submittedOTP string) (models.TransferReceipt, error)
	cancelFn      func(ctx context.Context, senderAccountNumber, transactionID string) error
	expireStaleFn func(ctx context.Context) (int64, error)
}

func (s transferServiceStub) Initiate(ctx context.Context, senderAccountNumber, recipientIdentifier string, amount decimal.Decimal, description string) (models.TransferPending, error) {
	if s.initiateFn != nil {
		return s.initiateFn(ctx, senderAccountNumber, recipientIdentifier, amount, description)
	}
	return models.TransferPending{}, nil
}

func (s transferServiceStub) Verify(ctx context.Context, senderAccountNumber, transactionID, submittedOTP string) (models.TransferReceipt, error) {
	if s.verifyFn != nil {
		return s.verifyFn(ctx, senderAccountNumber, transactionID, submittedOTP)
	}
	return models.TransferReceipt{}, nil
}

func (s transferServiceStub) Cancel(ctx context.Context, senderAccountNumber, transactionID string) error {
	if s.cancelFn != nil {
		return s.cancelFn(ctx, senderAccountNumber, transactionID)
	}
	return nil
}

func (s transferServiceStub) ExpireStale(ctx context.Context) (int64, error) {
	if s.expireStaleFn != nil {
		return s.expireStaleFn(ctx)
	}
	return 0, nil
}

func TestVoiceServiceProcessCheckBalance(t *testing.T) {
	banking := bankingServiceStub{
		getBalanceFn: func(_ context.Context, accountNumber string) (models.BalanceData, error) {
			return models.BalanceData{
				Balance:       "250.00",
				AccountNumber: accountNumber,
				Username:      "alice",
			}, nil
		},
	}

	svc := services.NewVoiceService(banking, transferServiceStub{})

	resp := svc.Process(context.Background(), "ACC1111111111", models.VoiceCommandRequest{Transcript: "what is my balance"})
	if resp.Action != models.ActionCheckBalance {
		t.Fatalf("expected action %s, got %s", models.ActionCheckBalance, resp.Action)
	}
	if !strings.Contains(resp.Message, "$250.00") {
		t.Fatalf("expected balance in message, got %q", resp.Message)
	}
}

func TestVoiceServiceProcessTransferRequiresOTP(t *testing.T) {
	transfer := transferServiceStub{
		initiateFn: func(_ context.Context, sender, recipient string, amount decimal.Decimal, description string) (models.TransferPending, error) {
			if sender != "ACC1111111111" {
				t.Fatalf("unexpected sender %s", sender)
			}
			if recipient != "ACC2222222222" {
				t.Fatalf("unexpected recipient %s", recipient)
			}
			if amount.String() != "100" {
				t.Fatalf("unexpected amount %s", amount.String())
			}
			if !strings.HasPrefix(description, "Voice transfer: ") {
				t.Fatalf("unexpected description %q", description)
			}
			return models.TransferPending{
				TransactionID:    "tx-1",
				Amount:           "100.00",
				Recipient:        "ACC2222222222",
				RecipientAccount: "ACC2222222222",
				OTPSent:          true,
			}, nil
		},
	}

	svc := services.NewVoiceService(bankingServiceStub{}, transfer)

	resp := svc.Process(context.Background(), "ACC1111111111", models.VoiceCommandRequest{Transcript: "transfer 100 to ACC2222222222"})
	if resp.Action != models.ActionTransferPending {
		t.Fatalf("expected action %s, got %s", models.ActionTransferPending, resp.Action)
	}
	if !resp.RequiresOTP {
		t.Fatal("expected requires_otp on a staged transfer")
	}
	if resp.TransactionID != "tx-1" {
		t.Fatalf("expected transaction id tx-1, got %s", resp.TransactionID)
	}
}

func TestVoiceServiceProcessRejectsOutOfDomain(t *testing.T) {
	svc := services.NewVoiceService(bankingServiceStub{}, transferServiceStub{})

	resp := svc.Process(context.Background(), "ACC1111111111", models.VoiceCommandRequest{Transcript: "tell me a joke"})
	if resp.Action != models.ActionRejected {
		t.Fatalf("expected action %s, got %s", models.ActionRejected, resp.Action)
	}
	if !strings.Contains(resp.Message, "banking") {
		t.Fatalf("expected a banking-scope message, got %q", resp.Message)
	}
}

func TestVoiceServiceProcessClarifiesIncompleteTransfer(t *testing.T) {
	initiateCalled := false
	transfer := transferServiceStub{
		initiateFn: func(context.Context, string, string, decimal.Decimal, string) (models.TransferPending, error) {
			initiateCalled = true
			return models.TransferPending{}, nil
		},
	}

	svc := services.NewVoiceService(bankingServiceStub{}, transfer)

	resp := svc.Process(context.Background(), "ACC1111111111", models.VoiceCommandRequest{Transcript: "transfer money to bob"})
	if resp.Action != models.ActionClarify {
		t.Fatalf("expected action %s, got %s", models.ActionClarify, resp.Action)
	}
	if initiateCalled {
		t.Fatal("expected no transfer to be staged from an incomplete command")
	}
}

func TestVoiceServiceProcessTransactionHistory(t *testing.T) {
	var requestedLimit int
	banking := bankingServiceStub{
		getTransactionHistoryFn: func(_ context.Context, _ string, limit int) ([]models.TransactionData, error) {
			requestedLimit = limit
			return []models.TransactionData{{ID: "t1"}, {ID: "t2"}}, nil
		},
	}

	svc := services.NewVoiceService(banking, transferServiceStub{})

	resp := svc.Process(context.Background(), "ACC1111111111", models.VoiceCommandRequest{Transcript: "show last 5 transactions"})
	if resp.Action != models.ActionTransactionHistory {
		t.Fatalf("expected action %s, got %s", models.ActionTransactionHistory, resp.Action)
	}
	if requestedLimit != 5 {
		t.Fatalf("expected limit 5, got %d", requestedLimit)
	}
}

func TestVoiceServiceProcessEmptyTranscript(t *testing.T) {
	svc := services.NewVoiceService(bankingServiceStub{}, transferServiceStub{})

	resp := svc.Process(context.Background(), "ACC1111111111", models.VoiceCommandRequest{Transcript: "   "})
	if resp.Action != models.ActionError {
		t.Fatalf("expected action %s, got %s", models.ActionError, resp.Action)
	}
}

func TestVoiceServiceVerifyOTPSuccess(t *testing.T) {
	transfer := transferServiceStub{
		verifyFn: func(_ context.Context, _, transactionID, otp string) (models.TransferReceipt, error) {
			if otp != "123456" {
				t.Fatalf("unexpected otp %s", otp)
			}
			return models.TransferReceipt{
				TransactionID: transactionID,
				Amount:        "100.00",
				NewBalance:    "400.00",
			}, nil
		},
	}

	svc := services.NewVoiceService(bankingServiceStub{}, transfer)

	resp := svc.VerifyOTP(context.Background(), "ACC1111111111", models.OTPVerificationRequest{
		TransactionID: "tx-1",
		OTP:           "123456",
	})
	if resp.Action != models.ActionTransfer {
		t.Fatalf("expected action %s, got %s", models.ActionTransfer, resp.Action)
	}
	if !strings.Contains(resp.Message, "$100.00") || !strings.Contains(resp.Message, "$400.00") {
		t.Fatalf("expected amount and new balance in message, got %q", resp.Message)
	}
}

func TestVoiceServiceVerifyOTPMismatchKeepsTransferOpen(t *testing.T) {
	transfer := transferServiceStub{
		verifyFn: func(context.Context, string, string, string) (models.TransferReceipt, error) {
			return models.TransferReceipt{}, domain.ErrOTPMismatch
		},
	}

	svc := services.NewVoiceService(bankingServiceStub{}, transfer)

	resp := svc.VerifyOTP(context.Background(), "ACC1111111111", models.OTPVerificationRequest{
		TransactionID: "tx-1",
		OTP:           "000000",
	})
	if resp.Action != models.ActionTransferFailed {
		t.Fatalf("expected action %s, got %s", models.ActionTransferFailed, resp.Action)
	}
	if !resp.RequiresOTP {
		t.Fatal("expected requires_otp so the caller can retry")
	}
}

func TestVoiceServiceVerifyOTPExpired(t *testing.T) {
	transfer := transferServiceStub{
		verifyFn: func(context.Context, string, string, string) (models.TransferReceipt, error) {
			return models.TransferReceipt{}, domain.ErrOTPExpired
		},
	}

	svc := services.NewVoiceService(bankingServiceStub{}, transfer)

	resp := svc.VerifyOTP(context.Background(), "ACC1111111111", models.OTPVerificationRequest{
		TransactionID: "tx-1",
		OTP:           "123456",
	})
	if resp.Action != models.ActionTransferFailed {
		t.Fatalf("expected action %s, got %s", models.ActionTransferFailed, resp.Action)
	}
	if resp.RequiresOTP {
		t.Fatal("expected no retry prompt once the otp expired")
	}
}

func TestVoiceServiceVerifyOTPRejectsMalformedCode(t *testing.T) {
	verifyCalled := false
	transfer := transferServiceStub{
		verifyFn: func(context.Context, string, string, string) (models.TransferReceipt, error) {
			verifyCalled = true
			return models.TransferReceipt{}, nil
		},
	}

	svc := services.NewVoiceService(bankingServiceStub{}, transfer)

	resp := svc.VerifyOTP(context.Background(), "ACC1111111111", models.OTPVerificationRequest{
		TransactionID: "tx-1",
		OTP:           "12ab56",
	})
	if resp.Action != models.ActionError {
		t.Fatalf("expected action %s, got %s", models.ActionError, resp.Action)
	}
	if verifyCalled {
		t.Fatal("expected no verification attempt for a malformed code")
	}
}

func TestVoiceServiceCancelTransfer(t *testing.T) {
	transfer := transferServiceStub{
		cancelFn: func(_ context.Context, _, transactionID string) error {
			if transactionID != "tx-1" {
				t.Fatalf("unexpected transaction id %s", transactionID)
			}
			return nil
		},
	}

	svc := services.NewVoiceService(bankingServiceStub{}, transfer)

	resp := svc.Cancel(context.Background(), "ACC1111111111", models.CancelTransferRequest{TransactionID: "tx-1"})
	if resp.Action != models.ActionTransferCancelled {
		t.Fatalf("expected action %s, got %s", models.ActionTransferCancelled, resp.Action)
	}
}

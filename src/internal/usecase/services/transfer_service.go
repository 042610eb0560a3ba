package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/voice-banking/src/internal/adapter/http/models"
	"github.com/api-sage/voice-banking/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/voice-banking/src/internal/domain"
	"github.com/api-sage/voice-banking/src/internal/logger"
	"github.com/api-sage/voice-banking/src/internal/usecase/service_interfaces"
	"github.com/api-sage/voice-banking/src/internal/voice"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransferService struct {
	pendingRepo repo_interfaces.PendingTransferRepository
	accountRepo repo_interfaces.AccountRepository
	otpService  service_interfaces.OTPService
	otpSender   service_interfaces.OTPSender
	amountCap   decimal.Decimal
}

func NewTransferService(
	pendingRepo repo_interfaces.PendingTransferRepository,
	accountRepo repo_interfaces.AccountRepository,
	otpService service_interfaces.OTPService,
	otpSender service_interfaces.OTPSender,
	amountCap string,
) *TransferService {
	cap, err := decimal.NewFromString(amountCap)
	if err != nil || cap.LessThanOrEqual(decimal.Zero) {
		cap = decimal.NewFromInt(1000000)
	}
	return &TransferService{
		pendingRepo: pendingRepo,
		accountRepo: accountRepo,
		otpService:  otpService,
		otpSender:   otpSender,
		amountCap:   cap,
	}
}

// Initiate stages a transfer and issues its OTP. No funds move here: the
// record is created in CREATED, the code is delivered out-of-band, and the
// record advances to AWAITING_OTP. Re-submitting an identical request while
// a live staged transfer exists returns the existing record instead of
// staging a second one.
func (s *TransferService) Initiate(ctx context.Context, senderAccountNumber, recipientIdentifier string, amount decimal.Decimal, description string) (models.TransferPending, error) {
	logger.Info("transfer service initiate", logger.Fields{
		"senderAccountNumber": senderAccountNumber,
		"recipient":           recipientIdentifier,
		"amount":              amount.String(),
	})

	if amount.LessThanOrEqual(decimal.Zero) {
		return models.TransferPending{}, domain.ErrInvalidAmount
	}
	if amount.GreaterThan(s.amountCap) {
		return models.TransferPending{}, fmt.Errorf("transfer amount exceeds the maximum limit of %s", s.amountCap.String())
	}

	sender, err := s.accountRepo.GetByAccountNumber(ctx, senderAccountNumber)
	if err != nil {
		return models.TransferPending{}, fmt.Errorf("load sender account: %w", err)
	}

	recipient, err := s.resolveRecipient(ctx, recipientIdentifier)
	if err != nil {
		return models.TransferPending{}, err
	}

	if sender.AccountNumber == recipient.AccountNumber {
		return models.TransferPending{}, domain.ErrSelfTransfer
	}

	balance, err := decimal.NewFromString(sender.Balance)
	if err != nil {
		return models.TransferPending{}, fmt.Errorf("parse sender balance: %w", err)
	}
	if balance.LessThan(amount) {
		return models.TransferPending{}, domain.ErrInsufficientBalance
	}

	if existing, found := s.liveTransferFor(ctx, sender.AccountNumber); found {
		if existing.RecipientAccountNumber == recipient.AccountNumber && amountEqual(existing.Amount, amount) {
			logger.Info("transfer service reusing live staged transfer", logger.Fields{
				"transactionId": existing.TransactionID,
			})
			return models.TransferPending{
				TransactionID:    existing.TransactionID,
				Amount:           existing.Amount,
				Recipient:        recipientDisplay(recipientIdentifier, recipient),
				RecipientAccount: recipient.AccountNumber,
				OTPSent:          true,
				Reused:           true,
			}, nil
		}
		// A different transfer supersedes the stale staged one.
		if err := s.pendingRepo.UpdateStatus(ctx, existing.TransactionID, existing.Status, domain.PendingTransferStatusCancelled); err != nil && !errors.Is(err, domain.ErrConcurrencyConflict) {
			return models.TransferPending{}, fmt.Errorf("cancel superseded transfer: %w", err)
		}
	}

	issued, err := s.otpService.Issue()
	if err != nil {
		return models.TransferPending{}, err
	}

	transfer := domain.PendingTransfer{
		TransactionID:          uuid.NewString(),
		SenderAccountNumber:    sender.AccountNumber,
		RecipientAccountNumber: recipient.AccountNumber,
		Amount:                 amount.StringFixed(2),
		Description:            description,
		OTPCodeHash:            issued.Hash,
		OTPExpiresAt:           issued.ExpiresAt,
		Status:                 domain.PendingTransferStatusCreated,
	}

	created, err := s.pendingRepo.Create(ctx, transfer)
	if err != nil {
		return models.TransferPending{}, fmt.Errorf("stage pending transfer: %w", err)
	}

	display := recipientDisplay(recipientIdentifier, recipient)
	otpSent := true
	if err := s.otpSender.SendTransferOTP(ctx, sender.Email, issued.Code, created.Amount, display); err != nil {
		logger.Error("transfer service otp delivery failed", err, logger.Fields{
			"transactionId": created.TransactionID,
		})
		otpSent = false
	}

	if err := s.pendingRepo.UpdateStatus(ctx, created.TransactionID, domain.PendingTransferStatusCreated, domain.PendingTransferStatusAwaitingOTP); err != nil {
		return models.TransferPending{}, fmt.Errorf("advance staged transfer: %w", err)
	}

	logger.Info("transfer service staged transfer awaiting otp", logger.Fields{
		"transactionId":          created.TransactionID,
		"senderAccountNumber":    sender.AccountNumber,
		"recipientAccountNumber": recipient.AccountNumber,
	})

	return models.TransferPending{
		TransactionID:    created.TransactionID,
		Amount:           created.Amount,
		Recipient:        display,
		RecipientAccount: recipient.AccountNumber,
		OTPSent:          otpSent,
	}, nil
}

// Verify checks the submitted code and, on a match, commits the transfer
// atomically. Expiry is enforced lazily here; attempt counting is monotonic
// and persisted on the staged record.
func (s *TransferService) Verify(ctx context.Context, senderAccountNumber, transactionID, submittedOTP string) (models.TransferReceipt, error) {
	transfer, err := s.pendingRepo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return models.TransferReceipt{}, err
	}
	if transfer.SenderAccountNumber != senderAccountNumber {
		// Do not reveal other users' staged transfers.
		return models.TransferReceipt{}, domain.ErrRecordNotFound
	}

	switch transfer.Status {
	case domain.PendingTransferStatusVerified:
		return models.TransferReceipt{}, domain.ErrAlreadyCompleted
	case domain.PendingTransferStatusExpired:
		return models.TransferReceipt{}, domain.ErrOTPExpired
	case domain.PendingTransferStatusCancelled, domain.PendingTransferStatusFailed:
		return models.TransferReceipt{}, domain.ErrTransferNotPending
	}

	if time.Now().UTC().After(transfer.OTPExpiresAt) {
		if err := s.pendingRepo.UpdateStatus(ctx, transfer.TransactionID, transfer.Status, domain.PendingTransferStatusExpired); err != nil && !errors.Is(err, domain.ErrConcurrencyConflict) {
			logger.Error("transfer service expire transition failed", err, logger.Fields{
				"transactionId": transfer.TransactionID,
			})
		}
		return models.TransferReceipt{}, domain.ErrOTPExpired
	}

	if transfer.AttemptsUsed >= s.otpService.MaxAttempts() {
		return models.TransferReceipt{}, domain.ErrOTPAttemptsExhausted
	}

	if err := s.otpService.Verify(transfer.OTPCodeHash, submittedOTP); err != nil {
		attempts, incErr := s.pendingRepo.IncrementAttempts(ctx, transfer.TransactionID)
		if incErr != nil {
			return models.TransferReceipt{}, incErr
		}
		if attempts >= s.otpService.MaxAttempts() {
			if casErr := s.pendingRepo.UpdateStatus(ctx, transfer.TransactionID, domain.PendingTransferStatusAwaitingOTP, domain.PendingTransferStatusFailed); casErr != nil && !errors.Is(casErr, domain.ErrConcurrencyConflict) {
				logger.Error("transfer service exhausted transition failed", casErr, logger.Fields{
					"transactionId": transfer.TransactionID,
				})
			}
			return models.TransferReceipt{}, domain.ErrOTPAttemptsExhausted
		}
		remaining := s.otpService.MaxAttempts() - attempts
		return models.TransferReceipt{}, fmt.Errorf("%w. %d attempts remaining", domain.ErrOTPMismatch, remaining)
	}

	newBalance, err := s.pendingRepo.Commit(ctx, transfer)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConcurrencyConflict):
			// Another verify won the claim; report the settled state.
			current, getErr := s.pendingRepo.GetByTransactionID(ctx, transfer.TransactionID)
			if getErr == nil && current.Status == domain.PendingTransferStatusVerified {
				return models.TransferReceipt{}, domain.ErrAlreadyCompleted
			}
			return models.TransferReceipt{}, domain.ErrTransferNotPending
		case errors.Is(err, domain.ErrInsufficientBalance):
			// Balance dropped between initiate and commit: terminal failure,
			// never silently retried.
			if casErr := s.pendingRepo.UpdateStatus(ctx, transfer.TransactionID, domain.PendingTransferStatusAwaitingOTP, domain.PendingTransferStatusFailed); casErr != nil && !errors.Is(casErr, domain.ErrConcurrencyConflict) {
				logger.Error("transfer service commit failure transition failed", casErr, logger.Fields{
					"transactionId": transfer.TransactionID,
				})
			}
			return models.TransferReceipt{}, domain.ErrInsufficientBalance
		default:
			// Transient posting failure: the record stays AWAITING_OTP so a
			// retried verify with the same code can re-attempt the commit.
			logger.Error("transfer service commit failed", err, logger.Fields{
				"transactionId": transfer.TransactionID,
			})
			return models.TransferReceipt{}, fmt.Errorf("commit transfer: %w", err)
		}
	}

	logger.Info("transfer service transfer committed", logger.Fields{
		"transactionId": transfer.TransactionID,
	})

	return models.TransferReceipt{
		TransactionID: transfer.TransactionID,
		Amount:        transfer.Amount,
		NewBalance:    newBalance,
	}, nil
}

// Cancel is idempotent: cancelling an already terminal transfer is a no-op
// success.
func (s *TransferService) Cancel(ctx context.Context, senderAccountNumber, transactionID string) error {
	transfer, err := s.pendingRepo.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return err
	}
	if transfer.SenderAccountNumber != senderAccountNumber {
		return domain.ErrRecordNotFound
	}
	if transfer.Status.IsTerminal() {
		return nil
	}

	if err := s.pendingRepo.UpdateStatus(ctx, transfer.TransactionID, transfer.Status, domain.PendingTransferStatusCancelled); err != nil {
		if errors.Is(err, domain.ErrConcurrencyConflict) {
			current, getErr := s.pendingRepo.GetByTransactionID(ctx, transfer.TransactionID)
			if getErr == nil && current.Status.IsTerminal() {
				return nil
			}
		}
		return err
	}

	logger.Info("transfer service transfer cancelled", logger.Fields{
		"transactionId": transfer.TransactionID,
	})
	return nil
}

func (s *TransferService) ExpireStale(ctx context.Context) (int64, error) {
	return s.pendingRepo.ExpireStale(ctx)
}

func (s *TransferService) resolveRecipient(ctx context.Context, identifier string) (domain.Account, error) {
	if voice.IsAccountNumber(identifier) {
		return s.accountRepo.GetByAccountNumber(ctx, normalizeAccountNumber(identifier))
	}
	return s.accountRepo.GetByUsername(ctx, identifier)
}

func (s *TransferService) liveTransferFor(ctx context.Context, senderAccountNumber string) (domain.PendingTransfer, bool) {
	existing, err := s.pendingRepo.GetLiveBySender(ctx, senderAccountNumber)
	if err != nil {
		if !errors.Is(err, domain.ErrRecordNotFound) {
			logger.Error("transfer service live transfer lookup failed", err, logger.Fields{
				"senderAccountNumber": senderAccountNumber,
			})
		}
		return domain.PendingTransfer{}, false
	}
	return existing, true
}

func recipientDisplay(identifier string, recipient domain.Account) string {
	if voice.IsAccountNumber(identifier) {
		return recipient.AccountNumber
	}
	return fmt.Sprintf("user %s", recipient.Username)
}

func normalizeAccountNumber(identifier string) string {
	return strings.ToUpper(strings.TrimSpace(identifier))
}

func amountEqual(stored string, amount decimal.Decimal) bool {
	value, err := decimal.NewFromString(stored)
	if err != nil {
		return false
	}
	return value.Equal(amount)
}

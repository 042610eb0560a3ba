package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/api-sage/voice-banking/src/internal/adapter/http/models"
	"github.com/api-sage/voice-banking/src/internal/domain"
	"github.com/api-sage/voice-banking/src/internal/logger"
	"github.com/api-sage/voice-banking/src/internal/usecase/service_interfaces"
	"github.com/api-sage/voice-banking/src/internal/voice"
)

// VoiceService dispatches parsed intents to banking operations and formats
// every outcome into the uniform voice envelope. Transfers are never executed
// directly: they always defer into the OTP-gated workflow.
type VoiceService struct {
	bankingService  service_interfaces.BankingService
	transferService service_interfaces.TransferService
}

func NewVoiceService(
	bankingService service_interfaces.BankingService,
	transferService service_interfaces.TransferService,
) *VoiceService {
	return &VoiceService{
		bankingService:  bankingService,
		transferService: transferService,
	}
}

func (s *VoiceService) Process(ctx context.Context, accountNumber string, req models.VoiceCommandRequest) models.VoiceResponse {
	if err := req.Validate(); err != nil {
		return models.VoiceResponse{
			Action:  models.ActionError,
			Message: err.Error(),
		}
	}

	intent := voice.Parse(req.Transcript)

	logger.Info("voice service parsed transcript", logger.Fields{
		"accountNumber": accountNumber,
		"intent":        intent.Kind,
		"confidence":    intent.Confidence,
	})

	switch intent.Kind {
	case domain.IntentCheckBalance:
		return s.checkBalance(ctx, accountNumber)
	case domain.IntentTransfer:
		return s.initiateTransfer(ctx, accountNumber, intent)
	case domain.IntentTransactionHistory:
		return s.transactionHistory(ctx, accountNumber, intent.Entities.HistoryCount)
	case domain.IntentHelp:
		return models.VoiceResponse{
			Action:  models.ActionHelp,
			Message: "I can help you with checking your balance, transferring money, and viewing transactions.",
			Data:    models.CommandCatalogData{Commands: voice.Commands()},
		}
	case domain.IntentRejected:
		return models.VoiceResponse{
			Action:  models.ActionRejected,
			Message: intent.Message,
		}
	case domain.IntentClarify:
		return models.VoiceResponse{
			Action:      models.ActionClarify,
			Message:     intent.Message,
			Suggestions: intent.Suggestions,
		}
	default:
		return models.VoiceResponse{
			Action:      models.ActionUnknown,
			Message:     intent.Message,
			Suggestions: intent.Suggestions,
		}
	}
}

func (s *VoiceService) VerifyOTP(ctx context.Context, accountNumber string, req models.OTPVerificationRequest) models.VoiceResponse {
	if err := req.Validate(); err != nil {
		return models.VoiceResponse{
			Action:  models.ActionError,
			Message: err.Error(),
		}
	}

	receipt, err := s.transferService.Verify(ctx, accountNumber, req.TransactionID, req.OTP)
	if err != nil {
		return verifyFailureResponse(req.TransactionID, err)
	}

	return models.VoiceResponse{
		Action:        models.ActionTransfer,
		Message:       fmt.Sprintf("Transfer successful! $%s sent. New balance: $%s", receipt.Amount, receipt.NewBalance),
		Data:          receipt,
		TransactionID: receipt.TransactionID,
	}
}

func (s *VoiceService) Cancel(ctx context.Context, accountNumber string, req models.CancelTransferRequest) models.VoiceResponse {
	if err := req.Validate(); err != nil {
		return models.VoiceResponse{
			Action:  models.ActionError,
			Message: err.Error(),
		}
	}

	if err := s.transferService.Cancel(ctx, accountNumber, req.TransactionID); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return models.VoiceResponse{
				Action:  models.ActionError,
				Message: "Transaction not found.",
			}
		}
		return models.VoiceResponse{
			Action:  models.ActionError,
			Message: "Unable to cancel the transfer right now. Please try again.",
		}
	}

	return models.VoiceResponse{
		Action:        models.ActionTransferCancelled,
		Message:       "The pending transfer has been cancelled.",
		TransactionID: req.TransactionID,
	}
}

func (s *VoiceService) Commands() []voice.Command {
	return voice.Commands()
}

func (s *VoiceService) checkBalance(ctx context.Context, accountNumber string) models.VoiceResponse {
	balance, err := s.bankingService.GetBalance(ctx, accountNumber)
	if err != nil {
		return models.VoiceResponse{
			Action:  models.ActionError,
			Message: "Unable to fetch your balance right now. Please try again.",
		}
	}

	return models.VoiceResponse{
		Action:  models.ActionCheckBalance,
		Message: fmt.Sprintf("Your current account balance is $%s", balance.Balance),
		Data:    balance,
	}
}

func (s *VoiceService) initiateTransfer(ctx context.Context, accountNumber string, intent domain.Intent) models.VoiceResponse {
	description := fmt.Sprintf("Voice transfer: %s", intent.Transcript)

	pending, err := s.transferService.Initiate(ctx, accountNumber, intent.Entities.RecipientIdentifier, *intent.Entities.Amount, description)
	if err != nil {
		return initiateFailureResponse(intent.Entities.RecipientIdentifier, err)
	}

	message := fmt.Sprintf(
		"Transfer of $%s to %s requires verification. An OTP has been sent to your registered email. Please provide it to complete the transaction.",
		pending.Amount, pending.Recipient,
	)
	if pending.Reused {
		message = fmt.Sprintf(
			"A transfer of $%s to %s is already awaiting verification. Please provide the OTP that was sent to your registered email.",
			pending.Amount, pending.Recipient,
		)
	}

	return models.VoiceResponse{
		Action:        models.ActionTransferPending,
		Message:       message,
		Data:          pending,
		RequiresOTP:   true,
		TransactionID: pending.TransactionID,
	}
}

func (s *VoiceService) transactionHistory(ctx context.Context, accountNumber string, count int) models.VoiceResponse {
	history, err := s.bankingService.GetTransactionHistory(ctx, accountNumber, count)
	if err != nil {
		return models.VoiceResponse{
			Action:  models.ActionError,
			Message: "Unable to fetch your transactions right now. Please try again.",
		}
	}

	return models.VoiceResponse{
		Action:  models.ActionTransactionHistory,
		Message: fmt.Sprintf("Here are your last %d transactions", len(history)),
		Data:    models.TransactionHistoryData{Transactions: history},
	}
}

func initiateFailureResponse(recipientIdentifier string, err error) models.VoiceResponse {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return models.VoiceResponse{
			Action:  models.ActionTransferFailed,
			Message: fmt.Sprintf("Recipient %q was not found.", recipientIdentifier),
		}
	case errors.Is(err, domain.ErrInsufficientBalance):
		return models.VoiceResponse{
			Action:  models.ActionTransferFailed,
			Message: "Insufficient funds for this transfer.",
		}
	case errors.Is(err, domain.ErrSelfTransfer):
		return models.VoiceResponse{
			Action:  models.ActionTransferFailed,
			Message: "You cannot transfer to your own account.",
		}
	case errors.Is(err, domain.ErrInvalidAmount):
		return models.VoiceResponse{
			Action:  models.ActionTransferFailed,
			Message: "The transfer amount must be greater than zero.",
		}
	default:
		return models.VoiceResponse{
			Action:  models.ActionError,
			Message: "Unable to process the transfer right now. Please try again.",
		}
	}
}

func verifyFailureResponse(transactionID string, err error) models.VoiceResponse {
	response := models.VoiceResponse{
		Action:        models.ActionTransferFailed,
		TransactionID: transactionID,
	}

	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		response.Action = models.ActionError
		response.Message = "Transaction not found or expired."
	case errors.Is(err, domain.ErrOTPExpired):
		response.Message = "The OTP has expired. Please initiate a new transfer."
	case errors.Is(err, domain.ErrOTPAttemptsExhausted):
		response.Message = "Maximum verification attempts exceeded. Please initiate a new transfer."
	case errors.Is(err, domain.ErrOTPMismatch):
		response.Message = err.Error()
		response.RequiresOTP = true
	case errors.Is(err, domain.ErrAlreadyCompleted):
		response.Message = "This transfer has already been completed."
	case errors.Is(err, domain.ErrInsufficientBalance):
		response.Message = "Your balance has changed and no longer covers this transfer."
	case errors.Is(err, domain.ErrTransferNotPending):
		response.Message = "This transfer is no longer pending."
	default:
		response.Action = models.ActionError
		response.Message = "Unable to complete the transfer right now. Your OTP is still valid, please try again."
	}

	return response
}

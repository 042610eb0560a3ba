package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/api-sage/voice-banking/src/internal/adapter/http/models"
	"github.com/api-sage/voice-banking/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/voice-banking/src/internal/domain"
	"github.com/api-sage/voice-banking/src/internal/logger"
	"github.com/api-sage/voice-banking/src/internal/voice"
)

const maxSearchResults = 10
const maxRecentRecipients = 5

type BankingService struct {
	accountRepo     repo_interfaces.AccountRepository
	transactionRepo repo_interfaces.TransactionRepository
}

func NewBankingService(
	accountRepo repo_interfaces.AccountRepository,
	transactionRepo repo_interfaces.TransactionRepository,
) *BankingService {
	return &BankingService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

func (s *BankingService) GetBalance(ctx context.Context, accountNumber string) (models.BalanceData, error) {
	account, err := s.accountRepo.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		logger.Error("banking service get balance failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return models.BalanceData{}, err
	}

	return models.BalanceData{
		Balance:       account.Balance,
		AccountNumber: account.AccountNumber,
		Username:      account.Username,
	}, nil
}

func (s *BankingService) GetTransactionHistory(ctx context.Context, accountNumber string, limit int) ([]models.TransactionData, error) {
	if limit < 1 {
		limit = voice.DefaultHistoryCount
	}
	if limit > voice.MaxHistoryCount {
		limit = voice.MaxHistoryCount
	}

	transactions, err := s.transactionRepo.ListByAccount(ctx, accountNumber, limit)
	if err != nil {
		logger.Error("banking service get history failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return nil, err
	}

	history := make([]models.TransactionData, 0, len(transactions))
	for _, transaction := range transactions {
		history = append(history, models.TransactionData{
			ID:                  transaction.ID,
			Type:                string(transaction.Type),
			Amount:              transaction.Amount,
			Description:         transaction.Description,
			BalanceAfter:        transaction.BalanceAfter,
			CounterpartyAccount: transaction.CounterpartyAccount,
			Timestamp:           transaction.Timestamp,
		})
	}

	return history, nil
}

// LookupAccount resolves a recipient identifier. A string matching the fixed
// account-number pattern is looked up directly, anything else is treated as
// a username.
func (s *BankingService) LookupAccount(ctx context.Context, identifier string) (domain.AccountSummary, error) {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return domain.AccountSummary{}, fmt.Errorf("identifier is required")
	}

	var (
		account domain.Account
		err     error
	)
	if voice.IsAccountNumber(trimmed) {
		account, err = s.accountRepo.GetByAccountNumber(ctx, strings.ToUpper(trimmed))
	} else {
		account, err = s.accountRepo.GetByUsername(ctx, trimmed)
	}
	if err != nil {
		return domain.AccountSummary{}, err
	}

	return domain.AccountSummary{
		AccountNumber: account.AccountNumber,
		Username:      account.Username,
		FullName:      account.FullName,
	}, nil
}

func (s *BankingService) SearchAccounts(ctx context.Context, query, excludeAccountNumber string) ([]models.AccountSummaryData, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return []models.AccountSummaryData{}, nil
	}

	summaries, err := s.accountRepo.Search(ctx, trimmed, excludeAccountNumber, maxSearchResults)
	if err != nil {
		logger.Error("banking service search accounts failed", err, logger.Fields{
			"query": trimmed,
		})
		return nil, err
	}

	return toSummaryData(summaries), nil
}

func (s *BankingService) RecentRecipients(ctx context.Context, accountNumber string) ([]models.AccountSummaryData, error) {
	recipients, err := s.transactionRepo.RecentRecipients(ctx, accountNumber, maxRecentRecipients)
	if err != nil {
		logger.Error("banking service recent recipients failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return nil, err
	}

	return toSummaryData(recipients), nil
}

func toSummaryData(summaries []domain.AccountSummary) []models.AccountSummaryData {
	out := make([]models.AccountSummaryData, 0, len(summaries))
	for _, summary := range summaries {
		out = append(out, models.AccountSummaryData{
			AccountNumber: summary.AccountNumber,
			Username:      summary.Username,
			FullName:      summary.FullName,
		})
	}
	return out
}

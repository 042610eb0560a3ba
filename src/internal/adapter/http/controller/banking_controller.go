package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/api-sage/voice-banking/src/internal/adapter/http/middleware"
	"github.com/api-sage/voice-banking/src/internal/adapter/http/models"
	"github.com/api-sage/voice-banking/src/internal/commons"
	"github.com/api-sage/voice-banking/src/internal/domain"
	"github.com/api-sage/voice-banking/src/internal/logger"
	"github.com/api-sage/voice-banking/src/internal/voice"
)

type BankingService interface {
	GetBalance(ctx context.Context, accountNumber string) (models.BalanceData, error)
	GetTransactionHistory(ctx context.Context, accountNumber string, limit int) ([]models.TransactionData, error)
	SearchAccounts(ctx context.Context, query, excludeAccountNumber string) ([]models.AccountSummaryData, error)
	RecentRecipients(ctx context.Context, accountNumber string) ([]models.AccountSummaryData, error)
}

type BankingController struct {
	service BankingService
}

func NewBankingController(service BankingService) *BankingController {
	return &BankingController{service: service}
}

func (c *BankingController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}

	mux.Handle("/api/banking/balance", wrap(c.balance))
	mux.Handle("/api/banking/transactions", wrap(c.transactions))
	mux.Handle("/api/banking/accounts/search", wrap(c.searchAccounts))
	mux.Handle("/api/banking/recipients", wrap(c.recentRecipients))
}

func (c *BankingController) balance(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		response := commons.ErrorResponse[models.BalanceData]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	account, ok := middleware.AccountFrom(r.Context())
	if !ok {
		response := commons.ErrorResponse[models.BalanceData]("unauthorized")
		writeJSON(w, http.StatusUnauthorized, response)
		logResponse(r, http.StatusUnauthorized, response, start)
		return
	}

	data, err := c.service.GetBalance(r.Context(), account.AccountNumber)
	if err != nil {
		logError(r, err, logger.Fields{"accountNumber": account.AccountNumber})
		status := statusForError(err)
		response := commons.ErrorResponse[models.BalanceData]("failed to fetch balance", err.Error())
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	response := commons.SuccessResponse("balance retrieved", data)
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *BankingController) transactions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		response := commons.ErrorResponse[models.TransactionHistoryData]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	account, ok := middleware.AccountFrom(r.Context())
	if !ok {
		response := commons.ErrorResponse[models.TransactionHistoryData]("unauthorized")
		writeJSON(w, http.StatusUnauthorized, response)
		logResponse(r, http.StatusUnauthorized, response, start)
		return
	}

	limit := voice.DefaultHistoryCount
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response := commons.ErrorResponse[models.TransactionHistoryData]("validation failed", "limit must be a positive integer")
			writeJSON(w, http.StatusBadRequest, response)
			logResponse(r, http.StatusBadRequest, response, start)
			return
		}
		limit = parsed
	}

	transactions, err := c.service.GetTransactionHistory(r.Context(), account.AccountNumber, limit)
	if err != nil {
		logError(r, err, logger.Fields{"accountNumber": account.AccountNumber})
		status := statusForError(err)
		response := commons.ErrorResponse[models.TransactionHistoryData]("failed to fetch transactions", err.Error())
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	response := commons.SuccessResponse("transactions retrieved", models.TransactionHistoryData{Transactions: transactions})
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *BankingController) searchAccounts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		response := commons.ErrorResponse[[]models.AccountSummaryData]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	account, ok := middleware.AccountFrom(r.Context())
	if !ok {
		response := commons.ErrorResponse[[]models.AccountSummaryData]("unauthorized")
		writeJSON(w, http.StatusUnauthorized, response)
		logResponse(r, http.StatusUnauthorized, response, start)
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		response := commons.ErrorResponse[[]models.AccountSummaryData]("validation failed", "q is required")
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	matches, err := c.service.SearchAccounts(r.Context(), query, account.AccountNumber)
	if err != nil {
		logError(r, err, logger.Fields{"query": query})
		status := statusForError(err)
		response := commons.ErrorResponse[[]models.AccountSummaryData]("failed to search accounts", err.Error())
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	response := commons.SuccessResponse("accounts retrieved", matches)
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *BankingController) recentRecipients(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		response := commons.ErrorResponse[[]models.AccountSummaryData]("method not allowed")
		writeJSON(w, http.StatusMethodNotAllowed, response)
		logResponse(r, http.StatusMethodNotAllowed, response, start)
		return
	}

	account, ok := middleware.AccountFrom(r.Context())
	if !ok {
		response := commons.ErrorResponse[[]models.AccountSummaryData]("unauthorized")
		writeJSON(w, http.StatusUnauthorized, response)
		logResponse(r, http.StatusUnauthorized, response, start)
		return
	}

	recipients, err := c.service.RecentRecipients(r.Context(), account.AccountNumber)
	if err != nil {
		logError(r, err, logger.Fields{"accountNumber": account.AccountNumber})
		status := statusForError(err)
		response := commons.ErrorResponse[[]models.AccountSummaryData]("failed to fetch recipients", err.Error())
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	response := commons.SuccessResponse("recipients retrieved", recipients)
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func statusForError(err error) int {
	if errors.Is(err, domain.ErrRecordNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

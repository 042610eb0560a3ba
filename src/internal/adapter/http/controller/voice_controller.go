package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/api-sage/voice-banking/src/internal/adapter/http/middleware"
	"github.com/api-sage/voice-banking/src/internal/adapter/http/models"
	"github.com/api-sage/voice-banking/src/internal/voice"
)

type VoiceService interface {
	Process(ctx context.Context, accountNumber string, req models.VoiceCommandRequest) models.VoiceResponse
	VerifyOTP(ctx context.Context, accountNumber string, req models.OTPVerificationRequest) models.VoiceResponse
	Cancel(ctx context.Context, accountNumber string, req models.CancelTransferRequest) models.VoiceResponse
	Commands() []voice.Command
}

type VoiceController struct {
	service VoiceService
}

func NewVoiceController(service VoiceService) *VoiceController {
	return &VoiceController{service: service}
}

func (c *VoiceController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}

	mux.Handle("/api/voice/process", wrap(c.process))
	mux.Handle("/api/voice/verify-otp", wrap(c.verifyOTP))
	mux.Handle("/api/voice/cancel", wrap(c.cancel))
	mux.Handle("/api/voice/commands", wrap(c.commands))
}

func (c *VoiceController) process(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodPost {
		writeVoiceError(w, r, http.StatusMethodNotAllowed, "method not allowed", start)
		return
	}

	account, ok := middleware.AccountFrom(r.Context())
	if !ok {
		writeVoiceError(w, r, http.StatusUnauthorized, "unauthorized", start)
		return
	}

	var req models.VoiceCommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		writeVoiceError(w, r, http.StatusBadRequest, "invalid request body", start)
		return
	}
	logRequest(r, req)

	response := c.service.Process(r.Context(), account.AccountNumber, req)
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *VoiceController) verifyOTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodPost {
		writeVoiceError(w, r, http.StatusMethodNotAllowed, "method not allowed", start)
		return
	}

	account, ok := middleware.AccountFrom(r.Context())
	if !ok {
		writeVoiceError(w, r, http.StatusUnauthorized, "unauthorized", start)
		return
	}

	var req models.OTPVerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		writeVoiceError(w, r, http.StatusBadRequest, "invalid request body", start)
		return
	}
	logRequest(r, req)

	response := c.service.VerifyOTP(r.Context(), account.AccountNumber, req)
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *VoiceController) cancel(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodPost {
		writeVoiceError(w, r, http.StatusMethodNotAllowed, "method not allowed", start)
		return
	}

	account, ok := middleware.AccountFrom(r.Context())
	if !ok {
		writeVoiceError(w, r, http.StatusUnauthorized, "unauthorized", start)
		return
	}

	var req models.CancelTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		writeVoiceError(w, r, http.StatusBadRequest, "invalid request body", start)
		return
	}
	logRequest(r, req)

	response := c.service.Cancel(r.Context(), account.AccountNumber, req)
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *VoiceController) commands(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		writeVoiceError(w, r, http.StatusMethodNotAllowed, "method not allowed", start)
		return
	}

	response := models.VoiceResponse{
		Action:  models.ActionHelp,
		Message: "Here is everything I can help you with.",
		Data:    models.CommandCatalogData{Commands: c.service.Commands()},
	}
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func writeVoiceError(w http.ResponseWriter, r *http.Request, status int, message string, start time.Time) {
	response := models.VoiceResponse{
		Action:  models.ActionError,
		Message: message,
	}
	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

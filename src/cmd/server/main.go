package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/api-sage/voice-banking/src/internal/adapter/email"
	"github.com/api-sage/voice-banking/src/internal/adapter/http/controller"
	"github.com/api-sage/voice-banking/src/internal/adapter/http/middleware"
	"github.com/api-sage/voice-banking/src/internal/adapter/http/router"
	"github.com/api-sage/voice-banking/src/internal/adapter/repository/postgres"
	"github.com/api-sage/voice-banking/src/internal/config"
	"github.com/api-sage/voice-banking/src/internal/logger"
	"github.com/api-sage/voice-banking/src/internal/usecase/services"
)

const expirySweepInterval = time.Minute

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	if err := postgres.RunMigrations(startupCtx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	db, err := postgres.Open(startupCtx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	accountRepo := postgres.NewAccountRepository(db)
	pendingRepo := postgres.NewPendingTransferRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)

	otpSender := email.NewSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	otpService := services.NewOTPService(cfg.OTPLength, cfg.OTPExpiry, cfg.OTPMaxAttempts)

	authService := services.NewAuthService(accountRepo, sessionRepo, cfg.SessionTTL)
	bankingService := services.NewBankingService(accountRepo, transactionRepo)
	transferService := services.NewTransferService(pendingRepo, accountRepo, otpService, otpSender, cfg.TransferAmountCap)
	voiceService := services.NewVoiceService(bankingService, transferService)

	authMiddleware := middleware.SessionAuth(authService)

	mux := router.New(
		controller.NewAuthController(authService),
		controller.NewVoiceController(voiceService),
		controller.NewBankingController(bankingService),
		authMiddleware,
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(rootCtx)

	group.Go(func() error {
		logger.Info("http server starting", logger.Fields{"addr": cfg.HTTPAddr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		ticker := time.NewTicker(expirySweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-groupCtx.Done():
				return nil
			case <-ticker.C:
				sweepCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				expired, err := transferService.ExpireStale(sweepCtx)
				cancel()
				if err != nil {
					logger.Error("expiry sweep failed", err, nil)
					continue
				}
				if expired > 0 {
					logger.Info("expiry sweep completed", logger.Fields{"expired": expired})
				}
			}
		}
	})

	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		logger.Info("http server shutting down", nil)
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

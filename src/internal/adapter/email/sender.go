package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/api-sage/voice-banking/src/internal/logger"
)

// Sender delivers transfer OTP codes over SMTP. When SMTP is not configured
// the code is only logged as redacted and delivery is reported as failed so
// the caller can tell the user.
type Sender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSender(host string, port int, username, password, from string) *Sender {
	return &Sender{
		host:     strings.TrimSpace(host),
		port:     port,
		username: strings.TrimSpace(username),
		password: password,
		from:     strings.TrimSpace(from),
	}
}

func (s *Sender) SendTransferOTP(ctx context.Context, to, code, amount, recipient string) error {
	if s.host == "" || s.username == "" {
		logger.Info("email sender smtp not configured, otp not delivered", logger.Fields{
			"to":  to,
			"otp": code,
		})
		return fmt.Errorf("smtp is not configured")
	}

	subject := "Voice Banking - Transfer Verification Code"
	body := fmt.Sprintf(
		"You have initiated a voice transfer of $%s to %s.\r\n\r\n"+
			"Your verification code is: %s\r\n\r\n"+
			"The code expires in 5 minutes. Do not share it with anyone.\r\n"+
			"If you did not initiate this transfer, secure your account immediately.\r\n",
		amount, recipient, code,
	)

	message := strings.Join([]string{
		fmt.Sprintf("From: %s", s.from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"",
		body,
	}, "\r\n")

	done := make(chan error, 1)
	go func() {
		auth := smtp.PlainAuth("", s.username, s.password, s.host)
		addr := fmt.Sprintf("%s:%d", s.host, s.port)
		done <- smtp.SendMail(addr, auth, s.from, []string{to}, []byte(message))
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			logger.Error("email sender delivery failed", err, logger.Fields{
				"to": to,
			})
			return fmt.Errorf("send otp email: %w", err)
		}
	}

	logger.Info("email sender otp delivered", logger.Fields{
		"to": to,
	})
	return nil
}

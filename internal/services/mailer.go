package services

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/impostor-dev/impostor/internal/config"
)

// SendPasswordResetEmail delivers the reset link for the given token. When
// SMTP is not configured the mail is logged instead, which keeps local
// development working without a relay.
func SendPasswordResetEmail(email, token string) error {
	cfg := config.Active

	link := fmt.Sprintf("%s/reset-password?token=%s&email=%s", cfg.AppURL, token, email)

	if cfg.SMTPHost == "" {
		log.Printf("SMTP not configured, password reset link for %s: %s", email, link)
		return nil
	}

	msg := []byte("From: " + cfg.SMTPFrom + "\r\n" +
		"To: " + email + "\r\n" +
		"Subject: Password reset\r\n" +
		"\r\n" +
		"Use the following link to reset your password:\r\n" + link + "\r\n")

	addr := cfg.SMTPHost + ":" + cfg.SMTPPort

	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	}

	if err := smtp.SendMail(addr, auth, cfg.SMTPFrom, []string{email}, msg); err != nil {
		log.Printf("Failed to send password reset email to %s: %v", email, err)
		return err
	}

	return nil
}

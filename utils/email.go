// utils/email.go
package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// sendEmail delivers a plaintext message through the configured SMTP relay
func sendEmail(to, subject, body string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")
	fromEmail := os.Getenv("FROM_EMAIL")
	if fromEmail == "" {
		fromEmail = smtpUser
	}

	smtpPort := 587
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			smtpPort = port
		}
	}

	if smtpHost == "" {
		log.Printf("SMTP not configured; skipping email to %s (%s)", to, subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", fromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)
	if err := d.DialAndSend(m); err != nil {
		log.Printf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendVerificationEmail mails the 6-digit account verification code
func SendVerificationEmail(to, name, code string) error {
	subject := "Verify your DK Adris partner account"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour verification code is: %s\n\nEnter it on the partner dashboard to activate your account.\n\nDK Adris Atelier",
		name, code,
	)
	return sendEmail(to, subject, body)
}

// SendPasswordResetEmail mails reset instructions to a registered partner
func SendPasswordResetEmail(to, name string) error {
	subject := "DK Adris partner account recovery"
	body := fmt.Sprintf(
		"Hello %s,\n\nWe received a request to reset your partner account password. Follow the link in your dashboard email settings to proceed. If you did not request this, you can ignore this message.\n\nDK Adris Atelier",
		name,
	)
	return sendEmail(to, subject, body)
}

package utils

import (
	"crypto/tls"
	"fmt"
	"net/smtp"

	"github.com/jkz07/transcare/config"
)

var (
	smtpHost      string
	smtpPort      string
	smtpUsername  string
	smtpPassword  string
	smtpFromName  string
	smtpFromEmail string
	supportEmail  string
	frontendURL   string
)

// InitMailer stores the SMTP settings. Must run after config.Load so values
// from a .env file are picked up.
func InitMailer(cfg *config.Config) {
	smtpHost = cfg.SMTPHost
	smtpPort = cfg.SMTPPort
	smtpUsername = cfg.SMTPUsername
	smtpPassword = cfg.SMTPPassword
	smtpFromName = cfg.SMTPFromName
	smtpFromEmail = cfg.SMTPFromEmail
	supportEmail = cfg.SupportEmail
	frontendURL = cfg.FrontendURL
}

// sendEmail delivers a single plain-text mail over SMTP with STARTTLS.
func sendEmail(to, subject, body string) error {
	if smtpHost == "" || smtpUsername == "" || smtpPassword == "" {
		fmt.Println("⚠️ SMTP not configured. Email not sent.")
		return nil
	}

	if smtpFromEmail == "" {
		smtpFromEmail = smtpUsername
	}
	if smtpPort == "" {
		smtpPort = "587"
	}

	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)

	// Dial first, then upgrade with StartTLS. tls.Dial directly breaks on
	// servers that expect a plain connection before the handshake.
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
		ServerName:         smtpHost,
	}
	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	auth := smtp.PlainAuth("", smtpUsername, smtpPassword, smtpHost)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP auth failed: %w", err)
	}

	if err := client.Mail(smtpFromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}

	fromName := smtpFromName
	if fromName == "" {
		fromName = "TransCare"
	}
	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n",
		fromName, smtpFromEmail, to, subject, body)

	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}

// SendPasswordResetEmail mails the reset link for a pending reset token.
func SendPasswordResetEmail(to, token string) error {
	base := frontendURL
	if base == "" {
		base = "http://localhost:5173"
	}
	link := fmt.Sprintf("%s/redefinir-senha?token=%s", base, token)

	subject := "TransCare - Redefinição de senha"
	body := fmt.Sprintf(
		"Olá,\n\nRecebemos um pedido para redefinir a sua senha.\n\n"+
			"Acesse o link abaixo para criar uma nova senha (válido por 30 minutos):\n%s\n\n"+
			"Se você não fez esse pedido, ignore este email.\n\nEquipe TransCare",
		link,
	)
	return sendEmail(to, subject, body)
}

// SendContactEmail forwards a contact-form message to the support inbox.
func SendContactEmail(name, fromEmail, subject, message string) error {
	support := supportEmail
	if support == "" {
		support = smtpFromEmail
	}
	body := fmt.Sprintf("Mensagem de contato\n\nNome: %s\nEmail: %s\n\n%s\n", name, fromEmail, message)
	return sendEmail(support, "Contato: "+subject, body)
}

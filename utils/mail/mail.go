package mail

import (
	"bytes"
	"crypto/tls"
	"embed"
	"fmt"
	"html/template"
	"os"
	"strconv"

	"github.com/joy095/consult/config"
	"github.com/joy095/consult/logger"
	gomail "gopkg.in/gomail.v2"
)

var templates *template.Template

func init() {
	config.LoadEnv()
}

// InitTemplates parses the embedded email templates. Must run before any send.
func InitTemplates(fs embed.FS) {
	templates = template.Must(template.ParseFS(fs, "templates/email/*.html"))
}

// BookingStatusEmailData feeds the booking status template.
type BookingStatusEmailData struct {
	RecipientName string
	Message       string
	StatusColor   string
}

// sendEmail renders a template and delivers it over SMTP.
func sendEmail(toEmail, subject, templateName string, data interface{}) error {
	if templates == nil {
		return fmt.Errorf("email templates not initialized")
	}

	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, templateName, data); err != nil {
		logger.ErrorLogger.Errorf("Failed to execute email template %s: %v", templateName, err)
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	mailer := gomail.NewMessage()
	mailer.SetHeader("From", os.Getenv("FROM_EMAIL"))
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body.String())

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		logger.ErrorLogger.Errorf("Invalid SMTP port: %v", err)
		return fmt.Errorf("invalid SMTP port: %w", err)
	}

	smtpHost := os.Getenv("SMTP_HOST")
	dialer := gomail.NewDialer(smtpHost, port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
	dialer.TLSConfig = &tls.Config{
		InsecureSkipVerify: false,
		ServerName:         smtpHost,
	}

	if err := dialer.DialAndSend(mailer); err != nil {
		logger.ErrorLogger.Errorf("Failed to send email to %s: %v", toEmail, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// SendBookingStatusEmail delivers the email copy of a booking notification.
// Callers treat failures as best-effort.
func SendBookingStatusEmail(toEmail, subject string, data BookingStatusEmailData) error {
	return sendEmail(toEmail, subject, "booking_status.html", data)
}

package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"academy/config"
)

// SendEmail delivers an HTML email. When a SendGrid API key is configured it
// goes through SendGrid, otherwise plain SMTP.
func SendEmail(to []string, subject string, htmlBody string) error {
	if config.AppConfig.SendgridAPIKey != "" {
		return sendViaSendgrid(to, subject, htmlBody)
	}
	return sendViaSMTP(to, subject, htmlBody)
}

func sendViaSendgrid(to []string, subject string, htmlBody string) error {
	from := mail.NewEmail("Academy", config.AppConfig.EmailSender)
	client := sendgrid.NewSendClient(config.AppConfig.SendgridAPIKey)

	for _, recipient := range to {
		message := mail.NewSingleEmail(from, subject, mail.NewEmail("", recipient), "", htmlBody)
		resp, err := client.Send(message)
		if err != nil {
			log.Printf("Error sending email via sendgrid: %v", err)
			return err
		}
		if resp.StatusCode >= 400 {
			log.Printf("Sendgrid returned status %d for %s", resp.StatusCode, recipient)
			return fmt.Errorf("sendgrid status %d", resp.StatusCode)
		}
	}
	return nil
}

func sendViaSMTP(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Academy <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg)); err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	return nil
}

// getEmailTemplate wraps body content in the standard layout
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #00004D; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #00004D; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>ACADEMY</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Academy. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendCertificateEmail notifies a student that their certificate was issued.
func SendCertificateEmail(email, name, courseTitle, certificateNumber string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Congratulations! You completed <b>%s</b> and your certificate has been issued.</p>
		<p>Certificate number: <b>%s</b></p>`, name, courseTitle, certificateNumber)

	if err := SendEmail([]string{email}, "Your certificate is ready", getEmailTemplate("Certificate Issued", body)); err != nil {
		log.Printf("Failed to send certificate email to %s: %v", email, err)
	}
}

// SendReviewEmail notifies a student about an assignment review outcome.
func SendReviewEmail(email, name, moduleTitle, status string, unlocked bool) {
	next := "The next module is not unlocked yet."
	if unlocked {
		next = "The next module is now unlocked."
	}
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your assignment for <b>%s</b> was reviewed: <b>%s</b>.</p>
		<p>%s</p>`, name, moduleTitle, status, next)

	if err := SendEmail([]string{email}, "Assignment reviewed", getEmailTemplate("Assignment Reviewed", body)); err != nil {
		log.Printf("Failed to send review email to %s: %v", email, err)
	}
}

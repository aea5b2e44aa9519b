package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/openvisualizationacademy/ova-site/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Open Visualization Academy <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all outgoing mail
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1B263B; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B263B; line-height: 1.6; }
			.code-box { background: #E8F0FE; padding: 15px; border-radius: 4px; font-size: 28px; letter-spacing: 8px; text-align: center; margin: 20px 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>OPEN VISUALIZATION ACADEMY</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Open Visualization Academy. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendLoginCodeEmail mails a one-time login code
func SendLoginCodeEmail(email, code string, ttlMinutes int) {
	body := fmt.Sprintf(`
		<p>Use this code to sign in to your account:</p>
		<div class="code-box">%s</div>
		<p>The code expires in %d minutes. If you did not request it, you can ignore this email.</p>
	`, code, ttlMinutes)

	if err := SendEmail([]string{email}, "Your sign-in code", getEmailTemplate("Sign in to OVA", body)); err != nil {
		log.Printf("Error sending login code email to %s: %v", email, err)
	}
}

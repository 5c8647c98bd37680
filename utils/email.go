package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/gomail.v2"
)

func SendEmail(to, subject, body string) error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("EMAIL_USER"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		port,
		os.Getenv("EMAIL_USER"),
		os.Getenv("EMAIL_PASS"),
	)

	return d.DialAndSend(m)
}

// InvitationMailer sends booking invitation emails over SMTP. It
// satisfies the invitation service's Mailer interface.
type InvitationMailer struct{}

func (InvitationMailer) SendInvitation(recipientEmail, counselorName, link string) error {
	subject := fmt.Sprintf("Booking invitation from %s", counselorName)
	body := fmt.Sprintf(`
		<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
			<h2>Consultation Booking Invitation</h2>
			<p>%s has invited you to book a consultation session.</p>
			<p>Click the link below to pick a time slot.</p>
			<a href="%s" style="display: inline-block; padding: 12px 24px; background-color: #4F46E5; color: white; text-decoration: none; border-radius: 6px; margin: 16px 0;">
				Book a session
			</a>
			<p style="color: #666; font-size: 14px;">This link expires in 7 days.</p>
		</div>
	`, counselorName, link)

	return SendEmail(recipientEmail, subject, body)
}

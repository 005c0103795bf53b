package mailer

import (
	"fmt"
	"net/smtp"
	"os"

	"github.com/peaceseal/peaceseal-backend/pkg/logger"
)

// Mailer sends program notifications. Implementations must be safe for
// concurrent use.
type Mailer interface {
	SendReviewVerification(toEmail, companyName, token string) error
	SendAdvisorAssigned(toEmail, companyName, advisorName string) error
	SendResponseRequested(toEmail, companyName string, deadlineDays int) error
	SendExpiryWarning(toEmail, companyName string, daysLeft int) error
}

// SMTPMailer sends over plain SMTP. Without credentials it degrades to
// logging the message, so local development needs no mail server.
type SMTPMailer struct {
	Host        string
	Port        string
	FromEmail   string
	Password    string
	FrontendURL string
}

// NewFromEnv builds an SMTPMailer from SMTP_* environment variables.
func NewFromEnv() *SMTPMailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}
	return &SMTPMailer{
		Host:        host,
		Port:        port,
		FromEmail:   os.Getenv("SMTP_EMAIL"),
		Password:    os.Getenv("SMTP_PASSWORD"),
		FrontendURL: frontendURL,
	}
}

func (m *SMTPMailer) send(toEmail, subject, htmlBody string) error {
	if m.FromEmail == "" || m.Password == "" {
		logger.Info("Mail disabled, logging instead", map[string]interface{}{
			"to":      toEmail,
			"subject": subject,
		})
		return nil
	}

	message := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		m.FromEmail, toEmail, subject, htmlBody,
	))

	auth := smtp.PlainAuth("", m.FromEmail, m.Password, m.Host)
	if err := smtp.SendMail(m.Host+":"+m.Port, auth, m.FromEmail, []string{toEmail}, message); err != nil {
		logger.Error("Failed to send email", err, map[string]interface{}{
			"to":      toEmail,
			"subject": subject,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendReviewVerification mails the one-time confirmation link a stakeholder
// must click before their review counts.
func (m *SMTPMailer) SendReviewVerification(toEmail, companyName, token string) error {
	confirmLink := fmt.Sprintf("%s/reviews/confirm?token=%s", m.FrontendURL, token)
	subject := "[Peace Seal] Confirm your review"
	body := fmt.Sprintf(`
<html>
<body style="font-family: Arial, sans-serif; padding: 20px;">
	<h2>Confirm your review of %s</h2>
	<p>Thank you for submitting a stakeholder review. Click the link below to
	confirm your email address. Your review is only considered after
	confirmation and advisor validation.</p>
	<p><a href="%s">Confirm my review</a></p>
	<p style="color: #999; font-size: 13px;">If you did not submit this review, you can ignore this email.</p>
</body>
</html>`, companyName, confirmLink)
	return m.send(toEmail, subject, body)
}

func (m *SMTPMailer) SendAdvisorAssigned(toEmail, companyName, advisorName string) error {
	subject := "[Peace Seal] An advisor has been assigned to your application"
	body := fmt.Sprintf(`
<html>
<body style="font-family: Arial, sans-serif; padding: 20px;">
	<h2>Your audit has started</h2>
	<p>%s has been assigned %s as its certification advisor. The audit is now
	in progress; your advisor will reach out about next steps.</p>
</body>
</html>`, companyName, advisorName)
	return m.send(toEmail, subject, body)
}

func (m *SMTPMailer) SendResponseRequested(toEmail, companyName string, deadlineDays int) error {
	subject := "[Peace Seal] A stakeholder review requires your response"
	body := fmt.Sprintf(`
<html>
<body style="font-family: Arial, sans-serif; padding: 20px;">
	<h2>Response required</h2>
	<p>An advisor has flagged a stakeholder review of %s as requiring a company
	response. You have %d days to respond before the matter is treated as
	unresolved.</p>
</body>
</html>`, companyName, deadlineDays)
	return m.send(toEmail, subject, body)
}

func (m *SMTPMailer) SendExpiryWarning(toEmail, companyName string, daysLeft int) error {
	subject := "[Peace Seal] Your certification is about to expire"
	body := fmt.Sprintf(`
<html>
<body style="font-family: Arial, sans-serif; padding: 20px;">
	<h2>Certification expiring</h2>
	<p>The Peace Seal certification for %s expires in %d days. Start a renewal
	audit to keep your seal active.</p>
</body>
</html>`, companyName, daysLeft)
	return m.send(toEmail, subject, body)
}

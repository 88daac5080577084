package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"go-jobboard-backend/config"
)

// EmailService sends job-alert emails via SMTP
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
}

// JobAlertData holds the data for a job-alert email
type JobAlertData struct {
	RecipientName string
	Jobs          []JobAlertEntry
	FrontendURL   string
}

// JobAlertEntry is one matched job in an alert email
type JobAlertEntry struct {
	Title       string
	CompanyName string
	Location    string
	JobURL      string
}

// NewEmailService creates a new email service from SMTP configuration
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
	}
}

// jobAlertTemplate is the HTML template for job alert emails
const jobAlertTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Jobs Matching Your Profile</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .job { background: white; padding: 15px; border-left: 4px solid #0066cc; margin-bottom: 10px; }
        .job-title { font-weight: bold; }
        .job-meta { color: #555; font-size: 14px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>New Jobs Matching Your Profile</h1>
        </div>
        <div class="content">
            <p>Hi {{.RecipientName}},</p>
            <p>We found new openings that match your skills and location:</p>
            {{range .Jobs}}
            <div class="job">
                <div class="job-title"><a href="{{.JobURL}}">{{.Title}}</a></div>
                <div class="job-meta">{{.CompanyName}} &mdash; {{.Location}}</div>
            </div>
            {{end}}
        </div>
        <div class="footer">
            <p>You are receiving this because job alerts are enabled on your profile.</p>
            <p><a href="{{.FrontendURL}}/job-alerts">Manage your alert settings</a></p>
        </div>
    </div>
</body>
</html>`

// IsConfigured checks if the SMTP credentials are present
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}

// SendJobAlert sends a job alert email to a seeker
func (s *EmailService) SendJobAlert(toEmail string, data JobAlertData) error {
	if !s.IsConfigured() {
		return fmt.Errorf("email service not configured")
	}

	tmpl, err := template.New("jobAlert").Parse(jobAlertTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("%d new jobs match your profile", len(data.Jobs))
	msg := buildMessage(s.fromEmail, toEmail, subject, body.String())

	addr := s.host + ":" + s.port
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{toEmail}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func buildMessage(from, to, subject, htmlBody string) []byte {
	var msg bytes.Buffer
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)
	return msg.Bytes()
}

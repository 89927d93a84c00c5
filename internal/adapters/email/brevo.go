package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	portssvc "github.com/lifeos-app/lifeos-backend/internal/core/ports/services"
	"github.com/lifeos-app/lifeos-backend/internal/platform/config"
)

const defaultBrevoEndpoint = "https://api.brevo.com/v3/smtp/email"

// BrevoSender delivers transactional email through Brevo's HTTP API.
type BrevoSender struct {
	apiKey      string
	fromName    string
	fromAddress string
	feedbackTo  string
	endpoint    string
	client      *http.Client
}

// NewBrevoSender creates a sender configured from the application config.
func NewBrevoSender(cfg *config.Config) *BrevoSender {
	return &BrevoSender{
		apiKey:      cfg.BrevoAPIKey,
		fromName:    cfg.EmailFromName,
		fromAddress: cfg.EmailFromAddress,
		feedbackTo:  cfg.FeedbackRecipient,
		endpoint:    defaultBrevoEndpoint,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

var _ portssvc.EmailSenderSvc = (*BrevoSender)(nil)

type brevoParty struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type brevoMessage struct {
	Sender      brevoParty   `json:"sender"`
	To          []brevoParty `json:"to"`
	ReplyTo     *brevoParty  `json:"replyTo,omitempty"`
	Subject     string       `json:"subject"`
	HTMLContent string       `json:"htmlContent"`
}

// send posts one message to the Brevo API and treats any non-2xx response as a
// delivery failure.
func (s *BrevoSender) send(ctx context.Context, msg brevoMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call email API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("email API returned non-2xx status: %s", resp.Status)
	}
	return nil
}

func (s *BrevoSender) sender() brevoParty {
	return brevoParty{Name: s.fromName, Email: s.fromAddress}
}

func (s *BrevoSender) SendLoginOTPEmail(ctx context.Context, to string, code string) error {
	return s.send(ctx, brevoMessage{
		Sender:      s.sender(),
		To:          []brevoParty{{Email: to}},
		Subject:     "Your LifeOS sign-in code",
		HTMLContent: renderOTPBody("Sign in to LifeOS", "Use this code to sign in. It expires in 10 minutes.", code),
	})
}

func (s *BrevoSender) SendRegistrationOTPEmail(ctx context.Context, to string, code string, name string) error {
	greeting := "Welcome to LifeOS!"
	if name != "" {
		greeting = fmt.Sprintf("Welcome to LifeOS, %s!", template.HTMLEscapeString(name))
	}
	return s.send(ctx, brevoMessage{
		Sender:      s.sender(),
		To:          []brevoParty{{Email: to}},
		Subject:     "Verify your LifeOS account",
		HTMLContent: renderOTPBody(greeting, "Use this code to finish creating your account. It expires in 10 minutes.", code),
	})
}

func (s *BrevoSender) SendResetOTPEmail(ctx context.Context, to string, code string) error {
	return s.send(ctx, brevoMessage{
		Sender:      s.sender(),
		To:          []brevoParty{{Email: to}},
		Subject:     "Reset your LifeOS password",
		HTMLContent: renderOTPBody("Password reset", "Use this code to reset your password. It expires in 10 minutes. If you did not request this, you can ignore this email.", code),
	})
}

// feedbackTemplate escapes user-submitted feedback before it lands in an inbox.
var feedbackTemplate = template.Must(template.New("feedback").Parse(`
<div style="font-family: sans-serif;">
  <h2>New feedback</h2>
  <p><strong>From:</strong> {{.Name}} ({{.Email}})</p>
  <p><strong>Subject:</strong> {{.Subject}}</p>
  <p style="white-space: pre-wrap;">{{.Message}}</p>
</div>`))

func (s *BrevoSender) SendFeedbackEmail(ctx context.Context, name string, fromEmail string, subject string, message string) error {
	if s.feedbackTo == "" {
		return fmt.Errorf("no feedback recipient configured")
	}

	var buf bytes.Buffer
	err := feedbackTemplate.Execute(&buf, map[string]string{
		"Name":    name,
		"Email":   fromEmail,
		"Subject": subject,
		"Message": message,
	})
	if err != nil {
		return fmt.Errorf("failed to render feedback email: %w", err)
	}

	return s.send(ctx, brevoMessage{
		Sender:      s.sender(),
		To:          []brevoParty{{Email: s.feedbackTo}},
		ReplyTo:     &brevoParty{Name: name, Email: fromEmail},
		Subject:     fmt.Sprintf("[LifeOS feedback] %s", subject),
		HTMLContent: buf.String(),
	})
}

func renderOTPBody(heading string, lead string, code string) string {
	return fmt.Sprintf(`
<div style="font-family: sans-serif; max-width: 480px;">
  <h2>%s</h2>
  <p>%s</p>
  <p style="font-size: 32px; letter-spacing: 8px; font-weight: bold;">%s</p>
</div>`, heading, lead, code)
}

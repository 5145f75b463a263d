// Package email sends transactional email through Resend.
//
// Bodies are rendered from HTML templates embedded in the binary.
package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"sync"

	"github.com/deppfellow/contacts-api/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// Template names an embedded template under templates/.
type Template string

const (
	TemplateContactWelcome Template = "contact_welcome"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	templates     *template.Template
	templatesErr  error
	templatesOnce sync.Once
)

func loadTemplates() (*template.Template, error) {
	templatesOnce.Do(func() {
		templates, templatesErr = template.ParseFS(templateFS, "templates/*.html")
	})
	return templates, templatesErr
}

// Render executes the named template with data.
func Render(name Template, data map[string]string) (string, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return "", errors.Wrap(err, "failed to parse email templates")
	}

	var body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&body, string(name)+".html", data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", name)
	}
	return body.String(), nil
}

type Client struct {
	// emails is nil when no API key is configured.
	emails resend.EmailsSvc
	from   string
	logger *zerolog.Logger
}

func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	var emails resend.EmailsSvc
	if cfg.Integration.ResendAPIKey != "" {
		emails = resend.NewClient(cfg.Integration.ResendAPIKey).Emails
	}
	return &Client{
		emails: emails,
		from:   cfg.Integration.EmailFrom,
		logger: logger,
	}
}

// Enabled reports whether emails are actually delivered.
func (c *Client) Enabled() bool {
	return c.emails != nil
}

// SendEmail renders templateName with data and sends it to a single
// recipient. Without an API key the email is logged and dropped.
func (c *Client) SendEmail(ctx context.Context, to, subject string, templateName Template, data map[string]string) error {
	html, err := Render(templateName, data)
	if err != nil {
		return err
	}

	if !c.Enabled() {
		c.logger.Warn().
			Str("template", string(templateName)).
			Str("to", to).
			Msg("resend API key not configured, skipping email")
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	sent, err := c.emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Debug().
		Str("template", string(templateName)).
		Str("email_id", sent.Id).
		Msg("email sent")

	return nil
}

// SendContactWelcomeEmail greets a newly created contact.
func (c *Client) SendContactWelcomeEmail(ctx context.Context, to, name string) error {
	data := map[string]string{
		"ContactName":  name,
		"ContactEmail": to,
	}

	return c.SendEmail(ctx, to, "Welcome to Contacts", TemplateContactWelcome, data)
}

// Package email provides the notification collaborator.
//
// It sends templated HTML email through Resend. Templates are embedded in
// the binary and rendered with html/template; messages can carry one or many
// recipients and optional binary attachments.
package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/shieldsupport/backend/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

// Attachment is a binary file attached to an outgoing email.
type Attachment struct {
	Filename string
	Content  []byte
}

// Client wraps the Resend client together with the sender identity.
type Client struct {
	client *resend.Client
	from   string
	logger *zerolog.Logger
}

// NewClient creates an email Client using the API key and sender identity
// from config.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		client: resend.NewClient(cfg.Email.ResendAPIKey),
		from:   fmt.Sprintf("%s <%s>", cfg.Email.FromName, cfg.Email.FromAddress),
		logger: logger,
	}
}

// render executes the named embedded template with data.
func render(templateName Template, data map[string]string) (string, error) {
	tmpl, err := template.ParseFS(templateFS, fmt.Sprintf("templates/%s.html", templateName))
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}

	return body.String(), nil
}

// SendEmail renders templateName with data and sends it to every recipient
// in a single message.
func (c *Client) SendEmail(to []string, subject string, templateName Template, data map[string]string, attachments ...Attachment) error {
	body, err := render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      to,
		Subject: subject,
		Html:    body,
	}

	for _, a := range attachments {
		params.Attachments = append(params.Attachments, &resend.Attachment{
			Filename: a.Filename,
			Content:  a.Content,
		})
	}

	if _, err := c.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

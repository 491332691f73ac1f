// internal/email/sendgrid.go
package email

import (
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendgridGateway delivers through the Sendgrid API.
type SendgridGateway struct {
	client *sendgrid.Client
	from   string
}

func NewSendgridGateway(apiKey, from string) *SendgridGateway {
	return &SendgridGateway{
		client: sendgrid.NewSendClient(apiKey),
		from:   from,
	}
}

func (g *SendgridGateway) ScheduleMail(m Mail) {
	go func() {
		from := mail.NewEmail(m.FromName, g.from)
		to := mail.NewEmail("", m.To)
		message := mail.NewSingleEmail(from, m.Subject, to, m.Text, m.HTML)

		response, err := g.client.Send(message)
		if err != nil {
			slog.Error("failed to send email via Sendgrid", "to", m.To, "error", err)
			return
		}
		if response.StatusCode != 202 {
			slog.Error("unexpected Sendgrid status code",
				"to", m.To,
				"status", response.StatusCode,
				"body", response.Body,
			)
		}
	}()
}

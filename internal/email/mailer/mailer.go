// internal/email/mailer/mailer.go
package mailer

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/adoptyme/backend/internal/email"
)

const defaultFromName = "Adoptyme"

// render executes the HTML and plaintext variants of a mail body with
// the same data.
func render(html, text string, data interface{}) (string, string, error) {
	htmlTmpl := htmltemplate.Must(htmltemplate.New("html").Parse(html))
	textTmpl := texttemplate.Must(texttemplate.New("text").Parse(text))

	var htmlBuf bytes.Buffer
	if err := htmlTmpl.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute html template: %w", err)
	}

	var textBuf bytes.Buffer
	if err := textTmpl.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute text template: %w", err)
	}

	return htmlBuf.String(), textBuf.String(), nil
}

func schedule(g email.Gateway, to, fromName, subject, html, text string, data interface{}) error {
	htmlBody, textBody, err := render(html, text, data)
	if err != nil {
		return err
	}
	if fromName == "" {
		fromName = defaultFromName
	}
	g.ScheduleMail(email.Mail{
		To:       to,
		FromName: fromName,
		Subject:  subject,
		HTML:     htmlBody,
		Text:     textBody,
	})
	return nil
}

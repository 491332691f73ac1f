// internal/email/mailer/adoption.go
package mailer

import "github.com/adoptyme/backend/internal/email"

const (
	applicationAcceptedHTML = `<p>Hi {{.AdopterName}},</p>
<p>Great news! Your adoption application for <b>{{.AnimalName}}</b> was accepted.</p>
<p>{{.SenderName}} will contact you to arrange the hand-over.</p>`
	applicationAcceptedText = `Hi {{.AdopterName}},
Great news! Your adoption application for {{.AnimalName}} was accepted.
{{.SenderName}} will contact you to arrange the hand-over.`

	applicationRejectedHTML = `<p>Hi {{.AdopterName}},</p>
<p>Unfortunately your adoption application for <b>{{.AnimalName}}</b> was not accepted this time.</p>
<p>There are many other animals waiting for a home.</p>`
	applicationRejectedText = `Hi {{.AdopterName}},
Unfortunately your adoption application for {{.AnimalName}} was not accepted this time.
There are many other animals waiting for a home.`
)

type ApplicationOutcomeData struct {
	AdopterName string
	AnimalName  string
	// SenderName is the organization name when the decider belongs to
	// one, the decider's first name otherwise.
	SenderName string
	Accepted   bool
}

// SendApplicationOutcomeEmail notifies the adopter of a decision.
func SendApplicationOutcomeEmail(g email.Gateway, to string, data ApplicationOutcomeData) error {
	if data.Accepted {
		return schedule(g, to, data.SenderName,
			"Your adoption application was accepted!",
			applicationAcceptedHTML, applicationAcceptedText, data,
		)
	}
	return schedule(g, to, data.SenderName,
		"About your adoption application",
		applicationRejectedHTML, applicationRejectedText, data,
	)
}

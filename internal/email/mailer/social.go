// internal/email/mailer/social.go
package mailer

import "github.com/adoptyme/backend/internal/email"

const (
	organizationVerifiedHTML = `<p>Hi {{.AdminName}},</p>
<p>Your organization <b>{{.OrganizationName}}</b> has been verified by the Adoptyme team.</p>
<p>Your listings now carry the verified badge.</p>`
	organizationVerifiedText = `Hi {{.AdminName}},
Your organization {{.OrganizationName}} has been verified by the Adoptyme team.
Your listings now carry the verified badge.`
)

type OrganizationVerifiedData struct {
	AdminName        string
	OrganizationName string
}

// SendOrganizationVerifiedEmail notifies the organization admin.
func SendOrganizationVerifiedEmail(g email.Gateway, to string, data OrganizationVerifiedData) error {
	return schedule(g, to, "",
		"Your organization was verified",
		organizationVerifiedHTML, organizationVerifiedText, data,
	)
}

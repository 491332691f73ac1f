// internal/email/mailer/account.go
package mailer

import "github.com/adoptyme/backend/internal/email"

const (
	verificationHTML = `<p>Hi,</p>
<p>Welcome to Adoptyme! Please confirm your email by clicking the link below:</p>
<p><a href="{{.VerificationLink}}">Verify my account</a></p>`
	verificationText = `Welcome to Adoptyme! Confirm your email: {{.VerificationLink}}`

	welcomeHTML = `<p>Hi,</p>
<p>Your account is verified. You can now create a profile and start helping animals find a home.</p>`
	welcomeText = `Your account is verified. You can now create a profile and start helping animals find a home.`

	passwordResetHTML = `<p>Hi,</p>
<p>We received a request to reset your password. Click the link below to choose a new one:</p>
<p><a href="{{.ResetLink}}">Reset my password</a></p>
<p>If you did not request this, you can ignore this email.</p>`
	passwordResetText = `Reset your password: {{.ResetLink}}
If you did not request this, you can ignore this email.`
)

// SendVerificationEmail sends the signup confirmation link.
func SendVerificationEmail(g email.Gateway, to, verificationLink string) error {
	return schedule(g, to, "",
		"Welcome to Adoptyme! Please verify your email",
		verificationHTML, verificationText,
		struct{ VerificationLink string }{verificationLink},
	)
}

// SendWelcomeEmail confirms a completed verification.
func SendWelcomeEmail(g email.Gateway, to string) error {
	return schedule(g, to, "",
		"Your Adoptyme account is ready",
		welcomeHTML, welcomeText, nil,
	)
}

// SendPasswordResetEmail sends the reset link.
func SendPasswordResetEmail(g email.Gateway, to, resetLink string) error {
	return schedule(g, to, "",
		"Reset your Adoptyme password",
		passwordResetHTML, passwordResetText,
		struct{ ResetLink string }{resetLink},
	)
}

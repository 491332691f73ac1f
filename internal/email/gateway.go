// internal/email/gateway.go
package email

// Mail is one outbound message.
type Mail struct {
	To       string
	FromName string
	Subject  string
	HTML     string
	Text     string
}

// Gateway delivers mail fire-and-forget: callers never block on the
// provider and delivery failures are logged, not surfaced.
type Gateway interface {
	ScheduleMail(mail Mail)
}

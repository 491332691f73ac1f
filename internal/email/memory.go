// internal/email/memory.go
package email

import "sync"

// CaptureGateway records mail instead of sending it. Selected by the
// "test" email environment and used throughout the test suite.
type CaptureGateway struct {
	mu   sync.Mutex
	sent []Mail
}

func NewCaptureGateway() *CaptureGateway {
	return &CaptureGateway{}
}

func (g *CaptureGateway) ScheduleMail(m Mail) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sent = append(g.sent, m)
}

// Sent returns a copy of everything captured so far.
func (g *CaptureGateway) Sent() []Mail {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Mail, len(g.sent))
	copy(out, g.sent)
	return out
}

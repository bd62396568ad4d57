package mailer

import "context"

// Message is a templated email. TemplateRef names one of the registered
// templates; Data feeds it.
type Message struct {
	To          string
	Subject     string
	TemplateRef string
	Data        map[string]interface{}
}

// Sender delivers email. Callers decide per flow whether a failure blocks the
// operation (delivery notices) or is swallowed (password resets).
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

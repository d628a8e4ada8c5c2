// internal/app/system/mailer/mailer.go

// Package mailer builds and delivers outbound email. Message bodies are
// assembled by the template builders in templates.go; delivery goes through
// one of the Sender implementations (SendGrid in production, console in
// development and tests).
package mailer

// Email is one outbound message with both plain-text and HTML bodies.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

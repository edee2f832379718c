// Package email sends transactional mail. The only message this system sends
// is the welcome email on account registration; delivery is best effort and
// never blocks the triggering operation.
package email

import (
	"context"
	"fmt"
)

// Email is a message to be sent.
type Email struct {
	To       string
	From     string // empty means the sender's configured default
	Subject  string
	TextBody string
}

// Sender delivers emails.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// WelcomeEmail builds the registration welcome message.
func WelcomeEmail(to, firstName string) *Email {
	greeting := "Hello"
	if firstName != "" {
		greeting = fmt.Sprintf("Hello %s", firstName)
	}

	return &Email{
		To:      to,
		Subject: "Welcome to the store",
		TextBody: fmt.Sprintf(
			"%s,\n\nYour account has been created and your cart is ready.\nHappy shopping!\n",
			greeting,
		),
	}
}

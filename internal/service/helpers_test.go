package service

import (
	"context"
	"testing"

	"github.com/wesworld/site/internal/config"
	"github.com/wesworld/site/internal/mailer"
)

var mailerConfigMissing = config.MailConfig{Port: 587, To: "hello@wesworld.online"}

// failingTransport fails the test if any delivery is attempted.
type failingTransport struct {
	t *testing.T
}

func (f failingTransport) Deliver(context.Context, mailer.Notification) error {
	f.t.Error("unexpected delivery attempt")
	return nil
}

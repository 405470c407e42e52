package auth

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Mailer delivers magic links. The actual email transport is an external
// collaborator; implementations only need to get the link to the inbox.
type Mailer interface {
	SendMagicLink(ctx context.Context, email, link string) error
}

// LogMailer writes the link to the log instead of sending mail. Used in
// development and tests.
type LogMailer struct {
	Log *logrus.Logger
}

func (m *LogMailer) SendMagicLink(_ context.Context, email, link string) error {
	m.Log.WithFields(logrus.Fields{
		"module": "auth",
		"email":  email,
		"link":   link,
	}).Info("magic link issued")
	return nil
}

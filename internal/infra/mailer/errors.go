package mailer

import "errors"

var (
	ErrRelayNotConfigured = errors.New("mail relay url is not configured")
	ErrRecipientMissing   = errors.New("recipient email is empty")
)

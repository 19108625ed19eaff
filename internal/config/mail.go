package config

import "os"

const (
	mailRelayURLEnv   = "MAIL_RELAY_URL"
	mailRelayTokenEnv = "MAIL_RELAY_TOKEN"
	mailFromEnv       = "MAIL_FROM"

	defaultMailFrom = "reminders@localhost"
)

type MailConfig struct {
	RelayURL   string
	RelayToken string
	From       string
}

func LoadMailConfig() *MailConfig {
	from := os.Getenv(mailFromEnv)
	if from == "" {
		from = defaultMailFrom
	}

	return &MailConfig{
		RelayURL:   os.Getenv(mailRelayURLEnv),
		RelayToken: os.Getenv(mailRelayTokenEnv),
		From:       from,
	}
}

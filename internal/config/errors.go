package config

import "errors"

var (
	ErrRedisAddrMissing       = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB         = errors.New("REDIS_DB must be a valid integer")
	ErrDatabaseURLMissing     = errors.New("DATABASE_URL is required")
	ErrInvalidTimezone        = errors.New("REMINDER_TIMEZONE must be a valid IANA time zone")
	ErrUnknownLedgerBackend   = errors.New("LEDGER_BACKEND must be one of postgres, redis, memory")
	ErrDeliveryTimeoutTooLong = errors.New("DELIVERY_TIMEOUT must be shorter than RESEND_DELAY")
	ErrMailRelayURLMissing    = errors.New("MAIL_RELAY_URL is required")
)

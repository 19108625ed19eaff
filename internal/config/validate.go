package config

import (
	"errors"
	"fmt"
)

// ValidateForRun checks the settings needed to serve ticks.
func ValidateForRun(cfg *Config) error {
	var errs []error

	if err := cfg.Dispatch.Validate(); err != nil {
		errs = append(errs, err)
	}

	switch cfg.LedgerBackend {
	case LedgerBackendPostgres:
	case LedgerBackendRedis:
		if err := cfg.Redis.Validate(); err != nil {
			errs = append(errs, err)
		}
	case LedgerBackendMemory:
	default:
		errs = append(errs, ErrUnknownLedgerBackend)
	}

	// Users and events always come from the membership database.
	if err := cfg.Database.Validate(); err != nil {
		errs = append(errs, err)
	}

	if err := cfg.Mail.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %w", errors.Join(errs...))
	}

	return nil
}

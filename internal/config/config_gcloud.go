//go:build gcloud

package config

import (
	"errors"
	"fmt"
)

func (c *MailConfig) Validate() error {
	var errs []error

	if c.RelayURL == "" {
		errs = append(errs, ErrMailRelayURLMissing)
	}
	if c.From == "" {
		errs = append(errs, errors.New("MAIL_FROM is required"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("mail configuration errors: %w", errors.Join(errs...))
	}

	return nil
}

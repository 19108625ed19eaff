//go:build !gcloud

package config

// Validate accepts an empty relay URL locally; reminders are then only logged.
func (c *MailConfig) Validate() error {
	return nil
}

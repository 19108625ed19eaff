package config

import "time"

const (
	pollIntervalEnv    = "POLL_INTERVAL"
	gracePeriodEnv     = "GRACE_PERIOD"
	resendDelayEnv     = "RESEND_DELAY"
	deliveryTimeoutEnv = "DELIVERY_TIMEOUT"
	markSentBackoffEnv = "MARK_SENT_BACKOFF"
	dispatchWorkersEnv = "DISPATCH_WORKERS"

	defaultPollInterval    = 5 * time.Minute
	defaultGracePeriod     = 5 * time.Minute
	defaultResendDelay     = 3 * time.Minute
	defaultDeliveryTimeout = 30 * time.Second
	defaultMarkSentBackoff = 100 * time.Millisecond
	defaultDispatchWorkers = 1
)

type DispatchConfig struct {
	PollInterval    time.Duration
	GracePeriod     time.Duration
	ResendDelay     time.Duration
	DeliveryTimeout time.Duration
	MarkSentBackoff time.Duration
	Workers         int
}

func LoadDispatchConfig() *DispatchConfig {
	return &DispatchConfig{
		PollInterval:    durationEnv(pollIntervalEnv, defaultPollInterval),
		GracePeriod:     durationEnv(gracePeriodEnv, defaultGracePeriod),
		ResendDelay:     durationEnv(resendDelayEnv, defaultResendDelay),
		DeliveryTimeout: durationEnv(deliveryTimeoutEnv, defaultDeliveryTimeout),
		MarkSentBackoff: durationEnv(markSentBackoffEnv, defaultMarkSentBackoff),
		Workers:         positiveIntEnv(dispatchWorkersEnv, defaultDispatchWorkers),
	}
}

// Validate rejects settings under which a live send could be mistaken for an
// abandoned one and resent.
func (c *DispatchConfig) Validate() error {
	if c.DeliveryTimeout >= c.ResendDelay {
		return ErrDeliveryTimeoutTooLong
	}
	return nil
}

package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/KasumiMercury/primind-event-reminder/internal/domain"
	"github.com/KasumiMercury/primind-event-reminder/internal/observability/logging"
	"github.com/KasumiMercury/primind-event-reminder/internal/observability/tracing"
)

const relayMessagesPath = "/v1/messages"

type RelayConfig struct {
	BaseURL  string
	Token    string
	From     string
	Location *time.Location
}

// RelayClient delivers reminders through an HTTP mail relay. Each call is a
// single attempt; the dispatcher decides what happens after a failure.
type RelayClient struct {
	baseURL    string
	token      string
	from       string
	loc        *time.Location
	httpClient *http.Client
}

func NewRelayClient(cfg RelayConfig) *RelayClient {
	return &RelayClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		from:       cfg.From,
		loc:        cfg.Location,
		httpClient: newHTTPClient(cfg.BaseURL),
	}
}

type relayResponse struct {
	ID string `json:"id"`
}

func (c *RelayClient) Send(ctx context.Context, user domain.ReminderPreference, event domain.CandidateEvent) (domain.DeliveryResult, error) {
	if c.baseURL == "" {
		return domain.DeliveryResult{}, ErrRelayNotConfigured
	}

	msg, err := Compose(c.from, user, event, c.loc)
	if err != nil {
		return domain.DeliveryResult{Success: false, Reason: err.Error()}, nil
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return domain.DeliveryResult{}, fmt.Errorf("failed to marshal mail message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+relayMessagesPath, bytes.NewReader(payload))
	if err != nil {
		return domain.DeliveryResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("x-request-id", logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx)))
	if runID := logging.RunIDFromContext(ctx); runID != "" {
		req.Header.Set("X-Run-ID", runID)
	}
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "failed to send request to mail relay",
			slog.String("event_id", event.EventID),
			slog.String("user_id", user.UserID),
			slog.String("error", err.Error()),
		)
		return domain.DeliveryResult{Success: false, Reason: err.Error()}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		slog.WarnContext(ctx, "unexpected status code from mail relay",
			slog.String("event_id", event.EventID),
			slog.String("user_id", user.UserID),
			slog.Int("status_code", resp.StatusCode),
			slog.String("body", strings.TrimSpace(string(detail))),
		)
		return domain.DeliveryResult{
			Success: false,
			Reason:  fmt.Sprintf("mail relay responded with status %d", resp.StatusCode),
		}, nil
	}

	var relayResp relayResponse
	if err := json.NewDecoder(resp.Body).Decode(&relayResp); err != nil && !errors.Is(err, io.EOF) {
		// The relay accepted the message; an unreadable body does not undo that.
		slog.DebugContext(ctx, "failed to decode mail relay response",
			slog.String("error", err.Error()),
		)
	}

	slog.DebugContext(ctx, "reminder handed to mail relay",
		slog.String("event_id", event.EventID),
		slog.String("user_id", user.UserID),
		slog.String("message_id", relayResp.ID),
	)

	return domain.DeliveryResult{Success: true}, nil
}

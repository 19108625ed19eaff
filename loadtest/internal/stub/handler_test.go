package stub

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.Register(r)
	return r
}

func send(t *testing.T, r *gin.Engine, runID, to, subject string) int {
	t.Helper()
	body := `{"from":"reminders@example.com","to":"` + to + `","subject":"` + subject + `","body":"hi"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/messages", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Run-ID", runID)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func stats(t *testing.T, r *gin.Engine, runID string) Stats {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats?run_id="+runID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var s Stats
	if err := json.Unmarshal(w.Body.Bytes(), &s); err != nil {
		t.Fatalf("failed to decode stats: %v", err)
	}
	return s
}

func TestHandleSendCountsDuplicates(t *testing.T) {
	r := newTestRouter(NewHandler(NewMessageStorage(), 0))

	for _, to := range []string{"a@example.com", "b@example.com", "a@example.com"} {
		if code := send(t, r, "run-1", to, "Reminder: Party on 2026-02-01"); code != http.StatusAccepted {
			t.Fatalf("expected 202, got %d", code)
		}
	}

	got := stats(t, r, "run-1")
	if got.Accepted != 3 || got.Unique != 2 || got.Duplicates != 1 {
		t.Errorf("unexpected stats: %+v", got)
	}

	if other := stats(t, r, "run-2"); other.Accepted != 0 {
		t.Errorf("expected runs to be isolated, got %+v", other)
	}
}

func TestHandleSendSimulatesFailures(t *testing.T) {
	h := NewHandler(NewMessageStorage(), 0.5)
	h.rand = func() float64 { return 0.1 }
	r := newTestRouter(h)

	if code := send(t, r, "run-1", "a@example.com", "s"); code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", code)
	}

	got := stats(t, r, "run-1")
	if got.Accepted != 0 || got.Rejected != 1 {
		t.Errorf("unexpected stats: %+v", got)
	}
}

func TestHandleSetFailureRate(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{name: "valid", body: `{"rate":0.25}`, expectedStatus: http.StatusOK},
		{name: "out of range", body: `{"rate":1.5}`, expectedStatus: http.StatusBadRequest},
		{name: "malformed", body: `{`, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(NewHandler(NewMessageStorage(), 0))

			req := httptest.NewRequest(http.MethodPut, "/api/v1/failure", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestHandleSendRejectsInvalidPayload(t *testing.T) {
	r := newTestRouter(NewHandler(NewMessageStorage(), 0))

	req := httptest.NewRequest(http.MethodPost, "/v1/messages", strings.NewReader(`{"from":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

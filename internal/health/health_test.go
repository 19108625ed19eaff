package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-event-reminder/internal/testutil"
)

func serve(t *testing.T, h gin.HandlerFunc) (*httptest.ResponseRecorder, HealthStatus) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/probe", h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

	var status HealthStatus
	_ = json.Unmarshal(w.Body.Bytes(), &status)
	return w, status
}

func TestLiveHandler(t *testing.T) {
	w, _ := serve(t, NewChecker(nil, nil, "test").LiveHandler())
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestReadyHandlerWithoutDependencies(t *testing.T) {
	w, status := serve(t, NewChecker(nil, nil, "v1.2.3").ReadyHandler())
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if status.Version != "v1.2.3" || status.Status != StatusHealthy {
		t.Errorf("unexpected status: %+v", status)
	}
}

func TestReadyHandlerUnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	w, status := serve(t, NewChecker(client, nil, "test").ReadyHandler())
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
	if status.Checks["redis"].Status != StatusUnhealthy || status.Checks["redis"].Error == "" {
		t.Errorf("expected unhealthy redis check, got %+v", status.Checks)
	}
}

func TestCheckHealthyDependencies(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanupRedis := testutil.SetupRedisContainer(ctx, t)
	defer cleanupRedis()
	db, cleanupDB := testutil.SetupPostgresContainer(ctx, t)
	defer cleanupDB()

	status := NewChecker(client, db, "test").Check(ctx)
	if status.Status != StatusHealthy {
		t.Errorf("expected healthy, got %+v", status)
	}
	for _, name := range []string{"redis", "database"} {
		if status.Checks[name].Status != StatusHealthy {
			t.Errorf("expected %s healthy, got %+v", name, status.Checks[name])
		}
	}
}

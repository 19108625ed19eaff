package main

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-event-reminder/loadtest/internal/stub"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8090"
	}

	failureRate := 0.0
	if v := os.Getenv("STUB_FAILURE_RATE"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			slog.Error("invalid STUB_FAILURE_RATE", slog.String("value", v))
			os.Exit(1)
		}
		failureRate = parsed
	}

	r := gin.New()
	r.Use(gin.Recovery())
	stub.NewHandler(stub.NewMessageStorage(), failureRate).Register(r)

	slog.Info("mail relay stub listening",
		slog.String("port", port),
		slog.Float64("failure_rate", failureRate),
	)
	if err := r.Run(":" + port); err != nil {
		slog.Error("mail relay stub exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/weddingplan/internal/api"
	"github.com/mmynk/weddingplan/internal/auth"
	"github.com/mmynk/weddingplan/internal/config"
	"github.com/mmynk/weddingplan/internal/invite"
	"github.com/mmynk/weddingplan/internal/middleware"
	"github.com/mmynk/weddingplan/internal/service"
	"github.com/mmynk/weddingplan/internal/storage/sqlite"
	"github.com/mmynk/weddingplan/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	codec := invite.NewCodec(cfg.InviteSalt)

	server := api.NewServer(
		service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager),
		service.NewProjectService(store, codec),
		service.NewChecklistService(store),
		service.NewBudgetService(store),
		jwtManager,
	)

	reminders := service.NewReminderService(store, service.LogNotifier{}, cfg.ReminderWindow)
	if err := reminders.Start(cfg.ReminderSpec); err != nil {
		slog.Error("Failed to start reminder scheduler", "error", err)
		os.Exit(1)
	}
	defer reminders.Stop()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", server.Handler())

	handler := middleware.Metrics(middleware.Logging(mux))

	// h2c allows HTTP/2 without TLS for clients behind a terminating proxy.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := ":" + cfg.Port
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

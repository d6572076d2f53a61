package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/danielhkuo/movie-night/auth"
	"github.com/danielhkuo/movie-night/cliparse"
	"github.com/danielhkuo/movie-night/db"
	"github.com/danielhkuo/movie-night/middleware"
	"github.com/danielhkuo/movie-night/router"
	"github.com/danielhkuo/movie-night/voting"
)

const (
	tokenIssuer     = "movie-night"
	startupTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	var err error

	if err := cliparse.LoadDotEnv(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg))

	// Connect to the store and prepare schema or indexes
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	st, err := db.Open(ctx, cfg)
	cancel()
	if err != nil {
		slog.Error("store setup failed", "error", err, "type", cfg.DatabaseType)
		os.Exit(1)
	}
	defer st.Close()

	verifier, err := auth.NewJWTVerifier(cfg.JWTSecret, tokenIssuer)
	if err != nil {
		slog.Error("token verifier setup failed", "error", err)
		os.Exit(1)
	}

	svc := voting.NewService(st, verifier, cfg.StoreTimeout)

	// Create router
	mux := router.NewRouter(svc, cfg)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal, then let in-flight requests finish
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "store", cfg.DatabaseType)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// newLogger builds the process logger from LOG_LEVEL and LOG_FORMAT
func newLogger(cfg cliparse.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(cfg.LogFormat) == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/example/worktime-calendar/internal/application"
	"github.com/example/worktime-calendar/internal/config"
	httptransport "github.com/example/worktime-calendar/internal/http"
	"github.com/example/worktime-calendar/internal/persistence"
	"github.com/example/worktime-calendar/internal/persistence/sqlite"
	"github.com/example/worktime-calendar/internal/timeblock"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Local development keeps its settings in a .env file; absence is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	calendar, err := timeblock.NewCalendar(cfg.Timezone)
	if err != nil {
		logger.Error("failed to resolve timezone", "error", err)
		os.Exit(1)
	}
	policy := buildPolicy(cfg)

	storage, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := storage.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}
	if err := storage.SeedPersons(context.Background(), defaultRoster()); err != nil {
		logger.Error("failed to seed roster", "error", err)
		os.Exit(1)
	}

	passwordHash, err := application.CreatePasswordHash(cfg.Password, application.DefaultArgon2idParams)
	if err != nil {
		logger.Error("failed to hash password", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString
	tokenGenerator := func() string { return randomHex(32) }
	now := time.Now

	blockService := application.NewBlockServiceWithLogger(storage, storage, storage, calendar, policy, idGenerator, now, logger)
	authService := application.NewAuthServiceWithLogger(storage, passwordHash, nil, tokenGenerator, now, cfg.SessionTTL, logger)

	authHandler := httptransport.NewAuthHandler(authService, logger)
	blockHandler := httptransport.NewBlockHandler(blockService, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Auth:   authHandler,
		Blocks: blockHandler,
	})

	protected := httptransport.RequireSession(authService, logger)(router)
	handler := httptransport.RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.EqualFold(r.URL.Path, "/api/login") {
			router.ServeHTTP(w, r)
			return
		}
		protected.ServeHTTP(w, r)
	}))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("worktime calendar API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

func buildPolicy(cfg config.Config) timeblock.Policy {
	policy := timeblock.DefaultPolicy()
	policy.WindowDays = cfg.WeekDays
	policy.DayCapHours = cfg.DayCapHours
	policy.WeekCapHours = cfg.WeekCapHours
	policy.EarlyCapHours = cfg.EarlyCapHours
	policy.WeekendCapHours = cfg.WeekendCapHours
	policy.MaxBlockHours = cfg.MaxBlockHours
	return policy
}

func defaultRoster() []persistence.Person {
	return []persistence.Person{
		{ID: "anna", Name: "Anna", Color: "#3b82f6"},
		{ID: "bob", Name: "Bob", Color: "#22c55e"},
		{ID: "carla", Name: "Carla", Color: "#f97316"},
		{ID: "dan", Name: "Dan", Color: "#a855f7"},
	}
}

func randomHex(bytes int) string {
	if bytes <= 0 {
		bytes = 16
	}
	buf := make([]byte, bytes)
	if _, err := rand.Read(buf); err != nil {
		return uuid.NewString()
	}
	return hex.EncodeToString(buf)
}

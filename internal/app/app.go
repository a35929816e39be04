package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/viper"

	"plearn/backend/internal/api"
	"plearn/backend/internal/config"
	"plearn/backend/internal/database"
	"plearn/backend/internal/llm"
	"plearn/backend/internal/repository"
	"plearn/backend/internal/service"
)

// ShutdownTimeout bounds the graceful drain of in-flight requests.
const ShutdownTimeout = 15 * time.Second

// App holds the wired server and the store it owns. Exactly one of DB and
// Pool is set, depending on the configured driver.
type App struct {
	DB     *sql.DB
	Pool   *pgxpool.Pool
	Server *http.Server
}

// NewApp opens the task store and wires repositories, services, handlers
// and the router.
func NewApp(cfg *config.Config) (*App, error) {
	a := &App{}

	var repo repository.TaskRepository
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		pool, err := database.InitPostgres(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		a.Pool = pool
		repo = repository.NewPostgresRepository(pool)
		slog.Info("Successfully connected to PostgreSQL database.")
	default:
		db, err := database.InitDB(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sqlite: %w", err)
		}
		a.DB = db
		repo = repository.NewSQLiteRepository(db)
		slog.Info("Successfully connected to SQLite database.", "path", cfg.DatabasePath)
	}

	trimmer, err := llm.NewHistoryTrimmer(cfg.HistoryTokenBudget)
	if err != nil {
		a.Close()
		return nil, err
	}
	provider := llm.NewOpenAIProvider(cfg.LLMBaseURL, cfg.LLMAPIKey)

	chatService := service.NewChatService(provider, trimmer, service.Models{
		Chat:   cfg.ChatModel,
		Vision: cfg.VisionModel,
		TTS:    cfg.TTSModel,
		Voice:  cfg.TTSVoice,
	})
	todoService := service.NewTodoService(repo)

	router := api.NewRouter(
		api.NewChatHandler(chatService),
		api.NewTodoHandler(todoService),
		cfg.AllowedOrigins(),
	)

	a.Server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		// Vision uploads and model calls can be slow; /api routes carry their own timeout.
		WriteTimeout: api.RequestTimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return a, nil
}

// Close releases the task store.
func (a *App) Close() {
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}
	if a.Pool != nil {
		a.Pool.Close()
	}
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	logConfigSource()

	if cfg.LLMAPIKey == "" {
		slog.Warn("LLM_API_KEY is empty; upstream model calls will be rejected")
	}

	a, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", cfg.AppPort)
		errCh <- a.Server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			return 1
		}
	case <-ctx.Done():
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
			return 1
		}
	}

	return 0
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func parseLevel(logLevel string) slog.Level {
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func setupLogger(logLevel string) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(logLevel),
	}))
	slog.SetDefault(logger)
}

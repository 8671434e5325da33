package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PrathaMesh3056/Prathamesh-s-Tutor/internal/config"
	"github.com/PrathaMesh3056/Prathamesh-s-Tutor/internal/db"
	"github.com/PrathaMesh3056/Prathamesh-s-Tutor/internal/llm"
	"github.com/PrathaMesh3056/Prathamesh-s-Tutor/internal/services"
	"github.com/go-telegram/bot"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	if err := run(logger); err != nil {
		logger.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func run(logger zerolog.Logger) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return &services.ConfigurationError{Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return &services.ConfigurationError{Err: err}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	b, err := bot.New(cfg.TelegramToken, bot.WithHTTPClient(cfg.HTTPTimeout, httpClient))
	if err != nil {
		return &services.ConfigurationError{Err: err}
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM)
	if err != nil {
		return &services.ConfigurationError{Err: err}
	}
	logger.Info().
		Str("provider", cfg.LLM.Provider).
		Str("model", provider.ModelID()).
		Str("store", cfg.Store).
		Msg("agent configured")

	generator := services.NewLessonGenerator(provider, cfg.DisableDiagrams)
	renderer := services.NewMermaidRenderer(cfg.MermaidInkURL, cfg.HTTPTimeout)
	notifier := services.NewTelegramNotifier(b, cfg.TelegramChatID, cfg.PlainTextOnly, logger)

	workflow := services.NewWorkflow(store, generator, renderer, notifier, services.Options{
		Transactional:   cfg.Transactional,
		DisableDiagrams: cfg.DisableDiagrams,
	}, logger)

	genCtx, genCancel := context.WithTimeout(ctx, cfg.LLM.Timeout+2*cfg.HTTPTimeout)
	defer genCancel()

	return workflow.RunOnce(genCtx)
}

func openStore(cfg *config.Config) (db.LessonStore, func(), error) {
	if cfg.Store == "file" {
		return db.NewFileStore(cfg.CurriculumFile), func() {}, nil
	}

	sqlDB, err := sql.Open("sqlite", cfg.DBPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, nil, &services.PersistenceError{Op: "open", Err: err}
	}
	if err := db.InitSchema(sqlDB); err != nil {
		sqlDB.Close()
		return nil, nil, &services.PersistenceError{Op: "init schema", Err: err}
	}

	queue := db.NewQueue(sqlDB)
	repo := db.NewLessonRepository(queue)
	return repo, func() {
		queue.Close()
		sqlDB.Close()
	}, nil
}

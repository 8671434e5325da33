package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/PrathaMesh3056/Prathamesh-s-Tutor/internal/llm"
)

// Config is the explicit bundle the binaries construct once per
// invocation and pass down; nothing reads the environment after this.
type Config struct {
	TelegramToken  string
	TelegramChatID int64

	// Store selects the backend: "sqlite" or "file".
	Store          string
	DBPath         string
	CurriculumFile string

	LLM llm.Config

	// Variant flags. The agent started out as several near-identical
	// scripts; these are their differences.
	Transactional   bool
	PlainTextOnly   bool
	DisableDiagrams bool

	MermaidInkURL string
	HTTPTimeout   time.Duration
}

// envValue reads a variable and strips stray whitespace and quotes,
// which secrets pasted into CI config tend to pick up.
func envValue(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), `"`)
}

func envBool(key string) bool {
	switch strings.ToLower(envValue(key)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// FromEnv builds the configuration from environment variables.
func FromEnv() (*Config, error) {
	cfg := &Config{
		TelegramToken:  envValue("TELEGRAM_BOT_TOKEN"),
		Store:          envValue("LESSON_STORE"),
		DBPath:         envValue("DB_PATH"),
		CurriculumFile: envValue("CURRICULUM_FILE"),
		LLM:            llm.ConfigFromEnv(),

		Transactional:   envBool("TRANSACTIONAL_COMPLETE"),
		PlainTextOnly:   envBool("PLAIN_TEXT_ONLY"),
		DisableDiagrams: envBool("DISABLE_DIAGRAMS"),

		MermaidInkURL: envValue("MERMAID_INK_URL"),
		HTTPTimeout:   15 * time.Second,
	}

	if cfg.Store == "" {
		cfg.Store = "sqlite"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "lessons.db"
	}
	if cfg.CurriculumFile == "" {
		cfg.CurriculumFile = "Curriculam.json"
	}

	if chatID := envValue("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	return cfg, nil
}

// Validate checks that everything needed before any work starts is
// present. A failure here is fatal.
func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if c.TelegramChatID == 0 {
		return fmt.Errorf("TELEGRAM_CHAT_ID is required")
	}
	switch c.Store {
	case "sqlite", "file":
	default:
		return fmt.Errorf("unknown LESSON_STORE: %q (want sqlite or file)", c.Store)
	}
	return c.LLM.Validate()
}

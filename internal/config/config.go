package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
)

// LLM providers.
const (
	ProviderGemini = "gemini"
	ProviderGroq   = "groq"
	ProviderNone   = "none"
)

const maxPlanDays = 14

// Config holds the configuration for the application.
type Config struct {
	DatabasePath     string
	DealSnapshotPath string
	PreferencesPath  string
	DefaultStoreID   string
	FlyerURLTemplate string
	PlanDays         int
	Port             string

	LLMProvider  string
	GeminiAPIKey string
	GroqAPIKey   string

	GhostURL      string
	GhostAdminKey string

	// Telegram Config
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
	AdminTelegramID        int64
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	cfg := &Config{
		DatabasePath:     getEnv("DATABASE_PATH", "data/grocery-planner.db"),
		DealSnapshotPath: getEnv("DEAL_SNAPSHOT_PATH", "data/deals"),
		PreferencesPath:  getEnv("PREFERENCES_PATH", "data/preferences.json"),
		DefaultStoreID:   getEnv("DEFAULT_STORE_ID", "store-001"),
		FlyerURLTemplate: os.Getenv("FLYER_URL_TEMPLATE"),
		Port:             getEnv("PORT", "8080"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GroqAPIKey:       os.Getenv("GROQ_API_KEY"),
		GhostURL:         os.Getenv("GHOST_API_URL"),
		GhostAdminKey:    os.Getenv("GHOST_ADMIN_API_KEY"),
	}

	planDays, err := parsePlanDays(os.Getenv("PLAN_DAYS"))
	if err != nil {
		return nil, err
	}
	cfg.PlanDays = planDays

	provider, err := resolveProvider(os.Getenv("LLM_PROVIDER"), cfg.GeminiAPIKey, cfg.GroqAPIKey)
	if err != nil {
		return nil, err
	}
	cfg.LLMProvider = provider

	// Ghost publishing is optional but needs both values.
	if cfg.GhostURL != "" && cfg.GhostAdminKey == "" {
		return nil, fmt.Errorf("GHOST_ADMIN_API_KEY environment variable not set")
	}
	if cfg.GhostAdminKey != "" && cfg.GhostURL == "" {
		return nil, fmt.Errorf("GHOST_API_URL environment variable not set")
	}

	// Telegram Config (Optional for CLI, required for Bot)
	cfg.TelegramBotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.TelegramWebhookURL = os.Getenv("TELEGRAM_WEBHOOK_URL")
	if cfg.TelegramBotToken != "" && cfg.TelegramWebhookURL == "" {
		return nil, fmt.Errorf("TELEGRAM_WEBHOOK_URL environment variable not set")
	}

	cfg.TelegramAllowedUserIDs, err = parseIDs(os.Getenv("TELEGRAM_ALLOWED_USER_IDS"))
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_ALLOWED_USER_IDS: %w", err)
	}
	if admin := os.Getenv("ADMIN_TELEGRAM_ID"); admin != "" {
		cfg.AdminTelegramID, err = strconv.ParseInt(strings.TrimSpace(admin), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID: %w", err)
		}
	}

	return cfg, nil
}

// GhostEnabled reports whether newsletters can be published.
func (c *Config) GhostEnabled() bool {
	return c.GhostURL != "" && c.GhostAdminKey != ""
}

// IsAllowedUser reports whether a Telegram user may talk to the bot.
// The admin is always allowed.
func (c *Config) IsAllowedUser(id int64) bool {
	if c.AdminTelegramID != 0 && id == c.AdminTelegramID {
		return true
	}
	return slices.Contains(c.TelegramAllowedUserIDs, id)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parsePlanDays(raw string) (int, error) {
	if raw == "" {
		return 7, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > maxPlanDays {
		return 0, fmt.Errorf("PLAN_DAYS must be between 1 and %d, got %q", maxPlanDays, raw)
	}
	return n, nil
}

func resolveProvider(provider, geminiKey, groqKey string) (string, error) {
	switch strings.ToLower(provider) {
	case "":
		if geminiKey != "" {
			return ProviderGemini, nil
		}
		if groqKey != "" {
			return ProviderGroq, nil
		}
		return ProviderNone, nil
	case ProviderGemini:
		if geminiKey == "" {
			return "", fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
		return ProviderGemini, nil
	case ProviderGroq:
		if groqKey == "" {
			return "", fmt.Errorf("GROQ_API_KEY environment variable not set")
		}
		return ProviderGroq, nil
	case ProviderNone:
		return ProviderNone, nil
	default:
		return "", fmt.Errorf("unknown LLM_PROVIDER %q", provider)
	}
}

func parseIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

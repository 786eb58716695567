package config

import (
	"testing"
)

var allVars = []string{
	"DATABASE_PATH", "DEAL_SNAPSHOT_PATH", "PREFERENCES_PATH", "DEFAULT_STORE_ID", "FLYER_URL_TEMPLATE",
	"PLAN_DAYS", "PORT", "LLM_PROVIDER", "GEMINI_API_KEY", "GROQ_API_KEY", "GHOST_API_URL",
	"GHOST_ADMIN_API_KEY", "TELEGRAM_BOT_TOKEN", "TELEGRAM_WEBHOOK_URL", "TELEGRAM_ALLOWED_USER_IDS",
	"ADMIN_TELEGRAM_ID",
}

func TestNewFromEnv(t *testing.T) {
	// Helper to start every subtest from an empty environment.
	clearEnv := func(t *testing.T) {
		t.Helper()
		for _, k := range allVars {
			t.Setenv(k, "")
		}
	}

	t.Run("Defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DatabasePath != "data/grocery-planner.db" {
			t.Errorf("Expected default database path, got '%s'", cfg.DatabasePath)
		}
		if cfg.PlanDays != 7 {
			t.Errorf("Expected 7 plan days, got %d", cfg.PlanDays)
		}
		if cfg.DefaultStoreID != "store-001" {
			t.Errorf("Expected default store 'store-001', got '%s'", cfg.DefaultStoreID)
		}
		if cfg.Port != "8080" {
			t.Errorf("Expected port 8080, got '%s'", cfg.Port)
		}
		if cfg.LLMProvider != ProviderNone {
			t.Errorf("Expected provider 'none' without keys, got '%s'", cfg.LLMProvider)
		}
		if cfg.GhostEnabled() {
			t.Error("Expected Ghost to be disabled")
		}
	})

	t.Run("Success", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GHOST_API_URL", "http://ghost.test")
		t.Setenv("GHOST_ADMIN_API_KEY", "id:secret")
		t.Setenv("GROQ_API_KEY", "groq_key")
		t.Setenv("PLAN_DAYS", "5")
		t.Setenv("TELEGRAM_BOT_TOKEN", "token")
		t.Setenv("TELEGRAM_WEBHOOK_URL", "https://bot.test/webhook")
		t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "11, 22")
		t.Setenv("ADMIN_TELEGRAM_ID", "99")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.GhostURL != "http://ghost.test" {
			t.Errorf("Expected GhostURL to be 'http://ghost.test', got '%s'", cfg.GhostURL)
		}
		if !cfg.GhostEnabled() {
			t.Error("Expected Ghost to be enabled")
		}
		if cfg.LLMProvider != ProviderGroq {
			t.Errorf("Expected provider 'groq', got '%s'", cfg.LLMProvider)
		}
		if cfg.PlanDays != 5 {
			t.Errorf("Expected 5 plan days, got %d", cfg.PlanDays)
		}
		if !cfg.IsAllowedUser(22) || !cfg.IsAllowedUser(99) || cfg.IsAllowedUser(33) {
			t.Errorf("Unexpected allow list result for %v (admin %d)", cfg.TelegramAllowedUserIDs, cfg.AdminTelegramID)
		}
	})

	t.Run("GeminiPreferredWhenBothKeysSet", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("GEMINI_API_KEY", "gemini_key")
		t.Setenv("GROQ_API_KEY", "groq_key")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.LLMProvider != ProviderGemini {
			t.Errorf("Expected provider 'gemini', got '%s'", cfg.LLMProvider)
		}
	})

	errorCases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "MissingGhostAdminKey",
			env:  map[string]string{"GHOST_API_URL": "http://ghost.test"},
			want: "GHOST_ADMIN_API_KEY environment variable not set",
		},
		{
			name: "MissingGhostURL",
			env:  map[string]string{"GHOST_ADMIN_API_KEY": "id:secret"},
			want: "GHOST_API_URL environment variable not set",
		},
		{
			name: "MissingGeminiAPIKey",
			env:  map[string]string{"LLM_PROVIDER": "gemini"},
			want: "GEMINI_API_KEY environment variable not set",
		},
		{
			name: "MissingGroqAPIKey",
			env:  map[string]string{"LLM_PROVIDER": "groq", "GEMINI_API_KEY": "gemini_key"},
			want: "GROQ_API_KEY environment variable not set",
		},
		{
			name: "MissingWebhookURL",
			env:  map[string]string{"TELEGRAM_BOT_TOKEN": "token"},
			want: "TELEGRAM_WEBHOOK_URL environment variable not set",
		},
		{
			name: "PlanDaysOutOfRange",
			env:  map[string]string{"PLAN_DAYS": "15"},
			want: `PLAN_DAYS must be between 1 and 14, got "15"`,
		},
		{
			name: "PlanDaysNotANumber",
			env:  map[string]string{"PLAN_DAYS": "week"},
			want: `PLAN_DAYS must be between 1 and 14, got "week"`,
		},
	}

	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := NewFromEnv()
			if err == nil {
				t.Fatalf("Expected error '%s', got nil", tc.want)
			}
			if err.Error() != tc.want {
				t.Errorf("Expected error '%s', got '%s'", tc.want, err.Error())
			}
		})
	}

	t.Run("BadAllowList", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "11,abc")
		if _, err := NewFromEnv(); err == nil {
			t.Fatal("Expected an error for a non-numeric user id")
		}
	})
}

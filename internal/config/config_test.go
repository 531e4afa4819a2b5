package config

import (
	"testing"
)

func TestCollectAPIKeys(t *testing.T) {
	t.Setenv("OSU_API_KEY_1", "key-one")
	t.Setenv("OSU_API_KEY_2", "  key-two  ")
	t.Setenv("OSU_API_KEY_3", "")
	t.Setenv("OSU_API_KEY_4", "key-one")
	t.Setenv("OSU_API_KEYS", "key-three, key-four ,,key-two")

	keys := collectAPIKeys("OSU_API_KEY_")

	want := []string{"key-one", "key-two", "key-three", "key-four"}
	if len(keys) != len(want) {
		t.Fatalf("expected %d keys, got %d: %v", len(want), len(keys), keys)
	}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], k)
		}
	}
}

func TestCollectAPIKeysEmpty(t *testing.T) {
	for _, key := range []string{"OSU_API_KEY_1", "OSU_API_KEY_2", "OSU_API_KEY_3", "OSU_API_KEY_4", "OSU_API_KEY_5", "OSU_API_KEYS"} {
		t.Setenv(key, "")
	}

	keys := collectAPIKeys("OSU_API_KEY_")
	if len(keys) != 0 {
		t.Errorf("expected no keys, got %v", keys)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Osu:     OsuConfig{APIKeys: []string{"k"}},
			Sheets:  SheetsConfig{SpreadsheetID: "sheet-id"},
			Discord: DiscordConfig{WebhookURL: "https://discord.com/api/webhooks/1/x"},
			Scheduler: SchedulerConfig{
				IngestInterval:  1,
				PublishInterval: 1,
				TopK:            5,
			},
		}
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no api keys", func(c *Config) { c.Osu.APIKeys = nil }},
		{"no spreadsheet id", func(c *Config) { c.Sheets.SpreadsheetID = "" }},
		{"no webhook url", func(c *Config) { c.Discord.WebhookURL = "" }},
		{"zero ingest interval", func(c *Config) { c.Scheduler.IngestInterval = 0 }},
		{"zero publish interval", func(c *Config) { c.Scheduler.PublishInterval = 0 }},
		{"zero top k", func(c *Config) { c.Scheduler.TopK = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OSU_API_KEY_1", "test-key")
	t.Setenv("SPREADSHEET_ID", "sheet-id")
	t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.com/api/webhooks/1/x")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Scheduler.TopK != 5 {
		t.Errorf("default TopK = %d, want 5", cfg.Scheduler.TopK)
	}
	if cfg.Scheduler.IngestInterval.Minutes() != 60 {
		t.Errorf("default ingest interval = %v, want 1h", cfg.Scheduler.IngestInterval)
	}
	if cfg.Scheduler.PublishInterval.Minutes() != 240 {
		t.Errorf("default publish interval = %v, want 4h", cfg.Scheduler.PublishInterval)
	}
	if cfg.Sheets.ScoresRange == "" {
		t.Error("default scores range should not be empty")
	}
	if cfg.Store.Path == "" {
		t.Error("default store path should not be empty")
	}
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/aticie/spy-bot/internal/constants"
	"github.com/aticie/spy-bot/internal/util"
)

const maxOsuAPIKeySlots = 5

// Config: 스파이 봇 전체 동작에 필요한 설정을 담는 구조체
type Config struct {
	Osu       OsuConfig
	Sheets    SheetsConfig
	Discord   DiscordConfig
	Roster    RosterConfig
	Store     StoreConfig
	Scheduler SchedulerConfig
	Logging   LoggingConfig
	Version   string
}

// OsuConfig: osu! API 키 풀 관련 설정
type OsuConfig struct {
	APIKeys []string
}

// SheetsConfig: Google Sheets 발행 대상 및 인증 파일 설정
type SheetsConfig struct {
	SpreadsheetID   string
	ScoresRange     string // 집계 그리드가 덮어쓰는 범위 (예: "Scores!B2")
	RawDumpRange    string // 감사용 원본 덤프 범위, 비어있으면 발행 생략
	CredentialsFile string
	TokenFile       string
}

// DiscordConfig: 신규 스코어 알림 웹훅 설정
type DiscordConfig struct {
	WebhookURL string
}

// RosterConfig: 로스터/비트맵 화이트리스트 파일 경로 설정
type RosterConfig struct {
	PlayersFile  string
	BeatmapsFile string
}

// StoreConfig: SQLite 스코어 저장소 설정
type StoreConfig struct {
	Path string
}

// SchedulerConfig: 수집/발행 주기 및 집계 폭 설정
type SchedulerConfig struct {
	IngestInterval  time.Duration
	PublishInterval time.Duration
	TopK            int
}

// LoggingConfig: 애플리케이션 로그 설정 (레벨, 디렉토리, 로테이션 정책)
type LoggingConfig struct {
	Level      string
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Load: .env 파일 및 환경 변수로부터 설정을 로드하고, 기본값을 적용하여 Config 객체를 생성한다.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Osu: OsuConfig{
			APIKeys: collectAPIKeys("OSU_API_KEY_"),
		},
		Sheets: SheetsConfig{
			SpreadsheetID:   getEnv("SPREADSHEET_ID", ""),
			ScoresRange:     getEnv("SCORES_RANGE", "Scores!B2"),
			RawDumpRange:    getEnv("RAW_DUMP_RANGE", ""),
			CredentialsFile: getEnv("SHEETS_CREDENTIALS_FILE", "credentials.json"),
			TokenFile:       getEnv("SHEETS_TOKEN_FILE", "token.json"),
		},
		Discord: DiscordConfig{
			WebhookURL: getEnv("DISCORD_WEBHOOK_URL", ""),
		},
		Roster: RosterConfig{
			PlayersFile:  getEnv("PLAYERS_FILE", "players.txt"),
			BeatmapsFile: getEnv("BEATMAPS_FILE", "beatmaps.txt"),
		},
		Store: StoreConfig{
			Path: getEnv("DB_PATH", "spy.db"),
		},
		Scheduler: SchedulerConfig{
			IngestInterval: time.Duration(getEnvInt(
				"INGEST_INTERVAL_MINUTES",
				int(constants.SchedulerDefaults.IngestInterval.Minutes()),
			)) * time.Minute,
			PublishInterval: time.Duration(getEnvInt(
				"PUBLISH_INTERVAL_MINUTES",
				int(constants.SchedulerDefaults.PublishInterval.Minutes()),
			)) * time.Minute,
			TopK: getEnvInt("TOP_K", constants.SchedulerDefaults.TopK),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Dir:        getEnv("LOG_DIR", "logs"),
			MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
			MaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 30),
			Compress:   getEnvBool("LOG_COMPRESS", true),
		},
		Version: util.TrimSpace(getEnv("APP_VERSION", "2.0.0-go")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate: 필수 설정값이 누락되지 않았는지 검증한다.
func (c *Config) Validate() error {
	if len(c.Osu.APIKeys) == 0 {
		return fmt.Errorf("at least one OSU_API_KEY is required")
	}
	if c.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("SPREADSHEET_ID is required")
	}
	if c.Discord.WebhookURL == "" {
		return fmt.Errorf("DISCORD_WEBHOOK_URL is required")
	}
	if c.Scheduler.IngestInterval <= 0 {
		return fmt.Errorf("INGEST_INTERVAL_MINUTES must be positive")
	}
	if c.Scheduler.PublishInterval <= 0 {
		return fmt.Errorf("PUBLISH_INTERVAL_MINUTES must be positive")
	}
	if c.Scheduler.TopK <= 0 {
		return fmt.Errorf("TOP_K must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func collectAPIKeys(prefix string) []string {
	keys := make([]string, 0)
	seen := make(map[string]struct{})

	addKey := func(raw string) {
		trimmed := util.TrimSpace(raw)
		if trimmed == "" {
			return
		}
		if _, exists := seen[trimmed]; exists {
			return
		}
		seen[trimmed] = struct{}{}
		keys = append(keys, trimmed)
	}

	for i := 1; i <= maxOsuAPIKeySlots; i++ {
		envKey := fmt.Sprintf("%s%d", prefix, i)
		addKey(os.Getenv(envKey))
	}

	if base := strings.TrimSuffix(prefix, "_"); base != "" {
		if bulk := os.Getenv(base + "S"); bulk != "" {
			parts := strings.Split(bulk, ",")
			for _, part := range parts {
				addKey(part)
			}
		}
	}

	return keys
}

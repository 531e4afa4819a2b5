package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aticie/spy-bot/internal/config"
	"github.com/aticie/spy-bot/internal/constants"
	"github.com/aticie/spy-bot/internal/discord"
	"github.com/aticie/spy-bot/internal/osuapi"
	"github.com/aticie/spy-bot/internal/scheduler"
	"github.com/aticie/spy-bot/internal/service/aggregate"
	"github.com/aticie/spy-bot/internal/service/cache"
	"github.com/aticie/spy-bot/internal/service/ingest"
	"github.com/aticie/spy-bot/internal/service/roster"
	"github.com/aticie/spy-bot/internal/service/sheets"
	"github.com/aticie/spy-bot/internal/service/store"
	"github.com/aticie/spy-bot/internal/util"
)

// Runtime: 조립된 애플리케이션 구성 요소들을 담는다.
type Runtime struct {
	Config    *config.Config
	Logger    *slog.Logger
	Store     *store.SQLiteService
	Sheets    *sheets.OAuthService
	Scheduler *scheduler.Scheduler
}

// BuildRuntime: 설정으로부터 전체 서비스를 조립한다.
func BuildRuntime(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	sqliteService, err := store.NewSQLiteService(cfg.Store.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("스코어 저장소 초기화 실패: %w", err)
	}

	repo := store.NewRepository(sqliteService.GetGormDB())
	if err := repo.AutoMigrate(ctx); err != nil {
		_ = sqliteService.Close()
		return nil, fmt.Errorf("스키마 마이그레이션 실패: %w", err)
	}

	rosterLoader := roster.NewLoader(cfg.Roster.PlayersFile, cfg.Roster.BeatmapsFile)

	osuClient := osuapi.NewClient(
		util.NewHTTPClient(util.HTTPClientConfig{
			Timeout:        constants.RequestTimeout.OsuAPI,
			ConnectTimeout: constants.HTTPClientConfig.ConnectTimeout,
		}),
		cfg.Osu.APIKeys,
		logger,
	)

	notifier := discord.NewWebhookClient(
		util.NewHTTPClient(util.HTTPClientConfig{
			Timeout:        constants.RequestTimeout.Webhook,
			ConnectTimeout: constants.HTTPClientConfig.ConnectTimeout,
		}),
		cfg.Discord.WebhookURL,
		logger,
	)

	beatmapCache := cache.NewBeatmapCache(
		constants.BeatmapCacheConfig.MaxEntries,
		constants.BeatmapCacheConfig.TTL,
	)

	pipeline := ingest.NewPipeline(osuClient, repo, notifier, rosterLoader, beatmapCache, logger)

	oauthService, err := sheets.NewOAuthService(cfg.Sheets.CredentialsFile, cfg.Sheets.TokenFile, logger)
	if err != nil {
		_ = sqliteService.Close()
		return nil, fmt.Errorf("시트 인증 초기화 실패: %w", err)
	}
	if !oauthService.IsAuthorized() {
		logger.Warn("sheets_not_authorized_run_authorize_tool")
	}

	aggregator := aggregate.NewAggregator(repo, rosterLoader, cfg.Scheduler.TopK)
	publisher := sheets.NewPublisher(
		oauthService,
		aggregator,
		cfg.Sheets.SpreadsheetID,
		cfg.Sheets.ScoresRange,
		cfg.Sheets.RawDumpRange,
		logger,
	)

	sched := scheduler.New(
		pipeline,
		publisher,
		cfg.Scheduler.IngestInterval,
		cfg.Scheduler.PublishInterval,
		logger,
	)

	return &Runtime{
		Config:    cfg,
		Logger:    logger,
		Store:     sqliteService,
		Sheets:    oauthService,
		Scheduler: sched,
	}, nil
}

// Start: 스케줄러를 가동한다.
func (r *Runtime) Start(ctx context.Context) {
	if r == nil || r.Scheduler == nil {
		return
	}
	r.Scheduler.Start(ctx)
}

// Shutdown: 스케줄러를 멈추고 저장소 연결을 닫는다.
func (r *Runtime) Shutdown() {
	if r == nil {
		return
	}

	if r.Scheduler != nil {
		r.Scheduler.Stop()
		r.Logger.Info("scheduler_stopped")
	}

	if r.Store != nil {
		if err := r.Store.Close(); err != nil {
			r.Logger.Error("store_close_failed", slog.Any("error", err))
		}
	}
}

// Run: 시그널을 받을 때까지 실행하고, 받으면 우아하게 종료한다.
func (r *Runtime) Run() {
	if r == nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	r.Start(ctx)
	r.Logger.Info("spy_bot_started_waiting_for_signals")

	sig := <-sigCh
	r.Logger.Info("shutdown_signal_received", slog.String("signal", sig.String()))

	cancel()
	r.Shutdown()
	r.Logger.Info("shutdown_complete")
}

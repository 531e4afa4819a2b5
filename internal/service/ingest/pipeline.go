package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strconv"
	"time"

	"github.com/aticie/spy-bot/internal/constants"
	"github.com/aticie/spy-bot/internal/domain"
	"github.com/aticie/spy-bot/internal/service/cache"
	"github.com/aticie/spy-bot/internal/util"
)

// Fetcher: 원격 스코어 및 비트맵 메타데이터 조회 인터페이스
type Fetcher interface {
	GetUserRecent(ctx context.Context, username string) ([]domain.RawScore, error)
	GetBeatmap(ctx context.Context, beatmapID string) (*domain.Beatmap, error)
}

// ScoreStore: 중복 확인과 삽입만 필요로 하는 저장소 인터페이스
type ScoreStore interface {
	Exists(ctx context.Context, key domain.ScoreKey) (bool, error)
	Insert(ctx context.Context, score *domain.Score) error
}

// Notifier: 신규 스코어 알림 발송 인터페이스
type Notifier interface {
	NotifyNewScore(ctx context.Context, score *domain.Score, beatmap *domain.Beatmap) error
}

// RosterSource: 플레이어 목록과 비트맵 화이트리스트 공급 인터페이스
type RosterSource interface {
	Players() ([]string, error)
	Beatmaps() ([]string, error)
}

// Pipeline: 수집 사이클을 수행한다.
// 로스터 순서대로 플레이어를 순회하며 신규 적격 스코어를 저장하고 알림을 보낸다.
type Pipeline struct {
	fetcher  Fetcher
	store    ScoreStore
	notifier Notifier
	roster   RosterSource
	beatmaps *cache.BeatmapCache
	logger   *slog.Logger

	// 플레이어 간 대기 시간 범위. 테스트에서 0으로 줄인다.
	delayMin time.Duration
	delayMax time.Duration
}

// NewPipeline: 새로운 수집 파이프라인을 생성한다.
func NewPipeline(fetcher Fetcher, store ScoreStore, notifier Notifier, rosterSource RosterSource, beatmapCache *cache.BeatmapCache, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		fetcher:  fetcher,
		store:    store,
		notifier: notifier,
		roster:   rosterSource,
		beatmaps: beatmapCache,
		logger:   logger,
		delayMin: constants.SchedulerDefaults.PlayerDelayMin,
		delayMax: constants.SchedulerDefaults.PlayerDelayMax,
	}
}

// RunCycle: 한 번의 수집 사이클을 수행한다.
// 플레이어 조회 실패는 해당 플레이어만 건너뛰지만, 저장소 실패는 사이클 전체를 중단한다.
func (p *Pipeline) RunCycle(ctx context.Context) error {
	players, err := p.roster.Players()
	if err != nil {
		return fmt.Errorf("load players: %w", err)
	}
	beatmapIDs, err := p.roster.Beatmaps()
	if err != nil {
		return fmt.Errorf("load beatmaps: %w", err)
	}
	whitelist := BuildWhitelist(beatmapIDs)

	p.logger.Info("ingest_cycle_started",
		slog.Int("players", len(players)),
		slog.Int("whitelist_size", len(whitelist)),
	)

	newScores := 0
	for i, player := range players {
		player = util.TrimSpace(player)
		if player == "" {
			continue
		}

		if i > 0 {
			if err := p.waitBetweenPlayers(ctx); err != nil {
				return err
			}
		}

		inserted, err := p.processPlayer(ctx, player, whitelist)
		if err != nil {
			return err
		}
		newScores += inserted
	}

	p.logger.Info("ingest_cycle_finished", slog.Int("new_scores", newScores))
	return nil
}

func (p *Pipeline) processPlayer(ctx context.Context, player string, whitelist map[string]struct{}) (int, error) {
	raws, err := p.fetcher.GetUserRecent(ctx, player)
	if err != nil {
		p.logger.Warn("player_fetch_failed",
			slog.String("player", player),
			slog.Any("error", err),
		)
		return 0, nil
	}

	inserted := 0
	for _, raw := range raws {
		if !IsEligible(raw, whitelist) {
			continue
		}

		// 화이트리스트 대조는 문자열로, 영속은 정수로. 여기서 한 번만 정규화한다.
		beatmapID, err := strconv.ParseInt(util.TrimSpace(raw.BeatmapID), 10, 64)
		if err != nil {
			p.logger.Warn("malformed_beatmap_id_dropped",
				slog.String("player", player),
				slog.String("beatmap_id", raw.BeatmapID),
			)
			continue
		}

		score := &domain.Score{
			UserID:    raw.UserID,
			Username:  player,
			BeatmapID: beatmapID,
			Score:     raw.Score,
			PlayedAt:  raw.PlayedAt,
		}

		exists, err := p.store.Exists(ctx, score.Key())
		if err != nil {
			return inserted, err
		}
		if exists {
			continue
		}

		if err := p.store.Insert(ctx, score); err != nil {
			return inserted, err
		}
		inserted++

		p.logger.Info("new_score_recorded",
			slog.String("player", player),
			slog.Int64("beatmap_id", score.BeatmapID),
			slog.Int64("score", score.Score),
		)

		p.notify(ctx, score)
	}

	return inserted, nil
}

// notify: 신규 스코어 알림을 보낸다. 메타데이터 조회나 발송 실패는 수집을 막지 않는다.
func (p *Pipeline) notify(ctx context.Context, score *domain.Score) {
	if p.notifier == nil {
		return
	}

	beatmap := p.lookupBeatmap(ctx, strconv.FormatInt(score.BeatmapID, 10))
	if err := p.notifier.NotifyNewScore(ctx, score, beatmap); err != nil {
		p.logger.Warn("notify_failed",
			slog.String("player", score.Username),
			slog.Int64("beatmap_id", score.BeatmapID),
			slog.Any("error", err),
		)
	}
}

func (p *Pipeline) lookupBeatmap(ctx context.Context, beatmapID string) *domain.Beatmap {
	if cached, ok := p.beatmaps.Get(beatmapID); ok {
		return cached
	}

	beatmap, err := p.fetcher.GetBeatmap(ctx, beatmapID)
	if err != nil {
		p.logger.Warn("beatmap_lookup_failed",
			slog.String("beatmap_id", beatmapID),
			slog.Any("error", err),
		)
		return nil
	}

	p.beatmaps.Set(beatmapID, beatmap)
	return beatmap
}

// waitBetweenPlayers: API 부하를 고르게 하기 위해 플레이어 사이에 무작위 대기를 둔다.
func (p *Pipeline) waitBetweenPlayers(ctx context.Context) error {
	if p.delayMax <= 0 {
		return nil
	}

	delay := p.delayMin
	if span := p.delayMax - p.delayMin; span > 0 {
		delay += time.Duration(rand.Int63n(int64(span)))
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

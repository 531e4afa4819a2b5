package aggregate

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/aticie/spy-bot/internal/domain"
	"github.com/aticie/spy-bot/internal/util"
)

// NoValue: 스코어가 없는 그리드 칸을 나타내는 표식
const NoValue = "-"

// ScoreReader: 집계에 필요한 저장소 조회 인터페이스
type ScoreReader interface {
	ListForPlayerBeatmap(ctx context.Context, username string, beatmapID int64) ([]domain.Score, error)
	ListAll(ctx context.Context) ([]domain.Score, error)
}

// RosterSource: 플레이어 목록과 비트맵 화이트리스트 공급 인터페이스
type RosterSource interface {
	Players() ([]string, error)
	Beatmaps() ([]string, error)
}

// Aggregator: 저장된 스코어를 스프레드시트 행렬로 집계한다.
type Aggregator struct {
	store  ScoreReader
	roster RosterSource
	topK   int
}

// NewAggregator: 새로운 Aggregator를 생성한다.
func NewAggregator(store ScoreReader, rosterSource RosterSource, topK int) *Aggregator {
	return &Aggregator{
		store:  store,
		roster: rosterSource,
		topK:   topK,
	}
}

// BuildGrid: 비트맵별 한 행, 플레이어별 K칸의 고정 폭 그리드를 만든다.
// 각 칸 묶음은 해당 플레이어의 상위 K개 스코어를 내림차순으로 담고,
// 스코어가 모자라는 칸은 NoValue로 채운다. 행과 칸의 순서는 로스터 파일 순서를 따른다.
func (a *Aggregator) BuildGrid(ctx context.Context) ([][]string, error) {
	players, err := a.roster.Players()
	if err != nil {
		return nil, fmt.Errorf("load players: %w", err)
	}
	beatmaps, err := a.roster.Beatmaps()
	if err != nil {
		return nil, fmt.Errorf("load beatmaps: %w", err)
	}

	grid := make([][]string, 0, len(beatmaps))
	for _, entry := range beatmaps {
		entry = util.TrimSpace(entry)
		if entry == "" {
			continue
		}

		// 숫자가 아닌 화이트리스트 항목에는 스코어가 있을 수 없다.
		// 행 위치를 유지하기 위해 전부 빈 칸인 행을 내보낸다.
		beatmapID, parseErr := strconv.ParseInt(entry, 10, 64)

		row := make([]string, 0, len(players)*a.topK)
		for _, player := range players {
			player = util.TrimSpace(player)
			if player == "" {
				continue
			}

			var values []int64
			if parseErr == nil {
				scores, err := a.store.ListForPlayerBeatmap(ctx, player, beatmapID)
				if err != nil {
					return nil, err
				}
				values = TopScores(scores, a.topK)
			}
			for _, value := range values {
				row = append(row, strconv.FormatInt(value, 10))
			}
			for pad := len(values); pad < a.topK; pad++ {
				row = append(row, NoValue)
			}
		}
		grid = append(grid, row)
	}

	return grid, nil
}

// TopScores: 스코어 목록에서 상위 K개 점수를 내림차순으로 뽑는다.
func TopScores(scores []domain.Score, k int) []int64 {
	values := make([]int64, 0, len(scores))
	for _, s := range scores {
		values = append(values, s.Score)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] > values[j] })

	if len(values) > k {
		values = values[:k]
	}
	return values
}

// BuildRawDump: 저장된 모든 스코어를 삽입 순서대로 행렬로 만든다. 감사용이다.
func (a *Aggregator) BuildRawDump(ctx context.Context) ([][]string, error) {
	all, err := a.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(all))
	for _, s := range all {
		rows = append(rows, []string{
			s.Username,
			strconv.FormatInt(s.UserID, 10),
			strconv.FormatInt(s.BeatmapID, 10),
			strconv.FormatInt(s.Score, 10),
			s.PlayedAt,
		})
	}
	return rows, nil
}

package osuapi

import (
	"strconv"

	"github.com/aticie/spy-bot/internal/domain"
	"github.com/aticie/spy-bot/pkg/errors"
)

// recentScorePayload: get_user_recent 응답의 한 레코드.
// 레거시 v1 API는 모든 숫자 필드를 문자열로 내려준다.
type recentScorePayload struct {
	BeatmapID   string `json:"beatmap_id"`
	Score       string `json:"score"`
	UserID      string `json:"user_id"`
	EnabledMods string `json:"enabled_mods"`
	Rank        string `json:"rank"`
	Date        string `json:"date"`
}

// toRawScore: 응답 레코드를 도메인 스코어로 변환한다.
// 숫자 필드 파싱에 실패하면 MalformedRecordError를 반환한다.
func (p *recentScorePayload) toRawScore() (domain.RawScore, error) {
	userID, err := strconv.ParseInt(p.UserID, 10, 64)
	if err != nil {
		return domain.RawScore{}, errors.NewMalformedRecordError("user_id", p.UserID, err)
	}

	score, err := strconv.ParseInt(p.Score, 10, 64)
	if err != nil {
		return domain.RawScore{}, errors.NewMalformedRecordError("score", p.Score, err)
	}

	mods, err := strconv.ParseInt(p.EnabledMods, 10, 64)
	if err != nil {
		return domain.RawScore{}, errors.NewMalformedRecordError("enabled_mods", p.EnabledMods, err)
	}

	if p.BeatmapID == "" {
		return domain.RawScore{}, errors.NewMalformedRecordError("beatmap_id", p.BeatmapID, nil)
	}

	return domain.RawScore{
		UserID:      userID,
		BeatmapID:   p.BeatmapID,
		Score:       score,
		EnabledMods: mods,
		Rank:        p.Rank,
		PlayedAt:    p.Date,
	}, nil
}

// beatmapPayload: get_beatmaps 응답의 한 레코드 중 알림에 필요한 필드만 추린 것
type beatmapPayload struct {
	BeatmapID    string `json:"beatmap_id"`
	BeatmapsetID string `json:"beatmapset_id"`
	Title        string `json:"title"`
}

func (p *beatmapPayload) toBeatmap() *domain.Beatmap {
	return &domain.Beatmap{
		BeatmapID:    p.BeatmapID,
		BeatmapsetID: p.BeatmapsetID,
		Title:        p.Title,
	}
}

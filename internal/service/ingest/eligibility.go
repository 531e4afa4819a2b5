package ingest

import (
	"github.com/aticie/spy-bot/internal/constants"
	"github.com/aticie/spy-bot/internal/domain"
	"github.com/aticie/spy-bot/internal/util"
)

// BuildWhitelist: 비트맵 화이트리스트 목록을 조회용 집합으로 변환한다.
// 항목은 공백 제거 후의 문자열 표현으로 대조한다.
func BuildWhitelist(beatmapIDs []string) map[string]struct{} {
	set := make(map[string]struct{}, len(beatmapIDs))
	for _, id := range beatmapIDs {
		trimmed := util.TrimSpace(id)
		if trimmed == "" {
			continue
		}
		set[trimmed] = struct{}{}
	}
	return set
}

// IsEligible: 스코어가 저장 대상인지 판정한다.
// 세 조건을 모두 만족해야 한다: 화이트리스트 비트맵, 실패(F)가 아닌 랭크, ScoreV2 모드 사용.
func IsEligible(raw domain.RawScore, whitelist map[string]struct{}) bool {
	if _, ok := whitelist[util.TrimSpace(raw.BeatmapID)]; !ok {
		return false
	}
	if raw.Rank == constants.ScoreRules.FailedRank {
		return false
	}
	if raw.EnabledMods&constants.ScoreRules.ScoreV2Mask == 0 {
		return false
	}
	return true
}

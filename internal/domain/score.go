package domain

import "fmt"

// Score: 저장소에 영속되는 스코어 한 건.
// 최초 수집 시 정확히 한 번 생성되며 이후 수정/삭제되지 않는다.
type Score struct {
	UserID    int64  `gorm:"column:user_id"`
	Username  string `gorm:"column:username"`
	BeatmapID int64  `gorm:"column:beatmap_id"`
	Score     int64  `gorm:"column:score"`
	PlayedAt  string `gorm:"column:played_at"` // API가 주는 문자열 그대로 보존
}

// TableName: GORM 테이블 이름 지정
func (Score) TableName() string {
	return "scores"
}

// Key: 중복 제거에 사용되는 4-필드 식별 튜플을 반환한다.
func (s *Score) Key() ScoreKey {
	return ScoreKey{
		UserID:    s.UserID,
		BeatmapID: s.BeatmapID,
		Score:     s.Score,
		PlayedAt:  s.PlayedAt,
	}
}

// ScoreKey: 원격 스코어와 저장된 행을 대조하는 식별 튜플.
// 동일한 튜플을 내는 두 번의 조회는 같은 실제 플레이 한 번을 의미한다.
type ScoreKey struct {
	UserID    int64
	BeatmapID int64
	Score     int64
	PlayedAt  string
}

func (k ScoreKey) String() string {
	return fmt.Sprintf("%d/%d/%d/%s", k.UserID, k.BeatmapID, k.Score, k.PlayedAt)
}

// RawScore: get_user_recent 응답에서 파싱된 원격 스코어 레코드.
// BeatmapID는 화이트리스트 대조를 위해 API가 준 문자열 표현을 유지한다.
// 영속 시점에 정수로 정규화된다.
type RawScore struct {
	UserID      int64
	BeatmapID   string
	Score       int64
	EnabledMods int64
	Rank        string
	PlayedAt    string
}

package domain

import "fmt"

// Beatmap: 알림 표시에 필요한 비트맵 메타데이터 (get_beatmaps 보조 조회 결과)
type Beatmap struct {
	BeatmapID    string
	BeatmapsetID string
	Title        string
}

// ThumbnailURL: 비트맵셋 썸네일 이미지 주소를 반환한다.
func (b *Beatmap) ThumbnailURL() string {
	if b == nil || b.BeatmapsetID == "" {
		return ""
	}
	return fmt.Sprintf("https://b.ppy.sh/thumb/%sl.jpg", b.BeatmapsetID)
}

// PageURL: 비트맵 페이지 주소를 반환한다.
func (b *Beatmap) PageURL() string {
	if b == nil || b.BeatmapID == "" {
		return ""
	}
	return fmt.Sprintf("https://osu.ppy.sh/b/%s", b.BeatmapID)
}

package constants

import "time"

// APIConfig: osu! 레거시 v1 API 호출 관련 상수
var APIConfig = struct {
	OsuBaseURL       string
	RecentScoreLimit int
	GameModeStd      int
	RequestsPerSec   int
}{
	OsuBaseURL:       "https://osu.ppy.sh/api",
	RecentScoreLimit: 100, // get_user_recent 페이지 한도
	GameModeStd:      0,   // m=0 (osu! standard)
	RequestsPerSec:   2,
}

// ScoreRules: 스코어 적격성 판정 규칙
var ScoreRules = struct {
	ScoreV2Mask int64
	FailedRank  string
}{
	ScoreV2Mask: 0x20000000, // enabled_mods 비트 29 = ScoreV2
	FailedRank:  "F",
}

// SchedulerDefaults: 수집/발행 주기 기본값
var SchedulerDefaults = struct {
	IngestInterval  time.Duration
	PublishInterval time.Duration
	TopK            int
	PlayerDelayMin  time.Duration
	PlayerDelayMax  time.Duration
}{
	IngestInterval:  1 * time.Hour,
	PublishInterval: 4 * time.Hour,
	TopK:            5,
	PlayerDelayMin:  2 * time.Second, // 플레이어 간 무작위 대기 하한
	PlayerDelayMax:  5 * time.Second,
}

// RequestTimeout: 외부 호출별 타임아웃
var RequestTimeout = struct {
	OsuAPI       time.Duration
	Sheets       time.Duration
	Webhook      time.Duration
	DatabasePing time.Duration
}{
	OsuAPI:       15 * time.Second,
	Sheets:       30 * time.Second,
	Webhook:      10 * time.Second,
	DatabasePing: 5 * time.Second,
}

// AppTimeout: 애플리케이션 수명주기 타임아웃
var AppTimeout = struct {
	Build    time.Duration
	Shutdown time.Duration
}{
	Build:    30 * time.Second,
	Shutdown: 10 * time.Second,
}

// BeatmapCacheConfig: 비트맵 메타데이터 캐시 설정
var BeatmapCacheConfig = struct {
	MaxEntries int
	TTL        time.Duration
}{
	MaxEntries: 256,
	TTL:        24 * time.Hour, // 비트맵 제목/셋 ID는 사실상 불변
}

// HTTPClientConfig: 공유 HTTP 클라이언트 설정
var HTTPClientConfig = struct {
	Timeout        time.Duration
	ConnectTimeout time.Duration
}{
	Timeout:        30 * time.Second,
	ConnectTimeout: 10 * time.Second,
}

package aggregate

import (
	"context"
	"fmt"
	"testing"

	"github.com/aticie/spy-bot/internal/domain"
)

type fakeReader struct {
	rows    []domain.Score
	listErr error
}

func (r *fakeReader) ListForPlayerBeatmap(_ context.Context, username string, beatmapID int64) ([]domain.Score, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []domain.Score
	for _, s := range r.rows {
		if s.Username == username && s.BeatmapID == beatmapID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeReader) ListAll(_ context.Context) ([]domain.Score, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.rows, nil
}

type fakeRoster struct {
	players  []string
	beatmaps []string
}

func (r *fakeRoster) Players() ([]string, error)  { return r.players, nil }
func (r *fakeRoster) Beatmaps() ([]string, error) { return r.beatmaps, nil }

func score(username string, beatmapID, value int64) domain.Score {
	return domain.Score{
		UserID:    1,
		Username:  username,
		BeatmapID: beatmapID,
		Score:     value,
		PlayedAt:  "2026-01-10 12:00:00",
	}
}

func TestBuildGridFixedWidth(t *testing.T) {
	reader := &fakeReader{rows: []domain.Score{
		score("alpha", 100, 500),
		score("alpha", 100, 900),
		score("alpha", 100, 700),
		score("bravo", 100, 300),
		// bravo는 200번 비트맵에 스코어 없음
		score("alpha", 200, 100),
	}}
	a := NewAggregator(reader, &fakeRoster{
		players:  []string{"alpha", "bravo"},
		beatmaps: []string{"100", "200"},
	}, 2)

	grid, err := a.BuildGrid(context.Background())
	if err != nil {
		t.Fatalf("BuildGrid failed: %v", err)
	}

	if len(grid) != 2 {
		t.Fatalf("expected 2 rows (one per beatmap), got %d", len(grid))
	}

	// 비트맵 100: alpha 상위 2개 내림차순, bravo 1개 + 채움
	want0 := []string{"900", "700", "300", NoValue}
	assertRow(t, grid[0], want0)

	// 비트맵 200: alpha 1개 + 채움, bravo 전부 채움
	want1 := []string{"100", NoValue, NoValue, NoValue}
	assertRow(t, grid[1], want1)
}

func assertRow(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("row width = %d, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cell %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuildGridRosterOrder(t *testing.T) {
	reader := &fakeReader{rows: []domain.Score{
		score("zulu", 100, 111),
		score("alpha", 100, 999),
	}}
	a := NewAggregator(reader, &fakeRoster{
		players:  []string{"zulu", "alpha"},
		beatmaps: []string{"100"},
	}, 1)

	grid, err := a.BuildGrid(context.Background())
	if err != nil {
		t.Fatalf("BuildGrid failed: %v", err)
	}

	// 칸 순서는 점수 크기가 아니라 로스터 파일 순서를 따른다
	assertRow(t, grid[0], []string{"111", "999"})
}

func TestBuildGridStoreError(t *testing.T) {
	reader := &fakeReader{listErr: fmt.Errorf("database is locked")}
	a := NewAggregator(reader, &fakeRoster{
		players:  []string{"alpha"},
		beatmaps: []string{"100"},
	}, 2)

	if _, err := a.BuildGrid(context.Background()); err == nil {
		t.Fatal("expected store error to propagate")
	}
}

func TestTopScores(t *testing.T) {
	scores := []domain.Score{
		score("alpha", 100, 200),
		score("alpha", 100, 900),
		score("alpha", 100, 500),
		score("alpha", 100, 700),
	}

	got := TopScores(scores, 3)
	want := []int64{900, 700, 500}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d = %d, want %d", i, got[i], want[i])
		}
	}

	if got := TopScores(scores[:2], 5); len(got) != 2 {
		t.Errorf("fewer scores than K must not be padded here, got %v", got)
	}
	if got := TopScores(nil, 3); len(got) != 0 {
		t.Errorf("no scores yields empty slice, got %v", got)
	}
}

func TestBuildRawDumpInsertionOrder(t *testing.T) {
	reader := &fakeReader{rows: []domain.Score{
		{UserID: 1, Username: "alpha", BeatmapID: 100, Score: 300, PlayedAt: "2026-01-10 10:00:00"},
		{UserID: 2, Username: "bravo", BeatmapID: 200, Score: 100, PlayedAt: "2026-01-10 11:00:00"},
	}}
	a := NewAggregator(reader, &fakeRoster{}, 2)

	rows, err := a.BuildRawDump(context.Background())
	if err != nil {
		t.Fatalf("BuildRawDump failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	assertRow(t, rows[0], []string{"alpha", "1", "100", "300", "2026-01-10 10:00:00"})
	assertRow(t, rows[1], []string{"bravo", "2", "200", "100", "2026-01-10 11:00:00"})
}

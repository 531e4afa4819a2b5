package osuapi

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"

	"github.com/aticie/spy-bot/pkg/errors"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(serverURL string, apiKeys []string) *Client {
	c := NewClient(&http.Client{}, apiKeys, newTestLogger())
	c.baseURL = serverURL
	c.rateLimiter = rate.NewLimiter(rate.Inf, 1)
	return c
}

func TestKeyRotation(t *testing.T) {
	keys := []string{"k1", "k2", "k3", "k4", "k5"}
	c := NewClient(&http.Client{}, keys, newTestLogger())

	expected := []string{"k1", "k2", "k3", "k4", "k5", "k1"}
	for i, want := range expected {
		got := c.getNextAPIKey()
		if got != want {
			t.Errorf("call %d: got key %q, want %q", i+1, got, want)
		}
	}
}

func TestGetUserRecent(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"u":     q.Get("u"),
			"limit": q.Get("limit"),
			"m":     q.Get("m"),
			"k":     q.Get("k"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"beatmap_id":"100","score":"725000","user_id":"42","enabled_mods":"536870912","rank":"S","date":"2026-01-10 12:00:00"},
			{"beatmap_id":"101","score":"not-a-number","user_id":"42","enabled_mods":"0","rank":"A","date":"2026-01-10 12:05:00"},
			{"beatmap_id":"102","score":"500000","user_id":"42","enabled_mods":"536870912","rank":"F","date":"2026-01-10 12:10:00"}
		]`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, []string{"test-key"})
	scores, err := c.GetUserRecent(context.Background(), "player one")
	if err != nil {
		t.Fatalf("GetUserRecent failed: %v", err)
	}

	if len(scores) != 2 {
		t.Fatalf("expected 2 parsed scores (1 malformed dropped), got %d", len(scores))
	}
	if scores[0].BeatmapID != "100" || scores[0].Score != 725000 || scores[0].UserID != 42 {
		t.Errorf("unexpected first score: %+v", scores[0])
	}
	if scores[1].Rank != "F" {
		t.Errorf("rank filtering must not happen at the client layer, got rank %q", scores[1].Rank)
	}

	if gotQuery["u"] != "player one" {
		t.Errorf("u param = %q, want %q", gotQuery["u"], "player one")
	}
	if gotQuery["limit"] != "100" {
		t.Errorf("limit param = %q, want 100", gotQuery["limit"])
	}
	if gotQuery["m"] != "0" {
		t.Errorf("m param = %q, want 0", gotQuery["m"])
	}
	if gotQuery["k"] != "test-key" {
		t.Errorf("k param = %q, want test-key", gotQuery["k"])
	}
}

func TestGetUserRecentHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := newTestClient(server.URL, []string{"bad-key"})
	_, err := c.GetUserRecent(context.Background(), "someone")
	if err == nil {
		t.Fatal("expected error on 401 response")
	}

	var fetchErr *errors.FetchError
	if !stderrors.As(err, &fetchErr) {
		t.Fatalf("expected *errors.FetchError, got %T: %v", err, err)
	}
	if fetchErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("status code = %d, want 401", fetchErr.StatusCode)
	}
	if fetchErr.Player != "someone" {
		t.Errorf("player = %q, want someone", fetchErr.Player)
	}
}

func TestGetUserRecentNoKeys(t *testing.T) {
	c := newTestClient("http://localhost:0", nil)
	_, err := c.GetUserRecent(context.Background(), "someone")
	if err == nil {
		t.Fatal("expected error when no API keys are configured")
	}
}

func TestGetBeatmap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("b") != "100" {
			t.Errorf("b param = %q, want 100", r.URL.Query().Get("b"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"beatmap_id":"100","beatmapset_id":"55","title":"Some Song"}]`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, []string{"test-key"})
	bm, err := c.GetBeatmap(context.Background(), "100")
	if err != nil {
		t.Fatalf("GetBeatmap failed: %v", err)
	}

	if bm.Title != "Some Song" {
		t.Errorf("title = %q, want Some Song", bm.Title)
	}
	if bm.ThumbnailURL() != "https://b.ppy.sh/thumb/55l.jpg" {
		t.Errorf("unexpected thumbnail url: %s", bm.ThumbnailURL())
	}
	if bm.PageURL() != "https://osu.ppy.sh/b/100" {
		t.Errorf("unexpected page url: %s", bm.PageURL())
	}
}

func TestGetBeatmapNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, []string{"test-key"})
	if _, err := c.GetBeatmap(context.Background(), "999"); err == nil {
		t.Fatal("expected error for unknown beatmap")
	}
}

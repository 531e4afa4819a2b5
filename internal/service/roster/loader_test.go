package roster

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestPlayersPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	players := writeFile(t, dir, "players.txt", "charlie\nalpha\nbravo\n")
	beatmaps := writeFile(t, dir, "beatmaps.txt", "100\n")

	l := NewLoader(players, beatmaps)
	got, err := l.Players()
	if err != nil {
		t.Fatalf("Players failed: %v", err)
	}

	want := []string{"charlie", "alpha", "bravo"}
	if len(got) != len(want) {
		t.Fatalf("expected %d players, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("players[%d] = %q, want %q (file order must be preserved)", i, got[i], want[i])
		}
	}
}

func TestTrailingNewlineYieldsNoEmptyEntry(t *testing.T) {
	dir := t.TempDir()
	players := writeFile(t, dir, "players.txt", "alpha\nbravo\n")
	beatmaps := writeFile(t, dir, "beatmaps.txt", "100\n200\n")

	l := NewLoader(players, beatmaps)
	got, err := l.Beatmaps()
	if err != nil {
		t.Fatalf("Beatmaps failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 beatmaps, got %d: %v", len(got), got)
	}
}

func TestInteriorBlankLinesKept(t *testing.T) {
	dir := t.TempDir()
	players := writeFile(t, dir, "players.txt", "alpha\n\nbravo\n")
	beatmaps := writeFile(t, dir, "beatmaps.txt", "100\n")

	l := NewLoader(players, beatmaps)
	got, err := l.Players()
	if err != nil {
		t.Fatalf("Players failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries (interior blank kept), got %d: %v", len(got), got)
	}
	if got[1] != "" {
		t.Errorf("expected empty interior entry, got %q", got[1])
	}
}

func TestMissingFile(t *testing.T) {
	l := NewLoader("/nonexistent/players.txt", "/nonexistent/beatmaps.txt")
	if _, err := l.Players(); err == nil {
		t.Error("expected error for missing players file")
	}
	if _, err := l.Beatmaps(); err == nil {
		t.Error("expected error for missing beatmaps file")
	}
}

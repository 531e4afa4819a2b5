package sheets

import (
	"context"
	"testing"

	"github.com/aticie/spy-bot/internal/service/aggregate"
)

func TestToCellValues(t *testing.T) {
	rows := [][]string{
		{"900", aggregate.NoValue, "300"},
		{aggregate.NoValue, aggregate.NoValue},
	}

	got := toCellValues(rows)
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}

	if got[0][0] != "900" || got[0][2] != "300" {
		t.Errorf("score cells must pass through unchanged: %v", got[0])
	}
	if got[0][1] != "" || got[1][0] != "" || got[1][1] != "" {
		t.Errorf("no-value cells must become empty strings: %v", got)
	}
}

func TestPublishRequiresAuthorization(t *testing.T) {
	p := NewPublisher(&OAuthService{}, nil, "sheet-id", "Scores!B2", "", nil)

	if err := p.Publish(context.Background()); err == nil {
		t.Fatal("expected error when sheets service is not authorized")
	}
}

package discord

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/aticie/spy-bot/internal/domain"
	"github.com/aticie/spy-bot/pkg/errors"
)

const embedColor = 0xE91E63 // osu! 핑크

// WebhookClient: 신규 스코어를 Discord 웹훅으로 알린다.
type WebhookClient struct {
	httpClient *http.Client
	webhookURL string
	logger     *slog.Logger
}

// NewWebhookClient: 새로운 WebhookClient를 생성한다.
func NewWebhookClient(httpClient *http.Client, webhookURL string, logger *slog.Logger) *WebhookClient {
	return &WebhookClient{
		httpClient: httpClient,
		webhookURL: webhookURL,
		logger:     logger,
	}
}

type webhookPayload struct {
	Embeds []embed `json:"embeds"`
}

type embed struct {
	Title       string          `json:"title,omitempty"`
	URL         string          `json:"url,omitempty"`
	Description string          `json:"description,omitempty"`
	Color       int             `json:"color,omitempty"`
	Author      *embedAuthor    `json:"author,omitempty"`
	Thumbnail   *embedThumbnail `json:"thumbnail,omitempty"`
	Footer      *embedFooter    `json:"footer,omitempty"`
}

type embedAuthor struct {
	Name string `json:"name"`
}

type embedThumbnail struct {
	URL string `json:"url"`
}

type embedFooter struct {
	Text string `json:"text"`
}

// NotifyNewScore: 신규 스코어 알림 임베드를 발송한다.
// beatmap이 nil이면 메타데이터 없이 비트맵 번호만으로 알린다.
func (c *WebhookClient) NotifyNewScore(ctx context.Context, score *domain.Score, beatmap *domain.Beatmap) error {
	payload := webhookPayload{
		Embeds: []embed{c.buildEmbed(score, beatmap)},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return errors.NewNotifyError(0, fmt.Errorf("marshal payload: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return errors.NewNotifyError(0, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewNotifyError(0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.NewNotifyError(resp.StatusCode, fmt.Errorf("webhook rejected notification"))
	}

	c.logger.Debug("score_notification_sent",
		slog.String("player", score.Username),
		slog.Int64("beatmap_id", score.BeatmapID),
	)
	return nil
}

func (c *WebhookClient) buildEmbed(score *domain.Score, beatmap *domain.Beatmap) embed {
	e := embed{
		Title:       fmt.Sprintf("Beatmap %d", score.BeatmapID),
		Description: fmt.Sprintf("**%d** points", score.Score),
		Color:       embedColor,
		Author:      &embedAuthor{Name: fmt.Sprintf("New score by %s", score.Username)},
		Footer:      &embedFooter{Text: score.PlayedAt},
	}

	if beatmap != nil {
		if beatmap.Title != "" {
			e.Title = beatmap.Title
		}
		if url := beatmap.PageURL(); url != "" {
			e.URL = url
		}
		if thumb := beatmap.ThumbnailURL(); thumb != "" {
			e.Thumbnail = &embedThumbnail{URL: thumb}
		}
	}

	return e
}

package osuapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/aticie/spy-bot/internal/constants"
	"github.com/aticie/spy-bot/internal/domain"
	"github.com/aticie/spy-bot/pkg/errors"
)

// Client: osu! 레거시 v1 API 클라이언트.
// API 키 풀 로테이션과 속도 제한(Rate Limiting)을 포함한다.
// 요청 실패 시 재시도하지 않는다. 실패 처리는 호출자(수집 파이프라인)의 몫이다.
type Client struct {
	httpClient      *http.Client
	apiKeys         []string
	currentKeyIndex int
	keyMu           sync.Mutex
	logger          *slog.Logger
	rateLimiter     *rate.Limiter
	baseURL         string
}

// NewClient: 새로운 osu! API 클라이언트를 생성한다.
func NewClient(httpClient *http.Client, apiKeys []string, logger *slog.Logger) *Client {
	interval := time.Second / time.Duration(constants.APIConfig.RequestsPerSec)
	return &Client{
		httpClient:  httpClient,
		apiKeys:     apiKeys,
		logger:      logger,
		rateLimiter: rate.NewLimiter(rate.Every(interval), 1),
		baseURL:     constants.APIConfig.OsuBaseURL,
	}
}

// GetUserRecent: 지정된 플레이어의 최근 플레이 기록을 조회한다.
// 파싱에 실패한 레코드는 경고 로그 후 건너뛰고 나머지를 반환한다.
func (c *Client) GetUserRecent(ctx context.Context, username string) ([]domain.RawScore, error) {
	params := url.Values{}
	params.Set("u", username)
	params.Set("limit", strconv.Itoa(constants.APIConfig.RecentScoreLimit))
	params.Set("m", strconv.Itoa(constants.APIConfig.GameModeStd))

	body, err := c.doRequest(ctx, "/get_user_recent", params)
	if err != nil {
		return nil, errors.NewFetchError(username, statusCodeOf(err), err)
	}

	var payloads []recentScorePayload
	if err := json.Unmarshal(body, &payloads); err != nil {
		return nil, errors.NewFetchError(username, 0, fmt.Errorf("decode response: %w", err))
	}

	scores := make([]domain.RawScore, 0, len(payloads))
	for i := range payloads {
		raw, convErr := payloads[i].toRawScore()
		if convErr != nil {
			c.logger.Warn("malformed_score_record_dropped",
				slog.String("player", username),
				slog.Any("error", convErr),
			)
			continue
		}
		scores = append(scores, raw)
	}

	return scores, nil
}

// GetBeatmap: 비트맵 메타데이터를 조회한다. 알림 표시용 보조 조회이므로
// 실패해도 수집 파이프라인은 중단되지 않는다.
func (c *Client) GetBeatmap(ctx context.Context, beatmapID string) (*domain.Beatmap, error) {
	params := url.Values{}
	params.Set("b", beatmapID)
	params.Set("limit", "1")

	body, err := c.doRequest(ctx, "/get_beatmaps", params)
	if err != nil {
		return nil, err
	}

	var payloads []beatmapPayload
	if err := json.Unmarshal(body, &payloads); err != nil {
		return nil, fmt.Errorf("decode beatmap response: %w", err)
	}
	if len(payloads) == 0 {
		return nil, fmt.Errorf("beatmap %s not found", beatmapID)
	}

	return payloads[0].toBeatmap(), nil
}

func (c *Client) doRequest(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	if len(c.apiKeys) == 0 {
		return nil, fmt.Errorf("no osu! API keys configured")
	}
	params.Set("k", c.getNextAPIKey())

	reqURL := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &httpStatusError{StatusCode: resp.StatusCode, Path: path}
	}

	return body, nil
}

func (c *Client) getNextAPIKey() string {
	c.keyMu.Lock()
	defer c.keyMu.Unlock()

	if len(c.apiKeys) == 0 {
		return ""
	}

	index := c.currentKeyIndex
	key := c.apiKeys[index]
	c.currentKeyIndex = (c.currentKeyIndex + 1) % len(c.apiKeys)

	c.logger.Debug("osu_api_key_selected",
		slog.Int("index", index),
		slog.Int("pool_size", len(c.apiKeys)),
	)

	return key
}

// httpStatusError: 200이 아닌 응답을 상태 코드와 함께 전달하는 내부 에러
type httpStatusError struct {
	StatusCode int
	Path       string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.Path)
}

func statusCodeOf(err error) int {
	var statusErr *httpStatusError
	if stderrors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}

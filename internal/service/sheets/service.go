package sheets

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/sheets/v4"

	"github.com/aticie/spy-bot/internal/constants"
	"github.com/aticie/spy-bot/internal/service/aggregate"
	"github.com/aticie/spy-bot/pkg/errors"
)

// GridBuilder: 발행할 행렬을 만드는 집계 인터페이스
type GridBuilder interface {
	BuildGrid(ctx context.Context) ([][]string, error)
	BuildRawDump(ctx context.Context) ([][]string, error)
}

// Publisher: 집계 결과를 Google Sheets에 덮어쓴다.
// 발행 실패는 재시도하지 않는다. 다음 주기의 전체 덮어쓰기로 자연 복구된다.
type Publisher struct {
	oauth         *OAuthService
	builder       GridBuilder
	spreadsheetID string
	scoresRange   string
	rawDumpRange  string
	logger        *slog.Logger
}

// NewPublisher: 새로운 Publisher를 생성한다. rawDumpRange가 비어있으면 원본 덤프 발행은 생략된다.
func NewPublisher(oauth *OAuthService, builder GridBuilder, spreadsheetID, scoresRange, rawDumpRange string, logger *slog.Logger) *Publisher {
	return &Publisher{
		oauth:         oauth,
		builder:       builder,
		spreadsheetID: spreadsheetID,
		scoresRange:   scoresRange,
		rawDumpRange:  rawDumpRange,
		logger:        logger,
	}
}

// Publish: 현재 저장소 상태로부터 그리드와 원본 덤프를 만들어 시트에 반영한다.
func (p *Publisher) Publish(ctx context.Context) error {
	if !p.oauth.IsAuthorized() {
		return errors.NewPublishError(p.scoresRange, fmt.Errorf("sheets service not authorized"))
	}

	grid, err := p.builder.BuildGrid(ctx)
	if err != nil {
		return errors.NewPublishError(p.scoresRange, err)
	}

	data := []*sheets.ValueRange{
		{
			Range:  p.scoresRange,
			Values: toCellValues(grid),
		},
	}

	if p.rawDumpRange != "" {
		dump, err := p.builder.BuildRawDump(ctx)
		if err != nil {
			return errors.NewPublishError(p.rawDumpRange, err)
		}
		data = append(data, &sheets.ValueRange{
			Range:  p.rawDumpRange,
			Values: toCellValues(dump),
		})
	}

	req := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}

	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout.Sheets)
	defer cancel()

	resp, err := p.oauth.GetService().Spreadsheets.Values.
		BatchUpdate(p.spreadsheetID, req).
		Context(ctx).
		Do()
	if err != nil {
		return errors.NewPublishError(p.scoresRange, err)
	}

	p.logger.Info("sheet_published",
		slog.String("spreadsheet_id", p.spreadsheetID),
		slog.Int("grid_rows", len(grid)),
		slog.Int64("updated_cells", resp.TotalUpdatedCells),
	)
	return nil
}

// toCellValues: 문자열 행렬을 Sheets API 값 행렬로 변환한다.
// NoValue 표식은 빈 칸으로 내보내 시트 쪽 수식이 방해받지 않게 한다.
func toCellValues(rows [][]string) [][]any {
	out := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, cell := range row {
			if cell == aggregate.NoValue {
				cells[j] = ""
			} else {
				cells[j] = cell
			}
		}
		out[i] = cells
	}
	return out
}

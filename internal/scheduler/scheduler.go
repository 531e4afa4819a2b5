package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// IngestRunner: 수집 사이클 실행 인터페이스
type IngestRunner interface {
	RunCycle(ctx context.Context) error
}

// Publisher: 집계 발행 인터페이스
type Publisher interface {
	Publish(ctx context.Context) error
}

// Scheduler: 수집과 발행 작업을 서로 독립된 주기로 실행한다.
// 직전 실행이 끝나지 않았으면 해당 틱은 건너뛴다.
type Scheduler struct {
	ingest    IngestRunner
	publisher Publisher
	logger    *slog.Logger

	ingestInterval  time.Duration
	publishInterval time.Duration

	ingestTicker  *time.Ticker
	publishTicker *time.Ticker
	stopCh        chan struct{}

	ingestMu  sync.Mutex
	publishMu sync.Mutex
}

// New: 새로운 Scheduler를 생성한다.
func New(ingest IngestRunner, publisher Publisher, ingestInterval, publishInterval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		ingest:          ingest,
		publisher:       publisher,
		logger:          logger,
		ingestInterval:  ingestInterval,
		publishInterval: publishInterval,
		stopCh:          make(chan struct{}),
	}
}

// Start: 두 주기 작업을 시작한다. 시작 직후 각 작업을 한 번씩 즉시 실행한다.
func (s *Scheduler) Start(ctx context.Context) {
	s.ingestTicker = time.NewTicker(s.ingestInterval)
	s.publishTicker = time.NewTicker(s.publishInterval)

	s.logger.Info("scheduler_started",
		slog.Duration("ingest_interval", s.ingestInterval),
		slog.Duration("publish_interval", s.publishInterval),
	)

	go func() {
		s.runIngest(ctx)

		for {
			select {
			case <-s.ingestTicker.C:
				s.runIngest(ctx)
			case <-s.stopCh:
				s.logger.Info("ingest_loop_stopped")
				return
			case <-ctx.Done():
				s.logger.Info("ingest_loop_context_canceled")
				return
			}
		}
	}()

	go func() {
		s.runPublish(ctx)

		for {
			select {
			case <-s.publishTicker.C:
				s.runPublish(ctx)
			case <-s.stopCh:
				s.logger.Info("publish_loop_stopped")
				return
			case <-ctx.Done():
				s.logger.Info("publish_loop_context_canceled")
				return
			}
		}
	}()
}

// Stop: 스케줄러를 중지한다.
func (s *Scheduler) Stop() {
	if s.ingestTicker != nil {
		s.ingestTicker.Stop()
	}
	if s.publishTicker != nil {
		s.publishTicker.Stop()
	}
	close(s.stopCh)
}

func (s *Scheduler) runIngest(ctx context.Context) {
	if !s.ingestMu.TryLock() {
		s.logger.Warn("ingest_cycle_still_running_skipping_tick")
		return
	}
	defer s.ingestMu.Unlock()

	if err := s.ingest.RunCycle(ctx); err != nil {
		s.logger.Error("ingest_cycle_failed", slog.Any("error", err))
	}
}

func (s *Scheduler) runPublish(ctx context.Context) {
	if !s.publishMu.TryLock() {
		s.logger.Warn("publish_still_running_skipping_tick")
		return
	}
	defer s.publishMu.Unlock()

	if err := s.publisher.Publish(ctx); err != nil {
		s.logger.Error("publish_failed", slog.Any("error", err))
	}
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/logvault/logvault/internal/model"
	"github.com/logvault/logvault/internal/pkg/logger"
	"github.com/logvault/logvault/internal/pkg/metrics"
)

type LogService struct {
	repo         ErrorLogRepo
	now          Clock
	source       string
	writeTimeout time.Duration
}

// NewLogService builds the error log service. source tags the entries the
// service writes about its own failures; writeTimeout bounds every insert.
func NewLogService(repo ErrorLogRepo, source string, writeTimeout time.Duration, now Clock) *LogService {
	if now == nil {
		now = utcNow
	}
	return &LogService{repo: repo, now: now, source: source, writeTimeout: writeTimeout}
}

func (s *LogService) Source() string {
	return s.source
}

// Submit stores a caller reported error and returns its id. CreatedAt is
// always the receive time; Timestamp falls back to it when omitted.
func (s *LogService) Submit(ctx context.Context, in model.ErrorLogInput) (string, error) {
	received := s.now().UTC()
	entry := &model.ErrorLog{
		ProjectSource:  in.ProjectSource,
		Timestamp:      received,
		ErrorMessage:   in.ErrorMessage,
		AdditionalInfo: in.AdditionalInfo,
		CreatedAt:      received,
	}
	if in.Timestamp != nil {
		entry.Timestamp = in.Timestamp.UTC()
	}
	ctx, cancel := writeContext(ctx, s.writeTimeout)
	defer cancel()
	if err := s.repo.Insert(ctx, entry); err != nil {
		metrics.StoreWriteErrors.WithLabelValues("logs").Inc()
		return "", fmt.Errorf("insert error log: %w", err)
	}
	metrics.LogsSubmitted.Inc()
	logger.Info("Error log inserted", "id", entry.ID, "project_source", entry.ProjectSource)
	return entry.ID, nil
}

// RecordFailure stores an error log about a failure of this service itself.
func (s *LogService) RecordFailure(ctx context.Context, message string, info map[string]any) error {
	now := s.now().UTC()
	entry := &model.ErrorLog{
		ProjectSource:  s.source,
		Timestamp:      now,
		ErrorMessage:   message,
		AdditionalInfo: info,
		CreatedAt:      now,
	}
	ctx, cancel := writeContext(ctx, s.writeTimeout)
	defer cancel()
	if err := s.repo.Insert(ctx, entry); err != nil {
		metrics.StoreWriteErrors.WithLabelValues("logs").Inc()
		return fmt.Errorf("insert failure log: %w", err)
	}
	logger.Error("Error log inserted", "project_source", s.source, "error_message", message, "id", entry.ID)
	return nil
}

func (s *LogService) List(ctx context.Context, skip, limit int) ([]*model.ErrorLog, error) {
	return s.repo.List(ctx, skip, limit)
}

// ListToday returns every log created since midnight UTC, newest first.
func (s *LogService) ListToday(ctx context.Context) ([]*model.ErrorLog, error) {
	return s.repo.ListSince(ctx, StartOfDay(s.now()))
}

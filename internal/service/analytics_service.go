package service

import (
	"context"
	"fmt"
	"time"

	"github.com/logvault/logvault/internal/model"
	"github.com/logvault/logvault/internal/pkg/metrics"
)

type AnalyticsService struct {
	repo         AnalyticsRepo
	now          Clock
	writeTimeout time.Duration
}

func NewAnalyticsService(repo AnalyticsRepo, writeTimeout time.Duration, now Clock) *AnalyticsService {
	if now == nil {
		now = utcNow
	}
	return &AnalyticsService{repo: repo, now: now, writeTimeout: writeTimeout}
}

// Record stamps and stores one observed request.
func (s *AnalyticsService) Record(ctx context.Context, entry *model.AnalyticsLog) error {
	entry.Timestamp = s.now().UTC()
	if entry.Params == nil {
		entry.Params = map[string]string{}
	}
	ctx, cancel := writeContext(ctx, s.writeTimeout)
	defer cancel()
	if err := s.repo.Insert(ctx, entry); err != nil {
		metrics.StoreWriteErrors.WithLabelValues("analytics").Inc()
		return fmt.Errorf("insert analytics log: %w", err)
	}
	return nil
}

func (s *AnalyticsService) List(ctx context.Context, skip, limit int) ([]*model.AnalyticsLog, error) {
	return s.repo.List(ctx, skip, limit)
}

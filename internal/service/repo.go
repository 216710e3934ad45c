package service

import (
	"context"
	"time"

	"github.com/logvault/logvault/internal/model"
)

//go:generate mockgen -source=repo.go -destination=../mocks/repository/mock_repo.go -package=repository_mock

type ErrorLogRepo interface {
	Insert(ctx context.Context, entry *model.ErrorLog) error
	List(ctx context.Context, skip, limit int) ([]*model.ErrorLog, error)
	ListSince(ctx context.Context, since time.Time) ([]*model.ErrorLog, error)
}

type AnalyticsRepo interface {
	Insert(ctx context.Context, entry *model.AnalyticsLog) error
	List(ctx context.Context, skip, limit int) ([]*model.AnalyticsLog, error)
}

// Clock returns the current time. Services take one so tests can pin it.
type Clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}

// writeContext detaches ctx from the caller's cancellation and bounds it by
// timeout, so a write neither dies with the client nor hangs on the store.
func writeContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx = context.WithoutCancel(ctx)
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// StartOfDay returns 00:00:00 UTC of the day t falls on.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/logvault/logvault/internal/model"
)

// NewMemoryStore keeps both collections in process. It backs development runs
// and tests; nothing survives a restart.
func NewMemoryStore() *Store {
	return &Store{
		Backend:   "memory",
		Logs:      &MemoryLogRepo{},
		Analytics: &MemoryAnalyticsRepo{},
	}
}

type MemoryLogRepo struct {
	mu      sync.RWMutex
	records []model.ErrorLog
}

func (r *MemoryLogRepo) Insert(_ context.Context, entry *model.ErrorLog) error {
	if err := ensureID(&entry.ID); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *entry)
	return nil
}

func (r *MemoryLogRepo) List(_ context.Context, skip, limit int) ([]*model.ErrorLog, error) {
	return page(r.newestFirst(func(model.ErrorLog) bool { return true }), skip, limit), nil
}

func (r *MemoryLogRepo) ListSince(_ context.Context, since time.Time) ([]*model.ErrorLog, error) {
	return r.newestFirst(func(e model.ErrorLog) bool { return !e.CreatedAt.Before(since) }), nil
}

func (r *MemoryLogRepo) newestFirst(keep func(model.ErrorLog) bool) []*model.ErrorLog {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.ErrorLog, 0, len(r.records))
	for i := len(r.records) - 1; i >= 0; i-- {
		if keep(r.records[i]) {
			rec := r.records[i]
			out = append(out, &rec)
		}
	}
	slices.SortStableFunc(out, func(a, b *model.ErrorLog) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out
}

type MemoryAnalyticsRepo struct {
	mu      sync.RWMutex
	records []model.AnalyticsLog
}

func (r *MemoryAnalyticsRepo) Insert(_ context.Context, entry *model.AnalyticsLog) error {
	if err := ensureID(&entry.ID); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *entry)
	return nil
}

func (r *MemoryAnalyticsRepo) List(_ context.Context, skip, limit int) ([]*model.AnalyticsLog, error) {
	r.mu.RLock()
	out := make([]*model.AnalyticsLog, 0, len(r.records))
	for i := len(r.records) - 1; i >= 0; i-- {
		rec := r.records[i]
		out = append(out, &rec)
	}
	r.mu.RUnlock()
	slices.SortStableFunc(out, func(a, b *model.AnalyticsLog) int { return b.Timestamp.Compare(a.Timestamp) })
	return page(out, skip, limit), nil
}

func page[T any](items []T, skip, limit int) []T {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(items) || limit <= 0 {
		return []T{}
	}
	end := len(items)
	if limit < end-skip {
		end = skip + limit
	}
	return items[skip:end]
}

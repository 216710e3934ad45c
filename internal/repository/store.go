package repository

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/logvault/logvault/internal/config"
	"github.com/logvault/logvault/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LogCollection holds ErrorLog records ordered by CreatedAt.
type LogCollection interface {
	Insert(ctx context.Context, entry *model.ErrorLog) error
	List(ctx context.Context, skip, limit int) ([]*model.ErrorLog, error)
	ListSince(ctx context.Context, since time.Time) ([]*model.ErrorLog, error)
}

// AnalyticsCollection holds AnalyticsLog records ordered by Timestamp.
type AnalyticsCollection interface {
	Insert(ctx context.Context, entry *model.AnalyticsLog) error
	List(ctx context.Context, skip, limit int) ([]*model.AnalyticsLog, error)
}

// Store bundles both collections of one backend.
type Store struct {
	Backend   string
	Logs      LogCollection
	Analytics AnalyticsCollection

	close func(ctx context.Context) error
}

func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open picks a backend from the scheme of cfg.URL.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	raw := strings.TrimSpace(cfg.URL)
	if raw == "" {
		return NewMemoryStore(), nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid database url: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()

	switch strings.ToLower(u.Scheme) {
	case "memory":
		return NewMemoryStore(), nil
	case "mongodb", "mongodb+srv":
		return OpenMongo(ctx, cfg)
	case "postgres", "postgresql":
		return OpenPostgres(ctx, cfg)
	case "sqlite":
		return OpenSQLite(ctx, cfg, strings.TrimPrefix(raw, u.Scheme+"://"))
	case "redis", "rediss":
		return OpenRedis(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported database scheme %q", u.Scheme)
	}
}

func ensureID(id *string) error {
	if *id == "" {
		*id = primitive.NewObjectID().Hex()
		return nil
	}
	if _, err := primitive.ObjectIDFromHex(*id); err != nil {
		return fmt.Errorf("invalid record id %q: %w", *id, err)
	}
	return nil
}

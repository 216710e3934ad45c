package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/logvault/logvault/internal/config"
	"github.com/logvault/logvault/internal/model"
	"github.com/redis/go-redis/v9"
)

// Each collection is one sorted set scored by its time field in unix
// microseconds. Members are the JSON records.
const (
	redisLogsKey      = "logvault:logs"
	redisAnalyticsKey = "logvault:analytics"
)

func OpenRedis(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opts.ReadTimeout = cfg.Timeout()
	opts.WriteTimeout = cfg.Timeout()
	if cfg.MaxOpenConns > 0 {
		opts.PoolSize = cfg.MaxOpenConns
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &Store{
		Backend:   "redis",
		Logs:      NewRedisLogRepo(client),
		Analytics: NewRedisAnalyticsRepo(client),
		close: func(context.Context) error {
			return client.Close()
		},
	}, nil
}

func redisScore(t time.Time) float64 {
	return float64(t.UnixMicro())
}

// redisWindow turns skip/limit into inclusive ZRANGE bounds. A limit that
// reaches past math.MaxInt64 means "to the end" (-1).
func redisWindow(skip, limit int) (start, stop int64) {
	start = int64(max(skip, 0))
	if int64(limit)-1 > math.MaxInt64-start {
		return start, -1
	}
	return start, start + int64(limit) - 1
}

type RedisLogRepo struct {
	client redis.UniversalClient
	key    string
}

func NewRedisLogRepo(client redis.UniversalClient) *RedisLogRepo {
	return &RedisLogRepo{client: client, key: redisLogsKey}
}

func (r *RedisLogRepo) Insert(ctx context.Context, entry *model.ErrorLog) error {
	if err := ensureID(&entry.ID); err != nil {
		return err
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return r.client.ZAdd(ctx, r.key, redis.Z{Score: redisScore(entry.CreatedAt), Member: payload}).Err()
}

func (r *RedisLogRepo) List(ctx context.Context, skip, limit int) ([]*model.ErrorLog, error) {
	if limit <= 0 {
		return []*model.ErrorLog{}, nil
	}
	start, stop := redisWindow(skip, limit)
	raw, err := r.client.ZRevRange(ctx, r.key, start, stop).Result()
	if err != nil {
		return nil, err
	}
	return decodeMembers[model.ErrorLog](raw)
}

func (r *RedisLogRepo) ListSince(ctx context.Context, since time.Time) ([]*model.ErrorLog, error) {
	raw, err := r.client.ZRevRangeByScore(ctx, r.key, &redis.ZRangeBy{
		Min: strconv.FormatInt(since.UnixMicro(), 10),
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, err
	}
	return decodeMembers[model.ErrorLog](raw)
}

type RedisAnalyticsRepo struct {
	client redis.UniversalClient
	key    string
}

func NewRedisAnalyticsRepo(client redis.UniversalClient) *RedisAnalyticsRepo {
	return &RedisAnalyticsRepo{client: client, key: redisAnalyticsKey}
}

func (r *RedisAnalyticsRepo) Insert(ctx context.Context, entry *model.AnalyticsLog) error {
	if err := ensureID(&entry.ID); err != nil {
		return err
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return r.client.ZAdd(ctx, r.key, redis.Z{Score: redisScore(entry.Timestamp), Member: payload}).Err()
}

func (r *RedisAnalyticsRepo) List(ctx context.Context, skip, limit int) ([]*model.AnalyticsLog, error) {
	if limit <= 0 {
		return []*model.AnalyticsLog{}, nil
	}
	start, stop := redisWindow(skip, limit)
	raw, err := r.client.ZRevRange(ctx, r.key, start, stop).Result()
	if err != nil {
		return nil, err
	}
	return decodeMembers[model.AnalyticsLog](raw)
}

func decodeMembers[T any](raw []string) ([]*T, error) {
	out := make([]*T, 0, len(raw))
	for _, member := range raw {
		var rec T
		if err := json.Unmarshal([]byte(member), &rec); err != nil {
			return nil, fmt.Errorf("corrupt record in redis: %w", err)
		}
		out = append(out, &rec)
	}
	return out, nil
}

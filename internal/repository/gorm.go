package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/logvault/logvault/internal/config"
	"github.com/logvault/logvault/internal/model"
	"github.com/logvault/logvault/internal/pkg/logger"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type errorLogRow struct {
	ID             string `gorm:"primaryKey;size:24"`
	ProjectSource  string `gorm:"size:100;not null"`
	Timestamp      time.Time
	ErrorMessage   string `gorm:"type:text;not null"`
	AdditionalInfo datatypes.JSON
	CreatedAt      time.Time `gorm:"index;not null"`
}

func (errorLogRow) TableName() string { return "error_logs" }

type analyticsRow struct {
	ID             string `gorm:"primaryKey;size:24"`
	Endpoint       string `gorm:"type:text"`
	Method         string `gorm:"size:16"`
	IPAddress      string `gorm:"size:64"`
	Params         datatypes.JSON
	ResponseStatus int
	Timestamp      time.Time `gorm:"index;not null"`
}

func (analyticsRow) TableName() string { return "analytics_logs" }

func OpenPostgres(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	return openGorm(ctx, cfg, "postgres", postgres.Open(cfg.URL))
}

func OpenSQLite(ctx context.Context, cfg config.DatabaseConfig, path string) (*Store, error) {
	return openGorm(ctx, cfg, "sqlite", sqlite.Open(path))
}

func openGorm(ctx context.Context, cfg config.DatabaseConfig, backend string, dialector gorm.Dialector) (*Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(
			slog.NewLogLogger(logger.Get().Handler(), slog.LevelWarn),
			gormlogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", backend, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", backend, err)
	}
	if err := db.WithContext(ctx).AutoMigrate(&errorLogRow{}, &analyticsRow{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to prepare %s tables: %w", backend, err)
	}

	return &Store{
		Backend:   backend,
		Logs:      NewGormLogRepo(db),
		Analytics: NewGormAnalyticsRepo(db),
		close: func(context.Context) error {
			return sqlDB.Close()
		},
	}, nil
}

type GormLogRepo struct {
	db *gorm.DB
}

func NewGormLogRepo(db *gorm.DB) *GormLogRepo {
	return &GormLogRepo{db: db}
}

func (r *GormLogRepo) Insert(ctx context.Context, entry *model.ErrorLog) error {
	if err := ensureID(&entry.ID); err != nil {
		return err
	}
	row := errorLogRow{
		ID:            entry.ID,
		ProjectSource: entry.ProjectSource,
		Timestamp:     entry.Timestamp,
		ErrorMessage:  entry.ErrorMessage,
		CreatedAt:     entry.CreatedAt,
	}
	if entry.AdditionalInfo != nil {
		raw, err := json.Marshal(entry.AdditionalInfo)
		if err != nil {
			return fmt.Errorf("failed to encode additional_info: %w", err)
		}
		row.AdditionalInfo = raw
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *GormLogRepo) List(ctx context.Context, skip, limit int) ([]*model.ErrorLog, error) {
	if limit <= 0 {
		return []*model.ErrorLog{}, nil
	}
	var rows []errorLogRow
	err := r.db.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Offset(max(skip, 0)).Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return errorLogsFromRows(rows)
}

func (r *GormLogRepo) ListSince(ctx context.Context, since time.Time) ([]*model.ErrorLog, error) {
	var rows []errorLogRow
	err := r.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return errorLogsFromRows(rows)
}

func errorLogsFromRows(rows []errorLogRow) ([]*model.ErrorLog, error) {
	out := make([]*model.ErrorLog, 0, len(rows))
	for _, row := range rows {
		entry := &model.ErrorLog{
			ID:            row.ID,
			ProjectSource: row.ProjectSource,
			Timestamp:     row.Timestamp.UTC(),
			ErrorMessage:  row.ErrorMessage,
			CreatedAt:     row.CreatedAt.UTC(),
		}
		if len(row.AdditionalInfo) > 0 {
			if err := json.Unmarshal(row.AdditionalInfo, &entry.AdditionalInfo); err != nil {
				return nil, fmt.Errorf("failed to decode additional_info of %s: %w", row.ID, err)
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

type GormAnalyticsRepo struct {
	db *gorm.DB
}

func NewGormAnalyticsRepo(db *gorm.DB) *GormAnalyticsRepo {
	return &GormAnalyticsRepo{db: db}
}

func (r *GormAnalyticsRepo) Insert(ctx context.Context, entry *model.AnalyticsLog) error {
	if err := ensureID(&entry.ID); err != nil {
		return err
	}
	params := entry.Params
	if params == nil {
		params = map[string]string{}
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&analyticsRow{
		ID:             entry.ID,
		Endpoint:       entry.Endpoint,
		Method:         entry.Method,
		IPAddress:      entry.IPAddress,
		Params:         raw,
		ResponseStatus: entry.ResponseStatus,
		Timestamp:      entry.Timestamp,
	}).Error
}

func (r *GormAnalyticsRepo) List(ctx context.Context, skip, limit int) ([]*model.AnalyticsLog, error) {
	if limit <= 0 {
		return []*model.AnalyticsLog{}, nil
	}
	var rows []analyticsRow
	err := r.db.WithContext(ctx).
		Order("timestamp DESC").Order("id DESC").
		Offset(max(skip, 0)).Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*model.AnalyticsLog, 0, len(rows))
	for _, row := range rows {
		entry := &model.AnalyticsLog{
			ID:             row.ID,
			Endpoint:       row.Endpoint,
			Method:         row.Method,
			IPAddress:      row.IPAddress,
			Params:         map[string]string{},
			ResponseStatus: row.ResponseStatus,
			Timestamp:      row.Timestamp.UTC(),
		}
		if len(row.Params) > 0 {
			if err := json.Unmarshal(row.Params, &entry.Params); err != nil {
				return nil, fmt.Errorf("failed to decode params of %s: %w", row.ID, err)
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

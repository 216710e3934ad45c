package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/logvault/logvault/internal/config"
	"github.com/logvault/logvault/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoLogsCollection      = "logs"
	mongoAnalyticsCollection = "analytics"
)

func OpenMongo(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	opts := options.Client().
		ApplyURI(cfg.URL).
		SetTimeout(cfg.Timeout())
	if cfg.MaxOpenConns > 0 {
		opts.SetMaxPoolSize(uint64(cfg.MaxOpenConns))
	}
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	db := client.Database(cfg.Name)
	logs := NewMongoLogRepo(db)
	analytics := NewMongoAnalyticsRepo(db)
	if err := logs.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	if err := analytics.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return &Store{
		Backend:   "mongodb",
		Logs:      logs,
		Analytics: analytics,
		close:     client.Disconnect,
	}, nil
}

type errorLogDoc struct {
	ID             primitive.ObjectID `bson:"_id"`
	ProjectSource  string             `bson:"project_source"`
	Timestamp      time.Time          `bson:"timestamp"`
	ErrorMessage   string             `bson:"error_message"`
	AdditionalInfo map[string]any     `bson:"additional_info"`
	CreatedAt      time.Time          `bson:"created_at"`
}

func (d errorLogDoc) toModel() *model.ErrorLog {
	return &model.ErrorLog{
		ID:             d.ID.Hex(),
		ProjectSource:  d.ProjectSource,
		Timestamp:      d.Timestamp.UTC(),
		ErrorMessage:   d.ErrorMessage,
		AdditionalInfo: plainMap(d.AdditionalInfo),
		CreatedAt:      d.CreatedAt.UTC(),
	}
}

type analyticsDoc struct {
	ID             primitive.ObjectID `bson:"_id"`
	Endpoint       string             `bson:"endpoint"`
	Method         string             `bson:"method"`
	IPAddress      string             `bson:"ip_address"`
	Params         map[string]string  `bson:"params"`
	ResponseStatus int                `bson:"response_status"`
	Timestamp      time.Time          `bson:"timestamp"`
}

func (d analyticsDoc) toModel() *model.AnalyticsLog {
	params := d.Params
	if params == nil {
		params = map[string]string{}
	}
	return &model.AnalyticsLog{
		ID:             d.ID.Hex(),
		Endpoint:       d.Endpoint,
		Method:         d.Method,
		IPAddress:      d.IPAddress,
		Params:         params,
		ResponseStatus: d.ResponseStatus,
		Timestamp:      d.Timestamp.UTC(),
	}
}

type MongoLogRepo struct {
	coll *mongo.Collection
}

func NewMongoLogRepo(db *mongo.Database) *MongoLogRepo {
	return &MongoLogRepo{coll: db.Collection(mongoLogsCollection)}
}

func (r *MongoLogRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "created_at", Value: 1}}})
	if err != nil {
		return fmt.Errorf("failed to create logs index: %w", err)
	}
	return nil
}

func (r *MongoLogRepo) Insert(ctx context.Context, entry *model.ErrorLog) error {
	if err := ensureID(&entry.ID); err != nil {
		return err
	}
	oid, _ := primitive.ObjectIDFromHex(entry.ID)
	_, err := r.coll.InsertOne(ctx, errorLogDoc{
		ID:             oid,
		ProjectSource:  entry.ProjectSource,
		Timestamp:      entry.Timestamp,
		ErrorMessage:   entry.ErrorMessage,
		AdditionalInfo: entry.AdditionalInfo,
		CreatedAt:      entry.CreatedAt,
	})
	return err
}

func (r *MongoLogRepo) List(ctx context.Context, skip, limit int) ([]*model.ErrorLog, error) {
	if limit <= 0 {
		return []*model.ErrorLog{}, nil
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(max(skip, 0))).
		SetLimit(int64(limit))
	return r.find(ctx, bson.D{}, opts)
}

func (r *MongoLogRepo) ListSince(ctx context.Context, since time.Time) ([]*model.ErrorLog, error) {
	filter := bson.D{{Key: "created_at", Value: bson.D{{Key: "$gte", Value: since}}}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	return r.find(ctx, filter, opts)
}

func (r *MongoLogRepo) find(ctx context.Context, filter bson.D, opts *options.FindOptions) ([]*model.ErrorLog, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []errorLogDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*model.ErrorLog, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

type MongoAnalyticsRepo struct {
	coll *mongo.Collection
}

func NewMongoAnalyticsRepo(db *mongo.Database) *MongoAnalyticsRepo {
	return &MongoAnalyticsRepo{coll: db.Collection(mongoAnalyticsCollection)}
}

func (r *MongoAnalyticsRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "timestamp", Value: 1}}})
	if err != nil {
		return fmt.Errorf("failed to create analytics index: %w", err)
	}
	return nil
}

func (r *MongoAnalyticsRepo) Insert(ctx context.Context, entry *model.AnalyticsLog) error {
	if err := ensureID(&entry.ID); err != nil {
		return err
	}
	oid, _ := primitive.ObjectIDFromHex(entry.ID)
	_, err := r.coll.InsertOne(ctx, analyticsDoc{
		ID:             oid,
		Endpoint:       entry.Endpoint,
		Method:         entry.Method,
		IPAddress:      entry.IPAddress,
		Params:         entry.Params,
		ResponseStatus: entry.ResponseStatus,
		Timestamp:      entry.Timestamp,
	})
	return err
}

func (r *MongoAnalyticsRepo) List(ctx context.Context, skip, limit int) ([]*model.AnalyticsLog, error) {
	if limit <= 0 {
		return []*model.AnalyticsLog{}, nil
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(max(skip, 0))).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []analyticsDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*model.AnalyticsLog, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

// plainMap turns nested bson documents and arrays back into JSON friendly
// maps and slices.
func plainMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = plainValue(v)
	}
	return out
}

func plainValue(v any) any {
	switch val := v.(type) {
	case primitive.D:
		m := make(map[string]any, len(val))
		for _, e := range val {
			m[e.Key] = plainValue(e.Value)
		}
		return m
	case primitive.M:
		return plainMap(val)
	case map[string]any:
		return plainMap(val)
	case primitive.A:
		s := make([]any, len(val))
		for i, item := range val {
			s[i] = plainValue(item)
		}
		return s
	case primitive.DateTime:
		return val.Time().UTC()
	case primitive.ObjectID:
		return val.Hex()
	default:
		return v
	}
}

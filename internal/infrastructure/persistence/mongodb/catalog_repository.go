package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
	"github.com/YouSangSon/movie-catalog-service/internal/domain/repository"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/logger"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/metrics"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// catalogDocID는 카탈로그 단일 문서의 고정 _id입니다.
// 모든 조회/갱신이 이 _id를 기준으로 하므로 문서는 하나만 존재할 수 있습니다.
const catalogDocID = "catalog"

// CatalogRepository는 MongoDB 기반 카탈로그 저장소입니다.
// 전체 영화 컬렉션은 movies 컬렉션의 단일 문서에 내장 배열로 저장됩니다.
type CatalogRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
	metrics    *metrics.Metrics
}

// catalogModel은 MongoDB에 저장되는 카탈로그 문서 모델입니다
type catalogModel struct {
	ID       string         `bson:"_id"`
	Movies   []entity.Movie `bson:"movies"`
	NextID   int64          `bson:"next_id"`
	Revision int64          `bson:"revision"`
}

// Config는 MongoDB 설정입니다
type Config struct {
	URI            string
	Database       string
	Collection     string
	MaxPoolSize    uint64
	MinPoolSize    uint64
	ConnectTimeout time.Duration
	Timeout        time.Duration
}

// NewCatalogRepository는 새로운 MongoDB 카탈로그 저장소를 생성합니다
func NewCatalogRepository(cfg *Config) (repository.CatalogRepository, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetServerSelectionTimeout(cfg.ConnectTimeout).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetSocketTimeout(cfg.Timeout).
		SetReadPreference(readpref.Primary())

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// 연결 확인
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	collection := client.Database(cfg.Database).Collection(cfg.Collection)

	return &CatalogRepository{
		client:     client,
		collection: collection,
		metrics:    metrics.GetMetrics(),
	}, nil
}

// Load는 카탈로그 문서를 조회합니다
func (r *CatalogRepository) Load(ctx context.Context) (*entity.Catalog, error) {
	start := time.Now()

	var model catalogModel
	if err := r.collection.FindOne(ctx, bson.M{"_id": catalogDocID}).Decode(&model); err != nil {
		if err == mongo.ErrNoDocuments {
			r.metrics.RecordDBOperation("load", "not_found", time.Since(start))
			return nil, entity.ErrCatalogNotFound
		}
		r.metrics.RecordDBOperation("load", "error", time.Since(start))
		logger.Error(ctx, "failed to load catalog", zap.Error(err))
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	r.metrics.RecordDBOperation("load", "success", time.Since(start))
	logger.Debug(ctx, "catalog loaded",
		zap.Int("movies", len(model.Movies)),
		logger.Revision(model.Revision),
		logger.Duration(time.Since(start)),
	)

	return entity.ReconstructCatalog(model.ID, model.Movies, model.NextID, model.Revision), nil
}

// LoadOrCreate는 카탈로그 문서를 조회하고, 없으면 원자적으로 생성합니다.
// 고정 _id에 대한 $setOnInsert upsert이므로 첫 쓰기가 동시에 들어와도
// 문서는 하나만 만들어집니다. 경합에서 진 쪽은 _id 중복 키 에러를 받는데,
// 이는 리비전 충돌로 변환되어 호출자의 재시도 루프에서 다시 조회됩니다.
func (r *CatalogRepository) LoadOrCreate(ctx context.Context) (*entity.Catalog, error) {
	start := time.Now()

	update := bson.M{
		"$setOnInsert": bson.M{
			"movies":   []entity.Movie{},
			"next_id":  int64(0),
			"revision": int64(0),
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var model catalogModel
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": catalogDocID}, update, opts).Decode(&model); err != nil {
		if mappedErr := mapUpsertRaceError(err); mappedErr != nil {
			r.metrics.RecordDBOperation("load_or_create", "conflict", time.Since(start))
			return nil, mappedErr
		}
		r.metrics.RecordDBOperation("load_or_create", "error", time.Since(start))
		logger.Error(ctx, "failed to load or create catalog", zap.Error(err))
		return nil, fmt.Errorf("failed to load or create catalog: %w", err)
	}

	r.metrics.RecordDBOperation("load_or_create", "success", time.Since(start))

	return entity.ReconstructCatalog(model.ID, model.Movies, model.NextID, model.Revision), nil
}

// mapUpsertRaceError는 동시 upsert 경합으로 발생한 _id 중복 키 에러를
// entity.ErrRevisionConflict로 변환합니다. 그 외 에러는 nil을 반환합니다.
func mapUpsertRaceError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return entity.ErrRevisionConflict
	}
	return nil
}

// Replace는 읽어온 리비전과 일치할 때만 카탈로그 문서를 교체합니다.
// 다른 요청이 먼저 썼으면 entity.ErrRevisionConflict를 반환합니다.
func (r *CatalogRepository) Replace(ctx context.Context, catalog *entity.Catalog) error {
	start := time.Now()

	// 낙관적 잠금: 읽어온 리비전과 일치하는 문서만 교체
	filter := bson.M{
		"_id":      catalogDocID,
		"revision": catalog.Revision(),
	}
	update := bson.M{
		"$set": bson.M{
			"movies":   catalog.Movies(),
			"next_id":  catalog.NextID(),
			"revision": catalog.Revision() + 1,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		r.metrics.RecordDBOperation("replace", "error", time.Since(start))
		logger.Error(ctx, "failed to replace catalog", zap.Error(err))
		return fmt.Errorf("failed to replace catalog: %w", err)
	}

	if result.MatchedCount == 0 {
		r.metrics.RecordDBOperation("replace", "conflict", time.Since(start))
		return entity.ErrRevisionConflict
	}

	catalog.CommitRevision()

	r.metrics.RecordDBOperation("replace", "success", time.Since(start))
	logger.Debug(ctx, "catalog replaced",
		zap.Int("movies", catalog.Len()),
		logger.Revision(catalog.Revision()),
		logger.Duration(time.Since(start)),
	)

	return nil
}

// HealthCheck는 저장소의 상태를 확인합니다
func (r *CatalogRepository) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

// Close는 MongoDB 연결을 종료합니다
func (r *CatalogRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

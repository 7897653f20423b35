package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
	"github.com/YouSangSon/movie-catalog-service/internal/domain/repository"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/circuitbreaker"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/logger"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/metrics"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/retry"
	"github.com/YouSangSon/movie-catalog-service/internal/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	moviesCacheKey = "catalog:movies"
	moviesCacheTTL = 5 * time.Minute
)

// CatalogUseCase는 카탈로그 문서의 단일 소유자입니다.
// 모든 변경은 load-modify-replace를 한 단위로 수행하며, 리비전 기반
// 조건부 갱신과 충돌 재시도로 동시 변경 간 일관성을 보장합니다.
type CatalogUseCase struct {
	catalogRepo    repository.CatalogRepository
	cacheRepo      repository.CacheRepository
	events         repository.CatalogEventPublisher
	metrics        *metrics.Metrics
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewCatalogUseCase는 새로운 CatalogUseCase를 생성합니다.
// cacheRepo와 events는 nil일 수 있습니다 (비활성화된 구성).
func NewCatalogUseCase(
	catalogRepo repository.CatalogRepository,
	cacheRepo repository.CacheRepository,
	events repository.CatalogEventPublisher,
) *CatalogUseCase {
	// Circuit breaker 설정
	cb := circuitbreaker.NewCircuitBreaker("catalog_usecase", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from circuitbreaker.State, to circuitbreaker.State) {
			logger.Info(context.Background(), "circuit breaker state changed",
				zap.String("name", name),
				zap.Int("from", int(from)),
				zap.Int("to", int(to)),
			)
		},
	})

	return &CatalogUseCase{
		catalogRepo:    catalogRepo,
		cacheRepo:      cacheRepo,
		events:         events,
		metrics:        metrics.GetMetrics(),
		circuitBreaker: cb,
		retryConfig: retry.Config{
			MaxAttempts:     5,
			InitialInterval: 20 * time.Millisecond,
			MaxInterval:     500 * time.Millisecond,
			Multiplier:      2.0,
			RetryIf: func(err error) bool {
				return errors.Is(err, entity.ErrRevisionConflict)
			},
		},
	}
}

// ListMovies는 전체 영화 목록을 저장 순서대로 반환합니다.
// 카탈로그 문서가 아직 없으면 에러가 아니라 빈 목록을 반환합니다.
func (uc *CatalogUseCase) ListMovies(ctx context.Context) ([]entity.Movie, error) {
	ctx, span := tracing.StartSpan(ctx, "CatalogUseCase.ListMovies")
	defer span.End()

	// 캐시에서 조회 시도
	if uc.cacheRepo != nil {
		var cached []entity.Movie
		if err := uc.cacheRepo.Get(ctx, moviesCacheKey, &cached); err == nil {
			uc.metrics.RecordCacheHit("movies")
			logger.Debug(ctx, "cache hit", zap.String("key", moviesCacheKey))
			return cached, nil
		}
		uc.metrics.RecordCacheMiss("movies")
	}

	catalog, err := uc.load(ctx)
	if err != nil {
		if errors.Is(err, entity.ErrCatalogNotFound) {
			logger.Debug(ctx, "no catalog document yet, returning empty list")
			return []entity.Movie{}, nil
		}
		tracing.RecordError(ctx, err)
		logger.Error(ctx, "failed to load catalog", zap.Error(err))
		return nil, err
	}

	movies := catalog.Movies()
	uc.metrics.CatalogMoviesTotal.Set(float64(len(movies)))

	// 캐시에 저장
	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.Set(ctx, moviesCacheKey, movies, moviesCacheTTL); err != nil {
			logger.Warn(ctx, "failed to cache movie list", zap.Error(err))
		}
	}

	return movies, nil
}

// AddMovie는 영화에 다음 ID를 할당하고 카탈로그에 추가합니다.
// ID는 문서에 저장된 카운터에서 할당되며, 삭제된 ID는 재사용되지 않습니다.
func (uc *CatalogUseCase) AddMovie(ctx context.Context, candidate entity.Movie) (entity.Movie, error) {
	ctx, span := tracing.StartSpan(ctx, "CatalogUseCase.AddMovie")
	defer span.End()

	if err := candidate.Validate(); err != nil {
		return entity.Movie{}, err
	}

	var stored entity.Movie
	var revision int64

	err := retry.Do(ctx, uc.retryConfig, func(ctx context.Context) error {
		catalog, err := uc.loadOrCreate(ctx)
		if err != nil {
			return err
		}

		stored = catalog.Append(candidate)
		if err := uc.replace(ctx, catalog); err != nil {
			if errors.Is(err, entity.ErrRevisionConflict) {
				uc.metrics.CatalogConflictRetries.Inc()
			}
			return err
		}

		revision = catalog.Revision()
		uc.metrics.CatalogMoviesTotal.Set(float64(catalog.Len()))
		return nil
	})
	if err != nil {
		tracing.RecordError(ctx, err)
		logger.Error(ctx, "failed to add movie", zap.Error(err))
		return entity.Movie{}, err
	}

	tracing.SetAttributes(ctx, attribute.Int64("movie.id", stored.ID))
	logger.Info(ctx, "movie added",
		logger.MovieID(stored.ID),
		zap.String("title", stored.Title),
		logger.Revision(revision),
	)

	uc.invalidateCache(ctx)
	uc.publish(ctx, func() error { return uc.events.MovieCreated(ctx, stored, revision) })

	return stored, nil
}

// UpdateMovie는 주어진 ID의 영화 내용을 통째로 교체합니다.
// 본문이 다른 ID를 주장해도 저장되는 레코드의 ID는 대상 ID로 유지됩니다.
// 대상이 없으면 entity.ErrMovieNotFound를 반환합니다.
func (uc *CatalogUseCase) UpdateMovie(ctx context.Context, id int64, replacement entity.Movie) (entity.Movie, error) {
	ctx, span := tracing.StartSpan(ctx, "CatalogUseCase.UpdateMovie")
	defer span.End()

	tracing.SetAttributes(ctx, attribute.Int64("movie.id", id))

	if err := replacement.Validate(); err != nil {
		return entity.Movie{}, err
	}

	var stored entity.Movie
	var revision int64

	err := retry.Do(ctx, uc.retryConfig, func(ctx context.Context) error {
		catalog, err := uc.load(ctx)
		if err != nil {
			if errors.Is(err, entity.ErrCatalogNotFound) {
				return entity.ErrMovieNotFound
			}
			return err
		}

		updated, ok := catalog.Replace(id, replacement)
		if !ok {
			return entity.ErrMovieNotFound
		}

		stored = updated
		if err := uc.replace(ctx, catalog); err != nil {
			if errors.Is(err, entity.ErrRevisionConflict) {
				uc.metrics.CatalogConflictRetries.Inc()
			}
			return err
		}

		revision = catalog.Revision()
		return nil
	})
	if err != nil {
		if errors.Is(err, entity.ErrMovieNotFound) {
			logger.Warn(ctx, "update target not found", logger.MovieID(id))
			return entity.Movie{}, entity.ErrMovieNotFound
		}
		tracing.RecordError(ctx, err)
		logger.Error(ctx, "failed to update movie", logger.MovieID(id), zap.Error(err))
		return entity.Movie{}, err
	}

	logger.Info(ctx, "movie updated", logger.MovieID(id), logger.Revision(revision))

	uc.invalidateCache(ctx)
	uc.publish(ctx, func() error { return uc.events.MovieUpdated(ctx, stored, revision) })

	return stored, nil
}

// RemoveMovie는 주어진 ID의 영화를 제거합니다.
// 없는 ID를 제거하는 것은 no-op이며 성공으로 처리됩니다 (멱등).
func (uc *CatalogUseCase) RemoveMovie(ctx context.Context, id int64) error {
	ctx, span := tracing.StartSpan(ctx, "CatalogUseCase.RemoveMovie")
	defer span.End()

	tracing.SetAttributes(ctx, attribute.Int64("movie.id", id))

	var removed bool
	var revision int64

	err := retry.Do(ctx, uc.retryConfig, func(ctx context.Context) error {
		removed = false

		catalog, err := uc.load(ctx)
		if err != nil {
			if errors.Is(err, entity.ErrCatalogNotFound) {
				return nil
			}
			return err
		}

		if !catalog.Remove(id) {
			// 대상이 없으면 쓰기 없이 성공
			return nil
		}

		if err := uc.replace(ctx, catalog); err != nil {
			if errors.Is(err, entity.ErrRevisionConflict) {
				uc.metrics.CatalogConflictRetries.Inc()
			}
			return err
		}

		removed = true
		revision = catalog.Revision()
		uc.metrics.CatalogMoviesTotal.Set(float64(catalog.Len()))
		return nil
	})
	if err != nil {
		tracing.RecordError(ctx, err)
		logger.Error(ctx, "failed to delete movie", logger.MovieID(id), zap.Error(err))
		return err
	}

	if !removed {
		logger.Debug(ctx, "delete target not found, no-op", logger.MovieID(id))
		return nil
	}

	logger.Info(ctx, "movie deleted", logger.MovieID(id), logger.Revision(revision))

	uc.invalidateCache(ctx)
	uc.publish(ctx, func() error { return uc.events.MovieDeleted(ctx, id, revision) })

	return nil
}

// load는 circuit breaker를 거쳐 카탈로그를 조회합니다
func (uc *CatalogUseCase) load(ctx context.Context) (*entity.Catalog, error) {
	result, err := uc.circuitBreaker.Execute(ctx, func() (interface{}, error) {
		catalog, err := uc.catalogRepo.Load(ctx)
		if err != nil && errors.Is(err, entity.ErrCatalogNotFound) {
			// 문서 부재는 인프라 장애가 아니므로 breaker 실패로 집계하지 않음
			return err, nil
		}
		return catalog, err
	})
	if err != nil {
		return nil, err
	}
	if e, ok := result.(error); ok {
		return nil, e
	}
	return result.(*entity.Catalog), nil
}

// loadOrCreate는 카탈로그를 조회하고 없으면 원자적으로 생성합니다.
// 동시 최초 생성 경합은 저장소가 리비전 충돌로 보고하며, 호출자가
// 재시도해야 하므로 breaker 실패로 집계하지 않습니다.
func (uc *CatalogUseCase) loadOrCreate(ctx context.Context) (*entity.Catalog, error) {
	result, err := uc.circuitBreaker.Execute(ctx, func() (interface{}, error) {
		catalog, err := uc.catalogRepo.LoadOrCreate(ctx)
		if err != nil && errors.Is(err, entity.ErrRevisionConflict) {
			return err, nil
		}
		return catalog, err
	})
	if err != nil {
		return nil, err
	}
	if e, ok := result.(error); ok {
		return nil, e
	}
	return result.(*entity.Catalog), nil
}

// replace는 조건부 갱신을 수행합니다.
// 리비전 충돌은 호출자가 재시도해야 하므로 breaker 실패로 집계하지 않습니다.
func (uc *CatalogUseCase) replace(ctx context.Context, catalog *entity.Catalog) error {
	result, err := uc.circuitBreaker.Execute(ctx, func() (interface{}, error) {
		if err := uc.catalogRepo.Replace(ctx, catalog); err != nil {
			if errors.Is(err, entity.ErrRevisionConflict) {
				return err, nil
			}
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return err
	}
	if e, ok := result.(error); ok {
		return e
	}
	return nil
}

// invalidateCache는 영화 목록 캐시를 무효화합니다
func (uc *CatalogUseCase) invalidateCache(ctx context.Context) {
	if uc.cacheRepo == nil {
		return
	}
	if err := uc.cacheRepo.Delete(ctx, moviesCacheKey); err != nil {
		logger.Warn(ctx, "failed to invalidate movie list cache", zap.Error(err))
	}
}

// publish는 변경 이벤트를 발행합니다. 발행 실패는 요청 실패로 이어지지 않습니다.
func (uc *CatalogUseCase) publish(ctx context.Context, fn func() error) {
	if uc.events == nil {
		return
	}
	if err := fn(); err != nil {
		logger.Warn(ctx, "failed to publish catalog event", zap.Error(err))
	}
}

package repository

import (
	"context"
	"time"

	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
)

// CatalogRepository는 카탈로그 문서 저장소 포트입니다.
// 카탈로그 문서는 저장소 전체에 정확히 하나만 존재합니다.
type CatalogRepository interface {
	// Load는 카탈로그 문서를 조회합니다.
	// 문서가 아직 없으면 entity.ErrCatalogNotFound를 반환합니다.
	Load(ctx context.Context) (*entity.Catalog, error)

	// LoadOrCreate는 카탈로그 문서를 조회하고, 없으면 원자적으로 생성합니다.
	// 동시에 호출되어도 문서는 하나만 만들어집니다.
	LoadOrCreate(ctx context.Context) (*entity.Catalog, error)

	// Replace는 읽어온 리비전과 일치할 때만 문서 전체를 교체합니다 (조건부 갱신).
	// 다른 요청이 먼저 썼으면 entity.ErrRevisionConflict를 반환합니다.
	Replace(ctx context.Context, catalog *entity.Catalog) error

	// HealthCheck는 저장소 연결 상태를 확인합니다
	HealthCheck(ctx context.Context) error

	// Close는 저장소 연결을 종료합니다
	Close(ctx context.Context) error
}

// CacheRepository는 캐시 저장소 포트입니다
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// CatalogEventPublisher는 카탈로그 변경 이벤트 발행 포트입니다
type CatalogEventPublisher interface {
	MovieCreated(ctx context.Context, movie entity.Movie, revision int64) error
	MovieUpdated(ctx context.Context, movie entity.Movie, revision int64) error
	MovieDeleted(ctx context.Context, movieID int64, revision int64) error
}

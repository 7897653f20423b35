package memory

import (
	"context"
	"sync"

	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
	"github.com/YouSangSon/movie-catalog-service/internal/domain/repository"
)

const catalogID = "memory"

// CatalogRepository는 인메모리 카탈로그 저장소입니다 (개발/테스트용).
// MongoDB 저장소와 동일한 리비전 충돌 의미론을 제공합니다.
type CatalogRepository struct {
	mu       sync.Mutex
	exists   bool
	movies   []entity.Movie
	nextID   int64
	revision int64
}

// NewCatalogRepository는 새로운 인메모리 카탈로그 저장소를 생성합니다
func NewCatalogRepository() repository.CatalogRepository {
	return &CatalogRepository{}
}

// Load는 카탈로그를 조회합니다
func (r *CatalogRepository) Load(ctx context.Context) (*entity.Catalog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.exists {
		return nil, entity.ErrCatalogNotFound
	}

	return r.snapshot(), nil
}

// LoadOrCreate는 카탈로그를 조회하고 없으면 생성합니다
func (r *CatalogRepository) LoadOrCreate(ctx context.Context) (*entity.Catalog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.exists {
		r.exists = true
		r.movies = []entity.Movie{}
		r.nextID = 0
		r.revision = 0
	}

	return r.snapshot(), nil
}

// Replace는 읽어온 리비전과 일치할 때만 카탈로그를 교체합니다
func (r *CatalogRepository) Replace(ctx context.Context, catalog *entity.Catalog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.exists {
		return entity.ErrCatalogNotFound
	}

	if catalog.Revision() != r.revision {
		return entity.ErrRevisionConflict
	}

	r.movies = catalog.Movies()
	r.nextID = catalog.NextID()
	r.revision++
	catalog.CommitRevision()

	return nil
}

// HealthCheck는 항상 성공합니다
func (r *CatalogRepository) HealthCheck(ctx context.Context) error {
	return nil
}

// Close는 no-op입니다
func (r *CatalogRepository) Close(ctx context.Context) error {
	return nil
}

// snapshot은 현재 상태의 복사본으로 카탈로그 엔티티를 만듭니다
func (r *CatalogRepository) snapshot() *entity.Catalog {
	movies := make([]entity.Movie, len(r.movies))
	copy(movies, r.movies)
	return entity.ReconstructCatalog(catalogID, movies, r.nextID, r.revision)
}

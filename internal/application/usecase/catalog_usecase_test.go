package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/YouSangSon/movie-catalog-service/internal/application/usecase"
	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
	"github.com/YouSangSon/movie-catalog-service/internal/domain/repository"
	"github.com/YouSangSon/movie-catalog-service/internal/infrastructure/persistence/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase() *usecase.CatalogUseCase {
	return usecase.NewCatalogUseCase(memory.NewCatalogRepository(), nil, nil)
}

func TestListMovies_EmptyStore(t *testing.T) {
	// Arrange
	uc := newUseCase()
	ctx := context.Background()

	// Act: 카탈로그 문서가 아직 없어도 에러가 아니라 빈 목록
	movies, err := uc.ListMovies(ctx)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, movies)
}

func TestAddMovie_AssignsSequentialIDs(t *testing.T) {
	// Arrange
	uc := newUseCase()
	ctx := context.Background()

	// Act
	first, err := uc.AddMovie(ctx, entity.Movie{Title: "Alien"})
	require.NoError(t, err)
	second, err := uc.AddMovie(ctx, entity.Movie{Title: "Aliens"})
	require.NoError(t, err)

	// Assert
	assert.Equal(t, int64(0), first.ID)
	assert.Equal(t, int64(1), second.ID)

	movies, err := uc.ListMovies(ctx)
	require.NoError(t, err)
	assert.Len(t, movies, 2)
	assert.Equal(t, "Alien", movies[0].Title)
	assert.Equal(t, "Aliens", movies[1].Title)
}

func TestAddMovie_ValidationFailure(t *testing.T) {
	// Arrange
	uc := newUseCase()
	ctx := context.Background()

	// Act
	_, err := uc.AddMovie(ctx, entity.Movie{Title: "   "})

	// Assert
	assert.ErrorIs(t, err, entity.ErrInvalidTitle)

	movies, listErr := uc.ListMovies(ctx)
	require.NoError(t, listErr)
	assert.Empty(t, movies)
}

func TestAddMovie_NeverReusesDeletedID(t *testing.T) {
	// Arrange
	uc := newUseCase()
	ctx := context.Background()

	first, err := uc.AddMovie(ctx, entity.Movie{Title: "first"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), first.ID)

	second, err := uc.AddMovie(ctx, entity.Movie{Title: "second"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), second.ID)

	// Act: 최대 ID를 삭제한 뒤에도 카운터는 뒤로 가지 않습니다
	require.NoError(t, uc.RemoveMovie(ctx, second.ID))

	third, err := uc.AddMovie(ctx, entity.Movie{Title: "third"})
	require.NoError(t, err)

	// Assert
	assert.Equal(t, int64(2), third.ID)
}

func TestUpdateMovie_PreservesIdentity(t *testing.T) {
	// Arrange
	uc := newUseCase()
	ctx := context.Background()

	stored, err := uc.AddMovie(ctx, entity.Movie{Title: "original", Year: 1979})
	require.NoError(t, err)

	// Act: 본문이 다른 ID를 주장해도 대상 ID가 유지됩니다
	updated, err := uc.UpdateMovie(ctx, stored.ID, entity.Movie{ID: 99, Title: "replaced", Year: 1986})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, stored.ID, updated.ID)
	assert.Equal(t, "replaced", updated.Title)
	assert.Equal(t, 1986, updated.Year)

	movies, err := uc.ListMovies(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, stored.ID, movies[0].ID)
}

func TestUpdateMovie_NotFound(t *testing.T) {
	// Arrange
	uc := newUseCase()
	ctx := context.Background()

	// Act: 빈 스토어
	_, err := uc.UpdateMovie(ctx, 0, entity.Movie{Title: "x"})
	assert.ErrorIs(t, err, entity.ErrMovieNotFound)

	// 문서가 있어도 없는 ID면 동일
	_, addErr := uc.AddMovie(ctx, entity.Movie{Title: "a"})
	require.NoError(t, addErr)

	_, err = uc.UpdateMovie(ctx, 42, entity.Movie{Title: "x"})
	assert.ErrorIs(t, err, entity.ErrMovieNotFound)
}

func TestRemoveMovie_Idempotent(t *testing.T) {
	// Arrange
	uc := newUseCase()
	ctx := context.Background()

	stored, err := uc.AddMovie(ctx, entity.Movie{Title: "a"})
	require.NoError(t, err)

	// Act & Assert: 같은 ID를 두 번 지워도, 빈 스토어에서 지워도 성공
	assert.NoError(t, uc.RemoveMovie(ctx, stored.ID))
	assert.NoError(t, uc.RemoveMovie(ctx, stored.ID))
	assert.NoError(t, uc.RemoveMovie(ctx, 999))

	movies, err := uc.ListMovies(ctx)
	require.NoError(t, err)
	assert.Empty(t, movies)
}

func TestCatalogLifecycle(t *testing.T) {
	// Arrange
	uc := newUseCase()
	ctx := context.Background()

	// Act: 생성(0), 생성(1), 0 삭제, 생성(2)
	first, err := uc.AddMovie(ctx, entity.Movie{Title: "first"})
	require.NoError(t, err)
	second, err := uc.AddMovie(ctx, entity.Movie{Title: "second"})
	require.NoError(t, err)
	require.NoError(t, uc.RemoveMovie(ctx, first.ID))
	third, err := uc.AddMovie(ctx, entity.Movie{Title: "third"})
	require.NoError(t, err)

	// Assert
	assert.Equal(t, int64(0), first.ID)
	assert.Equal(t, int64(1), second.ID)
	assert.Equal(t, int64(2), third.ID)

	movies, err := uc.ListMovies(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, int64(1), movies[0].ID)
	assert.Equal(t, int64(2), movies[1].ID)
}

// racingCreateRepo는 최초 문서 생성 경합에서 진 쪽이 받는
// 리비전 충돌을 흉내 내는 저장소입니다
type racingCreateRepo struct {
	repository.CatalogRepository
	mu        sync.Mutex
	conflicts int
}

func (r *racingCreateRepo) LoadOrCreate(ctx context.Context) (*entity.Catalog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conflicts > 0 {
		r.conflicts--
		return nil, entity.ErrRevisionConflict
	}
	return r.CatalogRepository.LoadOrCreate(ctx)
}

func TestAddMovie_RetriesWhenFirstCreateLosesRace(t *testing.T) {
	// Arrange: 처음 두 번의 생성 시도가 경합에서 집니다
	repo := &racingCreateRepo{
		CatalogRepository: memory.NewCatalogRepository(),
		conflicts:         2,
	}
	uc := usecase.NewCatalogUseCase(repo, nil, nil)
	ctx := context.Background()

	// Act
	movie, err := uc.AddMovie(ctx, entity.Movie{Title: "Alien"})

	// Assert: 재시도 끝에 성공하고 문서는 하나만 존재합니다
	require.NoError(t, err)
	assert.Equal(t, int64(0), movie.ID)

	movies, err := uc.ListMovies(ctx)
	require.NoError(t, err)
	assert.Len(t, movies, 1)
}

func TestAddMovie_ConcurrentCreatesYieldDistinctIDs(t *testing.T) {
	// Arrange
	uc := newUseCase()
	ctx := context.Background()
	const n = 5

	var wg sync.WaitGroup
	ids := make(chan int64, n)
	errs := make(chan error, n)

	// Act: 동시 생성은 리비전 충돌 재시도로 직렬화됩니다
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			movie, err := uc.AddMovie(ctx, entity.Movie{Title: "concurrent"})
			if err != nil {
				errs <- err
				return
			}
			ids <- movie.ID
		}()
	}
	wg.Wait()
	close(ids)
	close(errs)

	// Assert
	for err := range errs {
		t.Fatalf("AddMovie() unexpected error: %v", err)
	}

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate ID %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)

	movies, err := uc.ListMovies(ctx)
	require.NoError(t, err)
	assert.Len(t, movies, n)
}

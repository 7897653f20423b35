package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
	"github.com/YouSangSon/movie-catalog-service/internal/infrastructure/persistence/memory"
)

func TestCatalogRepository_Load_Empty(t *testing.T) {
	repo := memory.NewCatalogRepository()

	if _, err := repo.Load(context.Background()); !errors.Is(err, entity.ErrCatalogNotFound) {
		t.Errorf("Load() on empty store error = %v, want ErrCatalogNotFound", err)
	}
}

func TestCatalogRepository_LoadOrCreate(t *testing.T) {
	repo := memory.NewCatalogRepository()
	ctx := context.Background()

	catalog, err := repo.LoadOrCreate(ctx)
	if err != nil {
		t.Fatalf("LoadOrCreate() unexpected error: %v", err)
	}
	if catalog.Len() != 0 || catalog.NextID() != 0 || catalog.Revision() != 0 {
		t.Errorf("fresh catalog = len %d, nextID %d, revision %d", catalog.Len(), catalog.NextID(), catalog.Revision())
	}

	// 두 번째 호출은 기존 문서를 반환합니다
	if _, err := repo.Load(ctx); err != nil {
		t.Errorf("Load() after LoadOrCreate error = %v", err)
	}
}

func TestCatalogRepository_Replace_RevisionConflict(t *testing.T) {
	repo := memory.NewCatalogRepository()
	ctx := context.Background()

	if _, err := repo.LoadOrCreate(ctx); err != nil {
		t.Fatalf("LoadOrCreate() unexpected error: %v", err)
	}

	// 두 요청이 같은 리비전을 읽습니다
	first, _ := repo.Load(ctx)
	second, _ := repo.Load(ctx)

	first.Append(entity.Movie{Title: "a"})
	if err := repo.Replace(ctx, first); err != nil {
		t.Fatalf("Replace(first) unexpected error: %v", err)
	}

	// 나중에 쓰는 쪽은 리비전 충돌을 받습니다
	second.Append(entity.Movie{Title: "b"})
	if err := repo.Replace(ctx, second); !errors.Is(err, entity.ErrRevisionConflict) {
		t.Errorf("Replace(second) error = %v, want ErrRevisionConflict", err)
	}

	// 다시 읽어서 재시도하면 성공합니다
	retried, _ := repo.Load(ctx)
	retried.Append(entity.Movie{Title: "b"})
	if err := repo.Replace(ctx, retried); err != nil {
		t.Errorf("Replace(retried) unexpected error: %v", err)
	}

	final, _ := repo.Load(ctx)
	if final.Len() != 2 {
		t.Errorf("final catalog length = %d, want 2", final.Len())
	}
}

func TestCatalogRepository_Replace_CommitsRevision(t *testing.T) {
	repo := memory.NewCatalogRepository()
	ctx := context.Background()

	catalog, _ := repo.LoadOrCreate(ctx)
	catalog.Append(entity.Movie{Title: "a"})

	if err := repo.Replace(ctx, catalog); err != nil {
		t.Fatalf("Replace() unexpected error: %v", err)
	}
	if catalog.Revision() != 1 {
		t.Errorf("Revision() after replace = %d, want 1", catalog.Revision())
	}

	// 커밋된 리비전으로 연속 쓰기가 가능합니다
	catalog.Append(entity.Movie{Title: "b"})
	if err := repo.Replace(ctx, catalog); err != nil {
		t.Errorf("second Replace() unexpected error: %v", err)
	}
}

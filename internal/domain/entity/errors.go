package entity

import "errors"

var (
	// ErrInvalidTitle은 영화 제목이 비어있을 때 발생합니다
	ErrInvalidTitle = errors.New("movie title must not be empty")

	// ErrInvalidGenre는 장르 태그가 비어있을 때 발생합니다
	ErrInvalidGenre = errors.New("genre tags must not be empty")

	// ErrMovieNotFound는 영화를 찾을 수 없을 때 발생합니다
	ErrMovieNotFound = errors.New("movie not found")

	// ErrCatalogNotFound는 카탈로그 문서가 아직 없을 때 발생합니다
	ErrCatalogNotFound = errors.New("catalog document not found")

	// ErrRevisionConflict는 낙관적 잠금 충돌이 발생했을 때 발생합니다
	ErrRevisionConflict = errors.New("revision conflict")
)

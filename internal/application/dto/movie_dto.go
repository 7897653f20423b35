package dto

import "github.com/YouSangSon/movie-catalog-service/internal/domain/entity"

// MovieRequest는 영화 생성/수정 요청 본문입니다.
// 본문에 id가 포함되어 있어도 무시됩니다 (ID는 스토어가 할당).
type MovieRequest struct {
	Title    string   `json:"title"`
	Year     int      `json:"year"`
	Director string   `json:"director"`
	Genre    []string `json:"genre"`
	Runtime  int      `json:"runtime"`
	Rating   float64  `json:"rating"`
	Language string   `json:"language"`
	Synopsis string   `json:"synopsis"`
	Image    string   `json:"image"`
}

// ToEntity는 요청을 도메인 엔티티로 변환합니다
func (r *MovieRequest) ToEntity() entity.Movie {
	return entity.Movie{
		Title:    r.Title,
		Year:     r.Year,
		Director: r.Director,
		Genre:    r.Genre,
		Runtime:  r.Runtime,
		Rating:   r.Rating,
		Language: r.Language,
		Synopsis: r.Synopsis,
		Image:    r.Image,
	}
}

// ListMoviesResponse는 전체 영화 목록 응답입니다
type ListMoviesResponse struct {
	Movies []entity.Movie `json:"movies"`
}

// MovieResponse는 생성/수정 성공 응답입니다
type MovieResponse struct {
	Success bool         `json:"success"`
	Movie   entity.Movie `json:"movie"`
}

// SuccessResponse는 본문 없는 성공 응답입니다
type SuccessResponse struct {
	Success bool `json:"success"`
}

// LoginRequest는 관리자 로그인 요청입니다
type LoginRequest struct {
	Password string `json:"password"`
}

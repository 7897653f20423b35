package entity

import "strings"

// Movie는 카탈로그에 저장되는 영화 레코드입니다.
// ID는 스토어가 할당하며 한번 할당되면 변경되지 않습니다.
type Movie struct {
	ID       int64    `json:"id" bson:"id"`
	Title    string   `json:"title" bson:"title"`
	Year     int      `json:"year" bson:"year"`
	Director string   `json:"director" bson:"director"`
	Genre    []string `json:"genre" bson:"genre"`
	Runtime  int      `json:"runtime" bson:"runtime"`
	Rating   float64  `json:"rating" bson:"rating"`
	Language string   `json:"language" bson:"language"`
	Synopsis string   `json:"synopsis" bson:"synopsis"`
	Image    string   `json:"image" bson:"image"`
}

// Validate는 필수 필드의 존재를 검증합니다
func (m *Movie) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return ErrInvalidTitle
	}

	for _, tag := range m.Genre {
		if strings.TrimSpace(tag) == "" {
			return ErrInvalidGenre
		}
	}

	return nil
}

package entity_test

import (
	"errors"
	"testing"

	"github.com/YouSangSon/movie-catalog-service/internal/domain/entity"
)

func TestMovie_Validate(t *testing.T) {
	tests := []struct {
		name    string
		movie   entity.Movie
		wantErr error
	}{
		{
			name:    "valid movie",
			movie:   entity.Movie{Title: "Alien", Year: 1979, Genre: []string{"horror", "sci-fi"}},
			wantErr: nil,
		},
		{
			name:    "no genre tags is valid",
			movie:   entity.Movie{Title: "Alien"},
			wantErr: nil,
		},
		{
			name:    "empty title",
			movie:   entity.Movie{Title: "", Genre: []string{"drama"}},
			wantErr: entity.ErrInvalidTitle,
		},
		{
			name:    "whitespace title",
			movie:   entity.Movie{Title: "   "},
			wantErr: entity.ErrInvalidTitle,
		},
		{
			name:    "empty genre tag",
			movie:   entity.Movie{Title: "Alien", Genre: []string{"horror", ""}},
			wantErr: entity.ErrInvalidGenre,
		},
		{
			name:    "whitespace genre tag",
			movie:   entity.Movie{Title: "Alien", Genre: []string{" "}},
			wantErr: entity.ErrInvalidGenre,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.movie.Validate()

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseServerTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"rfc3339", "2024-01-15T10:30:00Z", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"naive datetime", "2024-01-15T10:30:00", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"date only", "2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"empty", "", time.Time{}},
		{"garbage", "15/01/2024", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, parseServerTime(tt.input))
		})
	}
}

func TestMapMovie(t *testing.T) {
	t.Parallel()

	dto := movieDTO{
		ID:              1,
		Title:           "Dune",
		Director:        "Villeneuve",
		Genre:           "Sci-Fi",
		DurationMinutes: 155,
		Year:            2021,
		Classification:  "PG-13",
		Synopsis:        "Arrakis.",
		CreatedAt:       "2024-01-15T10:30:00",
		ImageURL:        "/static/posters/1.jpg",
	}

	movie := mapMovie(dto)
	require.Equal(t, "Dune", movie.Title)
	require.Equal(t, 155, movie.DurationMinutes)
	require.Equal(t, 2021, movie.Year)
	require.Equal(t, "/static/posters/1.jpg", movie.ImageURL)
	require.False(t, movie.CreatedAt.IsZero())
}

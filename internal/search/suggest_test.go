package search_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/svidal/filmoteca/internal/domain"
	"github.com/svidal/filmoteca/internal/search"
)

func indexedSuggester() *search.Suggester {
	s := search.NewSuggester(nil)
	s.Index([]domain.Movie{
		{ID: 1, Title: "Blade Runner"},
		{ID: 2, Title: "Blade Runner 2049"},
		{ID: 3, Title: "The Godfather"},
		{ID: 4, Title: "Goodfellas"},
	})
	return s
}

func TestSuggestMatchesFuzzily(t *testing.T) {
	t.Parallel()

	s := indexedSuggester()

	results := s.Suggest("blade", 10)
	require.Len(t, results, 2)
	for _, m := range results {
		require.Contains(t, m.Title, "Blade")
	}
}

func TestSuggestIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	s := indexedSuggester()

	results := s.Suggest("GODFATHER", 10)
	require.NotEmpty(t, results)
	require.Equal(t, "The Godfather", results[0].Title)
}

func TestSuggestHonorsLimit(t *testing.T) {
	t.Parallel()

	s := search.NewSuggester(nil)
	s.Index([]domain.Movie{
		{ID: 1, Title: "Alien"},
		{ID: 2, Title: "Aliens"},
		{ID: 3, Title: "Alien 3"},
	})

	results := s.Suggest("alien", 2)
	require.Len(t, results, 2)
}

func TestSuggestEmptyQueryAndEmptyIndex(t *testing.T) {
	t.Parallel()

	s := search.NewSuggester(nil)
	require.Nil(t, s.Suggest("anything", 5), "empty index yields nothing")

	s.Index([]domain.Movie{{ID: 1, Title: "Heat"}})
	require.Nil(t, s.Suggest("   ", 5), "blank query yields nothing")
}

func TestSuggestAfterClear(t *testing.T) {
	t.Parallel()

	s := indexedSuggester()
	s.Clear()
	require.Nil(t, s.Suggest("blade", 5))
}

func TestIndexLaterEntriesWin(t *testing.T) {
	t.Parallel()

	s := search.NewSuggester(nil)
	s.Index([]domain.Movie{{ID: 1, Title: "Heat"}})
	s.Index([]domain.Movie{{ID: 2, Title: "Heat"}})

	results := s.Suggest("heat", 1)
	require.Len(t, results, 1)
	require.Equal(t, 2, results[0].ID)
}

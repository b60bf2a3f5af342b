package search

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/svidal/filmoteca/internal/domain"
)

// Suggester serves type-ahead suggestions from movies the client has
// already seen, so a suggestion needs no network round trip. The server's
// search endpoint remains the authority for full queries.
type Suggester struct {
	logger *slog.Logger

	indexMu    sync.RWMutex
	titleIndex map[string]domain.Movie // lowercase title -> movie
	indexed    bool
}

// NewSuggester creates an empty suggestion index.
func NewSuggester(logger *slog.Logger) *Suggester {
	if logger == nil {
		logger = slog.Default()
	}
	return &Suggester{
		logger:     logger,
		titleIndex: make(map[string]domain.Movie),
	}
}

// Index adds movies to the suggestion index. Safe to call repeatedly as
// pages load; later entries with the same title win.
func (s *Suggester) Index(movies []domain.Movie) {
	s.indexMu.Lock()
	defer s.indexMu.Unlock()

	for _, m := range movies {
		s.titleIndex[strings.ToLower(m.Title)] = m
	}

	s.indexed = true
	s.logger.Debug("indexed movies", "count", len(movies), "total", len(s.titleIndex))
}

// Clear removes all indexed movies.
func (s *Suggester) Clear() {
	s.indexMu.Lock()
	defer s.indexMu.Unlock()

	s.titleIndex = make(map[string]domain.Movie)
	s.indexed = false
}

// Suggest returns up to limit movies whose titles fuzzily match the
// query, best matches first.
func (s *Suggester) Suggest(query string, limit int) []domain.Movie {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	s.indexMu.RLock()
	defer s.indexMu.RUnlock()

	if !s.indexed || len(s.titleIndex) == 0 {
		return nil
	}

	titles := make([]string, 0, len(s.titleIndex))
	for title := range s.titleIndex {
		titles = append(titles, title)
	}

	matches := fuzzy.RankFindFold(query, titles)

	// Sort by score (lower is better)
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	results := make([]domain.Movie, 0, len(matches))
	for _, match := range matches {
		if m, ok := s.titleIndex[match.Target]; ok {
			results = append(results, m)
			if limit > 0 && len(results) >= limit {
				break
			}
		}
	}

	return results
}

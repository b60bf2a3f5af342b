package query

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/svidal/filmoteca/internal/domain"
)

// Cache key prefixes within the movies bucket. Listings are grouped under
// prefixes so one mutation can invalidate them all.
const (
	// PrefixList is the prefix for paginated catalog pages (list:p{page}:l{limit})
	PrefixList = "list:"

	// PrefixSearch is the prefix for filtered searches (search:{encoded filter})
	PrefixSearch = "search:"

	// PrefixPopular is the prefix for popularity rankings (popular:{limit})
	PrefixPopular = "popular:"

	// PrefixRecent is the prefix for recency rankings (recent:{limit})
	PrefixRecent = "recent:"

	// PrefixClassification is the prefix for rating-code listings (class:{code}:{limit})
	PrefixClassification = "class:"

	// PrefixUserMovies is the prefix for authored-by listings (user:{userID})
	PrefixUserMovies = "user:"
)

// ListPrefixes returns every listing prefix that a movie mutation must
// invalidate. Single-movie entries (id:{id}) are handled separately.
func ListPrefixes() []string {
	return []string{PrefixList, PrefixSearch, PrefixPopular, PrefixRecent, PrefixClassification, PrefixUserMovies}
}

// MovieListKey identifies one page of the catalog
func MovieListKey(page, limit int) string {
	return fmt.Sprintf("%sp%d:l%d", PrefixList, page, limit)
}

// MovieKey identifies a single movie
func MovieKey(id int) string {
	return "id:" + strconv.Itoa(id)
}

// SearchKey identifies a filtered search. Equal filters produce equal
// keys, so concurrent identical searches share one cache entry.
func SearchKey(filter domain.SearchFilter) string {
	v := url.Values{}
	if filter.Title != "" {
		v.Set("t", filter.Title)
	}
	if filter.Director != "" {
		v.Set("d", filter.Director)
	}
	if filter.Genre != "" {
		v.Set("g", filter.Genre)
	}
	if filter.Year > 0 {
		v.Set("y", strconv.Itoa(filter.Year))
	}
	if filter.YearMin > 0 {
		v.Set("ymin", strconv.Itoa(filter.YearMin))
	}
	if filter.YearMax > 0 {
		v.Set("ymax", strconv.Itoa(filter.YearMax))
	}
	return PrefixSearch + v.Encode()
}

// PopularKey identifies a popularity ranking of the given size
func PopularKey(limit int) string {
	return PrefixPopular + strconv.Itoa(limit)
}

// RecentKey identifies a recency ranking of the given size
func RecentKey(limit int) string {
	return PrefixRecent + strconv.Itoa(limit)
}

// ClassificationKey identifies a rating-code listing
func ClassificationKey(code string, limit int) string {
	return fmt.Sprintf("%s%s:%d", PrefixClassification, code, limit)
}

// UserMoviesKey identifies the movies authored by a user
func UserMoviesKey(userID int) string {
	return PrefixUserMovies + strconv.Itoa(userID)
}

// FavoritesKey identifies a user's favorites snapshot
func FavoritesKey(userID int) string {
	return FavoritesPrefix(userID) + "movies"
}

// FavoritesPrefix is the favorites namespace for one user
func FavoritesPrefix(userID int) string {
	return fmt.Sprintf("user:%d:", userID)
}

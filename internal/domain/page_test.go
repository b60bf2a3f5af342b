package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/svidal/filmoteca/internal/domain"
)

func TestNewPageInfo(t *testing.T) {
	t.Parallel()

	t.Run("first of several pages", func(t *testing.T) {
		t.Parallel()

		info := domain.NewPageInfo(45, 1, 20)

		require.Equal(t, 45, info.TotalRecords)
		require.Equal(t, 3, info.TotalPages)
		require.True(t, info.HasNext)
		require.False(t, info.HasPrev)
		require.NotNil(t, info.NextPage)
		require.Equal(t, 2, *info.NextPage)
		require.Nil(t, info.PrevPage)
	})

	t.Run("middle page", func(t *testing.T) {
		t.Parallel()

		info := domain.NewPageInfo(45, 2, 20)

		require.True(t, info.HasNext)
		require.True(t, info.HasPrev)
		require.Equal(t, 3, *info.NextPage)
		require.Equal(t, 1, *info.PrevPage)
	})

	t.Run("last page", func(t *testing.T) {
		t.Parallel()

		info := domain.NewPageInfo(45, 3, 20)

		require.False(t, info.HasNext)
		require.True(t, info.HasPrev)
		require.Nil(t, info.NextPage)
		require.Equal(t, 2, *info.PrevPage)
	})

	t.Run("empty listing", func(t *testing.T) {
		t.Parallel()

		info := domain.NewPageInfo(0, 1, 20)

		require.Equal(t, 0, info.TotalPages)
		require.False(t, info.HasNext)
		require.False(t, info.HasPrev)
		require.Nil(t, info.NextPage)
		require.Nil(t, info.PrevPage)
	})

	t.Run("exact multiple of limit", func(t *testing.T) {
		t.Parallel()

		info := domain.NewPageInfo(40, 2, 20)

		require.Equal(t, 2, info.TotalPages)
		require.False(t, info.HasNext)
		require.True(t, info.HasPrev)
	})

	t.Run("normalizes bad inputs", func(t *testing.T) {
		t.Parallel()

		info := domain.NewPageInfo(10, 0, 0)

		require.Equal(t, 1, info.CurrentPage)
		require.Equal(t, 1, info.Limit)
	})

	t.Run("navigation flags never drift from page position", func(t *testing.T) {
		t.Parallel()

		for page := 1; page <= 5; page++ {
			info := domain.NewPageInfo(87, page, 20)
			require.Equal(t, page < info.TotalPages, info.HasNext, "page %d", page)
			require.Equal(t, page > 1, info.HasPrev, "page %d", page)
		}
	})
}

func TestNewPage(t *testing.T) {
	t.Parallel()

	movies := []domain.Movie{{ID: 1}, {ID: 2}}
	page := domain.NewPage(movies, 45, 1, 20)

	require.Equal(t, movies, page.Items)
	require.Equal(t, 45, page.TotalRecords)
	require.Equal(t, 3, page.TotalPages)
	require.True(t, page.HasNext)
	require.False(t, page.HasPrev)
}

package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamflix/streamflix/internal/cache"
	"github.com/streamflix/streamflix/pkg/logger"
)

const moviesJSON = `[
  {"id": "m1", "title": "Alpha", "category": "top-ten"},
  {"id": "m2", "title": "Beta", "category": "trending"},
  {"id": "m3", "title": "Gamma", "category": "top-ten"},
  {"id": "m4", "title": "Delta"}
]`

func newCatalogFixture(t *testing.T) (*CatalogService, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "movies.json"), []byte(moviesJSON), 0644))

	c := cache.New(10, time.Minute)
	return NewCatalog(dir, c, logger.NewWithLevel(logger.LevelError)), dir
}

func TestMoviesLoad(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	movies := svc.Movies()
	require.Len(t, movies, 4)
	assert.Equal(t, "Alpha", movies[0].Title)
}

func TestMoviesByCategory(t *testing.T) {
	svc, _ := newCatalogFixture(t)

	topTen := svc.MoviesByCategory("top-ten")
	require.Len(t, topTen, 2)
	assert.Equal(t, "Alpha", topTen[0].Title)
	assert.Equal(t, "Gamma", topTen[1].Title)

	assert.Len(t, svc.MoviesByCategory("trending"), 1)
	assert.Empty(t, svc.MoviesByCategory("nonexistent"))
}

func TestMissingFileDegradesToEmpty(t *testing.T) {
	svc, _ := newCatalogFixture(t)
	assert.Empty(t, svc.Webseries())
	assert.Empty(t, svc.Carousel())
}

func TestCorruptFileDegradesToEmpty(t *testing.T) {
	svc, dir := newCatalogFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "carousel.json"), []byte("{not json"), 0644))
	assert.Empty(t, svc.Carousel())
}

func TestCollectionsAreCached(t *testing.T) {
	svc, dir := newCatalogFixture(t)

	require.Len(t, svc.Movies(), 4)

	// removing the file does not evict the cached parse
	require.NoError(t, os.Remove(filepath.Join(dir, "movies.json")))
	assert.Len(t, svc.Movies(), 4)
}

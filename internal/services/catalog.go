package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/streamflix/streamflix/internal/cache"
	"github.com/streamflix/streamflix/internal/constants"
	"github.com/streamflix/streamflix/internal/models"
	"github.com/streamflix/streamflix/pkg/logger"
)

// CatalogService loads the static JSON catalog collections from the data
// directory. Parsed collections are cached with a TTL so edits to the JSON
// files show up without a restart.
type CatalogService struct {
	dataDir string
	cache   *cache.LRUCache
	logger  logger.Logger
}

// NewCatalog creates a catalog service reading from dataDir.
func NewCatalog(dataDir string, c *cache.LRUCache, log logger.Logger) *CatalogService {
	return &CatalogService{
		dataDir: dataDir,
		cache:   c,
		logger:  log,
	}
}

// Movies returns the movie collection.
func (s *CatalogService) Movies() []models.CatalogItem {
	return s.loadCollection(constants.CollectionMovies)
}

// Webseries returns the web-series collection.
func (s *CatalogService) Webseries() []models.CatalogItem {
	return s.loadCollection(constants.CollectionWebseries)
}

// Carousel returns the carousel banner collection.
func (s *CatalogService) Carousel() []models.CatalogItem {
	return s.loadCollection(constants.CollectionCarousel)
}

// ContinueWatching returns the sample continue-watching collection, used
// for users without recorded progress.
func (s *CatalogService) ContinueWatching() []models.CatalogItem {
	return s.loadCollection(constants.CollectionContinueWatching)
}

// MoviesByCategory returns the movies carrying the given category tag.
func (s *CatalogService) MoviesByCategory(category string) []models.CatalogItem {
	return filterByCategory(s.Movies(), category)
}

func filterByCategory(items []models.CatalogItem, category string) []models.CatalogItem {
	filtered := make([]models.CatalogItem, 0, len(items))
	for _, item := range items {
		if item.Category == category {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// loadCollection reads and parses one collection file. A missing or corrupt
// file degrades to an empty collection so pages still render.
func (s *CatalogService) loadCollection(name string) []models.CatalogItem {
	if cached, ok := s.cache.Get(name); ok {
		if items, ok := cached.([]models.CatalogItem); ok {
			return items
		}
	}

	items, err := s.readFile(name)
	if err != nil {
		s.logger.Errorf("[Catalog] failed to load %s: %v", name, err)
		return []models.CatalogItem{}
	}

	s.cache.Set(name, items)
	s.logger.Debugf("[Catalog] loaded %d items from %s.json", len(items), name)
	return items
}

func (s *CatalogService) readFile(name string) ([]models.CatalogItem, error) {
	path := filepath.Join(s.dataDir, name+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var items []models.CatalogItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return items, nil
}

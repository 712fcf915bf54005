package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamflix/streamflix/internal/models"
)

func (h *Handler) apiMovies(c *gin.Context) {
	movies := h.services.Catalog.Movies()
	h.services.Logger.Debugf("[CatalogHandler] returning %d movies", len(movies))
	c.JSON(http.StatusOK, movies)
}

func (h *Handler) apiWebseries(c *gin.Context) {
	webseries := h.services.Catalog.Webseries()
	h.services.Logger.Debugf("[CatalogHandler] returning %d webseries", len(webseries))
	c.JSON(http.StatusOK, webseries)
}

func (h *Handler) apiCarousel(c *gin.Context) {
	carousel := h.services.Catalog.Carousel()
	h.services.Logger.Debugf("[CatalogHandler] returning %d carousel items", len(carousel))
	c.JSON(http.StatusOK, carousel)
}

// apiContinueWatching returns the user's recorded progress, falling back to
// the static sample collection for users without any.
func (h *Handler) apiContinueWatching(c *gin.Context) {
	user := h.currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	c.JSON(http.StatusOK, h.continueWatching(user.ID))
}

// continueWatching builds the continue-watching row for a user.
func (h *Handler) continueWatching(userID uint) []models.CatalogItem {
	records, err := h.services.Progress.ListProgress(userID)
	if err != nil {
		h.services.Logger.Errorf("[CatalogHandler] failed to list progress: %v", err)
		records = nil
	}

	if len(records) == 0 {
		return h.services.Catalog.ContinueWatching()
	}

	items := make([]models.CatalogItem, 0, len(records))
	for i := range records {
		p := &records[i]
		items = append(items, models.CatalogItem{
			ID:       p.ItemID,
			Title:    p.Title,
			Image:    p.Poster,
			Progress: p.Percent(),
			Date:     p.UpdatedAt.Format("Jan 2, 2006"),
		})
	}
	return items
}

// apiSaveProgress upserts the caller's playback position for one item.
func (h *Handler) apiSaveProgress(c *gin.Context) {
	user := h.currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var update models.ProgressUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record := &models.WatchProgress{
		UserID:   user.ID,
		ItemID:   update.ItemID,
		Title:    update.Title,
		Poster:   update.Poster,
		Position: update.Position,
		Duration: update.Duration,
	}
	if err := h.services.Progress.SaveProgress(record); err != nil {
		h.services.Logger.Errorf("[CatalogHandler] failed to save progress: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save progress"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// apiDeleteProgress removes one item from the caller's continue-watching row.
func (h *Handler) apiDeleteProgress(c *gin.Context) {
	user := h.currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := h.services.Progress.DeleteProgress(user.ID, c.Param("id")); err != nil {
		h.services.Logger.Errorf("[CatalogHandler] failed to delete progress: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete progress"})
		return
	}

	c.Status(http.StatusNoContent)
}

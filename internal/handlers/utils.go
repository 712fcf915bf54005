package handlers

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/streamflix/streamflix/internal/constants"
	"github.com/streamflix/streamflix/internal/models"
)

// Flash is one queued user-visible message with a display category
// (success, danger, info).
type Flash struct {
	Category string
	Message  string
}

const flashSeparator = "|"

// addFlash queues a message for the next rendered page.
func (h *Handler) addFlash(c *gin.Context, category, message string) {
	session := sessions.Default(c)
	session.AddFlash(category + flashSeparator + message)
	if err := session.Save(); err != nil {
		h.services.Logger.Errorf("[Handler] failed to save session: %v", err)
	}
}

// flashes drains the queued messages.
func (h *Handler) flashes(c *gin.Context) []Flash {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(); err != nil {
		h.services.Logger.Errorf("[Handler] failed to save session: %v", err)
	}

	flashes := make([]Flash, 0, len(raw))
	for _, entry := range raw {
		s, ok := entry.(string)
		if !ok {
			continue
		}
		category, message := "info", s
		if idx := strings.Index(s, flashSeparator); idx >= 0 {
			category, message = s[:idx], s[idx+1:]
		}
		flashes = append(flashes, Flash{Category: category, Message: message})
	}
	return flashes
}

// currentUser resolves the logged-in user from the session, clearing the
// session when the account no longer exists.
func (h *Handler) currentUser(c *gin.Context) *models.User {
	session := sessions.Default(c)
	v := session.Get(constants.SessionKeyAuthUserID)
	if v == nil {
		return nil
	}

	userID, ok := v.(uint)
	if !ok {
		return nil
	}

	user, err := h.services.DB.FindUserByID(userID)
	if err != nil {
		h.services.Logger.Errorf("[Handler] user lookup failed: %v", err)
		return nil
	}
	if user == nil {
		session.Clear()
		session.Save()
		return nil
	}
	return user
}

// isAuthenticated reports whether the session carries a login.
func isAuthenticated(c *gin.Context) bool {
	return sessions.Default(c).Get(constants.SessionKeyAuthUserID) != nil
}

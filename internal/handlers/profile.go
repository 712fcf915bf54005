package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/streamflix/streamflix/internal/constants"
	"github.com/streamflix/streamflix/internal/models"
	"github.com/streamflix/streamflix/internal/services"
)

func (h *Handler) handleProfile(c *gin.Context) {
	user := h.currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.HTML(http.StatusOK, "profile.html", gin.H{
		"user":    user,
		"flashes": h.flashes(c),
	})
}

func (h *Handler) showSettings(c *gin.Context) {
	user := h.currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.HTML(http.StatusOK, "settings.html", gin.H{
		"user":    user,
		"flashes": h.flashes(c),
	})
}

// handleSettings updates display name, profile picture and optionally the
// password in one submission, mirroring the settings form.
func (h *Handler) handleSettings(c *gin.Context) {
	user := h.currentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if name := c.PostForm("name"); len(name) >= constants.MinNameLength {
		user.Name = name
	}

	if filename, err := h.storeProfilePicture(c, user.ID); err != nil {
		h.services.Logger.Errorf("[Settings] upload failed: %v", err)
		h.addFlash(c, "danger", "Failed to upload profile picture")
	} else if filename != "" {
		user.ProfilePicture = filename
	}

	h.applyPasswordChange(c, user)

	if err := h.services.DB.SaveUser(user); err != nil {
		h.services.Logger.Errorf("[Settings] save failed: %v", err)
		h.addFlash(c, "danger", "An error occurred. Please try again.")
		c.Redirect(http.StatusFound, "/settings")
		return
	}

	h.addFlash(c, "success", "Profile updated successfully!")
	c.Redirect(http.StatusFound, "/settings")
}

// storeProfilePicture saves an uploaded picture under the upload directory,
// returning the stored filename or "" when no file was submitted.
func (h *Handler) storeProfilePicture(c *gin.Context, userID uint) (string, error) {
	file, err := c.FormFile("profile_picture")
	if err != nil || file.Filename == "" {
		return "", nil
	}

	if err := os.MkdirAll(h.config.UploadDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	filename := fmt.Sprintf("user_%d_%s_%s",
		userID, time.Now().Format("20060102150405"), filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(h.config.UploadDir, filename)); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	return filename, nil
}

// applyPasswordChange handles the optional password section of the settings
// form: requires the current password and a matching confirmation.
func (h *Handler) applyPasswordChange(c *gin.Context, user *models.User) {
	current := c.PostForm("current_password")
	newPassword := c.PostForm("new_password")
	confirm := c.PostForm("confirm_password")

	if current == "" || newPassword == "" {
		return
	}

	if !services.CheckPassword(user.Password, current) {
		h.addFlash(c, "danger", "Current password is incorrect")
		return
	}
	if newPassword != confirm {
		h.addFlash(c, "danger", "New passwords do not match")
		return
	}

	hash, err := services.HashPassword(newPassword)
	if err != nil {
		h.services.Logger.Errorf("[Settings] hashing failed: %v", err)
		h.addFlash(c, "danger", "An error occurred. Please try again.")
		return
	}

	user.Password = hash
	h.addFlash(c, "success", "Password updated successfully!")
}

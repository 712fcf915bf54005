package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/streamflix/streamflix/internal/constants"
	"github.com/streamflix/streamflix/internal/database"
	"github.com/streamflix/streamflix/internal/models"
	"github.com/streamflix/streamflix/internal/services"
	"github.com/streamflix/streamflix/pkg/security"
)

func (h *Handler) showLogin(c *gin.Context) {
	if isAuthenticated(c) {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{"flashes": h.flashes(c)})
}

func (h *Handler) handleLogin(c *gin.Context) {
	if isAuthenticated(c) {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var form models.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		h.addFlash(c, "danger", "Invalid email or password")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	user, err := h.services.DB.FindUserByEmail(form.Email)
	if err != nil {
		h.services.Logger.Errorf("[Auth] login lookup failed: %v", err)
		h.addFlash(c, "danger", "An error occurred. Please try again.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if user == nil || !services.CheckPassword(user.Password, form.Password) {
		h.addFlash(c, "danger", "Invalid email or password")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	session := sessions.Default(c)
	if form.Remember != "" {
		session.Options(sessions.Options{
			Path:     "/",
			MaxAge:   constants.SessionMaxAge,
			HttpOnly: true,
		})
	}
	session.Set(constants.SessionKeyAuthUserID, user.ID)
	if err := session.Save(); err != nil {
		h.services.Logger.Errorf("[Auth] failed to save session: %v", err)
		c.HTML(http.StatusInternalServerError, "500.html", gin.H{})
		return
	}

	h.services.Logger.Infof("[Auth] login for %s", security.MaskEmail(user.Email))
	h.addFlash(c, "success", "Login successful! Welcome back.")
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) showRegister(c *gin.Context) {
	if isAuthenticated(c) {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "register.html", gin.H{"flashes": h.flashes(c)})
}

func (h *Handler) handleRegister(c *gin.Context) {
	if isAuthenticated(c) {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var form models.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		h.addFlash(c, "danger", "Please fill in all fields")
		c.Redirect(http.StatusFound, "/register")
		return
	}

	if msg := validateRegistration(&form); msg != "" {
		h.addFlash(c, "danger", msg)
		c.Redirect(http.StatusFound, "/register")
		return
	}

	hash, err := services.HashPassword(form.Password)
	if err != nil {
		h.services.Logger.Errorf("[Auth] hashing failed: %v", err)
		h.addFlash(c, "danger", "An error occurred. Please try again.")
		c.Redirect(http.StatusFound, "/register")
		return
	}

	user := &models.User{
		Name:           form.Name,
		Email:          form.Email,
		Password:       hash,
		ProfilePicture: "default.jpg",
		Subscription:   "Free",
		WatchHistory:   "[]",
		Watchlist:      "[]",
	}

	switch err := h.services.DB.CreateUser(user); err {
	case nil:
		h.services.Logger.Infof("[Auth] registered %s", security.MaskEmail(user.Email))
		h.addFlash(c, "success", "Registration successful! Please login.")
		c.Redirect(http.StatusFound, "/login")
	case database.ErrDuplicateEmail:
		h.addFlash(c, "danger", "Email already registered")
		c.Redirect(http.StatusFound, "/register")
	default:
		h.services.Logger.Errorf("[Auth] registration failed: %v", err)
		h.addFlash(c, "danger", "An error occurred. Please try again.")
		c.Redirect(http.StatusFound, "/register")
	}
}

func validateRegistration(form *models.RegisterForm) string {
	if len(form.Name) < constants.MinNameLength {
		return "Please enter a valid name (min 2 characters)"
	}
	if !strings.Contains(form.Email, "@") {
		return "Please enter a valid email address"
	}
	if len(form.Password) < constants.MinPasswordLength {
		return "Password must be at least 6 characters"
	}
	if form.Password != form.ConfirmPassword {
		return "Passwords do not match"
	}
	return ""
}

func (h *Handler) handleLogout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		h.services.Logger.Errorf("[Auth] failed to clear session: %v", err)
	}
	h.addFlash(c, "info", "You have been logged out")
	c.Redirect(http.StatusFound, "/login")
}

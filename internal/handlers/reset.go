package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/streamflix/streamflix/internal/constants"
	"github.com/streamflix/streamflix/internal/errors"
	"github.com/streamflix/streamflix/internal/models"
)

// resetState is the session-held state threading the three reset steps.
// The verify step is reachable once Email is set; the commit step only when
// Verified is true and UserID resolves to an existing account.
type resetState struct {
	Email    string
	Verified bool
	UserID   uint
}

func loadResetState(c *gin.Context) resetState {
	session := sessions.Default(c)
	state := resetState{}

	if v, ok := session.Get(constants.SessionKeyResetEmail).(string); ok {
		state.Email = v
	}
	if v, ok := session.Get(constants.SessionKeyOTPVerified).(bool); ok {
		state.Verified = v
	}
	if v, ok := session.Get(constants.SessionKeyUserID).(uint); ok {
		state.UserID = v
	}
	return state
}

func (h *Handler) saveResetState(c *gin.Context, state resetState) {
	session := sessions.Default(c)
	session.Set(constants.SessionKeyResetEmail, state.Email)
	session.Set(constants.SessionKeyOTPVerified, state.Verified)
	if state.UserID != 0 {
		session.Set(constants.SessionKeyUserID, state.UserID)
	}
	if err := session.Save(); err != nil {
		h.services.Logger.Errorf("[Reset] failed to save session: %v", err)
	}
}

func (h *Handler) clearResetState(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(constants.SessionKeyResetEmail)
	session.Delete(constants.SessionKeyOTPVerified)
	session.Delete(constants.SessionKeyUserID)
	if err := session.Save(); err != nil {
		h.services.Logger.Errorf("[Reset] failed to save session: %v", err)
	}
}

func (h *Handler) showForgotPassword(c *gin.Context) {
	c.HTML(http.StatusOK, "forgot_password.html", gin.H{"flashes": h.flashes(c)})
}

// handleForgotPassword is the request step: issue a code and mail it.
func (h *Handler) handleForgotPassword(c *gin.Context) {
	var form models.ForgotPasswordForm
	if err := c.ShouldBind(&form); err != nil {
		h.addFlash(c, "danger", "Please enter your email address")
		c.Redirect(http.StatusFound, "/forgot-password")
		return
	}

	err := h.services.Reset.Request(form.Email)
	switch {
	case err == nil:
		h.saveResetState(c, resetState{Email: form.Email})
		h.addFlash(c, "success", "OTP sent to your email!")
		c.Redirect(http.StatusFound, "/verify-otp")
	case errors.IsType(err, errors.ErrorTypeIdentityNotFound):
		h.addFlash(c, "danger", "Email not found in our system")
		c.Redirect(http.StatusFound, "/forgot-password")
	case errors.IsType(err, errors.ErrorTypeDispatchFailed):
		h.addFlash(c, "danger", "Failed to send OTP. Please try again.")
		c.Redirect(http.StatusFound, "/forgot-password")
	default:
		h.services.Logger.Errorf("[Reset] request step failed: %v", err)
		h.addFlash(c, "danger", "An error occurred. Please try again.")
		c.Redirect(http.StatusFound, "/forgot-password")
	}
}

func (h *Handler) showVerifyOTP(c *gin.Context) {
	state := loadResetState(c)
	if state.Email == "" {
		c.Redirect(http.StatusFound, "/forgot-password")
		return
	}
	c.HTML(http.StatusOK, "verify_otp.html", gin.H{
		"flashes": h.flashes(c),
		"email":   state.Email,
	})
}

// handleVerifyOTP is the verify step: check the submitted code.
func (h *Handler) handleVerifyOTP(c *gin.Context) {
	state := loadResetState(c)
	if state.Email == "" {
		c.Redirect(http.StatusFound, "/forgot-password")
		return
	}

	var form models.VerifyOTPForm
	if err := c.ShouldBind(&form); err != nil {
		h.addFlash(c, "danger", "Please enter the OTP")
		c.Redirect(http.StatusFound, "/verify-otp")
		return
	}

	user, err := h.services.Reset.Verify(state.Email, form.OTP)
	switch {
	case err == nil:
		state.Verified = true
		state.UserID = user.ID
		h.saveResetState(c, state)
		c.Redirect(http.StatusFound, "/reset-password")
	case errors.IsType(err, errors.ErrorTypeChallengeMismatch):
		// wrong code keeps the challenge alive, the user may retry
		h.addFlash(c, "danger", "Invalid OTP")
		c.Redirect(http.StatusFound, "/verify-otp")
	case errors.IsType(err, errors.ErrorTypeChallengeExpired):
		h.addFlash(c, "danger", "OTP has expired")
		c.Redirect(http.StatusFound, "/forgot-password")
	default:
		h.addFlash(c, "danger", "OTP expired or not found")
		c.Redirect(http.StatusFound, "/forgot-password")
	}
}

func (h *Handler) showResetPassword(c *gin.Context) {
	user := h.resolveVerifiedUser(c)
	if user == nil {
		return
	}
	c.HTML(http.StatusOK, "reset_password.html", gin.H{
		"flashes": h.flashes(c),
		"user":    user,
	})
}

// handleResetPassword is the commit step: store the new password and tear
// down the reset session.
func (h *Handler) handleResetPassword(c *gin.Context) {
	user := h.resolveVerifiedUser(c)
	if user == nil {
		return
	}

	var form models.ResetPasswordForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "reset_password.html", gin.H{
			"flashes": []Flash{{Category: "danger", Message: "Please fill in both fields"}},
			"user":    user,
		})
		return
	}

	err := h.services.Reset.Commit(user.ID, form.NewPassword, form.ConfirmPassword)
	switch {
	case err == nil:
		h.clearResetState(c)
		h.addFlash(c, "success", "Password reset successful! Please login with your new password.")
		c.Redirect(http.StatusFound, "/login")
	case errors.IsType(err, errors.ErrorTypeValidationFailed):
		c.HTML(http.StatusOK, "reset_password.html", gin.H{
			"flashes": []Flash{{Category: "danger", Message: userMessage(err)}},
			"user":    user,
		})
	default:
		h.services.Logger.Errorf("[Reset] commit step failed: %v", err)
		c.HTML(http.StatusOK, "reset_password.html", gin.H{
			"flashes": []Flash{{Category: "danger", Message: "An error occurred. Please try again."}},
			"user":    user,
		})
	}
}

// resolveVerifiedUser enforces the commit-step precondition: a verified
// session whose user id resolves to an existing account. On failure the
// caller is redirected back to the request step.
func (h *Handler) resolveVerifiedUser(c *gin.Context) *models.User {
	state := loadResetState(c)
	if !state.Verified || state.UserID == 0 {
		c.Redirect(http.StatusFound, "/forgot-password")
		return nil
	}

	user, err := h.services.DB.FindUserByID(state.UserID)
	if err != nil {
		h.services.Logger.Errorf("[Reset] user lookup failed: %v", err)
		c.Redirect(http.StatusFound, "/forgot-password")
		return nil
	}
	if user == nil {
		c.Redirect(http.StatusFound, "/forgot-password")
		return nil
	}
	return user
}

// userMessage extracts the user-facing message from a validation error.
func userMessage(err error) string {
	var fe *errors.FlowError
	if stderrors.As(err, &fe) {
		return fe.Message
	}
	return "Invalid input"
}

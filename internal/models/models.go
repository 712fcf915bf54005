// Package models defines the persistent and wire-level data structures.
package models

import (
	"encoding/json"
	"time"
)

// User is a registered account, keyed by unique email.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Email          string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password       string    `gorm:"size:200;not null" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	ProfilePicture string    `gorm:"size:200;default:default.jpg" json:"profile_picture"`
	Subscription   string    `gorm:"size:50;default:Free" json:"subscription"`
	WatchHistory   string    `gorm:"type:text;default:[]" json:"-"`
	Watchlist      string    `gorm:"type:text;default:[]" json:"-"`
}

// WatchHistoryIDs decodes the serialized watch history column.
func (u *User) WatchHistoryIDs() []string {
	return decodeIDList(u.WatchHistory)
}

// WatchlistIDs decodes the serialized watchlist column.
func (u *User) WatchlistIDs() []string {
	return decodeIDList(u.Watchlist)
}

func decodeIDList(raw string) []string {
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return []string{}
	}
	return ids
}

// CatalogItem is one entry of a catalog collection. The JSON files are
// hand-maintained, so most fields are optional.
type CatalogItem struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Category    string   `json:"category,omitempty"`
	Poster      string   `json:"poster,omitempty"`
	Image       string   `json:"image,omitempty"`
	HeroBG      string   `json:"hero_bg,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	Genre       string   `json:"genre,omitempty"`
	Rating      string   `json:"rating,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Quality     string   `json:"quality,omitempty"`
	Description string   `json:"description,omitempty"`
	Cast        string   `json:"cast,omitempty"`
	Year        int      `json:"year,omitempty"`
	Seasons     int      `json:"seasons,omitempty"`
	Episodes    int      `json:"episodes,omitempty"`
	Date        string   `json:"date,omitempty"`
	Progress    int      `json:"progress,omitempty"`
}

// WatchProgress records how far a user got into a catalog item.
type WatchProgress struct {
	UserID    uint      `json:"user_id"`
	ItemID    string    `json:"item_id"`
	Title     string    `json:"title"`
	Poster    string    `json:"poster,omitempty"`
	Position  int       `json:"position"`
	Duration  int       `json:"duration"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Percent returns the completed share of the item, clamped to 0-100.
func (p *WatchProgress) Percent() int {
	if p.Duration <= 0 {
		return 0
	}
	pct := p.Position * 100 / p.Duration
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Form payloads bound from HTML forms.

type LoginForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
	Remember string `form:"remember"`
}

type RegisterForm struct {
	Name            string `form:"name" binding:"required"`
	Email           string `form:"email" binding:"required"`
	Password        string `form:"password" binding:"required"`
	ConfirmPassword string `form:"confirm_password" binding:"required"`
}

type ForgotPasswordForm struct {
	Email string `form:"email" binding:"required"`
}

type VerifyOTPForm struct {
	OTP string `form:"otp" binding:"required"`
}

type ResetPasswordForm struct {
	NewPassword     string `form:"new_password" binding:"required"`
	ConfirmPassword string `form:"confirm_password" binding:"required"`
}

type ProgressUpdate struct {
	ItemID   string `json:"item_id" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Poster   string `json:"poster"`
	Position int    `json:"position" binding:"min=0"`
	Duration int    `json:"duration" binding:"min=0"`
}

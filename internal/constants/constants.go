// Package constants defines application-wide constants and default values.
package constants

const (
	// Application metadata
	AppName = "StreamFlix"

	// Default configuration values
	DefaultPort     = "5000"
	DefaultLogLevel = "info"

	// Storage defaults
	DefaultDatabasePath = "users.db"
	DefaultProgressPath = "progress.db"
	DefaultDataDir      = "data"
	DefaultUploadDir    = "static/uploads"

	// Session settings
	SessionName   = "streamflix_session"
	SessionMaxAge = 7 * 24 * 3600 // seconds

	// Password reset settings
	OTPLength               = 6
	DefaultOTPExpiryMinutes = 10
	ResetMailSubject        = "StreamFlix - Password Reset OTP"

	// Validation limits
	MinPasswordLength = 6
	MinNameLength     = 2

	// Mail defaults
	DefaultMailServer = "smtp.gmail.com"
	DefaultMailPort   = 587

	// Catalog cache settings
	DefaultCacheSize = 100
	DefaultCacheTTL  = 5 // minutes

	// Rate limiting for OTP requests
	ResetRateLimit = 1 // requests per second per client
	ResetRateBurst = 5 // burst capacity per client
)

// Session keys. The login key is distinct from the reset flow's user_id so
// that verifying an OTP never counts as a login.
const (
	SessionKeyAuthUserID  = "_user_id"
	SessionKeyUserID      = "user_id"
	SessionKeyResetEmail  = "reset_email"
	SessionKeyOTPVerified = "otp_verified"
)

// Catalog collection names, matching the JSON files under the data directory.
const (
	CollectionMovies           = "movies"
	CollectionWebseries        = "webseries"
	CollectionCarousel         = "carousel"
	CollectionContinueWatching = "continue_watching"
)

// Movie categories shown as home page rows.
const (
	CategoryTopTen   = "top-ten"
	CategoryUpcoming = "upcoming"
	CategoryTrending = "trending"
)

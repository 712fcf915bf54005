package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/streamflix/streamflix/internal/constants"
	"github.com/streamflix/streamflix/internal/database"
	"github.com/streamflix/streamflix/internal/errors"
	"github.com/streamflix/streamflix/internal/models"
	"github.com/streamflix/streamflix/internal/otp"
	"github.com/streamflix/streamflix/pkg/logger"
	"github.com/streamflix/streamflix/pkg/security"
)

// ResetService orchestrates the password-reset sequence: request a code,
// verify it, commit the new password. Session state threading the three
// HTTP round trips lives with the handlers; this service owns the
// per-step semantics and the error taxonomy.
type ResetService struct {
	db            database.Database
	ledger        *otp.Ledger
	mailer        Mailer
	logger        logger.Logger
	expiryMinutes int
}

// NewReset creates a reset service. expiryMinutes is quoted in the
// notification mail and must match the ledger TTL.
func NewReset(db database.Database, ledger *otp.Ledger, mailer Mailer, expiryMinutes int, log logger.Logger) *ResetService {
	return &ResetService{
		db:            db,
		ledger:        ledger,
		mailer:        mailer,
		logger:        log,
		expiryMinutes: expiryMinutes,
	}
}

// Request looks up the account for email, issues a fresh code and mails it.
// No challenge is created when the email is unknown. A second request for
// the same email silently replaces the pending challenge.
func (s *ResetService) Request(email string) error {
	user, err := s.db.FindUserByEmail(email)
	if err != nil {
		return errors.NewStorageError("account lookup failed", err)
	}
	if user == nil {
		return errors.NewIdentityNotFoundError(email)
	}

	code := s.ledger.Issue(email)

	body := fmt.Sprintf(`Hello %s,

Your OTP for password reset is: %s

This OTP will expire in %d minutes.

If you didn't request this, please ignore this email.

Best regards,
%s Team`, user.Name, code, s.expiryMinutes, constants.AppName)

	if err := s.mailer.Send(email, constants.ResetMailSubject, body); err != nil {
		s.logger.Errorf("[Reset] dispatch failed for %s: %v", security.MaskEmail(email), err)
		return errors.NewDispatchFailedError(err)
	}

	s.logger.Infof("[Reset] OTP issued for %s", security.MaskEmail(email))
	return nil
}

// Verify checks the submitted code for email and, on success, resolves the
// account it belongs to. Wrong codes keep the challenge alive for retries;
// expired or missing challenges force a new request.
func (s *ResetService) Verify(email, code string) (*models.User, error) {
	switch s.ledger.Verify(email, code) {
	case otp.Verified:
		// fall through to account resolution
	case otp.Mismatch:
		return nil, errors.NewChallengeMismatchError()
	case otp.Expired:
		return nil, errors.NewChallengeExpiredError()
	default:
		return nil, errors.NewChallengeNotFoundError()
	}

	user, err := s.db.FindUserByEmail(email)
	if err != nil {
		return nil, errors.NewStorageError("account lookup failed", err)
	}
	if user == nil {
		// account deleted between issue and verify
		return nil, errors.NewIdentityNotFoundError(email)
	}

	s.logger.Infof("[Reset] OTP verified for %s", security.MaskEmail(email))
	return user, nil
}

// Commit validates and stores the new password for the verified account.
// The write is a single column update, so a storage failure leaves the old
// password in place.
func (s *ResetService) Commit(userID uint, password, confirm string) error {
	if err := ValidatePassword(password, confirm); err != nil {
		return err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return errors.NewStorageError("failed to hash password", err)
	}

	if err := s.db.UpdatePassword(userID, hash); err != nil {
		return errors.NewStorageError("failed to store new password", err)
	}

	s.logger.Infof("[Reset] password updated for user %d", userID)
	return nil
}

// ValidatePassword enforces the password rules shared by registration,
// settings and reset: minimum length and matching confirmation.
func ValidatePassword(password, confirm string) error {
	if len(password) < constants.MinPasswordLength {
		return errors.NewValidationError(
			fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	}
	if password != confirm {
		return errors.NewValidationError("Passwords do not match")
	}
	return nil
}

// HashPassword returns a salted bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

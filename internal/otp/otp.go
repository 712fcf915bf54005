// Package otp implements the one-time passcode ledger used by the
// password-reset flow. Challenges live in process memory only: they do not
// survive a restart and are never persisted.
package otp

import (
	"context"
	"crypto/rand"
	"math/big"
	"sync"
	"time"
)

// CodeLength is the number of decimal digits in a generated passcode.
const CodeLength = 6

// Outcome is the result of verifying a submitted code.
type Outcome int

const (
	// Verified means the code matched before expiry; the entry is consumed.
	Verified Outcome = iota
	// Mismatch means the code was wrong; the entry stays for retries.
	Mismatch
	// Expired means the entry outlived its TTL; it is removed.
	Expired
	// NotFound means no challenge exists for the email.
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Verified:
		return "verified"
	case Mismatch:
		return "mismatch"
	case Expired:
		return "expired"
	default:
		return "not found"
	}
}

type challenge struct {
	code      string
	expiresAt time.Time
}

// Ledger tracks at most one pending challenge per email. A reissue for the
// same email overwrites the previous challenge (last request wins).
type Ledger struct {
	mu      sync.Mutex
	entries map[string]challenge
	ttl     time.Duration
	now     func() time.Time
}

// NewLedger creates a ledger whose challenges expire after ttl.
func NewLedger(ttl time.Duration) *Ledger {
	return &Ledger{
		entries: make(map[string]challenge),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Issue generates a fresh code for email, replacing any pending challenge.
// Codes are not unique across emails or across time; collisions are fine.
func (l *Ledger) Issue(email string) string {
	code := GenerateCode()

	l.mu.Lock()
	l.entries[email] = challenge{
		code:      code,
		expiresAt: l.now().Add(l.ttl),
	}
	l.mu.Unlock()

	return code
}

// Verify checks a submitted code against the pending challenge for email.
// Codes are compared as literal strings; leading zeros are significant.
func (l *Ledger) Verify(email, submitted string) Outcome {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[email]
	if !ok {
		return NotFound
	}

	if l.now().After(entry.expiresAt) {
		delete(l.entries, email)
		return Expired
	}

	if submitted != entry.code {
		return Mismatch
	}

	delete(l.entries, email)
	return Verified
}

// Len returns the number of pending challenges.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// CleanExpired removes challenges whose expiry has passed. Without this an
// instance issuing many never-verified challenges would grow for the
// process lifetime.
func (l *Ledger) CleanExpired() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for email, entry := range l.entries {
		if now.After(entry.expiresAt) {
			delete(l.entries, email)
		}
	}
}

// StartCleanup sweeps expired challenges on the given interval until the
// context is cancelled.
func (l *Ledger) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.CleanExpired()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// GenerateCode returns a 6-digit decimal code, each digit drawn
// independently so leading zeros are possible.
func GenerateCode() string {
	digits := make([]byte, CodeLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand only fails when the platform source is broken
			panic("otp: random source unavailable: " + err.Error())
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits)
}

package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// UsernamePattern defines the allowed username format:
// letters, digits, underscore and hyphen, 3-32 characters.
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,32}$`)

const (
	// MinUsernameLen is the minimum username length
	MinUsernameLen = 3
	// MaxUsernameLen is the maximum username length
	MaxUsernameLen = 32

	// MinPasswordLen is the minimum password length
	MinPasswordLen = 8
	// MaxPasswordLen is the maximum password length
	MaxPasswordLen = 128

	// MinRating and MaxRating bound a review rating (inclusive)
	MinRating = 1
	MaxRating = 10
)

// ValidateUsername checks that a username matches the allowed format.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if len(username) < MinUsernameLen {
		return fmt.Errorf("username must be at least %d characters long", MinUsernameLen)
	}

	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}

	if !UsernamePattern.MatchString(username) {
		return fmt.Errorf("username can only contain letters, numbers, underscores and hyphens")
	}

	return nil
}

// ValidateEmail checks the minimal shape of an email address. The backend
// performs the authoritative validation; this only catches obvious typos
// before a request goes out.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("email address is not valid")
	}

	domain := email[at+1:]
	if !strings.Contains(domain, ".") || strings.ContainsAny(email, " \t") {
		return fmt.Errorf("email address is not valid")
	}

	return nil
}

// ValidatePassword checks the minimum password requirements.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}

	if len(password) > MaxPasswordLen {
		return fmt.Errorf("password must not exceed %d characters", MaxPasswordLen)
	}

	return nil
}

// ValidateRating checks that a review rating is within 1-10.
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("rating must be between %d and %d", MinRating, MaxRating)
	}
	return nil
}

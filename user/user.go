package user

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"top250/errs"
)

const (
	MinUsernameLength = 2
	MaxUsernameLength = 20
	MinPasswordLength = 6
	// bcrypt ignores input past 72 bytes.
	MaxPasswordLength = 72
)

var (
	ErrUsernameRequired       = errs.Errorf(errs.EINVALID, "user: username is required")
	ErrInvalidUsername        = errs.Errorf(errs.EINVALID, "user: username must be 2-20 characters")
	ErrEmailRequired          = errs.Errorf(errs.EINVALID, "user: email is required")
	ErrInvalidEmail           = errs.Errorf(errs.EINVALID, "user: invalid email")
	ErrPasswordRequired       = errs.Errorf(errs.EINVALID, "user: password is required")
	ErrInvalidPassword        = errs.Errorf(errs.EINVALID, "user: password must be 6-72 characters")
	ErrDuplicateUser          = errs.Errorf(errs.ECONFLICT, "user: username or email already registered")
	ErrUserNotFound           = errs.Errorf(errs.ENOTFOUND, "user: not found")
	ErrCurrentPasswordInvalid = errs.Errorf(errs.EUNAUTHORIZED, "user: invalid username or password")
	ErrServiceNotReady        = errs.Errorf(errs.ENOTIMPLEMENTED, "user service not configured")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// User is an account record. PasswordHash never leaves the process.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrUsernameRequired
	}
	n := utf8.RuneCountInString(username)
	if n < MinUsernameLength || n > MaxUsernameLength {
		return ErrInvalidUsername
	}
	return nil
}

func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

func ValidatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if utf8.RuneCountInString(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return ErrInvalidPassword
	}
	return nil
}

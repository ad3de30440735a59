package user

import (
	"context"
	"errors"
	"strings"
	"time"
)

type Service interface {
	Register(ctx context.Context, username, email, password string) (User, error)
	ChangePassword(ctx context.Context, login, currentPassword, newPassword string) error
}

type Repository interface {
	// Create returns ErrDuplicateUser when the username or email is taken.
	Create(ctx context.Context, u User) (User, error)
	// GetByLogin matches login against the username first, then the email.
	GetByLogin(ctx context.Context, login string) (User, error)
	UpdatePasswordHash(ctx context.Context, username, passwordHash string, updatedAt time.Time) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashed, plain string) error
}

type Usecase struct {
	r      Repository
	hasher PasswordHasher
	now    func() time.Time
}

func NewUsecase(r Repository, h PasswordHasher) *Usecase {
	return &Usecase{
		r:      r,
		hasher: h,
		now: func() time.Time {
			// every store keeps at least millisecond precision
			return time.Now().UTC().Truncate(time.Millisecond)
		},
	}
}

func (uc *Usecase) Register(ctx context.Context, username, email, password string) (User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if err := ValidateUsername(username); err != nil {
		return User{}, err
	}
	if err := ValidateEmail(email); err != nil {
		return User{}, err
	}
	if err := ValidatePassword(password); err != nil {
		return User{}, err
	}

	hashed, err := uc.hasher.Hash(password)
	if err != nil {
		return User{}, err
	}

	now := uc.now()
	return uc.r.Create(ctx, User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (uc *Usecase) ChangePassword(ctx context.Context, login, currentPassword, newPassword string) error {
	login = strings.TrimSpace(login)
	if login == "" {
		return ErrUsernameRequired
	}
	if currentPassword == "" {
		return ErrPasswordRequired
	}
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	existing, err := uc.r.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrCurrentPasswordInvalid
		}
		return err
	}
	if err := uc.hasher.Compare(existing.PasswordHash, currentPassword); err != nil {
		return ErrCurrentPasswordInvalid
	}

	hashed, err := uc.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return uc.r.UpdatePasswordHash(ctx, existing.Username, hashed, uc.now())
}

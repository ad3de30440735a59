package auth

import (
	"context"
	"errors"
	"strings"

	"top250/errs"
	"top250/user"
)

var (
	ErrLoginRequired      = errs.Errorf(errs.EINVALID, "auth: username and password are required")
	ErrInvalidCredentials = errs.Errorf(errs.EUNAUTHORIZED, "auth: invalid username or password")
	ErrServiceNotReady    = errs.Errorf(errs.ENOTIMPLEMENTED, "auth service not configured")
)

type Service interface {
	Login(ctx context.Context, login, password string) (user.User, error)
}

type UserRepository interface {
	GetByLogin(ctx context.Context, login string) (user.User, error)
}

type PasswordHasher interface {
	Compare(hashed, plain string) error
}

// Usecase verifies credentials. It issues no token; callers re-authenticate
// on every privileged action.
type Usecase struct {
	userRepo       UserRepository
	passwordHasher PasswordHasher
}

func NewUsecase(userRepo UserRepository, passwordHasher PasswordHasher) *Usecase {
	return &Usecase{
		userRepo:       userRepo,
		passwordHasher: passwordHasher,
	}
}

// Login accepts either the username or the email as login. Unknown accounts
// and wrong passwords fail with the same error.
func (uc *Usecase) Login(ctx context.Context, login, password string) (user.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return user.User{}, ErrLoginRequired
	}

	u, err := uc.userRepo.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, err
	}

	if err := uc.passwordHasher.Compare(u.PasswordHash, password); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	return u, nil
}

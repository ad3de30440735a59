package auth_test

import (
	"context"
	"errors"
	"testing"

	"top250/auth"
	"top250/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByLogin(ctx context.Context, login string) (user.User, error) {
	args := m.Called(ctx, login)
	return args.Get(0).(user.User), args.Error(1)
}

type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Compare(hashed, plain string) error {
	args := m.Called(hashed, plain)
	return args.Error(0)
}

func TestLogin(t *testing.T) {
	account := user.User{ID: "u-1", Username: "john", Email: "john@mail.com", PasswordHash: "hashed"}

	t.Run("should login with username or email", func(t *testing.T) {
		for _, login := range []string{"john", "john@mail.com"} {
			r := new(MockUserRepository)
			h := new(MockPasswordHasher)
			uc := auth.NewUsecase(r, h)

			r.On("GetByLogin", mock.Anything, login).Return(account, nil).Once()
			h.On("Compare", "hashed", "secret1").Return(nil).Once()

			got, err := uc.Login(context.Background(), login, "secret1")

			require.NoError(t, err)
			assert.Equal(t, account, got)
			r.AssertExpectations(t)
			h.AssertExpectations(t)
		}
	})

	t.Run("should reject wrong password", func(t *testing.T) {
		r := new(MockUserRepository)
		h := new(MockPasswordHasher)
		uc := auth.NewUsecase(r, h)

		r.On("GetByLogin", mock.Anything, "john").Return(account, nil).Once()
		h.On("Compare", "hashed", "nope").Return(errors.New("mismatch")).Once()

		_, err := uc.Login(context.Background(), "john", "nope")

		assert.Equal(t, auth.ErrInvalidCredentials, err)
	})

	t.Run("should reject unknown login with the same error", func(t *testing.T) {
		r := new(MockUserRepository)
		h := new(MockPasswordHasher)
		uc := auth.NewUsecase(r, h)

		r.On("GetByLogin", mock.Anything, "ghost").Return(user.User{}, user.ErrUserNotFound).Once()

		_, err := uc.Login(context.Background(), "ghost", "secret1")

		assert.Equal(t, auth.ErrInvalidCredentials, err)
		h.AssertNotCalled(t, "Compare", mock.Anything, mock.Anything)
	})

	t.Run("should propagate store failures", func(t *testing.T) {
		r := new(MockUserRepository)
		uc := auth.NewUsecase(r, new(MockPasswordHasher))
		storeErr := errors.New("server selection timeout")

		r.On("GetByLogin", mock.Anything, "john").Return(user.User{}, storeErr).Once()

		_, err := uc.Login(context.Background(), "john", "secret1")

		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("should require both fields", func(t *testing.T) {
		uc := auth.NewUsecase(new(MockUserRepository), new(MockPasswordHasher))

		_, err := uc.Login(context.Background(), " ", "secret1")
		assert.Equal(t, auth.ErrLoginRequired, err)

		_, err = uc.Login(context.Background(), "john", "")
		assert.Equal(t, auth.ErrLoginRequired, err)
	})
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"top250/user"

	"gorm.io/gorm"
)

// UserModel represents the database model for users
type UserModel struct {
	ID           string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Username     string    `gorm:"not null;unique"`
	Email        string    `gorm:"not null;unique"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// UserRepository implements user.Repository interface
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user; the unique constraints on username and email turn
// a concurrent duplicate into user.ErrDuplicateUser.
func (r *UserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	model := toModelUser(u)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return user.User{}, user.ErrDuplicateUser
		}
		return user.User{}, fmt.Errorf("postgres: insert user: %w", err)
	}
	return toDomainUser(model), nil
}

// GetByLogin looks the login up as a username, then as an email.
func (r *UserRepository) GetByLogin(ctx context.Context, login string) (user.User, error) {
	for _, column := range []string{"username", "email"} {
		var model UserModel
		err := r.db.WithContext(ctx).Where(column+" = ?", login).First(&model).Error
		if err == nil {
			return toDomainUser(model), nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, fmt.Errorf("postgres: find user by %s: %w", column, err)
		}
	}
	return user.User{}, user.ErrUserNotFound
}

// UpdatePasswordHash updates user's password hash.
func (r *UserRepository) UpdatePasswordHash(ctx context.Context, username, passwordHash string, updatedAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&UserModel{}).Where("username = ?", username).Updates(map[string]interface{}{
		"password_hash": passwordHash,
		"updated_at":    updatedAt,
	})
	if result.Error != nil {
		return fmt.Errorf("postgres: update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func toDomainUser(model UserModel) user.User {
	return user.User{
		ID:           model.ID,
		Username:     model.Username,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		CreatedAt:    model.CreatedAt.UTC(),
		UpdatedAt:    model.UpdatedAt.UTC(),
	}
}

func toModelUser(u user.User) UserModel {
	return UserModel{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

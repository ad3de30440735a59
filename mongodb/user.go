package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"top250/user"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// The hash lives under "password" to stay readable by existing records.
type userDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Username  string        `bson:"username"`
	Email     string        `bson:"email"`
	Password  string        `bson:"password"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(coll *mongo.Collection) *UserRepository {
	return &UserRepository{coll: coll}
}

// Create relies on the unique indexes from EnsureIndexes.
func (r *UserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	doc := toUserDocument(u)
	doc.ID = bson.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return user.User{}, user.ErrDuplicateUser
		}
		return user.User{}, fmt.Errorf("mongodb: insert user: %w", err)
	}
	return toDomainUser(doc), nil
}

func (r *UserRepository) GetByLogin(ctx context.Context, login string) (user.User, error) {
	for _, field := range []string{"username", "email"} {
		var doc userDocument
		err := r.coll.FindOne(ctx, bson.D{{Key: field, Value: login}}).Decode(&doc)
		if err == nil {
			return toDomainUser(doc), nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, fmt.Errorf("mongodb: find user by %s: %w", field, err)
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, username, passwordHash string, updatedAt time.Time) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "username", Value: username}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "password", Value: passwordHash},
			{Key: "updatedAt", Value: updatedAt},
		}}},
	)
	if err != nil {
		return fmt.Errorf("mongodb: update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func toDomainUser(doc userDocument) user.User {
	return user.User{
		ID:           doc.ID.Hex(),
		Username:     doc.Username,
		Email:        doc.Email,
		PasswordHash: doc.Password,
		CreatedAt:    doc.CreatedAt.UTC(),
		UpdatedAt:    doc.UpdatedAt.UTC(),
	}
}

func toUserDocument(u user.User) userDocument {
	return userDocument{
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.PasswordHash,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

//go:build integration

// nolint: funlen
package mongodb_test

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"top250/mongodb"
	"top250/movie"
	"top250/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	mongocontainer "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func skipIfNoDocker(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if exec.CommandContext(ctx, "docker", "info").Run() != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

func setupDatabase(t *testing.T) *mongo.Database {
	skipIfNoDocker(t)
	ctx := context.Background()

	cont, err := mongocontainer.RunContainer(ctx, testcontainers.WithImage("mongo:6"))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, cont.Terminate(ctx))
	})

	uri, err := cont.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongodb.NewClient(ctx, mongodb.Options{URI: uri})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Disconnect(ctx)
	})

	return client.Database("movies_test")
}

func TestMovieRepository(t *testing.T) {
	db := setupDatabase(t)
	ctx := context.Background()
	repo := mongodb.NewMovieRepository(db.Collection("top250"))

	titles := []string{"Inception", "Interstellar", "The Prestige", "Memento", "Tenet"}
	ids := make([]string, len(titles))
	for i, title := range titles {
		created, err := repo.Create(ctx, movie.Movie{
			Title:  title,
			Pic:    "http://localhost:8080/" + title + ".jpg",
			Labels: []string{"2010", "USA"},
			Rating: 8.5,
		})
		require.NoError(t, err)
		ids[i] = created.ID
	}

	t.Run("get by id", func(t *testing.T) {
		m, err := repo.GetByID(ctx, ids[0])

		require.NoError(t, err)
		assert.Equal(t, "Inception", m.Title)
		assert.Equal(t, 8.5, m.Rating)
		assert.Equal(t, []string{"2010", "USA"}, m.Labels)
	})

	t.Run("malformed and unknown ids", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "not-an-id")
		assert.Equal(t, movie.ErrInvalidID, err)

		_, err = repo.GetByID(ctx, bson.NewObjectID().Hex())
		assert.Equal(t, movie.ErrMovieNotFound, err)
	})

	t.Run("search is literal and case insensitive", func(t *testing.T) {
		for _, q := range []string{"incep", "INCEP", ""} {
			found, _, err := repo.Search(ctx, movie.Query{Search: q, Limit: 10})
			require.NoError(t, err)
			assert.Contains(t, movieTitles(found), "Inception", q)
		}

		found, total, err := repo.Search(ctx, movie.Query{Search: "xyz", Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, found)
		assert.Zero(t, total)

		found, _, err = repo.Search(ctx, movie.Query{Search: "In.*", Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, found, "regex metacharacters are matched literally")
	})

	t.Run("pages are disjoint and ordered", func(t *testing.T) {
		all, total, err := repo.Search(ctx, movie.Query{Start: 0, Limit: 5})
		require.NoError(t, err)
		assert.EqualValues(t, 5, total)

		first, _, err := repo.Search(ctx, movie.Query{Start: 0, Limit: 2})
		require.NoError(t, err)
		second, _, err := repo.Search(ctx, movie.Query{Start: 2, Limit: 2})
		require.NoError(t, err)

		assert.Equal(t, all[:4], append(first, second...))
	})

	t.Run("collect and cancel are conditional", func(t *testing.T) {
		changed, err := repo.SetCollected(ctx, ids[1], true)
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = repo.SetCollected(ctx, ids[1], true)
		require.NoError(t, err)
		assert.False(t, changed)

		changed, err = repo.SetCollected(ctx, ids[1], false)
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = repo.SetCollected(ctx, bson.NewObjectID().Hex(), true)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("update info matches rather than modifies", func(t *testing.T) {
		require.NoError(t, repo.UpdateInfo(ctx, ids[2], "The Prestige", "Are you watching closely?"))
		require.NoError(t, repo.UpdateInfo(ctx, ids[2], "The Prestige", "Are you watching closely?"))

		m, err := repo.GetByID(ctx, ids[2])
		require.NoError(t, err)
		assert.Equal(t, "Are you watching closely?", m.Slogo)

		assert.Equal(t, movie.ErrMovieNotFound, repo.UpdateInfo(ctx, bson.NewObjectID().Hex(), "x", ""))
	})

	t.Run("delete is irreversible", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, ids[4]))

		_, err := repo.GetByID(ctx, ids[4])
		assert.Equal(t, movie.ErrMovieNotFound, err)
		assert.Equal(t, movie.ErrMovieNotFound, repo.Delete(ctx, ids[4]))
	})
}

func TestMigrateScores(t *testing.T) {
	db := setupDatabase(t)
	ctx := context.Background()
	coll := db.Collection("legacy")

	_, err := coll.InsertMany(ctx, []interface{}{
		bson.D{{Key: "title", Value: "Old"}, {Key: "rating", Value: "9.1"}, {Key: "evaluate", Value: "1200"}},
		bson.D{{Key: "title", Value: "Broken"}, {Key: "rating", Value: "n/a"}, {Key: "evaluate", Value: 3.0}},
		bson.D{{Key: "title", Value: "New"}, {Key: "rating", Value: 8.0}, {Key: "evaluate", Value: 10.0}},
	})
	require.NoError(t, err)

	modified, err := mongodb.MigrateScores(ctx, coll)

	require.NoError(t, err)
	assert.EqualValues(t, 2, modified)

	repo := mongodb.NewMovieRepository(coll)
	found, _, err := repo.Search(ctx, movie.Query{Limit: 10})
	require.NoError(t, err)
	require.Len(t, found, 3)
	assert.Equal(t, 9.1, found[0].Rating)
	assert.Equal(t, 1200.0, found[0].Evaluate)
	assert.Zero(t, found[1].Rating)
	assert.Equal(t, 3.0, found[1].Evaluate)
}

func TestUserRepository(t *testing.T) {
	db := setupDatabase(t)
	ctx := context.Background()
	coll := db.Collection("users")
	require.NoError(t, mongodb.EnsureIndexes(ctx, coll))
	require.NoError(t, mongodb.EnsureIndexes(ctx, coll), "indexes are idempotent")
	repo := mongodb.NewUserRepository(coll)

	now := time.Now().UTC().Truncate(time.Millisecond)
	created, err := repo.Create(ctx, user.User{
		Username:     "john",
		Email:        "john@mail.com",
		PasswordHash: "hash-1",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	t.Run("duplicates are conflicts", func(t *testing.T) {
		_, err := repo.Create(ctx, user.User{Username: "john", Email: "other@mail.com", PasswordHash: "h"})
		assert.Equal(t, user.ErrDuplicateUser, err)

		_, err = repo.Create(ctx, user.User{Username: "johnny", Email: "john@mail.com", PasswordHash: "h"})
		assert.Equal(t, user.ErrDuplicateUser, err)
	})

	t.Run("login by username or email", func(t *testing.T) {
		byName, err := repo.GetByLogin(ctx, "john")
		require.NoError(t, err)
		byEmail, err := repo.GetByLogin(ctx, "john@mail.com")
		require.NoError(t, err)

		assert.Equal(t, created.ID, byName.ID)
		assert.Equal(t, byName, byEmail)
		assert.Equal(t, now, byName.CreatedAt)

		_, err = repo.GetByLogin(ctx, "ghost")
		assert.Equal(t, user.ErrUserNotFound, err)
	})

	t.Run("update password hash", func(t *testing.T) {
		later := now.Add(time.Hour)
		require.NoError(t, repo.UpdatePasswordHash(ctx, "john", "hash-2", later))

		u, err := repo.GetByLogin(ctx, "john")
		require.NoError(t, err)
		assert.Equal(t, "hash-2", u.PasswordHash)
		assert.Equal(t, later, u.UpdatedAt)
		assert.Equal(t, now, u.CreatedAt)

		assert.Equal(t, user.ErrUserNotFound, repo.UpdatePasswordHash(ctx, "ghost", "h", later))
	})
}

func movieTitles(movies []movie.Movie) []string {
	titles := make([]string, len(movies))
	for i, m := range movies {
		titles[i] = m.Title
	}
	return titles
}

package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"top250/movie"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const moviesCSV = `movieId,title,genres
1,"Godfather, The (1972)",Crime|Drama
2,Pulp Fiction (1994),Comedy|Crime|Drama|Thriller
3,Unknown Year,Drama
4,Sneakers (1992),(no genres listed)
5,Rarely Rated (2001),Drama
`

const ratingsCSV = `userId,movieId,rating,timestamp
1,1,5.0,964982703
2,1,4.5,964982703
1,2,4.0,964982703
2,2,5.0,964982703
3,2,4.5,964982703
1,4,3.0,964982703
2,4,3.5,964982703
1,5,5.0,964982703
1,99,5.0,964982703
`

func TestSplitTitle(t *testing.T) {
	tests := []struct {
		raw, title, year string
		ok               bool
	}{
		{"Toy Story (1995)", "Toy Story", "1995", true},
		{"Godfather, The (1972)", "The Godfather", "1972", true},
		{"Beautiful Mind, A (2001) ", "A Beautiful Mind", "2001", true},
		{"No Year", "", "", false},
		{"(2000)", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			title, year, ok := splitTitle(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.title, title)
			assert.Equal(t, tt.year, year)
		})
	}
}

func TestRanking(t *testing.T) {
	movies, err := readMovies(strings.NewReader(moviesCSV))
	require.NoError(t, err)
	assert.Len(t, movies, 4, "rows without a year are skipped")
	assert.Nil(t, movies[4].Genres)

	require.NoError(t, readRatings(strings.NewReader(ratingsCSV), movies))
	assert.Equal(t, 3, movies[2].Votes)

	ranked := rank(movies, 2, 0)
	require.Len(t, ranked, 3, "movies under the vote threshold are dropped")
	assert.Equal(t, []string{"The Godfather", "Pulp Fiction", "Sneakers"}, titles(ranked))

	top := rank(movies, 1, 1)
	require.Len(t, top, 1)
	assert.Equal(t, "Rarely Rated", top[0].Title)

	m := ranked[0].Movie("http://localhost:8080/placeholder.jpg")
	assert.Equal(t, movie.Movie{
		Pic:      "http://localhost:8080/placeholder.jpg",
		Title:    "The Godfather",
		Evaluate: 2,
		Labels:   []string{"1972", "Crime", "Drama"},
		Rating:   9.5,
	}, m)
	assert.Equal(t, 9.0, ranked[1].Movie("").Rating)
}

func TestReadMovies_MissingColumns(t *testing.T) {
	_, err := readMovies(strings.NewReader("id,name\n1,x\n"))
	assert.EqualError(t, err, "missing required columns in csv header")
}

type MockMovieRepository struct {
	mock.Mock
	movie.Repository
}

func (m *MockMovieRepository) Search(ctx context.Context, q movie.Query) ([]movie.Movie, int64, error) {
	args := m.Called(ctx, q)
	movies, _ := args.Get(0).([]movie.Movie)
	return movies, int64(len(movies)), args.Error(1)
}

func (m *MockMovieRepository) Create(ctx context.Context, mv movie.Movie) (movie.Movie, error) {
	args := m.Called(ctx, mv)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func TestSeed_SkipsExistingTitles(t *testing.T) {
	repo := new(MockMovieRepository)
	ranked := []*entry{
		{Title: "The Godfather", Year: "1972", Sum: 9.5, Votes: 2},
		{Title: "Pulp Fiction", Year: "1994", Sum: 13.5, Votes: 3},
	}

	repo.On("Search", mock.Anything, movie.Query{Search: "The Godfather", Limit: movie.MaxPageSize}).
		Return([]movie.Movie{{Title: "the godfather"}}, nil).Once()
	repo.On("Search", mock.Anything, movie.Query{Search: "Pulp Fiction", Limit: movie.MaxPageSize}).
		Return([]movie.Movie{{Title: "Pulp Fiction 2"}}, nil).Once()
	repo.On("Create", mock.Anything, ranked[1].Movie("")).Return(movie.Movie{ID: "x"}, nil).Once()

	created, skipped, err := seed(context.Background(), repo, ranked, "")

	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, skipped)
	repo.AssertExpectations(t)
}

func TestSeed_StopsOnStoreError(t *testing.T) {
	repo := new(MockMovieRepository)
	repo.On("Search", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused")).Once()

	created, _, err := seed(context.Background(), repo, []*entry{{Title: "Heat", Year: "1995"}}, "")

	assert.Zero(t, created)
	assert.EqualError(t, err, `search "Heat": connection refused`)
}

func titles(entries []*entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Title)
	}
	return out
}

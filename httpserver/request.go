package httpserver

import (
	"strconv"

	"top250/movie"
)

type ListMoviesRequest struct {
	Start  string `query:"start" json:"start" validate:"omitempty,number"`
	Limit  string `query:"limit" json:"limit"`
	Search string `query:"search" json:"search" validate:"max=200"`
}

// ToQuery converts the text parameters. A limit of zero or below falls back
// to the default page size later; a number too large for an int is rejected.
func (r ListMoviesRequest) ToQuery() (movie.Query, error) {
	q := movie.Query{Search: r.Search}

	var err error
	if r.Start != "" {
		if q.Start, err = strconv.Atoi(r.Start); err != nil {
			return movie.Query{}, movie.ErrInvalidQuery
		}
	}
	if r.Limit != "" {
		if q.Limit, err = strconv.Atoi(r.Limit); err != nil {
			return movie.Query{}, movie.ErrInvalidQuery
		}
	}
	return q, nil
}

type MovieIDRequest struct {
	ID string `query:"id" json:"id" form:"id" validate:"required,notblank"`
}

type UpdateMovieRequest struct {
	ID    string `json:"id" form:"id" validate:"required,notblank"`
	Title string `json:"title" form:"title" validate:"required,notblank"`
	Slogo string `json:"slogo" form:"slogo" validate:"max=500"`
}

type RegisterRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required,notblank"`
	Password string `json:"password" form:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	Username    string `json:"username" form:"username" validate:"required,notblank"`
	Password    string `json:"password" form:"password" validate:"required"`
	NewPassword string `json:"newPassword" form:"newPassword" validate:"required"`
}

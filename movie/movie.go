package movie

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"top250/errs"
)

var (
	ErrInvalidQuery    = errs.Errorf(errs.EINVALID, "invalid search query")
	ErrInvalidID       = errs.Errorf(errs.EINVALID, "movie: invalid id")
	ErrIDRequired      = errs.Errorf(errs.EINVALID, "movie: id is required")
	ErrYearRequired    = errs.Errorf(errs.EINVALID, "movie: year is required")
	ErrTitleRequired   = errs.Errorf(errs.EINVALID, "movie: title is required")
	ErrRatingRequired  = errs.Errorf(errs.EINVALID, "movie: rating is required")
	ErrInvalidRating   = errs.Errorf(errs.EINVALID, "movie: rating must be a number")
	ErrPosterRequired  = errs.Errorf(errs.EINVALID, "movie: poster file is required")
	ErrMovieNotFound   = errs.Errorf(errs.ENOTFOUND, "movie: not found")
	ErrServiceNotReady = errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
)

// Movie is a catalog entry. Labels hold the release year first, then
// country and genre tags.
type Movie struct {
	ID        string   `json:"id"`
	Pic       string   `json:"pic"`
	Title     string   `json:"title"`
	Slogo     string   `json:"slogo"`
	Evaluate  float64  `json:"evaluate"`
	Labels    []string `json:"labels"`
	Rating    float64  `json:"rating"`
	Collected bool     `json:"collected"`
}

// Draft carries the raw form values of a movie about to be created.
// Numbers and flags arrive as text and are coerced by Movie.
type Draft struct {
	Title     string
	Slogo     string
	Evaluate  string
	Rating    string
	Collected string
	Year      string
	Labels    []string
}

// Validate checks the required fields in the order callers report them.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Year) == "" {
		return ErrYearRequired
	}
	if strings.TrimSpace(d.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(d.Rating) == "" {
		return ErrRatingRequired
	}
	if _, err := ParseScore(d.Rating); err != nil {
		return ErrInvalidRating
	}
	return nil
}

// Movie coerces the draft into a record without id and poster.
func (d Draft) Movie() (Movie, error) {
	if err := d.Validate(); err != nil {
		return Movie{}, err
	}

	rating, _ := ParseScore(d.Rating)
	evaluate, err := ParseScore(d.Evaluate)
	if err != nil {
		evaluate = 0
	}
	collected, err := strconv.ParseBool(strings.TrimSpace(d.Collected))
	if err != nil {
		collected = false
	}

	labels := make([]string, 0, len(d.Labels)+1)
	labels = append(labels, strings.TrimSpace(d.Year))
	for _, l := range d.Labels {
		if l = strings.TrimSpace(l); l != "" {
			labels = append(labels, l)
		}
	}

	return Movie{
		Title:     strings.TrimSpace(d.Title),
		Slogo:     d.Slogo,
		Evaluate:  evaluate,
		Labels:    labels,
		Rating:    rating,
		Collected: collected,
	}, nil
}

// ParseScore accepts the legacy text form of rating and evaluate.
func ParseScore(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("score is not a finite number")
	}
	return f, nil
}

// Query selects a page of the catalog. An empty Search matches everything.
type Query struct {
	Search string
	Start  int
	Limit  int
}

type Page struct {
	Movies []Movie
	Total  int64
	Start  int
	Limit  int
}

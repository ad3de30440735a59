package movie

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

const (
	DefaultPageSize = 15
	MaxPageSize     = 100
)

type Service interface {
	List(ctx context.Context, q Query) (Page, error)
	Get(ctx context.Context, id string) (Movie, error)
	Add(ctx context.Context, d Draft, poster *Poster) (Movie, error)
	UpdateInfo(ctx context.Context, id, title, slogo string) error
	Collect(ctx context.Context, id string) (bool, error)
	CancelCollect(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}

// Repository is implemented by every catalog store. Ids are opaque to the
// usecase; a store returns ErrInvalidID for ids it cannot parse.
type Repository interface {
	Search(ctx context.Context, q Query) ([]Movie, int64, error)
	GetByID(ctx context.Context, id string) (Movie, error)
	Create(ctx context.Context, m Movie) (Movie, error)
	// UpdateInfo returns ErrMovieNotFound only when no record matched the id.
	UpdateInfo(ctx context.Context, id, title, slogo string) error
	// SetCollected flips the flag only when it currently holds !collected and
	// reports whether a record changed.
	SetCollected(ctx context.Context, id string, collected bool) (bool, error)
	Delete(ctx context.Context, id string) error
}

// PosterStore keeps uploaded poster images where they are served publicly.
type PosterStore interface {
	Save(ctx context.Context, ext string, r io.Reader) (string, error)
	URL(name string) string
	Remove(name string) error
}

// Poster is an uploaded image as received by the transport.
type Poster struct {
	Filename string
	Content  io.Reader
}

type Option func(uc *Usecase)

// WithPageLimits overrides the default and maximum page sizes.
func WithPageLimits(def, max int) Option {
	return func(uc *Usecase) {
		if def > 0 {
			uc.defaultLimit = def
		}
		if max > 0 {
			uc.maxLimit = max
		}
	}
}

type Usecase struct {
	r            Repository
	posters      PosterStore
	defaultLimit int
	maxLimit     int
}

func NewUsecase(r Repository, p PosterStore, opts ...Option) *Usecase {
	uc := &Usecase{
		r:            r,
		posters:      p,
		defaultLimit: DefaultPageSize,
		maxLimit:     MaxPageSize,
	}
	for _, opt := range opts {
		opt(uc)
	}
	if uc.defaultLimit > uc.maxLimit {
		uc.defaultLimit = uc.maxLimit
	}
	return uc
}

func (uc *Usecase) List(ctx context.Context, q Query) (Page, error) {
	if q.Start < 0 {
		return Page{}, ErrInvalidQuery
	}
	if q.Limit <= 0 {
		q.Limit = uc.defaultLimit
	}
	if q.Limit > uc.maxLimit {
		q.Limit = uc.maxLimit
	}
	q.Search = strings.TrimSpace(q.Search)

	movies, total, err := uc.r.Search(ctx, q)
	if err != nil {
		return Page{}, err
	}
	if movies == nil {
		movies = []Movie{}
	}

	return Page{
		Movies: movies,
		Total:  total,
		Start:  q.Start,
		Limit:  q.Limit,
	}, nil
}

func (uc *Usecase) Get(ctx context.Context, id string) (Movie, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Movie{}, ErrInvalidID
	}
	return uc.r.GetByID(ctx, id)
}

func (uc *Usecase) Add(ctx context.Context, d Draft, poster *Poster) (Movie, error) {
	m, err := d.Movie()
	if err != nil {
		return Movie{}, err
	}
	if poster == nil || poster.Content == nil {
		return Movie{}, ErrPosterRequired
	}

	name, err := uc.posters.Save(ctx, filepath.Ext(poster.Filename), poster.Content)
	if err != nil {
		return Movie{}, err
	}
	m.Pic = uc.posters.URL(name)

	created, err := uc.r.Create(ctx, m)
	if err != nil {
		if rmErr := uc.posters.Remove(name); rmErr != nil {
			return Movie{}, errors.Join(err, rmErr)
		}
		return Movie{}, err
	}
	return created, nil
}

func (uc *Usecase) UpdateInfo(ctx context.Context, id, title, slogo string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrIDRequired
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrTitleRequired
	}
	return uc.r.UpdateInfo(ctx, id, title, slogo)
}

func (uc *Usecase) Collect(ctx context.Context, id string) (bool, error) {
	return uc.setCollected(ctx, id, true)
}

func (uc *Usecase) CancelCollect(ctx context.Context, id string) (bool, error) {
	return uc.setCollected(ctx, id, false)
}

func (uc *Usecase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrIDRequired
	}
	return uc.r.Delete(ctx, id)
}

func (uc *Usecase) setCollected(ctx context.Context, id string, collected bool) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, ErrIDRequired
	}
	return uc.r.SetCollected(ctx, id, collected)
}

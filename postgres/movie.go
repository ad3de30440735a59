package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"top250/movie"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// MovieModel represents the database model for movies.
// seq is assigned by the database and gives a stable creation order.
type MovieModel struct {
	ID        string         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Seq       int64          `gorm:"->"`
	Pic       string         `gorm:"not null"`
	Title     string         `gorm:"not null"`
	Slogo     string         `gorm:"not null"`
	Evaluate  float64        `gorm:"not null"`
	Labels    pq.StringArray `gorm:"type:text[];not null"`
	Rating    float64        `gorm:"not null"`
	Collected bool           `gorm:"not null"`
	CreatedAt time.Time      `gorm:"->"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// MovieRepository implements movie.Repository interface
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) Search(ctx context.Context, q movie.Query) ([]movie.Movie, int64, error) {
	var total int64
	if err := r.filtered(ctx, q.Search).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("postgres: count movies: %w", err)
	}

	var models []MovieModel
	err := r.filtered(ctx, q.Search).
		Order("seq").
		Offset(q.Start).
		Limit(q.Limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: find movies: %w", err)
	}

	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = toDomainMovie(model)
	}
	return movies, total, nil
}

func (r *MovieRepository) GetByID(ctx context.Context, id string) (movie.Movie, error) {
	if _, err := uuid.Parse(id); err != nil {
		return movie.Movie{}, movie.ErrInvalidID
	}

	var model MovieModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return movie.Movie{}, movie.ErrMovieNotFound
		}
		return movie.Movie{}, fmt.Errorf("postgres: find movie: %w", err)
	}
	return toDomainMovie(model), nil
}

func (r *MovieRepository) Create(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	model := toModelMovie(m)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return movie.Movie{}, fmt.Errorf("postgres: insert movie: %w", err)
	}
	return toDomainMovie(model), nil
}

// UpdateInfo relies on PostgreSQL counting matched rows, so writing
// identical values still reports one row.
func (r *MovieRepository) UpdateInfo(ctx context.Context, id, title, slogo string) error {
	if _, err := uuid.Parse(id); err != nil {
		return movie.ErrInvalidID
	}

	result := r.db.WithContext(ctx).Model(&MovieModel{}).Where("id = ?", id).Updates(map[string]interface{}{
		"title": title,
		"slogo": slogo,
	})
	if result.Error != nil {
		return fmt.Errorf("postgres: update movie: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return movie.ErrMovieNotFound
	}
	return nil
}

func (r *MovieRepository) SetCollected(ctx context.Context, id string, collected bool) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, movie.ErrInvalidID
	}

	result := r.db.WithContext(ctx).Model(&MovieModel{}).
		Where("id = ? AND collected <> ?", id, collected).
		Update("collected", collected)
	if result.Error != nil {
		return false, fmt.Errorf("postgres: set collected: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *MovieRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return movie.ErrInvalidID
	}

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&MovieModel{})
	if result.Error != nil {
		return fmt.Errorf("postgres: delete movie: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return movie.ErrMovieNotFound
	}
	return nil
}

func (r *MovieRepository) filtered(ctx context.Context, search string) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&MovieModel{})
	if search != "" {
		tx = tx.Where("title ILIKE ?", "%"+escapeLike(search)+"%")
	}
	return tx
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes search a literal for LIKE, whose default escape is '\'.
func escapeLike(search string) string {
	return likeEscaper.Replace(search)
}

func toDomainMovie(model MovieModel) movie.Movie {
	labels := []string(model.Labels)
	if labels == nil {
		labels = []string{}
	}
	return movie.Movie{
		ID:        model.ID,
		Pic:       model.Pic,
		Title:     model.Title,
		Slogo:     model.Slogo,
		Evaluate:  model.Evaluate,
		Labels:    labels,
		Rating:    model.Rating,
		Collected: model.Collected,
	}
}

func toModelMovie(m movie.Movie) MovieModel {
	labels := pq.StringArray(m.Labels)
	if labels == nil {
		labels = pq.StringArray{}
	}
	return MovieModel{
		Pic:       m.Pic,
		Title:     m.Title,
		Slogo:     m.Slogo,
		Evaluate:  m.Evaluate,
		Labels:    labels,
		Rating:    m.Rating,
		Collected: m.Collected,
	}
}

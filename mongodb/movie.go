package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"top250/movie"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type movieDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Pic       string        `bson:"pic"`
	Title     string        `bson:"title"`
	Slogo     string        `bson:"slogo"`
	Evaluate  float64       `bson:"evaluate"`
	Labels    []string      `bson:"labels"`
	Rating    float64       `bson:"rating"`
	Collected bool          `bson:"collected"`
}

// MovieRepository implements movie.Repository on a MongoDB collection.
// ObjectIDs grow with insertion time, so ordering by _id is creation order.
type MovieRepository struct {
	coll *mongo.Collection
}

func NewMovieRepository(coll *mongo.Collection) *MovieRepository {
	return &MovieRepository{coll: coll}
}

func (r *MovieRepository) Search(ctx context.Context, q movie.Query) ([]movie.Movie, int64, error) {
	filter := bson.D{}
	if q.Search != "" {
		filter = bson.D{{Key: "title", Value: bson.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}}}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("mongodb: count movies: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(q.Start)).
		SetLimit(int64(q.Limit))
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("mongodb: find movies: %w", err)
	}

	var docs []movieDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("mongodb: decode movies: %w", err)
	}

	movies := make([]movie.Movie, len(docs))
	for i, doc := range docs {
		movies[i] = toDomainMovie(doc)
	}
	return movies, total, nil
}

func (r *MovieRepository) GetByID(ctx context.Context, id string) (movie.Movie, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return movie.Movie{}, movie.ErrInvalidID
	}

	var doc movieDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return movie.Movie{}, movie.ErrMovieNotFound
		}
		return movie.Movie{}, fmt.Errorf("mongodb: find movie: %w", err)
	}
	return toDomainMovie(doc), nil
}

func (r *MovieRepository) Create(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	doc := toMovieDocument(m)
	doc.ID = bson.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return movie.Movie{}, fmt.Errorf("mongodb: insert movie: %w", err)
	}
	return toDomainMovie(doc), nil
}

func (r *MovieRepository) UpdateInfo(ctx context.Context, id, title, slogo string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return movie.ErrInvalidID
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "title", Value: title}, {Key: "slogo", Value: slogo}}}},
	)
	if err != nil {
		return fmt.Errorf("mongodb: update movie: %w", err)
	}
	if res.MatchedCount == 0 {
		return movie.ErrMovieNotFound
	}
	return nil
}

// SetCollected matches only records not already in the target state, so the
// check and the write are one atomic operation.
func (r *MovieRepository) SetCollected(ctx context.Context, id string, collected bool) (bool, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return false, movie.ErrInvalidID
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}, {Key: "collected", Value: bson.D{{Key: "$ne", Value: collected}}}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "collected", Value: collected}}}},
	)
	if err != nil {
		return false, fmt.Errorf("mongodb: set collected: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

func (r *MovieRepository) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return movie.ErrInvalidID
	}

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("mongodb: delete movie: %w", err)
	}
	if res.DeletedCount == 0 {
		return movie.ErrMovieNotFound
	}
	return nil
}

func toDomainMovie(doc movieDocument) movie.Movie {
	labels := doc.Labels
	if labels == nil {
		labels = []string{}
	}
	return movie.Movie{
		ID:        doc.ID.Hex(),
		Pic:       doc.Pic,
		Title:     doc.Title,
		Slogo:     doc.Slogo,
		Evaluate:  doc.Evaluate,
		Labels:    labels,
		Rating:    doc.Rating,
		Collected: doc.Collected,
	}
}

func toMovieDocument(m movie.Movie) movieDocument {
	return movieDocument{
		Pic:       m.Pic,
		Title:     m.Title,
		Slogo:     m.Slogo,
		Evaluate:  m.Evaluate,
		Labels:    m.Labels,
		Rating:    m.Rating,
		Collected: m.Collected,
	}
}

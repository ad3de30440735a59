package dynamodb

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"top250/movie"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// MovieRepository stores one item per movie keyed by "id". Searches scan the
// table and page in memory, which suits a catalog of a few hundred titles.
type MovieRepository struct {
	client *dynamodb.Client
	table  string
	now    func() time.Time
}

type movieItem struct {
	ID         string   `dynamodbav:"id"`
	Pic        string   `dynamodbav:"pic"`
	Title      string   `dynamodbav:"title"`
	TitleLower string   `dynamodbav:"title_lower"`
	Slogo      string   `dynamodbav:"slogo"`
	Evaluate   float64  `dynamodbav:"evaluate"`
	Labels     []string `dynamodbav:"labels"`
	Rating     float64  `dynamodbav:"rating"`
	Collected  bool     `dynamodbav:"collected"`
	CreatedAt  int64    `dynamodbav:"created_at"`
}

func NewMovieRepository(client *dynamodb.Client, table string) *MovieRepository {
	return &MovieRepository{
		client: client,
		table:  table,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (r *MovieRepository) Search(ctx context.Context, q movie.Query) ([]movie.Movie, int64, error) {
	if err := validateTable(r.table); err != nil {
		return nil, 0, err
	}

	input := &dynamodb.ScanInput{TableName: &r.table}
	if q.Search != "" {
		input.FilterExpression = aws.String("contains(title_lower, :q)")
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":q": &types.AttributeValueMemberS{Value: strings.ToLower(q.Search)},
		}
	}

	var items []movieItem
	paginator := dynamodb.NewScanPaginator(r.client, input)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, 0, fmt.Errorf("dynamodb: scan movies: %w", err)
		}

		var page []movieItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, 0, fmt.Errorf("dynamodb: unmarshal movies: %w", err)
		}
		items = append(items, page...)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt != items[j].CreatedAt {
			return items[i].CreatedAt < items[j].CreatedAt
		}
		return items[i].ID < items[j].ID
	})

	total := int64(len(items))
	start := min(q.Start, len(items))
	end := min(start+q.Limit, len(items))

	movies := make([]movie.Movie, 0, end-start)
	for _, item := range items[start:end] {
		movies = append(movies, toDomainMovie(item))
	}
	return movies, total, nil
}

func (r *MovieRepository) GetByID(ctx context.Context, id string) (movie.Movie, error) {
	if err := validateTable(r.table); err != nil {
		return movie.Movie{}, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return movie.Movie{}, movie.ErrInvalidID
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &r.table,
		Key:            movieKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: get movie: %w", err)
	}
	if len(out.Item) == 0 {
		return movie.Movie{}, movie.ErrMovieNotFound
	}

	var item movieItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: unmarshal movie: %w", err)
	}
	return toDomainMovie(item), nil
}

func (r *MovieRepository) Create(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	if err := validateTable(r.table); err != nil {
		return movie.Movie{}, err
	}

	item := toMovieItem(m)
	item.ID = uuid.NewString()
	item.CreatedAt = r.now().UnixNano()

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: marshal movie: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &r.table,
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return movie.Movie{}, fmt.Errorf("dynamodb: put movie: %w", err)
	}
	return toDomainMovie(item), nil
}

func (r *MovieRepository) UpdateInfo(ctx context.Context, id, title, slogo string) error {
	if err := validateTable(r.table); err != nil {
		return err
	}
	if _, err := uuid.Parse(id); err != nil {
		return movie.ErrInvalidID
	}

	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           &r.table,
		Key:                 movieKey(id),
		UpdateExpression:    aws.String("SET title = :title, title_lower = :lower, slogo = :slogo"),
		ConditionExpression: aws.String("attribute_exists(id)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":title": &types.AttributeValueMemberS{Value: title},
			":lower": &types.AttributeValueMemberS{Value: strings.ToLower(title)},
			":slogo": &types.AttributeValueMemberS{Value: slogo},
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return movie.ErrMovieNotFound
		}
		return fmt.Errorf("dynamodb: update movie: %w", err)
	}
	return nil
}

// SetCollected uses a condition expression so the flip happens only from the
// opposite state. A failed condition is a no-op, not an error.
func (r *MovieRepository) SetCollected(ctx context.Context, id string, collected bool) (bool, error) {
	if err := validateTable(r.table); err != nil {
		return false, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return false, movie.ErrInvalidID
	}

	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           &r.table,
		Key:                 movieKey(id),
		UpdateExpression:    aws.String("SET collected = :to"),
		ConditionExpression: aws.String("attribute_exists(id) AND collected <> :to"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":to": &types.AttributeValueMemberBOOL{Value: collected},
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return false, nil
		}
		return false, fmt.Errorf("dynamodb: set collected: %w", err)
	}
	return true, nil
}

func (r *MovieRepository) Delete(ctx context.Context, id string) error {
	if err := validateTable(r.table); err != nil {
		return err
	}
	if _, err := uuid.Parse(id); err != nil {
		return movie.ErrInvalidID
	}

	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           &r.table,
		Key:                 movieKey(id),
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		if isConditionFailed(err) {
			return movie.ErrMovieNotFound
		}
		return fmt.Errorf("dynamodb: delete movie: %w", err)
	}
	return nil
}

func movieKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func toDomainMovie(item movieItem) movie.Movie {
	labels := item.Labels
	if labels == nil {
		labels = []string{}
	}
	return movie.Movie{
		ID:        item.ID,
		Pic:       item.Pic,
		Title:     item.Title,
		Slogo:     item.Slogo,
		Evaluate:  item.Evaluate,
		Labels:    labels,
		Rating:    item.Rating,
		Collected: item.Collected,
	}
}

func toMovieItem(m movie.Movie) movieItem {
	labels := m.Labels
	if labels == nil {
		labels = []string{}
	}
	return movieItem{
		Pic:        m.Pic,
		Title:      m.Title,
		TitleLower: strings.ToLower(m.Title),
		Slogo:      m.Slogo,
		Evaluate:   m.Evaluate,
		Labels:     labels,
		Rating:     m.Rating,
		Collected:  m.Collected,
	}
}

package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"top250/dynamodb"
	"top250/mongodb"
	"top250/movie"
	"top250/pkg/config"
	"top250/postgres"
	"top250/user"

	"go.uber.org/zap"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverDynamoDB = "dynamodb"
)

// Store is the set of repositories backed by the configured DB_DRIVER.
type Store struct {
	Movies movie.Repository
	Users  user.Repository

	driver  string
	migrate func(ctx context.Context) error
	close   func(ctx context.Context) error
}

// Open connects to the store selected by cfg.DB.Driver. The caller owns the
// returned Store and must Close it.
func Open(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (*Store, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.DB.Driver))
	switch driver {
	case "", DriverMongo:
		return openMongo(ctx, cfg, logger)
	case DriverPostgres:
		return openPostgres(cfg, logger)
	case DriverDynamoDB:
		return openDynamoDB(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.DB.Driver)
	}
}

func (s *Store) Driver() string {
	return s.driver
}

// Migrate brings the schema, indexes or tables of the store up to date.
func (s *Store) Migrate(ctx context.Context) error {
	if s.migrate == nil {
		return nil
	}
	return s.migrate(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

func openMongo(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (*Store, error) {
	client, err := mongodb.NewClient(ctx, mongodb.Options{URI: cfg.Mongo.URI})
	if err != nil {
		return nil, err
	}

	db := client.Database(cfg.Mongo.Database)
	movies := db.Collection(cfg.Mongo.MoviesCollection)
	users := db.Collection(cfg.Mongo.UsersCollection)

	// uniqueness must hold before the first registration
	if err := mongodb.EnsureIndexes(ctx, users); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &Store{
		Movies: mongodb.NewMovieRepository(movies),
		Users:  mongodb.NewUserRepository(users),
		driver: DriverMongo,
		migrate: func(ctx context.Context) error {
			n, err := mongodb.MigrateScores(ctx, movies)
			if err != nil {
				return err
			}
			logger.Infow("converted legacy scores", "modified", n)
			return nil
		},
		close: client.Disconnect,
	}, nil
}

func openPostgres(cfg *config.Config, logger *zap.SugaredLogger) (*Store, error) {
	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}

	return &Store{
		Movies: postgres.NewMovieRepository(db),
		Users:  postgres.NewUserRepository(db),
		driver: DriverPostgres,
		migrate: func(context.Context) error {
			n, err := postgres.Migrate(db)
			if err != nil {
				return err
			}
			logger.Infow("applied migrations", "total", n)
			return nil
		},
		close: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}, nil
}

func openDynamoDB(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (*Store, error) {
	client, err := dynamodb.NewClient(ctx, dynamodb.Options{
		Region:       cfg.DynamoDB.Region,
		Endpoint:     cfg.DynamoDB.Endpoint,
		AccessKey:    cfg.DynamoDB.AccessKey,
		SecretKey:    cfg.DynamoDB.SecretKey,
		SessionToken: cfg.DynamoDB.SessionToken,
	})
	if err != nil {
		return nil, err
	}

	moviesTable, usersTable := cfg.DynamoDB.MoviesTable, cfg.DynamoDB.UsersTable
	return &Store{
		Movies: dynamodb.NewMovieRepository(client, moviesTable),
		Users:  dynamodb.NewUserRepository(client, usersTable),
		driver: DriverDynamoDB,
		migrate: func(ctx context.Context) error {
			if err := dynamodb.CreateTables(ctx, client, moviesTable, usersTable); err != nil {
				return err
			}
			logger.Infow("tables ready", "movies", moviesTable, "users", usersTable)
			return nil
		},
	}, nil
}

package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var Empty = new(Config)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV"`
	Port         int    `envconfig:"PORT" default:"8080"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS" default:"*"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`

	DB struct {
		Driver    string `envconfig:"DB_DRIVER" default:"mongo"`
		Name      string `envconfig:"DB_NAME"`
		Host      string `envconfig:"DB_HOST"`
		Port      int    `envconfig:"DB_PORT"`
		User      string `envconfig:"DB_USER"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`
	}
	Mongo struct {
		URI              string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
		Database         string `envconfig:"MONGO_DATABASE" default:"movies"`
		MoviesCollection string `envconfig:"MONGO_MOVIES_COLLECTION" default:"top250"`
		UsersCollection  string `envconfig:"MONGO_USERS_COLLECTION" default:"users"`
	}
	DynamoDB struct {
		Region       string `envconfig:"DDB_REGION"`
		Endpoint     string `envconfig:"DDB_ENDPOINT"`
		AccessKey    string `envconfig:"DDB_ACCESS_KEY"`
		SecretKey    string `envconfig:"DDB_SECRET_KEY"`
		SessionToken string `envconfig:"DDB_SESSION_TOKEN"`
		MoviesTable  string `envconfig:"DDB_MOVIES_TABLE" default:"top250"`
		UsersTable   string `envconfig:"DDB_USERS_TABLE" default:"users"`
	}
	Upload struct {
		Dir           string `envconfig:"UPLOAD_DIR" default:"static"`
		PublicBaseURL string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:8080"`
		// MaxSize uses echo's BodyLimit notation, e.g. 2M.
		MaxSize string `envconfig:"UPLOAD_MAX_SIZE" default:"2M"`
	}
	Catalog struct {
		DefaultPageSize int `envconfig:"CATALOG_DEFAULT_PAGE_SIZE" default:"15"`
		MaxPageSize     int `envconfig:"CATALOG_MAX_PAGE_SIZE" default:"100"`
	}
	Auth struct {
		BcryptCost int `envconfig:"AUTH_BCRYPT_COST" default:"10"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	return cfg, nil
}

package main

import (
	"archive/zip"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"top250/pkg/config"
	"top250/pkg/logger"
	"top250/store"

	"go.uber.org/zap"
)

const defaultMovieLensURL = "https://files.grouplens.org/datasets/movielens/ml-latest-small.zip"

var datasetFiles = []string{"movies.csv", "ratings.csv"}

func main() {
	var (
		dataDir  string
		zipURL   string
		top      int
		minVotes int
		pic      string
	)

	flag.StringVar(&dataDir, "dir", "", "Directory holding movies.csv and ratings.csv (skip download)")
	flag.StringVar(&zipURL, "url", defaultMovieLensURL, "MovieLens zip URL")
	flag.IntVar(&top, "top", 250, "Number of best rated movies to import")
	flag.IntVar(&minVotes, "min-votes", 50, "Minimum number of ratings a movie needs to be ranked")
	flag.StringVar(&pic, "pic", "", "Poster URL stored on every imported movie")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config failed:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger failed:", err)
		os.Exit(1)
	}

	err = run(context.Background(), cfg, log, options{
		dataDir:  dataDir,
		zipURL:   zipURL,
		top:      top,
		minVotes: minVotes,
		pic:      pic,
	})
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

type options struct {
	dataDir  string
	zipURL   string
	top      int
	minVotes int
	pic      string
}

func run(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger, opts options) error {
	st, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Errorw("cannot open store", "driver", cfg.DB.Driver, "error", err)
		return err
	}
	defer func() { _ = st.Close(ctx) }()

	dataDir := opts.dataDir
	if dataDir == "" {
		dir, cleanup, err := downloadAndExtract(opts.zipURL)
		if err != nil {
			log.Errorw("failed to download dataset", "error", err)
			return err
		}
		defer cleanup()
		dataDir = dir
	}

	ranked, err := loadRanking(filepath.Join(dataDir, "movies.csv"), filepath.Join(dataDir, "ratings.csv"), opts.minVotes, opts.top)
	if err != nil {
		log.Errorw("cannot read dataset", "dir", dataDir, "error", err)
		return err
	}

	created, skipped, err := seed(ctx, st.Movies, ranked, opts.pic)
	if err != nil {
		log.Errorw("import failed", "created", created, "error", err)
		return err
	}

	log.Infow("import completed", "created", created, "skipped", skipped, "driver", st.Driver())
	return nil
}

func loadRanking(moviesPath, ratingsPath string, minVotes, top int) ([]*entry, error) {
	mf, err := os.Open(moviesPath)
	if err != nil {
		return nil, err
	}
	defer mf.Close()

	movies, err := readMovies(mf)
	if err != nil {
		return nil, fmt.Errorf("movies.csv: %w", err)
	}

	rf, err := os.Open(ratingsPath)
	if err != nil {
		return nil, err
	}
	defer rf.Close()

	if err := readRatings(rf, movies); err != nil {
		return nil, fmt.Errorf("ratings.csv: %w", err)
	}

	return rank(movies, minVotes, top), nil
}

func downloadAndExtract(zipURL string) (string, func(), error) {
	if zipURL == "" {
		return "", func() {}, errors.New("dataset url is empty")
	}

	tmpDir, err := os.MkdirTemp("", "movielens-")
	if err != nil {
		return "", func() {}, err
	}

	cleanup := func() {
		_ = os.RemoveAll(tmpDir)
	}

	zipPath := filepath.Join(tmpDir, "dataset.zip")
	if err := downloadFile(zipURL, zipPath); err != nil {
		cleanup()
		return "", func() {}, err
	}

	if err := extractDataset(zipPath, tmpDir); err != nil {
		cleanup()
		return "", func() {}, err
	}

	return tmpDir, cleanup, nil
}

func downloadFile(url, dest string) error {
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Get(url) // nolint: noctx
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}

// extractDataset copies movies.csv and ratings.csv out of the archive into
// destDir, flattening the archive's top-level folder.
func extractDataset(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer r.Close()

	found := 0
	for _, file := range r.File {
		name := filepath.Base(file.Name)
		if file.FileInfo().IsDir() || !wanted(name) {
			continue
		}
		if err := extractFile(file, filepath.Join(destDir, name)); err != nil {
			return err
		}
		found++
	}

	if found != len(datasetFiles) {
		return fmt.Errorf("%s not found in zip", strings.Join(datasetFiles, " and "))
	}
	return nil
}

func extractFile(file *zip.File, destPath string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func wanted(name string) bool {
	for _, f := range datasetFiles {
		if f == name {
			return true
		}
	}
	return false
}

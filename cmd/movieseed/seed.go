package main

import (
	"context"
	"fmt"
	"strings"

	"top250/movie"
)

// seed creates the ranked movies in order. Titles already in the catalog
// are skipped, so the command can be re-run.
func seed(ctx context.Context, repo movie.Repository, ranked []*entry, pic string) (created, skipped int, err error) {
	for _, e := range ranked {
		m := e.Movie(pic)

		exists, err := titleExists(ctx, repo, m.Title)
		if err != nil {
			return created, skipped, err
		}
		if exists {
			skipped++
			continue
		}

		if _, err := repo.Create(ctx, m); err != nil {
			return created, skipped, fmt.Errorf("create %q: %w", m.Title, err)
		}
		created++
	}
	return created, skipped, nil
}

func titleExists(ctx context.Context, repo movie.Repository, title string) (bool, error) {
	found, _, err := repo.Search(ctx, movie.Query{Search: title, Limit: movie.MaxPageSize})
	if err != nil {
		return false, fmt.Errorf("search %q: %w", title, err)
	}
	for _, m := range found {
		if strings.EqualFold(m.Title, title) {
			return true, nil
		}
	}
	return false, nil
}

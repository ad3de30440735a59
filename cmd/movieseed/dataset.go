package main

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"top250/movie"
)

const noGenres = "(no genres listed)"

// "Matrix, The (1999)" -> "Matrix, The", "1999"
var titleYearPattern = regexp.MustCompile(`^(.*?)\s*\((\d{4})\)\s*$`)

var trailingArticles = []string{"The", "A", "An"}

// entry is one MovieLens title with its accumulated ratings.
type entry struct {
	MovieID int
	Title   string
	Year    string
	Genres  []string
	Sum     float64
	Votes   int
}

func (e *entry) Average() float64 {
	if e.Votes == 0 {
		return 0
	}
	return e.Sum / float64(e.Votes)
}

// Movie converts the entry to a catalog record. MovieLens rates 0.5 to 5
// stars; the catalog uses a ten point scale with one decimal.
func (e *entry) Movie(pic string) movie.Movie {
	labels := make([]string, 0, len(e.Genres)+1)
	labels = append(labels, e.Year)
	labels = append(labels, e.Genres...)

	return movie.Movie{
		Pic:      pic,
		Title:    e.Title,
		Evaluate: float64(e.Votes),
		Labels:   labels,
		Rating:   math.Round(e.Average()*20) / 10,
	}
}

// readMovies indexes movies.csv by movieId. Rows without a release year
// are skipped since the year is the first label of every record.
func readMovies(r io.Reader) (map[int]*entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	idx, err := readHeader(reader, "movieId", "title", "genres")
	if err != nil {
		return nil, err
	}

	movies := make(map[int]*entry)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) <= maxIndex(idx) {
			continue
		}

		id, err := strconv.Atoi(strings.TrimSpace(record[idx[0]]))
		if err != nil {
			continue
		}
		title, year, ok := splitTitle(record[idx[1]])
		if !ok {
			continue
		}

		movies[id] = &entry{
			MovieID: id,
			Title:   title,
			Year:    year,
			Genres:  splitGenres(record[idx[2]]),
		}
	}
	return movies, nil
}

// readRatings adds every rating of ratings.csv to its movie. Ratings of
// unknown movies are ignored.
func readRatings(r io.Reader, movies map[int]*entry) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	idx, err := readHeader(reader, "movieId", "rating")
	if err != nil {
		return err
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if len(record) <= maxIndex(idx) {
			continue
		}

		id, err := strconv.Atoi(record[idx[0]])
		if err != nil {
			continue
		}
		e, ok := movies[id]
		if !ok {
			continue
		}
		score, err := strconv.ParseFloat(record[idx[1]], 64)
		if err != nil {
			continue
		}
		e.Sum += score
		e.Votes++
	}
}

// rank orders movies with at least minVotes ratings by average rating, then
// by vote count and title, and keeps the first top entries.
func rank(movies map[int]*entry, minVotes, top int) []*entry {
	ranked := make([]*entry, 0, len(movies))
	for _, e := range movies {
		if e.Votes > 0 && e.Votes >= minVotes {
			ranked = append(ranked, e)
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Average() != b.Average() {
			return a.Average() > b.Average()
		}
		if a.Votes != b.Votes {
			return a.Votes > b.Votes
		}
		return a.Title < b.Title
	})

	if top > 0 && len(ranked) > top {
		ranked = ranked[:top]
	}
	return ranked
}

func readHeader(reader *csv.Reader, columns ...string) ([]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, err
	}

	idx := make([]int, len(columns))
	for i, col := range columns {
		idx[i] = -1
		for j, name := range header {
			if strings.TrimSpace(name) == col {
				idx[i] = j
			}
		}
		if idx[i] == -1 {
			return nil, errors.New("missing required columns in csv header")
		}
	}
	return idx, nil
}

func maxIndex(idx []int) int {
	m := 0
	for _, i := range idx {
		m = max(m, i)
	}
	return m
}

// splitTitle separates the year suffix and moves a trailing article back to
// the front: "Godfather, The (1972)" becomes "The Godfather", "1972".
func splitTitle(raw string) (string, string, bool) {
	m := titleYearPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", "", false
	}

	title := m[1]
	for _, article := range trailingArticles {
		if strings.HasSuffix(title, ", "+article) {
			title = article + " " + strings.TrimSuffix(title, ", "+article)
			break
		}
	}
	if title == "" {
		return "", "", false
	}
	return title, m[2], true
}

func splitGenres(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == noGenres {
		return nil
	}
	return strings.Split(raw, "|")
}

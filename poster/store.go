package poster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidName = errors.New("poster: invalid file name")

// Store keeps posters in a directory that the HTTP server exposes as static
// files. Names are nanosecond timestamps plus the original extension.
type Store struct {
	dir     string
	baseURL string
	now     func() time.Time
}

func NewStore(dir, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("poster: create upload dir: %w", err)
	}
	return &Store{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Save copies r into a temp file in the upload dir and renames it to its
// final name, so readers never observe a partial poster.
func (s *Store) Save(ctx context.Context, ext string, r io.Reader) (string, error) {
	ext = sanitizeExt(ext)

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("poster: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint: errcheck

	if _, err := io.Copy(tmp, readerWithContext(ctx, r)); err != nil {
		tmp.Close()
		return "", fmt.Errorf("poster: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("poster: close temp file: %w", err)
	}

	for {
		name := strconv.FormatInt(s.now().UnixNano(), 10) + ext
		target := filepath.Join(s.dir, name)
		if _, err := os.Lstat(target); err == nil {
			continue
		}
		if err := os.Rename(tmp.Name(), target); err != nil {
			return "", fmt.Errorf("poster: move into place: %w", err)
		}
		return name, nil
	}
}

func (s *Store) URL(name string) string {
	return s.baseURL + "/" + name
}

// Remove deletes a stored poster. Missing files are not an error.
func (s *Store) Remove(name string) error {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return ErrInvalidName
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("poster: remove: %w", err)
	}
	return nil
}

// sanitizeExt keeps the extension only when it is a plain suffix like ".jpg".
func sanitizeExt(ext string) string {
	if len(ext) < 2 || len(ext) > 10 || ext[0] != '.' {
		return ""
	}
	for _, r := range ext[1:] {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return ""
		}
	}
	return strings.ToLower(ext)
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return &ctxReader{ctx: ctx, r: r}
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// Package tempfile writes data to a short-lived file for code that needs a
// path rather than a reader.
package tempfile

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// DefaultPattern is the file name pattern used when none is given.
const DefaultPattern = "tmpfile"

type config struct {
	dir     string
	pattern string
}

// Option configures Using and Write.
type Option func(*config)

// WithDir creates the file in dir. Default: os.TempDir().
func WithDir(dir string) Option {
	return func(c *config) {
		c.dir = dir
	}
}

// WithPattern sets the file name pattern, as for os.CreateTemp.
// A "*" in the pattern is replaced by a random string.
func WithPattern(pattern string) Option {
	return func(c *config) {
		if pattern != "" {
			c.pattern = pattern
		}
	}
}

// Using writes data to a new temporary file, closes it, and calls fn with
// its path. The file is removed when fn returns, whether or not fn fails.
// The error from fn is returned as-is.
func Using(data string, fn func(path string) error, opts ...Option) (err error) {
	path, err := create(data, opts)
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = fmt.Errorf("remove temp file: %w", rmErr)
		}
	}()
	return fn(path)
}

// Write writes data to a temporary file that is removed when t finishes.
func Write(t testing.TB, data string, opts ...Option) string {
	t.Helper()
	path, err := create(data, opts)
	require.NoError(t, err, "tempfile")
	t.Cleanup(func() {
		_ = os.Remove(path)
	})
	return path
}

func create(data string, opts []Option) (string, error) {
	cfg := config{pattern: DefaultPattern}
	for _, opt := range opts {
		opt(&cfg)
	}

	f, err := os.CreateTemp(cfg.dir, cfg.pattern)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()

	if _, err := f.WriteString(data); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return path, nil
}

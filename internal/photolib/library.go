// Package photolib is a photo library backed by a directory.
package photolib

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/destel/collage"
)

// Library writes collages as PNG files into Dir. Each collage gets a new random file name.
type Library struct {
	Dir    string
	Logger *slog.Logger
}

var _ collage.Persister = (*Library)(nil)

func New(dir string, logger *slog.Logger) *Library {
	if logger == nil {
		logger = slog.Default()
	}
	return &Library{Dir: dir, Logger: logger}
}

// Save writes img into the library. Failures are reported as *collage.PersistenceError.
// A partially written file is removed.
func (l *Library) Save(ctx context.Context, img image.Image) error {
	if err := ctx.Err(); err != nil {
		return &collage.PersistenceError{Reason: "save canceled", Err: err}
	}

	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return &collage.PersistenceError{Reason: fmt.Sprintf("cannot open photo library %s", l.Dir), Err: err}
	}

	path := filepath.Join(l.Dir, uuid.NewString()+".png")
	if err := writePNG(path, img); err != nil {
		_ = os.Remove(path)
		return &collage.PersistenceError{Reason: fmt.Sprintf("cannot write %s", filepath.Base(path)), Err: err}
	}

	l.Logger.Info("collage saved", "path", path)
	return nil
}

// List returns the paths of all collages in the library.
func (l *Library) List() ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(l.Dir, "*.png"))
	if err != nil {
		return nil, fmt.Errorf("list photo library: %w", err)
	}
	return paths, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}

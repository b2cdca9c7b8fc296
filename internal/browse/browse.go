// Package browse turns image files into a stream of collage candidates.
package browse

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/destel/collage"
	"github.com/destel/collage/internal/core"
)

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// Files returns a stream of candidates decoded from paths, in the order the paths are given.
// Directories are walked recursively and their image files are taken in lexical order.
// Files are decoded by n concurrent workers. Files that cannot be decoded are logged and skipped,
// while a path that cannot be read at all is reported as an error in the stream.
// When ctx is canceled, files still in flight are skipped without decoding and the stream ends early.
func Files(ctx context.Context, paths []string, n int, logger *slog.Logger) <-chan collage.Try[collage.Candidate] {
	if logger == nil {
		logger = slog.Default()
	}

	files := make(chan collage.Try[string])
	go func() {
		defer close(files)
		for _, p := range paths {
			if ctx.Err() != nil {
				return
			}
			if err := walk(ctx, p, files); err != nil {
				select {
				case files <- collage.Try[string]{Error: err}:
				case <-ctx.Done():
				}
				return
			}
		}
	}()

	return core.OrderedFilterMap(files, n, func(f collage.Try[string]) (collage.Try[collage.Candidate], bool) {
		if f.Error != nil {
			return collage.Try[collage.Candidate]{Error: f.Error}, true
		}
		if ctx.Err() != nil {
			return collage.Try[collage.Candidate]{}, false
		}

		img, err := Decode(f.V)
		if err != nil {
			logger.Warn("skipping image", "path", f.V, "error", err)
			return collage.Try[collage.Candidate]{}, false
		}

		return collage.Try[collage.Candidate]{V: collage.Candidate{Name: f.V, Image: img}}, true
	})
}

// walk sends the image files under root to out. It stops when ctx is canceled.
func walk(ctx context.Context, root string, out chan<- collage.Try[string]) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("browse %s: %w", root, err)
	}

	send := func(path string) error {
		select {
		case out <- collage.Try[string]{V: path}:
			return nil
		case <-ctx.Done():
			return fs.SkipAll
		}
	}

	if !info.IsDir() {
		_ = send(root) // canceled send is not an error
		return nil
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !imageExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		return send(path)
	})
	if err != nil {
		return fmt.Errorf("browse %s: %w", root, err)
	}
	return nil
}

// Decode reads an image file in any of the supported formats.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

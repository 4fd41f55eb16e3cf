package searcher

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
)

// Enumerator produces the finite list of regular-file paths beneath a root.
// Enumeration completes before any scan task is dispatched; the engine does
// not stream files into the pool as they are discovered, which keeps the
// total file count known up front for progress reporting.
//
// An error return means the walk stopped early. The paths gathered before the
// failure are still returned and the engine scans them.
type Enumerator interface {
	Enumerate(ctx context.Context, root string) ([]string, error)
}

// walkEnumerator is the default Enumerator, a filepath.WalkDir pass that
// collects regular files, skips symbolic links, and prunes paths matched by
// the configured ignore globs.
type walkEnumerator struct {
	ignorePatterns []string
	logger         *slog.Logger
}

func newWalkEnumerator(ignorePatterns []string, handler slog.Handler) *walkEnumerator {
	if handler == nil {
		handler = slog.NewTextHandler(io.Discard, nil)
	}
	return &walkEnumerator{
		ignorePatterns: ignorePatterns,
		logger:         slog.New(handler).With(slog.String("component", "enumerator")),
	}
}

func (w *walkEnumerator) Enumerate(ctx context.Context, root string) ([]string, error) {
	files := make([]string, 0, 256)
	walkErr := filepath.WalkDir(root, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if d.Type()&fs.ModeSymlink != 0 {
			w.logger.Debug("Skipping symbolic link",
				slog.String("path", filePath),
				slog.String("reason", string(SkipReasonSymlink)))
			return nil
		}
		relPath, relErr := filepath.Rel(root, filePath)
		if relErr != nil || relPath == "." {
			return nil
		}
		relPath = filepath.ToSlash(relPath)
		if w.ignored(relPath) {
			w.logger.Debug("Path ignored",
				slog.String("path", relPath),
				slog.String("reason", string(SkipReasonIgnored)))
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		files = append(files, filePath)
		return nil
	})
	if walkErr != nil {
		w.logger.Warn("Directory walk stopped early",
			slog.String("root", root),
			slog.Int("filesGathered", len(files)),
			slog.String("error", walkErr.Error()))
	}
	return files, walkErr
}

// ignored matches the slash-separated relative path (and its base name)
// against the configured globs.
func (w *walkEnumerator) ignored(relPath string) bool {
	for _, pattern := range w.ignorePatterns {
		if ok, err := path.Match(pattern, relPath); err == nil && ok {
			return true
		}
		if ok, err := path.Match(pattern, path.Base(relPath)); err == nil && ok {
			return true
		}
	}
	return false
}

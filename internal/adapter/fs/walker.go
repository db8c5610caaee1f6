// Package fs finds record files on disk for bulk import.
package fs

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"bookbot/internal/port"
)

// Walker matches files under a root against doublestar glob patterns.
type Walker struct {
	includes []string
	excludes []string
}

// NewWalker builds a walker. Empty includes default to every JSON file.
func NewWalker(includes, excludes []string) *Walker {
	if len(includes) == 0 {
		includes = []string{"**/*.json"}
	}
	return &Walker{
		includes: includes,
		excludes: excludes,
	}
}

// Walk returns the files under root that match the include patterns and
// none of the exclude patterns. Paths are matched relative to root.
func (w *Walker) Walk(root string) ([]port.FileInfo, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var files []port.FileInfo
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if info.IsDir() {
			if w.matches(w.excludes, relPath+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if w.matches(w.includes, relPath) && !w.matches(w.excludes, relPath) {
			files = append(files, port.FileInfo{
				Path:    path,
				ModTime: info.ModTime().Unix(),
				Size:    info.Size(),
			})
		}
		return nil
	})
	return files, err
}

func (w *Walker) matches(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, path); err == nil && matched {
			return true
		}
	}
	return false
}

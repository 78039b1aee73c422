package util

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/boyter/gocodewalker"
)

// PackExclusions are left out of an extension package. Directories are matched
// by exact name at any depth, file patterns with filepath.Match on the base name.
var PackExclusions = struct {
	Directories  []string
	FilePatterns []string
}{
	Directories: []string{
		"node_modules",
		".git",
		// editor local history
		".history",
		"tests",
		"__tests__",
		"coverage",
	},
	FilePatterns: []string{
		"*.test.js",
		"*.spec.js",
		"*.log",
		"*.swp",
		"*.zip",
		// installer leftovers
		"*.py",
		"INSTALLATION_GUIDE.md",
	},
}

// PackOptions configures PackExtension.
type PackOptions struct {
	// KeepAll disables PackExclusions.
	KeepAll bool
	// Verbose records the excluded paths in PackStats.
	Verbose bool
}

// PackStats summarizes a packing run.
type PackStats struct {
	FilesIncluded int      `json:"filesIncluded"`
	FilesExcluded int      `json:"filesExcluded"`
	BytesIncluded int64    `json:"bytesIncluded"`
	ExcludedPaths []string `json:"excludedPaths,omitempty"`
}

func excludedByPattern(name string) bool {
	for _, pattern := range PackExclusions.FilePatterns {
		if ok, err := filepath.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// PackExtension writes the files under srcDir into a zip at destZip, with paths
// relative to srcDir so the archive root is the extension root. Entries are
// written in sorted order, which keeps archives of the same tree identical.
func PackExtension(srcDir, destZip string, opts PackOptions) (*PackStats, error) {
	srcDir, err := filepath.Abs(srcDir)
	if err != nil {
		return nil, err
	}
	destAbs, err := filepath.Abs(destZip)
	if err != nil {
		return nil, err
	}

	fileQueue := make(chan *gocodewalker.File, 256)
	walker := gocodewalker.NewFileWalker(srcDir, fileQueue)
	walker.IncludeHidden = true
	if !opts.KeepAll {
		walker.ExcludeDirectory = append(walker.ExcludeDirectory, PackExclusions.Directories...)
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- walker.Start()
	}()

	stats := &PackStats{}
	var included []string
	var relErr error
	// the queue is always drained so the walker goroutine can finish
	for f := range fileQueue {
		if f.Location == destAbs || relErr != nil {
			continue
		}
		rel, err := filepath.Rel(srcDir, f.Location)
		if err != nil {
			relErr = err
			continue
		}
		rel = filepath.ToSlash(rel)

		if !opts.KeepAll && excludedByPattern(filepath.Base(rel)) {
			stats.FilesExcluded++
			if opts.Verbose {
				stats.ExcludedPaths = append(stats.ExcludedPaths, rel)
			}
			continue
		}
		included = append(included, rel)
	}
	if err := <-errChan; err != nil {
		return nil, fmt.Errorf("directory walk failed: %w", err)
	}
	if relErr != nil {
		return nil, relErr
	}
	sort.Strings(included)

	if err := writeZip(destAbs, srcDir, included, stats); err != nil {
		_ = os.Remove(destAbs)
		return nil, err
	}
	return stats, nil
}

// writeZip archives the included paths into dest. A failed write leaves a
// partial file that the caller removes.
func writeZip(dest, srcDir string, included []string, stats *PackStats) error {
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, rel := range included {
		n, err := addToZip(zw, filepath.Join(srcDir, filepath.FromSlash(rel)), rel)
		if err != nil {
			zw.Close()
			return fmt.Errorf("failed to add %s: %w", rel, err)
		}
		stats.FilesIncluded++
		stats.BytesIncluded += n
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return out.Close()
}

func addToZip(zw *zip.Writer, path, name string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	w, err := zw.Create(strings.TrimPrefix(name, "./"))
	if err != nil {
		return 0, err
	}
	return io.Copy(w, f)
}

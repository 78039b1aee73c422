package extension

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// FileStatus reports whether a required file exists under the extension root.
type FileStatus struct {
	Path    string `json:"path"`
	Present bool   `json:"present"`
}

// MissingFilesError lists every required file that was not found.
type MissingFilesError struct {
	Paths []string
}

func (e *MissingFilesError) Error() string {
	return fmt.Sprintf("missing files: %s", strings.Join(e.Paths, ", "))
}

// CheckFiles stats every entry of RequiredFiles relative to root, in list order.
func CheckFiles(root string) []FileStatus {
	return lo.Map(RequiredFiles, func(rel string, _ int) FileStatus {
		_, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
		return FileStatus{Path: rel, Present: err == nil}
	})
}

// MissingFiles returns the required files absent from root. It never stops at the
// first miss, so the result is the complete missing subset.
func MissingFiles(statuses []FileStatus) []string {
	missing := lo.Filter(statuses, func(s FileStatus, _ int) bool { return !s.Present })
	return lo.Map(missing, func(s FileStatus, _ int) string { return s.Path })
}

// ValidateFiles returns a *MissingFilesError when any required file is absent.
func ValidateFiles(root string) ([]FileStatus, error) {
	statuses := CheckFiles(root)
	if missing := MissingFiles(statuses); len(missing) > 0 {
		return statuses, &MissingFilesError{Paths: missing}
	}
	return statuses, nil
}

// Package browser locates a local Chrome installation and opens pages in it.
package browser

import (
	"os"

	"github.com/samber/lo"
)

// candidateTable maps GOOS to the hard-coded locations probed for a Chrome
// executable, most preferred first. Any GOOS without an entry uses "linux".
var candidateTable = map[string]func(username string) []string{
	"darwin": func(string) []string {
		return []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
		}
	},
	"windows": func(username string) []string {
		return []string{
			`C:\Program Files\Google\Chrome\Application\chrome.exe`,
			`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
			`C:\Users\` + username + `\AppData\Local\Google\Chrome\Application\chrome.exe`,
		}
	},
	"linux": func(string) []string {
		return []string{
			"/usr/bin/google-chrome",
			"/usr/bin/chromium-browser",
			"/usr/bin/chromium",
		}
	},
}

// Candidates returns the probe list for goos. username only matters on Windows,
// where Chrome may be installed per user.
func Candidates(goos, username string) []string {
	build, ok := candidateTable[goos]
	if !ok {
		build = candidateTable["linux"]
	}
	return build(username)
}

// DefaultCandidates returns the probe list for goos using the current user name.
func DefaultCandidates(goos string) []string {
	return Candidates(goos, os.Getenv("USERNAME"))
}

// Exists reports whether path exists on disk.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Find returns the first candidate for which exists reports true. It is a
// best-effort lookup: the registry and PATH are never consulted.
func Find(candidates []string, exists func(string) bool) (string, bool) {
	if exists == nil {
		exists = Exists
	}
	return lo.Find(candidates, exists)
}

// Probe is one candidate location with its lookup result.
type Probe struct {
	Path  string `json:"path"`
	Found bool   `json:"found"`
}

// ProbeAll checks every candidate, for listing purposes.
func ProbeAll(candidates []string, exists func(string) bool) []Probe {
	if exists == nil {
		exists = Exists
	}
	return lo.Map(candidates, func(p string, _ int) Probe {
		return Probe{Path: p, Found: exists(p)}
	})
}

package installer

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temu-compare/extinstall/internal/browser"
	"github.com/temu-compare/extinstall/internal/extension"
)

type fakeProcesses struct {
	started  [][]string
	opened   []string
	startErr error
	openErr  error
}

func (f *fakeProcesses) installer(candidates []string, existing ...string) *Installer {
	present := make(map[string]bool)
	for _, p := range existing {
		present[p] = true
	}
	return &Installer{
		Launcher: &browser.Launcher{
			Start: func(name string, args ...string) error {
				f.started = append(f.started, append([]string{name}, args...))
				return f.startErr
			},
			OpenURL: func(url string) error {
				f.opened = append(f.opened, url)
				return f.openErr
			},
		},
		Candidates: func(string) []string { return candidates },
		Exists:     func(p string) bool { return present[p] },
	}
}

// setupExtension writes all required files and a complete manifest.
func setupExtension(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, rel := range extension.RequiredFiles {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("// stub"), 0644))
	}
	manifest, err := json.Marshal(map[string]any{
		"manifest_version": 3,
		"name":             "Temu Price Comparison",
		"version":          "1.7.0",
		"description":      "Compare prices",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, extension.ManifestFile), manifest, 0644))
	return root
}

func newTestContext(t *testing.T, root string) (*Context, *LineLogger) {
	t.Helper()
	log := &LineLogger{}
	return &Context{
		Root:           root,
		GOOS:           "linux",
		GOARCH:         "amd64",
		RuntimeVersion: "go1.25.0",
		DesktopDir:     t.TempDir(),
		Command:        "extinstall",
		Log:            log,
	}, log
}

func logText(log *LineLogger) string {
	var b strings.Builder
	for _, l := range log.Lines() {
		b.WriteString(l.Text)
		b.WriteString("\n")
	}
	return b.String()
}

func TestRunConsoleSuccess(t *testing.T) {
	root := setupExtension(t)
	c, log := newTestContext(t, root)
	procs := &fakeProcesses{}
	in := procs.installer([]string{"/usr/bin/google-chrome"})

	report := in.RunConsole(c)

	require.True(t, report.OK(), logText(log))
	assert.NoError(t, report.Err())
	for _, s := range in.Steps(ModeConsole) {
		assert.True(t, report.Ran(s.Name), s.Name)
	}
	assert.Equal(t, []string{extension.ExtensionsPageURL}, procs.opened)
	assert.FileExists(t, filepath.Join(root, extension.GuideFile))
	assert.FileExists(t, filepath.Join(c.DesktopDir, extension.ShortcutBaseName+".desktop"))
	assert.Equal(t, "Temu Price Comparison", c.Manifest.Name())
	assert.Contains(t, logText(log), "Extension is ready for installation!")
}

func TestRunConsoleMissingManifestStopsBeforeSideEffects(t *testing.T) {
	root := setupExtension(t)
	require.NoError(t, os.Remove(filepath.Join(root, extension.ManifestFile)))
	c, _ := newTestContext(t, root)
	procs := &fakeProcesses{}
	in := procs.installer([]string{"/usr/bin/google-chrome"}, "/usr/bin/google-chrome")

	report := in.RunConsole(c)

	assert.False(t, report.OK())
	// the manifest is one of the required files, so the presence check trips first
	var missingErr *extension.MissingFilesError
	require.ErrorAs(t, report.Err(), &missingErr)
	assert.Equal(t, []string{extension.ManifestFile}, missingErr.Paths)
	assert.False(t, report.Ran("manifest"))
	assert.False(t, report.Ran("browser discovery"))
	assert.False(t, report.Ran("guide"))
	assert.False(t, report.Ran("shortcut"))
	assert.Empty(t, procs.started)
	assert.Empty(t, procs.opened)
	assert.NoFileExists(t, filepath.Join(root, extension.GuideFile))
}

func TestManifestFailureReasons(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
		check    func(t *testing.T, err error)
	}{
		{
			name:     "malformed",
			content:  `{"manifest_version": 3,`,
			expected: "manifest.json is not valid JSON",
			check:    func(t *testing.T, err error) { assert.ErrorIs(t, err, extension.ErrManifestMalformed) },
		},
		{
			name:     "missing field",
			content:  `{"manifest_version": 3, "name": "x", "version": "1"}`,
			expected: "description missing",
			check: func(t *testing.T, err error) {
				var fieldErr *extension.MissingFieldError
				require.ErrorAs(t, err, &fieldErr)
				assert.Equal(t, "description", fieldErr.Field)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := setupExtension(t)
			require.NoError(t, os.WriteFile(filepath.Join(root, extension.ManifestFile), []byte(tt.content), 0644))
			c, log := newTestContext(t, root)
			procs := &fakeProcesses{}
			in := procs.installer(nil)

			report := Run(c, in.Steps(ModeConsole))

			assert.False(t, report.OK())
			tt.check(t, report.Err())
			assert.Contains(t, logText(log), tt.expected)
			assert.False(t, report.Ran("browser launch"))
			assert.Empty(t, procs.opened)
		})
	}
}

func TestManifestNotFound(t *testing.T) {
	c, log := newTestContext(t, t.TempDir())
	in := (&fakeProcesses{}).installer(nil)

	err := in.checkManifest(c)
	assert.ErrorIs(t, err, extension.ErrManifestNotFound)
	assert.Contains(t, logText(log), "manifest.json not found")
}

func TestCheckFilesReportsAllMissing(t *testing.T) {
	root := setupExtension(t)
	removed := []string{"content/content.js", "popup/popup.css"}
	for _, rel := range removed {
		require.NoError(t, os.Remove(filepath.Join(root, filepath.FromSlash(rel))))
	}
	c, log := newTestContext(t, root)
	in := (&fakeProcesses{}).installer(nil)

	err := in.checkFiles(c)

	var missingErr *extension.MissingFilesError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, removed, missingErr.Paths)
	assert.Contains(t, logText(log), "Missing files: content/content.js, popup/popup.css")
}

func TestCheckEnvironment(t *testing.T) {
	tests := []struct {
		version string
		wantErr bool
	}{
		{"go1.25.0", false},
		{"go1.21.0", false},
		{"go1.20.14", true},
		{"go1.18", true},
		{"devel go1.26-abcdef Tue Jan 1 00:00:00 2026 +0000", false},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			c, _ := newTestContext(t, t.TempDir())
			c.RuntimeVersion = tt.version
			in := (&fakeProcesses{}).installer(nil)

			err := in.checkEnvironment(c)
			if tt.wantErr {
				var rtErr *UnsupportedRuntimeError
				assert.ErrorAs(t, err, &rtErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBrowserNotFoundFallsBackToDefaultHandler(t *testing.T) {
	root := setupExtension(t)
	c, log := newTestContext(t, root)
	procs := &fakeProcesses{}
	in := procs.installer(browser.Candidates("linux", ""))

	report := Run(c, in.Steps(ModeConsole))

	require.True(t, report.OK())
	assert.Empty(t, c.BrowserPath)
	assert.Empty(t, procs.started)
	assert.Equal(t, []string{extension.ExtensionsPageURL}, procs.opened)
	assert.Contains(t, logText(log), "Chrome not found in standard locations")
	assert.Contains(t, logText(log), "Opened extensions page in default browser")
}

func TestBrowserFoundIsStarted(t *testing.T) {
	c, _ := newTestContext(t, setupExtension(t))
	procs := &fakeProcesses{}
	in := procs.installer([]string{"/usr/bin/google-chrome", "/usr/bin/chromium"}, "/usr/bin/chromium")

	report := Run(c, in.Steps(ModeConsole))

	require.True(t, report.OK())
	assert.Equal(t, "/usr/bin/chromium", c.BrowserPath)
	assert.Equal(t, [][]string{{"/usr/bin/chromium", extension.ExtensionsPageURL}}, procs.started)
	assert.Empty(t, procs.opened)
}

func TestBestEffortFailuresDoNotAbort(t *testing.T) {
	root := setupExtension(t)
	c, log := newTestContext(t, root)
	c.DesktopDir = filepath.Join(t.TempDir(), "no-desktop")
	procs := &fakeProcesses{
		startErr: errors.New("exec format error"),
		openErr:  errors.New("no handler"),
	}
	in := procs.installer([]string{"/opt/chrome"}, "/opt/chrome")

	report := Run(c, in.Steps(ModeConsole))

	assert.True(t, report.OK())
	assert.True(t, report.Ran("summary"))
	assert.FileExists(t, filepath.Join(root, extension.GuideFile))
	text := logText(log)
	assert.Contains(t, text, "Failed to open Chrome: exec format error")
	assert.Contains(t, text, "Failed to open browser")
	assert.Contains(t, text, "Failed to create shortcut")

	var failed []string
	for _, res := range report.Results {
		if res.Failed() {
			failed = append(failed, res.Name)
		}
	}
	assert.Equal(t, []string{"browser launch", "shortcut"}, failed)
}

func TestGuideRewrittenOnEveryRun(t *testing.T) {
	root := setupExtension(t)
	in := (&fakeProcesses{}).installer(nil)

	for i := 0; i < 2; i++ {
		c, _ := newTestContext(t, root)
		require.True(t, Run(c, in.Steps(ModeGraphical)).OK())

		content, err := os.ReadFile(filepath.Join(root, extension.GuideFile))
		require.NoError(t, err)
		assert.Contains(t, string(content), root)
	}
}

func TestStepsPerMode(t *testing.T) {
	in := New()
	console := in.Steps(ModeConsole)
	graphical := in.Steps(ModeGraphical)

	assert.Len(t, console, 8)
	assert.Len(t, graphical, 7)
	assert.Equal(t, "summary", console[7].Name)

	validation := in.ValidationSteps()
	require.Len(t, validation, 3)
	for _, s := range validation {
		assert.True(t, s.Fatal, s.Name)
		assert.True(t, s.Check, s.Name)
	}
	assert.Equal(t, []string{"environment", "files", "manifest"}, []string{validation[0].Name, validation[1].Name, validation[2].Name})
}

func TestNewContext(t *testing.T) {
	root := t.TempDir()
	desktop := t.TempDir()

	c, err := NewContext(ContextOptions{Root: root, DesktopDir: desktop})
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(c.Root))
	assert.Equal(t, desktop, c.DesktopDir)
	assert.Equal(t, "extinstall", c.Command)
	assert.NotEmpty(t, c.RuntimeVersion)
	assert.IsType(t, ConsoleLogger{}, c.Log)

	_, err = NewContext(ContextOptions{Root: filepath.Join(root, "missing")})
	assert.Error(t, err)
}

func TestNewContextWithoutHomeStillValidates(t *testing.T) {
	t.Setenv("HOME", "")
	root := setupExtension(t)
	log := &LineLogger{}

	c, err := NewContext(ContextOptions{Root: root, Log: log})
	require.NoError(t, err)
	assert.Empty(t, c.DesktopDir)

	in := (&fakeProcesses{}).installer(nil)
	report := Run(c, in.ValidationSteps())
	assert.True(t, report.OK(), logText(log))
	assert.True(t, report.Ran("manifest"))
}

func TestShortcutWithUnknownDesktopIsLoggedOnly(t *testing.T) {
	root := setupExtension(t)
	c, log := newTestContext(t, root)
	c.DesktopDir = ""
	in := (&fakeProcesses{}).installer(nil)

	report := Run(c, in.Steps(ModeConsole))

	assert.True(t, report.OK())
	assert.True(t, report.Ran("summary"))
	assert.Contains(t, logText(log), "Failed to create shortcut: desktop directory unknown")
	for _, res := range report.Results {
		if res.Name == "shortcut" {
			assert.ErrorIs(t, res.Err, ErrDesktopUnknown)
		}
	}
}

func TestReportErrNamesChecksAndSteps(t *testing.T) {
	in := (&fakeProcesses{}).installer(nil)

	t.Run("validation gate", func(t *testing.T) {
		root := setupExtension(t)
		require.NoError(t, os.WriteFile(filepath.Join(root, extension.ManifestFile), []byte("{"), 0644))
		c, _ := newTestContext(t, root)

		err := Run(c, in.Steps(ModeConsole)).Err()
		require.Error(t, err)
		assert.True(t, strings.HasPrefix(err.Error(), "manifest check failed: "), err.Error())
	})

	t.Run("write step", func(t *testing.T) {
		root := setupExtension(t)
		// a directory in the guide's place makes the write fail
		require.NoError(t, os.Mkdir(filepath.Join(root, extension.GuideFile), 0755))
		c, _ := newTestContext(t, root)

		report := Run(c, in.Steps(ModeConsole))
		require.Error(t, report.Err())
		assert.True(t, strings.HasPrefix(report.Err().Error(), "guide step failed: "), report.Err().Error())
		assert.False(t, report.Ran("shortcut"))
	})
}

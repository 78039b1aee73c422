package installer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/temu-compare/extinstall/internal/artifacts"
	"github.com/temu-compare/extinstall/internal/browser"
	"github.com/temu-compare/extinstall/internal/extension"
)

// ErrDesktopUnknown is returned by the shortcut step when no desktop directory
// could be resolved.
var ErrDesktopUnknown = errors.New("desktop directory unknown")

// MinimumRuntime is the oldest Go runtime the installer supports.
var MinimumRuntime = semver.MustParse("1.21.0")

// UnsupportedRuntimeError is returned when the runtime is older than MinimumRuntime.
type UnsupportedRuntimeError struct {
	Version string
}

func (e *UnsupportedRuntimeError) Error() string {
	return fmt.Sprintf("Go %s+ required, running %s", MinimumRuntime, e.Version)
}

func (in *Installer) checkEnvironment(c *Context) error {
	c.Log.Info("Checking system requirements...")
	c.Log.Success("OS: %s", c.Platform())

	v, err := semver.NewVersion(strings.TrimPrefix(c.RuntimeVersion, "go"))
	if err != nil {
		// development toolchains report versions like "devel go1.26-abcdef"
		c.Log.Warning("Go: %s (could not compare with %s)", c.RuntimeVersion, MinimumRuntime)
		return nil
	}
	if v.LessThan(MinimumRuntime) {
		c.Log.Error("Go %s+ required, running %s", MinimumRuntime, v)
		return &UnsupportedRuntimeError{Version: v.String()}
	}
	c.Log.Success("Go: %s", v)
	return nil
}

func (in *Installer) checkFiles(c *Context) error {
	c.Log.Plain("")
	c.Log.Info("Validating extension files...")

	statuses, err := extension.ValidateFiles(c.Root)
	for _, s := range statuses {
		if s.Present {
			c.Log.Success("  %s", s.Path)
		} else {
			c.Log.Error("  %s (missing)", s.Path)
		}
	}

	var missingErr *extension.MissingFilesError
	if errors.As(err, &missingErr) {
		c.Log.Error("Missing files: %s", strings.Join(missingErr.Paths, ", "))
		return err
	}
	c.Log.Success("All required files present")
	return nil
}

func (in *Installer) checkManifest(c *Context) error {
	c.Log.Plain("")
	c.Log.Info("Validating %s...", extension.ManifestFile)

	m, err := extension.ReadManifest(c.Root)
	var fieldErr *extension.MissingFieldError
	switch {
	case err == nil:
	case errors.As(err, &fieldErr):
		for _, field := range extension.RequiredManifestFields {
			if field == fieldErr.Field {
				break
			}
			c.Log.Success("  %s: %s", field, m.Value(field))
		}
		c.Log.Error("  %s missing", fieldErr.Field)
		return err
	case errors.Is(err, extension.ErrManifestMalformed):
		c.Log.Error("%s is not valid JSON", extension.ManifestFile)
		return err
	case errors.Is(err, extension.ErrManifestNotFound):
		c.Log.Error("%s not found", extension.ManifestFile)
		return err
	default:
		c.Log.Error("%v", err)
		return err
	}

	for _, field := range extension.RequiredManifestFields {
		c.Log.Success("  %s: %s", field, m.Value(field))
	}
	c.Manifest = m
	c.Log.Success("%s is valid", extension.ManifestFile)
	return nil
}

func (in *Installer) discoverBrowser(c *Context) error {
	c.Log.Plain("")
	c.Log.Info("Looking for Chrome installation...")

	path, ok := browser.Find(in.Candidates(c.GOOS), in.Exists)
	if !ok {
		c.BrowserPath = ""
		c.Log.Warning("Chrome not found in standard locations")
		return nil
	}
	c.BrowserPath = path
	c.Log.Success("Chrome found: %s", path)
	return nil
}

func (in *Installer) launchBrowser(c *Context) error {
	c.Log.Plain("")
	c.Log.Info("Opening Chrome Extensions page...")

	result, err := in.Launcher.Open(c.BrowserPath, extension.ExtensionsPageURL)
	if result.StartErr != nil {
		c.Log.Warning("Failed to open Chrome: %v", result.StartErr)
	}
	if err != nil {
		c.Log.Error("Failed to open browser: %v", err)
		return err
	}
	switch result.Method {
	case browser.MethodExecutable:
		c.Log.Success("Chrome Extensions page opened")
	default:
		c.Log.Success("Opened extensions page in default browser")
	}
	return nil
}

func (in *Installer) writeGuide(c *Context) error {
	c.Log.Plain("")
	c.Log.Info("Creating installation guide...")

	path, err := artifacts.WriteGuide(artifacts.GuideData{
		Root:             c.Root,
		Platform:         c.Platform(),
		RuntimeVersion:   c.RuntimeVersion,
		BrowserPath:      c.BrowserPath,
		ExtensionVersion: c.Manifest.Version(),
		Command:          c.Command,
	})
	if err != nil {
		c.Log.Error("%v", err)
		return err
	}
	c.Log.Success("Installation guide created: %s", path)
	return nil
}

func (in *Installer) writeShortcut(c *Context) error {
	c.Log.Plain("")
	c.Log.Info("Creating desktop shortcut...")
	if c.DesktopDir == "" {
		c.Log.Error("Failed to create shortcut: %v", ErrDesktopUnknown)
		return ErrDesktopUnknown
	}

	path, err := artifacts.WriteShortcut(artifacts.ShortcutData{
		GOOS:        c.GOOS,
		DesktopDir:  c.DesktopDir,
		Root:        c.Root,
		BrowserPath: c.BrowserPath,
	})
	if err != nil {
		c.Log.Error("Failed to create shortcut: %v", err)
		return err
	}
	c.Log.Success("Desktop shortcut created: %s", path)
	return nil
}

func (in *Installer) showSummary(c *Context) error {
	c.Log.Plain("")
	c.Log.Info("Installation Steps:")
	c.Log.Plain("  1. Chrome Extensions page should now be open")
	c.Log.Plain("  2. Enable 'Developer mode' (toggle in top-right)")
	c.Log.Plain("  3. Click 'Load unpacked' button")
	c.Log.Plain("  4. Select this folder: %s", c.Root)
	c.Log.Plain("  5. Pin the extension to your toolbar")
	c.Log.Plain("")
	c.Log.Info("Test URLs:")
	for _, u := range extension.TestURLs {
		c.Log.Plain("  - %s (%s)", u.URL, u.Label)
	}
	return nil
}

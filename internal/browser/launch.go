package browser

import (
	"fmt"
	"os/exec"

	pkgbrowser "github.com/pkg/browser"
)

// Method says how a page ended up being opened.
type Method string

const (
	MethodExecutable     Method = "executable"
	MethodDefaultHandler Method = "default-handler"
)

// LaunchResult describes a launch attempt. StartErr is set when the executable
// could not be started and the default handler was used instead.
type LaunchResult struct {
	Method   Method
	StartErr error
}

// Launcher opens a URI either through a discovered browser executable or the
// operating system's default handler.
type Launcher struct {
	// Start starts name detached with args and does not wait for it.
	Start func(name string, args ...string) error
	// OpenURL hands url to the default handler.
	OpenURL func(url string) error
}

// NewLauncher returns a Launcher backed by os/exec and github.com/pkg/browser.
func NewLauncher() *Launcher {
	return &Launcher{
		Start:   startDetached,
		OpenURL: pkgbrowser.OpenURL,
	}
}

// Open starts browserPath with url. When browserPath is empty or fails to start,
// url goes to the default handler. Only a fallback failure is returned.
func (l *Launcher) Open(browserPath, url string) (LaunchResult, error) {
	var result LaunchResult
	if browserPath != "" {
		err := l.Start(browserPath, url)
		if err == nil {
			result.Method = MethodExecutable
			return result, nil
		}
		result.StartErr = err
	}

	result.Method = MethodDefaultHandler
	if err := l.OpenURL(url); err != nil {
		return result, fmt.Errorf("failed to open %s with the default handler: %w", url, err)
	}
	return result, nil
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// the browser outlives the installer; nobody waits on it
	return cmd.Process.Release()
}

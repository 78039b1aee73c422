// Package installer runs the extension setup checklist: validate the environment
// and the extension files, then open Chrome, write the guide and the shortcut.
package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/samber/lo"
	"github.com/temu-compare/extinstall/internal/browser"
	"github.com/temu-compare/extinstall/internal/extension"
	"github.com/temu-compare/extinstall/pkg/util"
)

// Context is the state of one installation pass. Nothing in it outlives the
// process; BrowserPath and Manifest are filled in by the steps.
type Context struct {
	Root           string
	GOOS           string
	GOARCH         string
	RuntimeVersion string
	DesktopDir     string
	// Command is how the user runs the installer, quoted in the guide.
	Command string

	BrowserPath string
	Manifest    extension.Manifest

	Log Logger
}

// ContextOptions overrides the detected defaults of NewContext.
type ContextOptions struct {
	Root       string
	DesktopDir string
	Command    string
	Log        Logger
}

// NewContext builds a Context for the running process. The extension root
// defaults to the directory holding the installer binary. DesktopDir is left
// empty when no home directory can be resolved.
func NewContext(opts ContextOptions) (*Context, error) {
	root := opts.Root
	if root == "" {
		dir, err := util.ExecutableDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve installer location: %w", err)
		}
		root = dir
	}
	root, err := util.AbsDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve extension root: %w", err)
	}

	desktop := opts.DesktopDir
	if desktop == "" {
		// an unknown home only costs the shortcut, which reports it
		if home, err := os.UserHomeDir(); err == nil {
			desktop = filepath.Join(home, "Desktop")
		}
	}

	log := opts.Log
	if log == nil {
		log = ConsoleLogger{}
	}

	return &Context{
		Root:           root,
		GOOS:           runtime.GOOS,
		GOARCH:         runtime.GOARCH,
		RuntimeVersion: runtime.Version(),
		DesktopDir:     desktop,
		Command:        util.OrDefault(opts.Command, "extinstall"),
		Log:            log,
	}, nil
}

// Platform is the "os/arch" pair shown to the user.
func (c *Context) Platform() string {
	return c.GOOS + "/" + c.GOARCH
}

// Installer holds the collaborators the steps reach outside the extension root
// through. The zero value is not usable; use New.
type Installer struct {
	Launcher *browser.Launcher
	// Candidates returns the browser probe list for a GOOS.
	Candidates func(goos string) []string
	// Exists probes one candidate path.
	Exists func(path string) bool
}

// New returns an Installer wired to the real filesystem and process launcher.
func New() *Installer {
	return &Installer{
		Launcher:   browser.NewLauncher(),
		Candidates: browser.DefaultCandidates,
		Exists:     browser.Exists,
	}
}

// Mode selects which front-end the checklist is built for.
type Mode int

const (
	ModeConsole Mode = iota
	ModeGraphical
)

// Steps returns the ordered checklist. The graphical mode has no summary step;
// its window already shows the log.
func (in *Installer) Steps(mode Mode) []Step {
	steps := []Step{
		{Name: "environment", Fatal: true, Check: true, Run: in.checkEnvironment},
		{Name: "files", Fatal: true, Check: true, Run: in.checkFiles},
		{Name: "manifest", Fatal: true, Check: true, Run: in.checkManifest},
		{Name: "browser discovery", Run: in.discoverBrowser},
		{Name: "browser launch", Run: in.launchBrowser},
		// the guide is the one artifact the user is pointed at afterwards
		{Name: "guide", Fatal: true, Run: in.writeGuide},
		{Name: "shortcut", Run: in.writeShortcut},
	}
	if mode == ModeConsole {
		steps = append(steps, Step{Name: "summary", Run: in.showSummary})
	}
	return steps
}

// ValidationSteps returns only the fatal validation gates (environment, files,
// manifest).
func (in *Installer) ValidationSteps() []Step {
	return lo.Filter(in.Steps(ModeGraphical), func(s Step, _ int) bool { return s.Check })
}

// RunConsole runs the full checklist with a banner and closing notes.
func (in *Installer) RunConsole(c *Context) Report {
	printBanner(c.Log)

	report := Run(c, in.Steps(ModeConsole))
	if !report.OK() {
		return report
	}

	c.Log.Plain("")
	c.Log.Success("Automated installation process completed!")
	c.Log.Plain("")
	c.Log.Info("Next steps:")
	c.Log.Plain("  1. Follow the installation steps above")
	c.Log.Plain("  2. Test the extension on Amazon product pages")
	c.Log.Plain("  3. Check the popup interface")
	c.Log.Plain("  4. Read %s for more details", extension.GuideFile)
	c.Log.Plain("")
	c.Log.Success("Extension is ready for installation!")
	return report
}

func printBanner(log Logger) {
	log.Plain("")
	log.Plain("%s Extension - Auto Installer", extension.ExtensionName)
	log.Plain("==================================================")
	log.Plain("")
}

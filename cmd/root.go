// Package cmd wires the installer's cobra commands.
package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/temu-compare/extinstall/internal/gui"
	"github.com/temu-compare/extinstall/internal/installer"
)

var rootCmd = &cobra.Command{
	Use:   "extinstall",
	Short: "Set up the Temu Price Comparison extension in Chrome",
	Long: `Check the unpacked Temu Price Comparison extension and prepare Chrome to load it.

The installer:
1. Checks the platform and Go runtime
2. Verifies the required extension files are present
3. Validates manifest.json
4. Looks for a Chrome installation and opens chrome://extensions/
5. Writes INSTALLATION_GUIDE.md next to the extension
6. Creates a desktop shortcut that reopens the extensions page

By default the extension root is the directory containing this binary. Use
--dir to point at another checkout.`,
	Example: `  # Console install from the extension directory
  ./extinstall

  # Windowed install
  ./extinstall --gui

  # Install an extension somewhere else
  extinstall --dir ~/src/temu-extension`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runInstall,
}

func init() {
	rootCmd.PersistentFlags().String("dir", "", "Extension root (default: directory of the installer binary)")
	rootCmd.PersistentFlags().String("desktop-dir", "", "Directory the shortcut is written to (default: ~/Desktop)")
	rootCmd.Flags().Bool("gui", false, "Run the windowed installer")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(browsersCmd)
	rootCmd.AddCommand(packCmd)
	rootCmd.AddCommand(completionCmd)
}

// Root returns the top-level command.
func Root() *cobra.Command {
	return rootCmd
}

// InstallCmd runs the installation checklist independent of cobra.
type InstallCmd struct {
	installer *installer.Installer
}

// Install runs the console checklist and returns the halting failure, if any,
// so the process exits non-zero when validation fails.
func (i InstallCmd) Install(c *installer.Context) error {
	return i.installer.RunConsole(c).Err()
}

func contextFromFlags(cmd *cobra.Command, log installer.Logger) (*installer.Context, error) {
	dir, _ := cmd.Flags().GetString("dir")
	desktopDir, _ := cmd.Flags().GetString("desktop-dir")
	return installer.NewContext(installer.ContextOptions{
		Root:       dir,
		DesktopDir: desktopDir,
		Command:    invocation(cmd),
		Log:        log,
	})
}

// invocation is how the user started the binary, for the guide.
func invocation(cmd *cobra.Command) string {
	name := filepath.Base(os.Args[0])
	if name == "" || name == "." {
		name = cmd.Root().Name()
	}
	if useGUI, _ := cmd.Flags().GetBool("gui"); useGUI {
		return name + " --gui"
	}
	return name
}

func runInstall(cmd *cobra.Command, args []string) error {
	useGUI, _ := cmd.Flags().GetBool("gui")
	in := installer.New()

	if useGUI {
		return gui.Run(in, func(log installer.Logger) (*installer.Context, error) {
			return contextFromFlags(cmd, log)
		})
	}

	c, err := contextFromFlags(cmd, installer.ConsoleLogger{})
	if err != nil {
		return err
	}
	return InstallCmd{installer: in}.Install(c)
}

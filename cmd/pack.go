package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/temu-compare/extinstall/internal/installer"
	"github.com/temu-compare/extinstall/pkg/util"
)

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Zip the extension for upload to the Chrome Web Store",
	Long: `Validate the extension files and manifest, then zip the extension root.

Development leftovers are left out by default: node_modules, .git, .history,
tests, coverage, test/spec scripts, logs, Python installer scripts and the
generated INSTALLATION_GUIDE.md. Use --all to keep everything.

The archive defaults to <name>-<version>.zip in the current directory.`,
	Example: `  extinstall pack
  extinstall pack -o dist/temu-extension.zip --verbose`,
	Args: cobra.NoArgs,
	RunE: runPack,
}

func init() {
	packCmd.Flags().StringP("output", "o", "", "Path of the zip file to write")
	packCmd.Flags().Bool("all", false, "Do not exclude development files")
	packCmd.Flags().BoolP("verbose", "v", false, "List every excluded file")
}

// PackInput configures a pack run.
type PackInput struct {
	Output  string
	KeepAll bool
	Verbose bool
}

// PackCmd validates and zips the extension independent of cobra.
type PackCmd struct {
	installer *installer.Installer
}

func (p PackCmd) Pack(c *installer.Context, in PackInput) (string, error) {
	// only files and manifest matter for an archive
	steps := p.installer.ValidationSteps()[1:]
	if err := installer.Run(c, steps).Err(); err != nil {
		return "", err
	}

	output := in.Output
	if output == "" {
		output = archiveName(c.Manifest.Name(), c.Manifest.Version())
	}
	absOutput, err := filepath.Abs(output)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output path: %w", err)
	}

	pterm.Println()
	pterm.Info.Printf("Packing %s\n", c.Root)
	stats, err := util.PackExtension(c.Root, absOutput, util.PackOptions{
		KeepAll: in.KeepAll,
		Verbose: in.Verbose,
	})
	if err != nil {
		return "", fmt.Errorf("failed to pack extension: %w", err)
	}

	if in.Verbose {
		for _, path := range stats.ExcludedPaths {
			pterm.Printf("  excluded %s\n", path)
		}
	}
	pterm.Success.Printf("Wrote %s (%d files, %s, %d excluded)\n",
		absOutput, stats.FilesIncluded, util.FormatBytes(stats.BytesIncluded), stats.FilesExcluded)
	return absOutput, nil
}

// archiveName turns the manifest name and version into a file name such as
// "temu-price-comparison-1.7.0.zip".
func archiveName(name, version string) string {
	slug := strings.ToLower(strings.Join(strings.FieldsFunc(name, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '.')
	}), "-"))
	if slug == "" {
		slug = "extension"
	}
	if version != "" {
		slug += "-" + version
	}
	return slug + ".zip"
}

func runPack(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	keepAll, _ := cmd.Flags().GetBool("all")
	verbose, _ := cmd.Flags().GetBool("verbose")

	c, err := contextFromFlags(cmd, installer.ConsoleLogger{})
	if err != nil {
		return err
	}
	_, err = PackCmd{installer: installer.New()}.Pack(c, PackInput{
		Output:  output,
		KeepAll: keepAll,
		Verbose: verbose,
	})
	return err
}

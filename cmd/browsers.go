package cmd

import (
	"fmt"
	"runtime"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/temu-compare/extinstall/internal/browser"
	"github.com/temu-compare/extinstall/pkg/util"
)

var browsersCmd = &cobra.Command{
	Use:   "browsers",
	Short: "List the locations probed for a Chrome installation",
	Long: `List the hard-coded locations the installer probes for a Chrome or Chromium
executable on this platform, in probe order, and whether each exists.

The first existing location is the one the installer launches. The registry and
PATH are not searched, so a browser installed elsewhere is reported as not found
and the installer falls back to the system's default handler.`,
	Args: cobra.NoArgs,
	RunE: runBrowsers,
}

func init() {
	browsersCmd.Flags().StringP("output", "o", "", "Output format: json for machine-readable results")
}

// BrowsersInput configures a browsers listing.
type BrowsersInput struct {
	GOOS   string
	Output string
}

// BrowsersCmd lists browser candidates independent of cobra.
type BrowsersCmd struct {
	candidates func(goos string) []string
	exists     func(path string) bool
}

func (b BrowsersCmd) List(in BrowsersInput) error {
	if in.Output != "" && in.Output != "json" {
		return fmt.Errorf("unsupported --output value: use 'json'")
	}

	probes := browser.ProbeAll(b.candidates(in.GOOS), b.exists)
	selected, _ := browser.Find(b.candidates(in.GOOS), b.exists)

	if in.Output == "json" {
		return util.PrintPrettyJSON(struct {
			Platform string          `json:"platform"`
			Selected string          `json:"selected,omitempty"`
			Probes   []browser.Probe `json:"probes"`
		}{in.GOOS, selected, probes})
	}

	rows := pterm.TableData{{"#", "Location", "Status"}}
	for i, p := range probes {
		status := pterm.Red("Missing")
		if p.Found {
			status = pterm.Green("Found")
		}
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), p.Path, status})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()

	pterm.Println()
	if selected == "" {
		pterm.Warning.Println("Chrome not found in standard locations; the default browser will be used")
	} else {
		pterm.Success.Printf("The installer will launch: %s\n", selected)
	}
	return nil
}

func runBrowsers(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	b := BrowsersCmd{candidates: browser.DefaultCandidates, exists: browser.Exists}
	return b.List(BrowsersInput{GOOS: runtime.GOOS, Output: output})
}

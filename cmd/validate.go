package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/temu-compare/extinstall/internal/installer"
	"github.com/temu-compare/extinstall/pkg/util"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the environment, extension files and manifest without installing",
	Long: `Run only the validation gates of the installer:

- the Go runtime is recent enough
- every required extension file exists
- manifest.json parses and declares manifest_version, name, version and description

Nothing is written and no browser is opened. The command exits non-zero when a
check fails.`,
	Example: `  extinstall validate --dir ./extension
  extinstall validate -o json`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringP("output", "o", "", "Output format: json for machine-readable results")
}

// ValidateInput configures a validation run.
type ValidateInput struct {
	Output string
}

// CheckResult is one row of the validation output.
type CheckResult struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// ValidateOutput is the JSON document printed with -o json.
type ValidateOutput struct {
	Root   string        `json:"root"`
	OK     bool          `json:"ok"`
	Checks []CheckResult `json:"checks"`
}

// ValidateCmd runs the validation gates independent of cobra.
type ValidateCmd struct {
	installer *installer.Installer
}

func (v ValidateCmd) Validate(c *installer.Context, in ValidateInput) error {
	if in.Output != "" && in.Output != "json" {
		return fmt.Errorf("unsupported --output value: use 'json'")
	}

	steps := v.installer.ValidationSteps()
	report := installer.Run(c, steps)

	out := ValidateOutput{Root: c.Root, OK: report.OK()}
	for _, s := range steps {
		row := CheckResult{Name: s.Name}
		for _, res := range report.Results {
			if res.Name != s.Name {
				continue
			}
			row.OK = !res.Failed()
			if res.Err != nil {
				row.Error = res.Err.Error()
			}
		}
		if !report.Ran(s.Name) {
			row.Error = "skipped"
		}
		out.Checks = append(out.Checks, row)
	}

	if in.Output == "json" {
		if err := util.PrintPrettyJSON(out); err != nil {
			return err
		}
		return report.Err()
	}

	pterm.Println()
	rows := pterm.TableData{{"Check", "Status", "Details"}}
	for _, row := range out.Checks {
		status := pterm.Green("Passed")
		switch {
		case row.Error == "skipped":
			status = pterm.Gray("Skipped")
		case !row.OK:
			status = pterm.Red("Failed")
		}
		rows = append(rows, []string{row.Name, status, util.OrDash(row.Error)})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	pterm.Println()

	if report.OK() {
		pterm.Success.Printf("Extension at %s is ready to load\n", c.Root)
	}
	return report.Err()
}

func runValidate(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")

	var log installer.Logger = installer.ConsoleLogger{}
	if output == "json" {
		log = &installer.LineLogger{}
	}
	c, err := contextFromFlags(cmd, log)
	if err != nil {
		return err
	}
	return ValidateCmd{installer: installer.New()}.Validate(c, ValidateInput{Output: output})
}

package installer

import (
	"fmt"
)

// Step is one named item of the checklist. A failing Fatal step stops the run;
// any other failure is logged and the run goes on.
type Step struct {
	Name  string
	Fatal bool
	// Check marks the validation gates; they fail as "checks", the rest as "steps".
	Check bool
	Run   func(c *Context) error
}

// StepResult is the outcome of a step that was executed.
type StepResult struct {
	Name  string
	Fatal bool
	Check bool
	Err   error
}

// Failed reports whether the step returned an error.
func (r StepResult) Failed() bool { return r.Err != nil }

// Halts reports whether this result stops the checklist.
func (r StepResult) Halts() bool { return r.Fatal && r.Err != nil }

// Failure describes the failed step, e.g. "manifest check failed" or
// "guide step failed".
func (r StepResult) Failure() string {
	if r.Check {
		return r.Name + " check failed"
	}
	return r.Name + " step failed"
}

// RunStep executes a single step.
func RunStep(c *Context, s Step) StepResult {
	return StepResult{Name: s.Name, Fatal: s.Fatal, Check: s.Check, Err: s.Run(c)}
}

// Report collects the results of the steps that ran, in order. Steps after a
// halting failure are absent.
type Report struct {
	Results []StepResult
}

// OK is true when no fatal step failed.
func (r Report) OK() bool {
	return r.Err() == nil
}

// Err returns the halting failure, wrapped with its step name, or nil.
func (r Report) Err() error {
	for _, res := range r.Results {
		if res.Halts() {
			return fmt.Errorf("%s: %w", res.Failure(), res.Err)
		}
	}
	return nil
}

// Ran reports whether a step with the given name was executed.
func (r Report) Ran(name string) bool {
	for _, res := range r.Results {
		if res.Name == name {
			return true
		}
	}
	return false
}

// Run executes steps in order and stops after the first failing fatal step.
func Run(c *Context, steps []Step) Report {
	var report Report
	for _, s := range steps {
		res := RunStep(c, s)
		report.Results = append(report.Results, res)
		if res.Halts() {
			break
		}
	}
	return report
}

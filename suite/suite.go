// Package suite runs a fixed sequence of capability checks against a
// probe context and renders the console report the conformance tooling
// parses: banner, title, one TEST block per check, then the tally.
package suite

import (
	"fmt"
	"io"
	"strings"

	"github.com/devblok/vkprobe/core"
)

const bannerWidth = 40

// Check is a single named capability check.
type Check struct {
	Name string
	Run  func(*core.Context) core.CapabilityResult
}

// Suite is a fixed, ordered sequence of checks under one title.
type Suite struct {
	Title  string
	Checks []Check
}

// Outcome pairs a check name with its result.
type Outcome struct {
	Name   string
	Result core.CapabilityResult
}

// Summary is the tally of one suite run.
type Summary struct {
	Outcomes []Outcome
	Passed   int
	Failed   int
}

// Total is the number of checks that ran.
func (s Summary) Total() int {
	return s.Passed + s.Failed
}

// ExitCode maps the tally onto the process exit status.
func (s Summary) ExitCode() int {
	if s.Failed == 0 {
		return 0
	}
	return 1
}

// Run executes every check in order. Check failures never abort the
// sequence, a failed capability is a result, not a harness error.
func (s Suite) Run(ctx *core.Context) Summary {
	var sum Summary
	for _, check := range s.Checks {
		result := check.Run(ctx)
		sum.Outcomes = append(sum.Outcomes, Outcome{Name: check.Name, Result: result})
		if result.Supported {
			sum.Passed++
		} else {
			sum.Failed++
		}
	}
	return sum
}

// Report renders the summary in the fixed console format.
func (s Suite) Report(w io.Writer, sum Summary) {
	banner := strings.Repeat("=", bannerWidth)

	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, s.Title)
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w)

	for _, outcome := range sum.Outcomes {
		fmt.Fprintf(w, "TEST: %s\n", outcome.Name)
		for _, note := range outcome.Result.Notes {
			fmt.Fprintf(w, "  %s\n", note)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, banner)
	fmt.Fprintf(w, "Results: %d/%d PASSED, %d FAILED\n", sum.Passed, sum.Total(), sum.Failed)
	fmt.Fprintln(w, banner)
}

// Render returns the report as a string, for bundling.
func (s Suite) Render(sum Summary) string {
	var b strings.Builder
	s.Report(&b, sum)
	return b.String()
}

package pipeline

import (
	"fmt"
	"strings"
)

// ============================================================================
// RUN SUMMARY — per-metric success/failure report
// ============================================================================
// The user-visible result of a full run: every metric listed as succeeded,
// skipped, or failed with its message. Never a silent partial success.
// ============================================================================

// MetricResult is one metric's outcome.
type MetricResult struct {
	MetricID   string
	OutputName string
	Rows       int
	Skipped    bool
	Err        error
}

// Summary aggregates the outcomes of one run.
type Summary struct {
	Results []MetricResult
}

// Succeeded counts metrics that produced an output artifact.
func (s Summary) Succeeded() int {
	n := 0
	for _, r := range s.Results {
		if r.Err == nil && !r.Skipped {
			n++
		}
	}
	return n
}

// Skipped counts metrics whose segment filters matched no rows.
func (s Summary) Skipped() int {
	n := 0
	for _, r := range s.Results {
		if r.Skipped {
			n++
		}
	}
	return n
}

// Failed counts metrics that aborted with an error.
func (s Summary) Failed() int {
	n := 0
	for _, r := range s.Results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// String renders the human-readable run report.
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "run complete: %d succeeded, %d skipped, %d failed\n",
		s.Succeeded(), s.Skipped(), s.Failed())
	for _, r := range s.Results {
		switch {
		case r.Err != nil:
			fmt.Fprintf(&b, "  FAIL %-40s %v\n", r.OutputName, r.Err)
		case r.Skipped:
			fmt.Fprintf(&b, "  SKIP %-40s empty segment\n", r.OutputName)
		default:
			fmt.Fprintf(&b, "  OK   %-40s %d rows\n", r.OutputName, r.Rows)
		}
	}
	return b.String()
}

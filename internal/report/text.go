package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/andyballingall/json-schema-validator/internal/runner"
)

// TextReporter renders a validation report as plain text.
type TextReporter struct {
	Verbose   bool
	UseColour bool
}

const (
	colReset     = "\033[0m"
	colRed       = "\033[31m"
	colGreen     = "\033[32m"
	colGrey      = "\033[90m"
	colBoldRed   = "\033[1;31m"
	colBoldGreen = "\033[1;32m"
	colBoldWhite = "\033[1;37m"
)

// cs returns a string which will render with the given colour
// if colourisation is enabled.
func (tr *TextReporter) cs(c, s string) string {
	if !tr.UseColour {
		return s
	}
	return c + s + colReset
}

func (tr *TextReporter) Write(w io.Writer, r *runner.Report) error {
	divider := strings.Repeat("-", 40)

	fmt.Fprintf(w, "%s\n", divider)
	fmt.Fprint(w, tr.cs(colBoldWhite, "JSV VALIDATION REPORT\n\n"))
	fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "Started: "), r.StartTime.Format("15:04:05"))
	fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "Duration:"), r.EndTime.Sub(r.StartTime).String())
	fmt.Fprintf(w, "%s\n", divider)

	for _, res := range r.Results {
		statusText := "PASS"
		statusCol := colGreen
		if !res.Ok() {
			statusText = "FAIL"
			statusCol = colRed
		}

		fmt.Fprintf(w, "%s %s\n", tr.cs(statusCol, "["+statusText+"]"), res.Path)

		if res.Err != nil {
			fmt.Fprintf(w, "  %s %v\n", tr.cs(colRed, "✗"), res.Err)
			continue
		}

		// For fail-suite documents the violations are the expected outcome,
		// so they are only shown in verbose mode.
		showErrors := !res.Ok() || (tr.Verbose && res.Expect == runner.ExpectInvalid)
		if showErrors {
			for _, vErr := range res.Result.Errors() {
				fmt.Fprintf(w, "  %s %s\n", tr.cs(colRed, "✗"), Describe(vErr).Message)
			}
		}
	}

	fmt.Fprintf(w, "%s\n", divider)

	passed := len(r.Passed())
	failed := len(r.Failed())
	summary := fmt.Sprintf("%d passed, %d failed", passed, failed)
	statsColour := colBoldGreen
	if failed > 0 {
		statsColour = colBoldRed
	}
	fmt.Fprintf(w, "%s%s\n", tr.cs(colBoldWhite, "Summary: "), tr.cs(statsColour, summary))

	return nil
}

package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/andyballingall/json-schema-validator/internal/runner"
)

// JSONReporter renders a validation report as a single JSON document.
type JSONReporter struct{}

type jsonReport struct {
	Started  time.Time    `json:"started"`
	Duration string       `json:"duration"`
	Ok       bool         `json:"ok"`
	Results  []jsonResult `json:"results"`
}

type jsonResult struct {
	Path        string      `json:"path"`
	Expectation string      `json:"expectation"`
	Ok          bool        `json:"ok"`
	Problem     string      `json:"problem,omitempty"`
	Errors      []ErrorInfo `json:"errors,omitempty"`
}

func (jr *JSONReporter) Write(w io.Writer, r *runner.Report) error {
	out := jsonReport{
		Started:  r.StartTime,
		Duration: r.EndTime.Sub(r.StartTime).String(),
		Ok:       r.Ok(),
		Results:  make([]jsonResult, 0, len(r.Results)),
	}

	for _, res := range r.Results {
		jres := jsonResult{
			Path:        res.Path,
			Expectation: string(res.Expect),
			Ok:          res.Ok(),
		}
		if res.Err != nil {
			jres.Problem = res.Err.Error()
		}
		for _, vErr := range res.Result.Errors() {
			jres.Errors = append(jres.Errors, Describe(vErr))
		}
		out.Results = append(out.Results, jres)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

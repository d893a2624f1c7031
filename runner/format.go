package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Output formats accepted by --format.
const (
	FormatPretty = "pretty"
	FormatTerse  = "terse"
	FormatJSON   = "json"
)

// Formatter renders test events and results.
type Formatter interface {
	Plan(total int) error
	Format(event Event, result *Result) error
	Summary(result *Result) error
}

// FormatHandler is a Handler that delegates to a Formatter.
type FormatHandler struct {
	formatter Formatter
}

// NewFormatHandler creates a handler that formats events.
func NewFormatHandler(f Formatter) *FormatHandler {
	return &FormatHandler{formatter: f}
}

// Event formats the event.
func (h *FormatHandler) Event(_ context.Context, event Event, result *Result) error {
	return h.formatter.Format(event, result)
}

// Plan announces how many tests will run.
func (h *FormatHandler) Plan(total int) error {
	return h.formatter.Plan(total)
}

// Summary renders the final summary.
func (h *FormatHandler) Summary(result *Result) error {
	return h.formatter.Summary(result)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}

	return many
}

// writeFailures prints the failure details followed by the list of failed names.
func writeFailures(w io.Writer, result *Result) {
	failed := result.FailedTests()
	if len(failed) == 0 {
		return
	}

	_, _ = fmt.Fprint(w, "\nfailures:\n\n")

	for _, tr := range failed {
		_, _ = fmt.Fprintf(w, "---- %s ----\n", tr.Name)

		if tr.Error != nil {
			_, _ = fmt.Fprintln(w, tr.Error)
		}

		_, _ = fmt.Fprintln(w)
	}

	_, _ = fmt.Fprint(w, "\nfailures:\n")

	for _, tr := range failed {
		_, _ = fmt.Fprintf(w, "    %s\n", tr.Name)
	}
}

// writeResultLine prints the statistics line shared by the text formatters.
func writeResultLine(w io.Writer, p Palette, result *Result) {
	status := p.paint(p.ok, "ok")
	if !result.Ok() {
		status = p.paint(p.failed, "FAILED")
	}

	s := result.Stats()

	_, _ = fmt.Fprintf(w,
		"\ntest result: %s. %d passed; %d failed; %d ignored; %d measured; %d filtered out; finished in %.2fs\n\n",
		status, s.Passed, s.Failed, s.Ignored, s.Measured, s.FilteredOut, result.Elapsed().Seconds(),
	)
}

// -----------------------------------------------------------------------------
// Pretty Formatter
// -----------------------------------------------------------------------------

// PrettyFormatter prints one line per finished test.
type PrettyFormatter struct {
	w       io.Writer
	palette Palette
}

// NewPrettyFormatter creates a pretty formatter.
func NewPrettyFormatter(w io.Writer, p Palette) *PrettyFormatter {
	return &PrettyFormatter{w: w, palette: p}
}

// Plan prints the number of tests about to run.
func (f *PrettyFormatter) Plan(total int) error {
	_, err := fmt.Fprintf(f.w, "\nrunning %d %s\n", total, plural(total, "test", "tests"))

	return err
}

// Format prints the outcome of each finished test.
func (f *PrettyFormatter) Format(event Event, _ *Result) error {
	var status string

	switch event.Action {
	case ActionPass:
		status = f.palette.paint(f.palette.ok, "ok")
	case ActionFail:
		status = f.palette.paint(f.palette.failed, "FAILED")
	case ActionIgnore:
		status = f.palette.paint(f.palette.ignored, "ignored")
		if event.Message != "" {
			status += ", " + event.Message
		}
	case ActionRun:
		return nil
	}

	_, err := fmt.Fprintf(f.w, "test %s ... %s\n", event.Name, status)

	return err
}

// Summary prints failures and the statistics line.
func (f *PrettyFormatter) Summary(result *Result) error {
	writeFailures(f.w, result)
	writeResultLine(f.w, f.palette, result)

	return nil
}

// -----------------------------------------------------------------------------
// Terse Formatter
// -----------------------------------------------------------------------------

// TerseFormatter prints a single character per finished test.
type TerseFormatter struct {
	w       io.Writer
	palette Palette
	count   int
}

// NewTerseFormatter creates a terse formatter.
func NewTerseFormatter(w io.Writer, p Palette) *TerseFormatter {
	return &TerseFormatter{w: w, palette: p}
}

const lineWidth = 80

// Plan prints the number of tests about to run.
func (f *TerseFormatter) Plan(total int) error {
	_, err := fmt.Fprintf(f.w, "\nrunning %d %s\n", total, plural(total, "test", "tests"))

	return err
}

// Format prints a single character per terminal event.
func (f *TerseFormatter) Format(event Event, _ *Result) error {
	var char string

	switch event.Action {
	case ActionPass:
		char = f.palette.paint(f.palette.ok, ".")
	case ActionFail:
		char = f.palette.paint(f.palette.failed, "F")
	case ActionIgnore:
		char = f.palette.paint(f.palette.ignored, "i")
	case ActionRun:
		return nil
	}

	_, err := fmt.Fprint(f.w, char)
	f.count++

	if f.count%lineWidth == 0 {
		_, _ = fmt.Fprintln(f.w)
	}

	return err
}

// Summary prints failures and the statistics line.
func (f *TerseFormatter) Summary(result *Result) error {
	if f.count > 0 && f.count%lineWidth != 0 {
		_, _ = fmt.Fprintln(f.w)
	}

	writeFailures(f.w, result)
	writeResultLine(f.w, f.palette, result)

	return nil
}

// -----------------------------------------------------------------------------
// JSON Formatter
// -----------------------------------------------------------------------------

// JSONFormatter outputs newline-delimited JSON events.
type JSONFormatter struct {
	enc *json.Encoder
}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{enc: json.NewEncoder(w)}
}

type jsonEvent struct {
	Type     string  `json:"type"`
	Event    string  `json:"event"`
	Name     string  `json:"name"`
	ExecTime float64 `json:"exec_time,omitempty"`
	Stdout   string  `json:"stdout,omitempty"`
	Message  string  `json:"message,omitempty"`
}

type jsonPlan struct {
	Type      string `json:"type"`
	Event     string `json:"event"`
	TestCount int    `json:"test_count"`
}

// Plan outputs the suite start record.
func (j *JSONFormatter) Plan(total int) error {
	return j.enc.Encode(jsonPlan{Type: "suite", Event: "started", TestCount: total})
}

// Format outputs a JSON event.
func (j *JSONFormatter) Format(event Event, _ *Result) error {
	je := jsonEvent{
		Type:    "test",
		Event:   string(event.Action),
		Name:    event.Name,
		Message: event.Message,
	}

	if event.Action == ActionPass || event.Action == ActionFail {
		je.ExecTime = event.Elapsed.Seconds()
	}

	if event.Error != nil {
		je.Stdout = strings.TrimRight(event.Error.Error(), "\n") + "\n"
	}

	return j.enc.Encode(je)
}

type jsonSummary struct {
	Type        string  `json:"type"`
	Event       string  `json:"event"`
	Passed      int     `json:"passed"`
	Failed      int     `json:"failed"`
	Ignored     int     `json:"ignored"`
	Measured    int     `json:"measured"`
	FilteredOut int     `json:"filtered_out"`
	ExecTime    float64 `json:"exec_time"`
}

// Summary outputs the final JSON summary.
func (j *JSONFormatter) Summary(result *Result) error {
	event := string(ActionPass)
	if !result.Ok() {
		event = string(ActionFail)
	}

	s := result.Stats()
	summary := jsonSummary{
		Type:        "suite",
		Event:       event,
		Passed:      s.Passed,
		Failed:      s.Failed,
		Ignored:     s.Ignored,
		Measured:    s.Measured,
		FilteredOut: s.FilteredOut,
		ExecTime:    result.Elapsed().Seconds(),
	}

	return j.enc.Encode(summary)
}

// NewFormatter creates a formatter by name.
func NewFormatter(name string, w io.Writer, p Palette) (Formatter, error) {
	switch name {
	case FormatPretty, "":
		return NewPrettyFormatter(w, p), nil
	case FormatTerse:
		return NewTerseFormatter(w, p), nil
	case FormatJSON:
		return NewJSONFormatter(w), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

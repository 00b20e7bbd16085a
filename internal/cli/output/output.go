// Package output renders command results for the tabkit CLI in one of
// four formats: an aligned table for people, JSON or YAML for scripts, and
// a quiet mode that prints only names.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Format names a rendering of command results.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatQuiet Format = "quiet"
)

// Formats lists the accepted format names.
var Formats = []Format{FormatTable, FormatJSON, FormatYAML, FormatQuiet}

// ParseFormat parses a format string. Unknown names are an error so a
// typo in --output does not silently print a table.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "quiet", "q":
		return FormatQuiet, nil
	}
	return "", fmt.Errorf("unknown output format %q (available: %v)", s, Formats)
}

// Writer prints results to stdout and notices to stderr.
type Writer struct {
	format Format
	stdout io.Writer
	stderr io.Writer
}

// NewWriter returns a Writer for format on the process streams.
func NewWriter(format Format) *Writer {
	return &Writer{format: format, stdout: os.Stdout, stderr: os.Stderr}
}

// WithOutput redirects results to out.
func (w *Writer) WithOutput(out io.Writer) *Writer {
	w.stdout = out
	return w
}

// WithError redirects notices to err.
func (w *Writer) WithError(err io.Writer) *Writer {
	w.stderr = err
	return w
}

// Format returns the format results are written in.
func (w *Writer) Format() Format {
	return w.format
}

// Write renders data. Table mode needs a Tabular and quiet mode a string
// or Named; anything else is written as JSON.
func (w *Writer) Write(data any) error {
	switch w.format {
	case FormatJSON:
		return w.json(data)
	case FormatYAML:
		enc := yaml.NewEncoder(w.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	case FormatQuiet:
		switch v := data.(type) {
		case string:
			return w.lines(v)
		case Named:
			return w.lines(v.Names()...)
		}
	default:
		if t, ok := data.(Tabular); ok {
			return w.table(t.TableData())
		}
	}
	return w.json(data)
}

func (w *Writer) json(data any) error {
	enc := json.NewEncoder(w.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func (w *Writer) lines(items ...string) error {
	for _, s := range items {
		if _, err := fmt.Fprintln(w.stdout, s); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) table(t *Table) error {
	if t == nil || len(t.Headers) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(w.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(t.Headers, "\t")))
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// Println prints a plain line of results.
func (w *Writer) Println(a ...any) {
	fmt.Fprintln(w.stdout, a...)
}

// Success confirms a completed action. Quiet mode prints nothing.
func (w *Writer) Success(message string) {
	if w.format == FormatQuiet {
		return
	}
	fmt.Fprintf(w.stdout, "✓ %s\n", message)
}

// Warn prints a notice on the error stream in every format.
func (w *Writer) Warn(message string) {
	fmt.Fprintf(w.stderr, "⚠ %s\n", message)
}

// Named results print one name per line in quiet mode.
type Named interface {
	Names() []string
}

// Tabular results print as a table in table mode.
type Tabular interface {
	TableData() *Table
}

// Table is a header row plus data rows.
type Table struct {
	Headers []string
	Rows    [][]string
}

// NewTable returns an empty table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{Headers: headers}
}

// AddRow appends a row, padding short rows to the header width.
func (t *Table) AddRow(cells ...string) *Table {
	for len(cells) < len(t.Headers) {
		cells = append(cells, "")
	}
	t.Rows = append(t.Rows, cells)
	return t
}

// TableData makes a Table its own Tabular.
func (t *Table) TableData() *Table {
	return t
}

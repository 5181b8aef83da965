// Package render provides centralized output rendering for fillctl.
//
// Format selection rules:
//   - If output is a TTY, default to table
//   - If output is not a TTY, default to json
//   - --format flag always overrides defaults
//   - Invalid formats are errors
//
// Color handling:
//   - --no-color affects table output only
//   - TUI mode is unaffected by --no-color (uses its own styling)
//
// Absent optional values render as "-" in tables and null in json, so a
// present but empty id list ("[]") stays distinguishable.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/pithecene-io/fillwire/cli/reader"
	"github.com/pithecene-io/fillwire/cli/tui"
)

// Format represents an output format.
type Format string

// Supported formats.
const (
	FormatJSON  Format = "json"
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
)

// absentCell marks a nil pointer or nil slice in table output.
const absentCell = "-"

// maxInlineItems is the longest slice printed element by element in a cell.
const maxInlineItems = 4

var sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)

// ParseFormat parses a format string, returning an error for invalid formats.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "table":
		return FormatTable, nil
	case "yaml":
		return FormatYAML, nil
	case "":
		return "", nil // Let caller decide default
	default:
		return "", fmt.Errorf("invalid format: %q (must be json, table, or yaml)", s)
	}
}

// Renderer handles output formatting.
type Renderer struct {
	format  Format
	noColor bool
	out     io.Writer
}

// NewRenderer creates a renderer from CLI context, writing to the app's
// writer.
func NewRenderer(c *cli.Context) (*Renderer, error) {
	format, err := ParseFormat(c.String("format"))
	if err != nil {
		return nil, err
	}

	out := c.App.Writer
	if out == nil {
		out = os.Stdout
	}

	// Apply default format based on TTY detection
	if format == "" {
		if isTTY(out) {
			format = FormatTable
		} else {
			format = FormatJSON
		}
	}

	return &Renderer{
		format:  format,
		noColor: c.Bool("no-color"),
		out:     out,
	}, nil
}

// NewRendererWithWriter creates a renderer with a custom writer (for testing).
func NewRendererWithWriter(format Format, noColor bool, out io.Writer) *Renderer {
	return &Renderer{
		format:  format,
		noColor: noColor,
		out:     out,
	}
}

// Format returns the selected format.
func (r *Renderer) Format() Format {
	return r.format
}

// Render outputs the data in the configured format.
func (r *Renderer) Render(data any) error {
	switch r.format {
	case FormatJSON:
		return r.renderJSON(data)
	case FormatTable:
		return r.renderTable(data)
	case FormatYAML:
		return r.renderYAML(data)
	default:
		return fmt.Errorf("unknown format: %s", r.format)
	}
}

// RenderResponse outputs a detailed response view. Tables get one section
// per response part; json and yaml render the view as is.
func (r *Renderer) RenderResponse(v *reader.ResponseView) error {
	if r.format != FormatTable {
		return r.Render(v)
	}

	r.section("datasets")
	if v.Datasets == nil {
		fmt.Fprintln(r.out, absentCell)
	} else if err := r.renderTable(datasetRows(v.Datasets)); err != nil {
		return err
	}

	r.section("save_info")
	if err := r.renderOptional(v.SaveInfo); err != nil {
		return err
	}
	r.section("client_state")
	if err := r.renderOptional(v.ClientState); err != nil {
		return err
	}
	r.section("authentication")
	if err := r.renderOptional(v.Authentication); err != nil {
		return err
	}

	r.section("ignored_ids")
	fmt.Fprintln(r.out, r.formatValue(reflect.ValueOf(v.IgnoredIDs)))
	return nil
}

// RenderTUI runs the TUI for the given view type. When the output is not a
// terminal the view is rendered once instead.
func (r *Renderer) RenderTUI(viewType string, data any) error {
	if !tui.IsTUISupported(viewType) {
		return fmt.Errorf("--tui is not supported for %s", viewType)
	}
	if !isTTY(r.out) {
		out, err := tui.RenderStatic(viewType, data)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(r.out, out)
		return err
	}
	return tui.Run(viewType, data)
}

// datasetRow flattens a dataset for the datasets table.
type datasetRow struct {
	ID            string `json:"id"`
	Fields        string `json:"fields"`
	Presentation  string `json:"presentation"`
	Authenticated bool   `json:"authenticated"`
}

func datasetRows(datasets []reader.DatasetView) []datasetRow {
	rows := make([]datasetRow, len(datasets))
	for i, ds := range datasets {
		fields := make([]string, len(ds.Fields))
		for j, f := range ds.Fields {
			fields[j] = f.Field + "=" + f.Value
		}
		rows[i] = datasetRow{
			ID:            ds.ID,
			Fields:        strings.Join(fields, " "),
			Presentation:  ds.Presentation,
			Authenticated: ds.Authenticated,
		}
	}
	return rows
}

func (r *Renderer) section(name string) {
	title := strings.ToUpper(name)
	if !r.noColor {
		title = sectionStyle.Render(title)
	}
	fmt.Fprintln(r.out, title)
}

func (r *Renderer) renderOptional(data any) error {
	if v := reflect.ValueOf(data); v.Kind() == reflect.Ptr && v.IsNil() {
		_, err := fmt.Fprintln(r.out, absentCell)
		return err
	}
	return r.renderStructTable(data)
}

func (r *Renderer) renderJSON(data any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func (r *Renderer) renderYAML(data any) error {
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return err
	}
	return enc.Close()
}

func (r *Renderer) renderTable(data any) error {
	// Handle slice of items
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Slice {
		return r.renderSliceTable(v)
	}

	// Handle single struct/map
	return r.renderStructTable(data)
}

func (r *Renderer) renderSliceTable(v reflect.Value) error {
	if v.Len() == 0 {
		fmt.Fprintln(r.out, "(no results)")
		return nil
	}

	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)

	// Get headers from first element
	headers := r.getHeaders(v.Index(0))
	fmt.Fprintln(w, strings.Join(headers, "\t"))

	for i := 0; i < v.Len(); i++ {
		row := r.getRowValues(v.Index(i), headers)
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	return w.Flush()
}

func (r *Renderer) renderStructTable(data any) error {
	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)

	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			name := r.getFieldName(t.Field(i))
			fmt.Fprintf(w, "%s:\t%s\n", name, r.formatValue(v.Field(i)))
		}
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			key := fmt.Sprintf("%v", iter.Key().Interface())
			fmt.Fprintf(w, "%s:\t%s\n", key, r.formatValue(iter.Value()))
		}
	default:
		fmt.Fprintf(w, "%v\n", data)
	}

	return w.Flush()
}

func (r *Renderer) getHeaders(v reflect.Value) []string {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	var headers []string
	if v.Kind() == reflect.Struct {
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			headers = append(headers, r.getFieldName(t.Field(i)))
		}
	}
	return headers
}

func (r *Renderer) getRowValues(v reflect.Value, headers []string) []string {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	var values []string
	if v.Kind() == reflect.Struct {
		for i := 0; i < v.NumField(); i++ {
			values = append(values, r.formatValue(v.Field(i)))
		}
	} else {
		values = append(values, r.formatValue(v))
	}
	for len(values) < len(headers) {
		values = append(values, "")
	}
	return values
}

func (r *Renderer) getFieldName(f reflect.StructField) string {
	// Prefer json tag name
	if tag := f.Tag.Get("json"); tag != "" {
		parts := strings.Split(tag, ",")
		if parts[0] != "" && parts[0] != "-" {
			return parts[0]
		}
	}
	return strings.ToLower(f.Name)
}

func (r *Renderer) formatValue(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}

	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return absentCell
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return absentCell
		}
		if v.Len() == 0 {
			return "[]"
		}
		if v.Len() > maxInlineItems || v.Index(0).Kind() == reflect.Struct {
			return fmt.Sprintf("[%d items]", v.Len())
		}
		items := make([]string, v.Len())
		for i := range items {
			items[i] = fmt.Sprintf("%v", v.Index(i).Interface())
		}
		return "[" + strings.Join(items, ", ") + "]"
	case reflect.Map:
		if v.Len() == 0 {
			return "{}"
		}
		return fmt.Sprintf("{%d keys}", v.Len())
	case reflect.Struct:
		return "{...}"
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// isTTY returns true if the writer is a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

package core

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Printer handles all display output for the CLI.
type Printer struct {
	JSON    bool
	Verbose bool
	Writer  *os.File
}

// NewPrinter creates a default Printer writing to stdout.
func NewPrinter(jsonMode, verbose bool) *Printer {
	return &Printer{JSON: jsonMode, Verbose: verbose, Writer: os.Stdout}
}

// PrintInfoDict renders the information dictionary of a document.
func (p *Printer) PrintInfoDict(path string, d *InfoDict) {
	if p.JSON {
		p.printJSON(path, d)
		return
	}
	p.printText(path, d)
}

func (p *Printer) printText(path string, d *InfoDict) {
	fmt.Fprintf(p.Writer, "File  : %s\n", path)
	fmt.Fprintf(p.Writer, "Format: PDF\n")
	if d.Len() == 0 {
		fmt.Fprintln(p.Writer, "(no metadata found)")
		return
	}
	fmt.Fprintln(p.Writer)

	for _, f := range d.Fields() {
		edit := ""
		if f.Editable {
			edit = " [editable]"
		}
		fmt.Fprintf(p.Writer, "  %-20s %s%s\n", f.Key+":", f.Display, edit)
		if p.Verbose && f.Raw != f.Display {
			fmt.Fprintf(p.Writer, "  %-20s %s\n", "", "raw: "+f.Raw)
		}
	}
}

func (p *Printer) printJSON(path string, d *InfoDict) {
	type jsonField struct {
		Key      string `json:"key"`
		Display  string `json:"display"`
		Raw      string `json:"raw"`
		Date     bool   `json:"date"`
		Editable bool   `json:"editable"`
	}
	type jsonOutput struct {
		FilePath string      `json:"file"`
		Format   string      `json:"format"`
		Fields   []jsonField `json:"fields"`
	}

	out := jsonOutput{FilePath: path, Format: "PDF"}
	for _, f := range d.Fields() {
		out.Fields = append(out.Fields, jsonField{
			Key:      f.Key,
			Display:  f.Display,
			Raw:      f.Raw,
			Date:     f.IsDate,
			Editable: f.Editable,
		})
	}

	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Fprintln(p.Writer, string(b))
}

// PrintSuccess prints a success message.
func (p *Printer) PrintSuccess(msg string) {
	fmt.Fprintln(p.Writer, "✓ "+msg)
}

// PrintInfo prints an info line (suppressed in JSON mode).
func (p *Printer) PrintInfo(msg string) {
	if !p.JSON {
		fmt.Fprintln(p.Writer, msg)
	}
}

// PrintError prints an error to stderr.
func PrintError(msg string) {
	fmt.Fprintln(os.Stderr, "✗ Error: "+msg)
}

// ParseKV parses a "Key=Value" string.
func ParseKV(s string) (key, value string, ok bool) {
	idx := strings.Index(s, "=")
	if idx < 1 {
		return "", "", false
	}
	return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+1:]), true
}

// Package output provides consistent CLI output formatting for check reports.
package output

import (
	"fmt"
	"io"

	"github.com/Aman-CERP/scriptkit/internal/ui"
)

// Writer provides formatted output for CLI.
type Writer struct {
	out    io.Writer
	styles ui.Styles
}

// New creates a new output Writer. Colors are used only when out is a
// terminal and NO_COLOR is unset.
func New(out io.Writer) *Writer {
	return NewWithColor(out, ui.UseColor(out))
}

// NewWithColor creates a Writer with color explicitly on or off.
func NewWithColor(out io.Writer, color bool) *Writer {
	return &Writer{
		out:    out,
		styles: ui.GetStyles(!color),
	}
}

// Header prints a title underlined with '='.
func (w *Writer) Header(title string) {
	underline := make([]byte, len(title))
	for i := range underline {
		underline[i] = '='
	}
	_, _ = fmt.Fprintln(w.out, w.styles.Header.Render(title))
	_, _ = fmt.Fprintln(w.out, string(underline))
	_, _ = fmt.Fprintln(w.out)
}

// Check prints one check line: "[TAG] name: message".
// Errors from writing are intentionally ignored for console output.
func (w *Writer) Check(tag, name, msg string) {
	_, _ = fmt.Fprintf(w.out, "[%s] %s: %s\n", w.styles.Status(tag), name, msg)
}

// Detail prints an indented, dimmed line under a check.
func (w *Writer) Detail(msg string) {
	_, _ = fmt.Fprintf(w.out, "      %s\n", w.styles.Dim.Render(msg))
}

// Status prints a status message with an icon.
func (w *Writer) Status(icon, msg string) {
	if icon != "" {
		_, _ = fmt.Fprintf(w.out, "%s %s\n", icon, msg)
	} else {
		_, _ = fmt.Fprintf(w.out, "   %s\n", msg)
	}
}

// Success prints a success message.
func (w *Writer) Success(msg string) {
	w.Status(w.styles.Success.Render("✓"), msg)
}

// Successf prints a formatted success message.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Warning prints a warning message.
func (w *Writer) Warning(msg string) {
	w.Status(w.styles.Warning.Render("!"), msg)
}

// Warningf prints a formatted warning message.
func (w *Writer) Warningf(format string, args ...any) {
	w.Warning(fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (w *Writer) Error(msg string) {
	w.Status(w.styles.Error.Render("✗"), msg)
}

// Errorf prints a formatted error message.
func (w *Writer) Errorf(format string, args ...any) {
	w.Error(fmt.Sprintf(format, args...))
}

// Plain prints msg followed by a newline.
func (w *Writer) Plain(msg string) {
	_, _ = fmt.Fprintln(w.out, msg)
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}

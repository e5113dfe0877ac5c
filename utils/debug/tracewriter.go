// Package debug renders human readable dumps which end up in debug reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// TraceWriter accumulates indented lines.
type TraceWriter struct {
	w      *strings.Builder
	indent string
}

// NewTraceWriter creates writer which indents every level with two spaces.
func NewTraceWriter() *TraceWriter {
	return &TraceWriter{w: &strings.Builder{}, indent: "  "}
}

func (tw *TraceWriter) String() string {
	return tw.w.String()
}

// Bytes returns accumulated dump, ready to be stored in report.
func (tw *TraceWriter) Bytes() []byte {
	return []byte(tw.w.String())
}

func (tw *TraceWriter) pad(depth int) {
	for range depth {
		tw.w.WriteString(tw.indent)
	}
}

// Line writes formatted line at requested depth.
func (tw *TraceWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// Text writes labeled value, quoted so that whitespace and line breaks are
// visible.
func (tw *TraceWriter) Text(depth int, label, value string) {
	tw.pad(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(quote(value))
	tw.w.WriteByte('\n')
}

// Change writes before and after values on one line, or a single value
// marked with '=' when nothing changed.
func (tw *TraceWriter) Change(depth int, before, after string) {
	tw.pad(depth)
	if before == after {
		tw.w.WriteString("= ")
		tw.w.WriteString(quote(before))
	} else {
		tw.w.WriteString(quote(before))
		tw.w.WriteString(" -> ")
		tw.w.WriteString(quote(after))
	}
	tw.w.WriteByte('\n')
}

func quote(raw string) string {
	if raw == "" {
		return `""`
	}
	return strconv.Quote(raw)
}

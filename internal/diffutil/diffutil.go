// Package diffutil compares binding listings line by line.
package diffutil

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffLine is one line of a listing together with what happened to it.
type DiffLine struct {
	Type diffmatchpatch.Operation // DiffEqual, DiffInsert, or DiffDelete
	Text string                   // line without its trailing newline
}

// Result holds the line diff of two listings.
type Result struct {
	Lines    []DiffLine
	Inserted int
	Deleted  int
}

// Changed reports whether the listings differ.
func (r Result) Changed() bool {
	return r.Inserted > 0 || r.Deleted > 0
}

// Summary returns a short human readable description of the change.
func (r Result) Summary() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Bindings Summary:\n")
	fmt.Fprintf(&buf, "- Lines Added   : %d\n", r.Inserted)
	fmt.Fprintf(&buf, "- Lines Removed : %d\n", r.Deleted)
	return buf.String()
}

// Changes renders only the inserted and deleted lines, prefixed with
// "+ " and "- ".
func (r Result) Changes() string {
	var buf strings.Builder
	for _, line := range r.Lines {
		switch line.Type {
		case diffmatchpatch.DiffInsert:
			buf.WriteString("+ ")
		case diffmatchpatch.DiffDelete:
			buf.WriteString("- ")
		default:
			continue
		}
		buf.WriteString(line.Text)
		buf.WriteByte('\n')
	}
	return buf.String()
}

// Lines diffs original against modified treating every line as a unit.
func Lines(original, modified string) Result {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 5 * time.Second

	a, b, lineArray := dmp.DiffLinesToChars(original, modified)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var r Result
	for _, d := range diffs {
		for _, text := range splitLines(d.Text) {
			r.Lines = append(r.Lines, DiffLine{Type: d.Type, Text: text})
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				r.Inserted++
			case diffmatchpatch.DiffDelete:
				r.Deleted++
			}
		}
	}
	return r
}

// splitLines splits s into lines, ignoring one trailing newline.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

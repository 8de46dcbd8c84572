// Package report renders the "view all" dump of registered students.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aanand-mishra/student-registration/internal/types"
)

// Format selects the rendering.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// EmptyMessage is the table rendering of an empty store.
const EmptyMessage = "No students registered yet."

const (
	headerLayout = "%-5s | %-20s | %-12s | %-15s | %-30s\n"
	rowLayout    = "%-5d | %-20s | %-12s | %-15s | %-30s\n"
)

var rule = strings.Repeat("-", 98)

// ParseFormat accepts "table", "json" or "yaml", case-sensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q: want table, json or yaml", s)
	}
}

// Write renders students to w in the given format.
func Write(w io.Writer, f Format, students []types.Student) error {
	switch f {
	case FormatTable:
		return writeTable(w, students)
	case FormatJSON:
		return writeJSON(w, students)
	case FormatYAML:
		return writeYAML(w, students)
	default:
		return fmt.Errorf("report.Write: unknown format %q", f)
	}
}

func writeTable(w io.Writer, students []types.Student) error {
	if len(students) == 0 {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, headerLayout, "ID", "Name", "Roll No", "Course", "Email")
	b.WriteString(rule)
	b.WriteByte('\n')
	for _, s := range students {
		fmt.Fprintf(&b, rowLayout, s.ID, s.Name, s.RollNumber, s.Course, s.Email)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeJSON(w io.Writer, students []types.Student) error {
	if students == nil {
		students = []types.Student{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(students)
}

func writeYAML(w io.Writer, students []types.Student) error {
	if students == nil {
		students = []types.Student{}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(students); err != nil {
		return fmt.Errorf("report.Write: encode yaml: %w", err)
	}
	return enc.Close()
}

// Table renders students as a table string, for sinks that take a whole
// message rather than a writer.
func Table(students []types.Student) string {
	var b strings.Builder
	// strings.Builder never returns a write error.
	_ = writeTable(&b, students)
	return strings.TrimRight(b.String(), "\n")
}

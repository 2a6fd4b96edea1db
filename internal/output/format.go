// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"tasktrack/internal/service"
)

const (
	titleWidth = 28
	descWidth  = 32

	noValue = "-"
)

// FormatHeader writes the task table column header.
func FormatHeader(w io.Writer) {
	fmt.Fprintf(w, "%6s  %-*s  %-*s  %-10s  %s\n", "ID", titleWidth, "TITLE", descWidth, "DESCRIPTION", "DUE", "STATUS")
}

// FormatTaskRow writes one task table row.
// Format: "{ID:>6}  {TITLE}  {DESCRIPTION}  {DUE}  {STATUS}\n"
func FormatTaskRow(w io.Writer, t service.Task, now time.Time) {
	fmt.Fprintf(w, "%6d  %-*s  %-*s  %-10s  %s\n",
		t.ID,
		titleWidth, clip(normalizeTitle(t.Title), titleWidth),
		descWidth, clip(flatten(t.Description), descWidth),
		formatDue(t.DueDate),
		t.StatusAt(now),
	)
}

// FormatTaskDetail writes the full single-task view.
func FormatTaskDetail(w io.Writer, t service.Task, now time.Time) {
	fmt.Fprintf(w, "id:          %d\n", t.ID)
	fmt.Fprintf(w, "title:       %s\n", normalizeTitle(t.Title))
	fmt.Fprintf(w, "description: %s\n", flatten(t.Description))
	if t.DueDate != nil {
		fmt.Fprintf(w, "due:         %s (%s)\n", t.DueDate.Format(service.DateLayout), humanize.Time(*t.DueDate))
	} else {
		fmt.Fprintf(w, "due:         %s\n", noValue)
	}
	fmt.Fprintf(w, "status:      %s\n", t.StatusAt(now))
}

func formatDue(d *time.Time) string {
	if d == nil {
		return noValue
	}
	return d.Format(service.DateLayout)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return flatten(title)
}

// flatten replaces newlines with spaces; empty values display as "-".
func flatten(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	if strings.TrimSpace(s) == "" {
		return noValue
	}
	return s
}

func clip(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

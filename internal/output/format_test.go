package output_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"tasktrack/internal/output"
	"tasktrack/internal/service"
	"tasktrack/internal/testutil"
)

func due(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestFormatTaskTable(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tasks := []service.Task{
		{ID: 1, Title: "Buy milk", DueDate: due(2026, 3, 9)},
		{ID: 22, Title: "File taxes for the previous fiscal year", Description: "yearly", Completed: true},
		{ID: 3, Title: "", Description: "multi\nline", DueDate: due(2026, 3, 11)},
	}

	var buf bytes.Buffer
	output.FormatHeader(&buf)
	for _, task := range tasks {
		output.FormatTaskRow(&buf, task, now)
	}

	testutil.Golden(t, "task_table", buf.Bytes())
}

func TestFormatTaskDetail_NoDueDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	task := service.Task{ID: 7, Title: "Buy milk", Description: "from the corner shop"}

	var buf bytes.Buffer
	output.FormatTaskDetail(&buf, task, now)

	want := "id:          7\n" +
		"title:       Buy milk\n" +
		"description: from the corner shop\n" +
		"due:         -\n" +
		"status:      Pending\n"
	if buf.String() != want {
		t.Errorf("detail mismatch\nwant:\n%s\ngot:\n%s", want, buf.String())
	}
}

func TestFormatTaskDetail_WithDueDate(t *testing.T) {
	now := time.Now()
	task := service.Task{ID: 7, Title: "Buy milk", DueDate: due(2026, 9, 5)}

	var buf bytes.Buffer
	output.FormatTaskDetail(&buf, task, now)

	// The relative phrase comes from the humanizer and depends on the
	// wall clock, so only the absolute part is pinned down.
	if !strings.Contains(buf.String(), "due:         2026-09-05 (") {
		t.Errorf("expected absolute due date with relative suffix, got:\n%s", buf.String())
	}
}

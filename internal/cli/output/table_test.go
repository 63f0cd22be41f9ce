package output

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestTableFormatterSliceOfStructs(t *testing.T) {
	rows := []userRow{
		{UserID: "user-1", State: "enabled", Skipped: "x"},
		{UserID: "user-2", State: "disabled", Skipped: "y"},
	}

	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, rows); err != nil {
		t.Fatalf("Format: %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, output:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "USER_ID") || !strings.Contains(lines[0], "STATE") {
		t.Errorf("header = %q", lines[0])
	}
	if strings.Contains(lines[0], "SKIPPED") {
		t.Errorf("table:\"-\" field rendered: %q", lines[0])
	}
	if !strings.Contains(lines[1], "user-1") || !strings.Contains(lines[2], "disabled") {
		t.Errorf("rows:\n%s", out)
	}
}

func TestTableFormatterMap(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]string{"b": "2", "a": "1"}
	if err := (&TableFormatter{}).Format(&buf, data); err != nil {
		t.Fatalf("Format: %v", err)
	}

	out := buf.String()
	aIdx := strings.Index(out, "a")
	bIdx := strings.Index(out, "b")
	if aIdx < 0 || bIdx < 0 || aIdx > bIdx {
		t.Errorf("keys not sorted:\n%s", out)
	}
}

func TestTableFormatterSingleStruct(t *testing.T) {
	var buf bytes.Buffer
	row := userRow{UserID: "user-1", State: ""}
	if err := (&TableFormatter{}).Format(&buf, row); err != nil {
		t.Fatalf("Format: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "FIELD") || !strings.Contains(out, "UserId") {
		t.Errorf("output:\n%s", out)
	}
	// Empty strings render as a dash.
	if !strings.Contains(out, "-") {
		t.Errorf("empty value not dashed:\n%s", out)
	}
}

func TestTableFormatterExplicitTable(t *testing.T) {
	table := &Table{Headers: []string{"NAME", "TENANT"}}
	table.AddRow("prod", "exampletn")

	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, table); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(buf.String(), "prod") {
		t.Errorf("output:\n%s", buf.String())
	}
}

func TestTableFormatterScalarFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, 42); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "42" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestFormatValueTime(t *testing.T) {
	type stamped struct {
		At time.Time
	}

	var buf bytes.Buffer
	when := time.Date(2024, 5, 14, 9, 30, 0, 0, time.UTC)
	if err := (&TableFormatter{}).Format(&buf, stamped{At: when}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "2024-05-14 09:30") {
		t.Errorf("output = %q", buf.String())
	}

	buf.Reset()
	if err := (&TableFormatter{}).Format(&buf, stamped{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "-") {
		t.Errorf("zero time not dashed: %q", buf.String())
	}
}

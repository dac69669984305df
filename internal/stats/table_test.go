package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Word", "Count", "Share"}
	rows := [][]string{
		{"deploy", "1,204", "12.5%"},
		{"um", "8", "0.1%"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Word   Count Share" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "deploy 1,204 12.5%" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "um         8  0.1%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableUsesDisplayWidth(t *testing.T) {
	lines := formatTable([]string{"Word", "N"}, [][]string{{"日本", "2"}, {"ok", "10"}}, map[int]bool{1: true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[1] != "日本  2" {
		t.Fatalf("unexpected wide row: %q", lines[1])
	}
	if lines[2] != "ok   10" {
		t.Fatalf("unexpected narrow row: %q", lines[2])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil, got %v", lines)
	}
}

package main

import (
	"strings"
	"testing"
)

func TestNumericColumn(t *testing.T) {
	rows := [][]string{
		{"Radiohead", "8.5", "", "alt rock"},
		{"The National", "7", "3", ""},
		{"Sigur Rós", "", "2", "post rock"},
	}

	cases := []struct {
		name string
		col  int
		want bool
	}{
		{"names", 0, false},
		{"ratings with gaps", 1, true},
		{"counts with gaps", 2, true},
		{"genres", 3, false},
		{"out of range", 9, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := numericColumn(rows, tc.col); got != tc.want {
				t.Fatalf("numericColumn(col %d) = %v, want %v", tc.col, got, tc.want)
			}
		})
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"Artist", "AI Rating"},
		[][]string{{"Radiohead", "9"}, {"The National"}},
	)
	if !strings.Contains(out, "Radiohead") || !strings.Contains(out, "AI Rating") {
		t.Fatalf("rendered table missing content:\n%s", out)
	}

	if got := renderTable(nil, nil); got != "" {
		t.Fatalf("expected empty render for no headers, got %q", got)
	}
}

package cmd

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
)

// TestRunGenerateUniqueSolution exercises spec.md §8 scenario 1: all
// columns and rows clued (N) is unique.
func TestRunGenerateUniqueSolution(t *testing.T) {
	resetFlags()
	path := writePuzzleFile(t, nil, nil)

	var buf bytes.Buffer
	cmd := newStubCommand(&buf)
	if err := runGenerate(cmd, []string{path}); err != nil {
		t.Fatalf("runGenerate: %v", err)
	}

	got := strings.TrimSpace(buf.String())
	n, err := strconv.Atoi(got)
	if err != nil {
		t.Fatalf("output %q is not an integer: %v", got, err)
	}
	if n <= 0 {
		t.Errorf("node count = %d, want a positive node count for a unique solution", n)
	}
}

// TestRunGenerateNoSolution exercises spec.md §8 scenario 4.
func TestRunGenerateNoSolution(t *testing.T) {
	resetFlags()
	rowClues := map[int][]int{0: nil}
	path := writePuzzleFile(t, nil, rowClues)

	var buf bytes.Buffer
	cmd := newStubCommand(&buf)
	if err := runGenerate(cmd, []string{path}); err != nil {
		t.Fatalf("runGenerate: %v", err)
	}

	if got := strings.TrimSpace(buf.String()); got != "-1" {
		t.Errorf("output = %q, want \"-1\"", got)
	}
}

// TestRunGenerateMultipleSolutions exercises spec.md §8 scenario 3, scaled
// to N=25: columns/rows 0 and 1 each clued (1), everything else empty,
// leaves a 2x2 corner where either diagonal is a valid placement.
func TestRunGenerateMultipleSolutions(t *testing.T) {
	resetFlags()
	columnClues := map[int][]int{0: {1}, 1: {1}}
	rowClues := map[int][]int{0: {1}, 1: {1}}
	for i := 2; i < 25; i++ {
		columnClues[i] = nil
		rowClues[i] = nil
	}
	path := writePuzzleFile(t, columnClues, rowClues)

	var buf bytes.Buffer
	cmd := newStubCommand(&buf)
	if err := runGenerate(cmd, []string{path}); err != nil {
		t.Fatalf("runGenerate: %v", err)
	}

	if got := strings.TrimSpace(buf.String()); got != "-2" {
		t.Errorf("output = %q, want \"-2\"", got)
	}
}

func TestRunGenerateRejectsMissingFile(t *testing.T) {
	resetFlags()

	var buf bytes.Buffer
	cmd := newStubCommand(&buf)
	if err := runGenerate(cmd, []string{"/nonexistent/path.taai"}); err == nil {
		t.Fatalf("expected an error for a nonexistent puzzle file")
	}
}

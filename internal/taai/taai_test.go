package taai

import (
	"strings"
	"testing"

	"github.com/rybkr/nonogram/internal/bitline"
	"github.com/rybkr/nonogram/internal/nonogram"
)

func samplePuzzleText() string {
	var sb strings.Builder
	sb.WriteString("$0\n")
	for c := 0; c < bitline.N; c++ {
		if c == 0 {
			sb.WriteString("25\n")
		} else {
			sb.WriteString("\n")
		}
	}
	for r := 0; r < bitline.N; r++ {
		if r == 0 {
			sb.WriteString("1 1\n")
		} else {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func TestParsePuzzleRoundTrip(t *testing.T) {
	puzzle, err := ParsePuzzle(strings.NewReader(samplePuzzleText()))
	if err != nil {
		t.Fatalf("ParsePuzzle: %v", err)
	}
	if got := puzzle.Column(0).Lengths(); len(got) != 1 || got[0] != 25 {
		t.Errorf("column 0 lengths = %v, want [25]", got)
	}
	if got := puzzle.Column(1).Lengths(); len(got) != 0 {
		t.Errorf("column 1 lengths = %v, want []", got)
	}
	if got := puzzle.Row(0).Lengths(); len(got) != 2 || got[0] != 1 || got[1] != 1 {
		t.Errorf("row 0 lengths = %v, want [1 1]", got)
	}

	var buf strings.Builder
	if err := WritePuzzle(&buf, puzzle, 0); err != nil {
		t.Fatalf("WritePuzzle: %v", err)
	}
	reparsed, err := ParsePuzzle(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if got := reparsed.Column(0).Lengths(); len(got) != 1 || got[0] != 25 {
		t.Errorf("round-tripped column 0 lengths = %v, want [25]", got)
	}
}

func TestParsePuzzleRejectsMissingMarker(t *testing.T) {
	_, err := ParsePuzzle(strings.NewReader("25\n"))
	if err == nil {
		t.Fatalf("expected error for missing '$' marker")
	}
}

func TestParsePuzzleRejectsNonIntegerToken(t *testing.T) {
	text := "$0\nabc\n" + strings.Repeat("\n", 2*bitline.N-1)
	_, err := ParsePuzzle(strings.NewReader(text))
	if err == nil {
		t.Fatalf("expected error for non-integer run-length")
	}
}

func TestParseAllReadsMultiplePuzzles(t *testing.T) {
	text := samplePuzzleText() + samplePuzzleText()
	puzzles, err := ParseAll(strings.NewReader(text))
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}
	if len(puzzles) != 2 {
		t.Fatalf("len(puzzles) = %d, want 2", len(puzzles))
	}
}

func TestWriteSolutionFormat(t *testing.T) {
	var clues [2 * bitline.N]nonogram.Clue
	for i := range clues {
		c, _ := nonogram.NewClue(i, nil)
		clues[i] = c
	}
	puzzle := nonogram.NewPuzzle(clues)
	board := nonogram.NewBoard(puzzle)
	if err := board.SetCell(0, 0, nonogram.Filled); err != nil {
		t.Fatalf("SetCell: %v", err)
	}

	var buf strings.Builder
	if err := WriteSolution(&buf, board, 42, 1.5); err != nil {
		t.Fatalf("WriteSolution: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != bitline.N+1 {
		t.Fatalf("got %d lines, want %d", len(lines), bitline.N+1)
	}
	if lines[0] != "42\t1.500" {
		t.Errorf("header = %q, want %q", lines[0], "42\t1.500")
	}
	if lines[1][0] != '1' {
		t.Errorf("first grid cell = %c, want '1'", lines[1][0])
	}
	if lines[1][1] != '0' {
		t.Errorf("second grid cell = %c, want '0'", lines[1][1])
	}
}

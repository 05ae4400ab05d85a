package nonogram

import "github.com/rybkr/nonogram/internal/bitline"

// PuzzleFromGrid derives a Puzzle's clues from a fully-decided N×N grid —
// the reverse of solving. grid[row][col] is true for a filled cell.
func PuzzleFromGrid(grid [bitline.N][bitline.N]bool) (*Puzzle, error) {
	var clues [2 * bitline.N]Clue

	for c := 0; c < bitline.N; c++ {
		lengths := runLengths(func(i int) bool { return grid[i][c] })
		clue, err := NewClue(ColumnID(c), lengths)
		if err != nil {
			return nil, err
		}
		clues[ColumnID(c)] = clue
	}
	for r := 0; r < bitline.N; r++ {
		lengths := runLengths(func(i int) bool { return grid[r][i] })
		clue, err := NewClue(RowID(r), lengths)
		if err != nil {
			return nil, err
		}
		clues[RowID(r)] = clue
	}

	return NewPuzzle(clues), nil
}

// runLengths scans N positions through at(i) and returns the lengths of
// its maximal runs of true values, in order.
func runLengths(at func(i int) bool) []int {
	var lengths []int
	run := 0
	for i := 0; i < bitline.N; i++ {
		if at(i) {
			run++
			continue
		}
		if run > 0 {
			lengths = append(lengths, run)
			run = 0
		}
	}
	if run > 0 {
		lengths = append(lengths, run)
	}
	return lengths
}

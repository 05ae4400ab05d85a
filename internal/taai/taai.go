// Package taai reads and writes the TAAI puzzle file format used by the
// original benchmark suite this solver is modeled on: a '$<index>' marker
// line, then N lines of column clues and N lines of row clues, each line a
// whitespace-separated list of run-lengths (an empty line is the empty
// clue). Output is a tab-separated node-count and elapsed-seconds line
// followed by the solved grid as N rows of {0,1}.
package taai

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rybkr/nonogram/internal/bitline"
	"github.com/rybkr/nonogram/internal/nonogram"
)

// ErrMalformedInput is returned for any structural problem in a TAAI file:
// a missing '$' marker, a non-integer token, or a clue infeasible for the
// line length.
var ErrMalformedInput = fmt.Errorf("taai: malformed input")

// lineReader wraps bufio.Scanner to read one puzzle line at a time,
// skipping blank lines only where the caller explicitly allows it (an empty
// clue line is itself meaningful, so it is never skipped implicitly).
type lineReader struct {
	sc *bufio.Scanner
}

func newLineReader(r io.Reader) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &lineReader{sc: sc}
}

func (lr *lineReader) next() (string, bool) {
	if !lr.sc.Scan() {
		return "", false
	}
	return lr.sc.Text(), true
}

func parseLengths(line string) ([]int, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}
	lengths := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("expected integer run-length, got %q", f)
		}
		lengths[i] = n
	}
	return lengths, nil
}

// ParsePuzzle reads one puzzle from r: a required leading '$<index>'
// marker line, then N column-clue lines followed by N row-clue lines.
func ParsePuzzle(r io.Reader) (*nonogram.Puzzle, error) {
	lr := newLineReader(r)
	return parsePuzzleFrom(lr)
}

func parsePuzzleFrom(lr *lineReader) (*nonogram.Puzzle, error) {
	line, ok := lr.next()
	if !ok {
		return nil, io.EOF
	}
	if !strings.HasPrefix(strings.TrimSpace(line), "$") {
		return nil, fmt.Errorf("%w: expected '$' marker line, got %q", ErrMalformedInput, line)
	}

	var clues [2 * bitline.N]nonogram.Clue
	for c := 0; c < bitline.N; c++ {
		line, ok := lr.next()
		if !ok {
			return nil, fmt.Errorf("%w: column %d: unexpected end of input", ErrMalformedInput, c)
		}
		lengths, err := parseLengths(line)
		if err != nil {
			return nil, fmt.Errorf("%w: column %d: %v", ErrMalformedInput, c, err)
		}
		clue, err := nonogram.NewClue(nonogram.ColumnID(c), lengths)
		if err != nil {
			return nil, fmt.Errorf("%w: column %d: %v", ErrMalformedInput, c, err)
		}
		clues[nonogram.ColumnID(c)] = clue
	}
	for r := 0; r < bitline.N; r++ {
		line, ok := lr.next()
		if !ok {
			return nil, fmt.Errorf("%w: row %d: unexpected end of input", ErrMalformedInput, r)
		}
		lengths, err := parseLengths(line)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedInput, r, err)
		}
		clue, err := nonogram.NewClue(nonogram.RowID(r), lengths)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedInput, r, err)
		}
		clues[nonogram.RowID(r)] = clue
	}

	return nonogram.NewPuzzle(clues), nil
}

// ParseAll reads every '$'-delimited puzzle in r, in file order, used by
// batch mode to load a whole input.txt at once.
func ParseAll(r io.Reader) ([]*nonogram.Puzzle, error) {
	lr := newLineReader(r)
	var puzzles []*nonogram.Puzzle
	for {
		p, err := parsePuzzleFrom(lr)
		if err == io.EOF {
			break
		}
		if err != nil {
			return puzzles, err
		}
		puzzles = append(puzzles, p)
	}
	return puzzles, nil
}

// WriteSolution writes the TAAI-format solution for board: a single
// tab-separated "nodeCount\telapsedSeconds" line followed by the grid.
func WriteSolution(w io.Writer, board *nonogram.Board, nodeCount int, elapsedSeconds float64) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d\t%.3f\n", nodeCount, elapsedSeconds); err != nil {
		return err
	}
	for row := 0; row < bitline.N; row++ {
		for col := 0; col < bitline.N; col++ {
			ch := byte('0')
			if board.CellState(row, col) == nonogram.Filled {
				ch = '1'
			}
			if err := bw.WriteByte(ch); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WritePuzzle writes puzzle back out in TAAI form (the inverse of
// ParsePuzzle), used by tests asserting a parse/print round trip.
func WritePuzzle(w io.Writer, puzzle *nonogram.Puzzle, index int) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "$%d\n", index); err != nil {
		return err
	}
	writeGroup := func(lengths []int) error {
		strs := make([]string, len(lengths))
		for i, n := range lengths {
			strs[i] = strconv.Itoa(n)
		}
		_, err := fmt.Fprintln(bw, strings.Join(strs, " "))
		return err
	}
	for c := 0; c < bitline.N; c++ {
		if err := writeGroup(puzzle.Column(c).Lengths()); err != nil {
			return err
		}
	}
	for r := 0; r < bitline.N; r++ {
		if err := writeGroup(puzzle.Row(r).Lengths()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

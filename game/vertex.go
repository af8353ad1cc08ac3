package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Column letters in board notation. The letter I is skipped to avoid
// confusion with the digit 1, so a 19x19 board runs A..T.
const columnLetters = "ABCDEFGHJKLMNOPQRST"

// Vertex identifies an intersection by 1-based column and row. Column 1,
// row 1 is the lower-left corner (A1).
type Vertex struct {
	Col int
	Row int
}

// String returns the vertex in letter/number notation, e.g. "C3".
func (v Vertex) String() string {
	if v.Col < 1 || v.Col > len(columnLetters) || v.Row < 1 {
		return fmt.Sprintf("invalid(%d,%d)", v.Col, v.Row)
	}
	return string(columnLetters[v.Col-1]) + strconv.Itoa(v.Row)
}

// ParseVertex parses letter/number notation such as "A1" or "t19". The
// letter I is not a valid column.
func ParseVertex(s string) (Vertex, error) {
	if len(s) < 2 {
		return Vertex{}, fmt.Errorf("vertex %q: too short", s)
	}
	letter := strings.ToUpper(s[:1])
	col := strings.Index(columnLetters, letter)
	if col < 0 {
		return Vertex{}, fmt.Errorf("vertex %q: invalid column %q", s, letter)
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil || row < 1 {
		return Vertex{}, fmt.Errorf("vertex %q: invalid row", s)
	}
	return Vertex{Col: col + 1, Row: row}, nil
}

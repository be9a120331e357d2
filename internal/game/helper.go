package game

import (
	"fmt"
	"strings"
)

// Position addresses a cell by row and column.
type Position struct {
	Row, Col int
}

// Box returns the 1-based box number of the position.
func (p Position) Box() int {
	return BoxNumber(p.Row, p.Col)
}

// BoxNumber maps (row, col) to the player-facing box number 1-9.
func BoxNumber(row, col int) int {
	return row*3 + col + 1
}

// PositionOf maps a box number back to its cell.
func PositionOf(box int) (Position, error) {
	if box < MinBox || box > MaxBox {
		return Position{}, fmt.Errorf("%w: got %d", ErrInvalidBox, box)
	}
	return Position{Row: (box - 1) / 3, Col: (box - 1) % 3}, nil
}

// EmptyPositions lists the empty cells in row-major order.
func EmptyPositions(board Board) []Position {
	positions := make([]Position, 0, 9)
	for r := range [3]int{} {
		for c := range [3]int{} {
			if board[r][c] == None {
				positions = append(positions, Position{Row: r, Col: c})
			}
		}
	}
	return positions
}

// MarkForTurn returns X on even turns and O on odd turns.
func MarkForTurn(turn int) PlayerMark {
	if turn%2 == 0 {
		return PlayerX
	}
	return PlayerO
}

// Opponent returns the other mark.
func Opponent(mark PlayerMark) PlayerMark {
	if mark == PlayerX {
		return PlayerO
	}
	return PlayerX
}

var lines = [8][3]Position{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// WinningBoxes returns, in ascending order, every empty box that would
// complete a line of mark (two in a line with the third cell empty).
func WinningBoxes(board Board, mark PlayerMark) []int {
	var found [MaxBox + 1]bool
	for _, line := range lines {
		marked, empty := 0, Position{Row: -1}
		for _, p := range line {
			switch board[p.Row][p.Col] {
			case mark:
				marked++
			case None:
				empty = p
			}
		}
		if marked == 2 && empty.Row != -1 {
			found[empty.Box()] = true
		}
	}

	var boxes []int
	for box := MinBox; box <= MaxBox; box++ {
		if found[box] {
			boxes = append(boxes, box)
		}
	}
	return boxes
}

// ParseBoard reads a board written as three rows separated by '/' or
// whitespace, e.g. "XOX/OXO/OX_". Empty cells may be written as '_', '.',
// '-' or their box digit.
func ParseBoard(s string) (Board, error) {
	var board Board
	rows := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == ' ' || r == '\n' || r == '\t'
	})
	if len(rows) != 3 {
		return board, fmt.Errorf("parse board %q: want 3 rows, got %d", s, len(rows))
	}
	for r, row := range rows {
		if len(row) != 3 {
			return board, fmt.Errorf("parse board %q: row %d has %d cells", s, r+1, len(row))
		}
		for c, ch := range row {
			switch {
			case ch == 'X' || ch == 'x':
				board[r][c] = PlayerX
			case ch == 'O' || ch == 'o':
				board[r][c] = PlayerO
			case ch == '_' || ch == '.' || ch == '-' || (ch >= '1' && ch <= '9'):
				board[r][c] = None
			default:
				return board, fmt.Errorf("parse board %q: unexpected cell %q", s, ch)
			}
		}
	}
	return board, nil
}

// String renders the board in the format accepted by ParseBoard.
func (b Board) String() string {
	var sb strings.Builder
	for r, row := range b {
		if r > 0 {
			sb.WriteByte('/')
		}
		for _, cell := range row {
			if cell == None {
				sb.WriteByte('_')
			} else {
				sb.WriteString(string(cell))
			}
		}
	}
	return sb.String()
}

// BoardAsStrings converts the board to a slice of rows, with empty cells
// shown as their box number.
func (b Board) BoardAsStrings() [][]string {
	rows := make([][]string, 3)
	for r := range [3]int{} {
		rows[r] = make([]string, 3)
		for c := range [3]int{} {
			if b[r][c] == None {
				rows[r][c] = fmt.Sprint(BoxNumber(r, c))
			} else {
				rows[r][c] = string(b[r][c])
			}
		}
	}
	return rows
}

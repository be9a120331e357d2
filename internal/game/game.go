package game

import (
	"errors"
	"fmt"
)

// PlayerMark represents the mark of a player (X, O) or an empty cell.
type PlayerMark string

// Outcome is the state of a game after a move.
type Outcome string

const (
	// Player marks
	None    PlayerMark = ""
	PlayerX PlayerMark = "X"
	PlayerO PlayerMark = "O"

	// Move outcomes
	Continue Outcome = ""
	WinnerX  Outcome = "X"
	WinnerO  Outcome = "O"
	Tie      Outcome = "Tie"

	// Box numbers used at the player-facing boundary
	MinBox = 1
	MaxBox = 9
)

var (
	ErrInvalidBox   = errors.New("box must be between 1 and 9")
	ErrCellOccupied = errors.New("box is already filled")
	ErrGameFinished = errors.New("game already finished")
)

// Board is a 3x3 grid of marks, indexed [row][col].
type Board [3][3]PlayerMark

// Game owns a board and the turn counter. ApplyMove is its only mutator.
type Game struct {
	Board   Board
	Turn    int
	Outcome Outcome
}

func NewGame() *Game {
	return &Game{
		Board:   Board{},
		Turn:    0,
		Outcome: Continue,
	}
}

// FromBoard builds a game positioned at board, deriving the turn counter from
// the number of marks. The mark counts must be reachable by alternating play
// with X moving first.
func FromBoard(board Board) (*Game, error) {
	var xCount, oCount int
	for _, row := range board {
		for _, cell := range row {
			switch cell {
			case PlayerX:
				xCount++
			case PlayerO:
				oCount++
			}
		}
	}
	if xCount != oCount && xCount != oCount+1 {
		return nil, fmt.Errorf("unreachable board: %d X marks and %d O marks", xCount, oCount)
	}

	g := &Game{Board: board, Turn: xCount + oCount}
	g.Outcome = g.outcome()
	return g, nil
}

// CurrentMark is the mark placed by the next successful move.
func (g *Game) CurrentMark() PlayerMark {
	return MarkForTurn(g.Turn)
}

// IsOver reports whether the game reached a terminal outcome.
func (g *Game) IsOver() bool {
	return g.Outcome.IsTerminal()
}

// ApplyMove places the current player's mark in the given box (1-9) and
// returns the resulting outcome.
func (g *Game) ApplyMove(box int) (Outcome, error) {
	if g.IsOver() {
		return g.Outcome, ErrGameFinished
	}

	pos, err := PositionOf(box)
	if err != nil {
		return Continue, err
	}
	if g.Board[pos.Row][pos.Col] != None {
		return Continue, fmt.Errorf("%w: %d", ErrCellOccupied, box)
	}

	g.Board[pos.Row][pos.Col] = g.CurrentMark()
	g.Turn++

	g.Outcome = g.outcome()
	return g.Outcome, nil
}

func (g *Game) outcome() Outcome {
	switch EvaluateWinner(g.Board) {
	case PlayerX:
		return WinnerX
	case PlayerO:
		return WinnerO
	}
	if IsBoardFull(g.Board) {
		return Tie
	}
	return Continue
}

// EvaluateWinner returns the mark of the first complete line, or None.
// Each row is checked together with its column before moving to the next
// index, then the main diagonal, then the anti-diagonal.
func EvaluateWinner(board Board) PlayerMark {
	for i := range [3]int{} {
		if board[i][0] != None && board[i][0] == board[i][1] && board[i][1] == board[i][2] {
			return board[i][0]
		}
		if board[0][i] != None && board[0][i] == board[1][i] && board[1][i] == board[2][i] {
			return board[0][i]
		}
	}

	if board[0][0] != None && board[0][0] == board[1][1] && board[1][1] == board[2][2] {
		return board[0][0]
	}
	if board[0][2] != None && board[0][2] == board[1][1] && board[1][1] == board[2][0] {
		return board[0][2]
	}

	return None
}

// IsBoardFull reports whether no empty cell remains.
func IsBoardFull(board Board) bool {
	for r := range [3]int{} {
		for c := range [3]int{} {
			if board[r][c] == None {
				return false
			}
		}
	}
	return true
}

// IsTie checks if the board is full without a completed line.
func IsTie(board Board) bool {
	return IsBoardFull(board) && EvaluateWinner(board) == None
}

// IsTerminal reports whether the outcome ends the game.
func (o Outcome) IsTerminal() bool {
	return o != Continue
}

// Winner returns the winning mark, or None for a tie or a game in progress.
func (o Outcome) Winner() PlayerMark {
	switch o {
	case WinnerX:
		return PlayerX
	case WinnerO:
		return PlayerO
	}
	return None
}

func (o Outcome) String() string {
	if o == Continue {
		return "Continue"
	}
	return string(o)
}

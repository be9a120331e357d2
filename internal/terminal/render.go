package terminal

import (
	"ctchen222/tictactoe/internal/game"
	"ctchen222/tictactoe/internal/player"
	"fmt"
	"strings"
)

const (
	clearScreen = "\x1b[H\x1b[2J"

	ansiReset    = "\x1b[0m"
	ansiBlue     = "\x1b[34m"
	ansiRed      = "\x1b[31m"
	ansiDarkGrey = "\x1b[90m"

	bannerWidth = 13
)

// Render clears the screen and draws the board as a boxed grid. Empty
// cells show their box number.
func (c *Console) Render(board game.Board) {
	var sb strings.Builder
	if c.clear {
		sb.WriteString(clearScreen)
	}
	sb.WriteString("\n\n")

	cells := board.BoardAsStrings()
	sb.WriteString("┌───┬───┬───┐\n")
	for r := range cells {
		for col, s := range cells[r] {
			sb.WriteString("│ ")
			sb.WriteString(c.paint(board[r][col], s))
			sb.WriteString(" ")
		}
		sb.WriteString("│\n")
		if r < len(cells)-1 {
			sb.WriteString("├───┼───┼───┤\n")
		}
	}
	sb.WriteString("└───┴───┴───┘\n")

	if c.notice != "" {
		sb.WriteString(c.notice)
		sb.WriteString("\n")
		c.notice = ""
	}

	fmt.Fprint(c.out, sb.String())
}

// Rejected remembers why a move was refused and shows it under the next
// board.
func (c *Console) Rejected(p *player.Player, err error) {
	c.notice = fmt.Sprintf("[Invalid input] %v", err)
}

// Finished prints the end of game banner. A nil winner means a tie.
func (c *Console) Finished(outcome game.Outcome, winner *player.Player) {
	switch {
	case outcome == game.Tie || winner == nil:
		fmt.Fprintln(c.out, center(" Tied! ", bannerWidth, '='))
	case winner.IsBot:
		fmt.Fprintln(c.out, center(" Bot Won ", bannerWidth, '*'))
	default:
		fmt.Fprintln(c.out, center(" "+c.human+" Won ", bannerWidth, '*'))
	}
}

func (c *Console) paint(mark game.PlayerMark, s string) string {
	if !c.color {
		return s
	}
	switch mark {
	case game.PlayerX:
		return ansiBlue + s + ansiReset
	case game.PlayerO:
		return ansiRed + s + ansiReset
	default:
		return ansiDarkGrey + s + ansiReset
	}
}

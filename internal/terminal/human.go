package terminal

import (
	"context"
	"ctchen222/tictactoe/internal/game"
	"fmt"
	"strconv"
)

// ChooseMove prompts for a box number until the player types an integer.
// Range and occupancy are checked by the game.
func (c *Console) ChooseMove(ctx context.Context, board game.Board, mark game.PlayerMark) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		fmt.Fprintf(c.out, "%12s", "Box: ")
		line, err := c.readLine(ctx)
		if err != nil {
			return 0, err
		}

		box, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintf(c.out, "[Invalid input] %q is not a box number\n", line)
			continue
		}
		return box, nil
	}
}

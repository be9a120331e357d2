package analyze

import (
	"context"
	"ctchen222/tictactoe/internal/bot"
	"ctchen222/tictactoe/internal/config"
	"ctchen222/tictactoe/internal/game"
	"ctchen222/tictactoe/internal/terminal"
	"ctchen222/tictactoe/internal/validator"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/subcommands"
)

type Command struct {
	mark     string
	parallel bool
	quiet    bool
}

type request struct {
	Board string `validate:"required"`
	Mark  string `validate:"omitempty,mark"`
}

func (*Command) Name() string     { return "analyze" }
func (*Command) Synopsis() string { return "Score every empty box of a position with minimax" }
func (*Command) Usage() string {
	return `analyze [flags] BOARD

Score every empty box for the side to move. BOARD lists the rows top to
bottom separated by '/', with X, O and '_' for an empty box, e.g.

  analyze XO_/_X_/__O
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.mark, "mark", "", "score moves for this mark (X or O) instead of the side to move")
	flags.BoolVar(&c.parallel, "parallel", false, "search root moves in parallel")
	flags.BoolVar(&c.quiet, "quiet", false, "don't print the board diagram")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg := args[0].(*config.Config)

	req := request{Board: strings.Join(flag.Args(), "/"), Mark: strings.ToUpper(c.mark)}
	if err := validator.GetValidator().Struct(req); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	board, err := game.ParseBoard(req.Board)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	mark := game.PlayerMark(req.Mark)
	if mark == game.None {
		g, err := game.FromBoard(board)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		if g.IsOver() {
			fmt.Fprintf(os.Stderr, "game is already over: %s\n", g.Outcome)
			return subcommands.ExitUsageError
		}
		mark = g.CurrentMark()
	}

	if !c.quiet {
		console := terminal.NewStdio(terminal.Options{
			Color:   terminal.ColorMode(cfg.Display.Color),
			NoClear: true,
		})
		console.Render(board)
	}

	an, err := bot.NewMinimaxBot(bot.MinimaxConfig{Parallel: c.parallel || cfg.Bot.Parallel}).Analyze(ctx, board, mark)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, bot.ErrNoMovesLeft) {
			return subcommands.ExitUsageError
		}
		return subcommands.ExitFailure
	}

	writeAnalysis(os.Stdout, an)
	return subcommands.ExitSuccess
}

func describe(score int) string {
	switch {
	case score > bot.TieScore:
		return "win"
	case score < bot.TieScore:
		return "loss"
	default:
		return "tie"
	}
}

func writeAnalysis(out io.Writer, an bot.Analysis) {
	fmt.Fprintf(out, "%s to move\n", an.Mark)

	w := tabwriter.NewWriter(out, 4, 8, 1, ' ', 0)
	fmt.Fprintln(w, "box\tscore\tresult")
	for _, mv := range an.Moves {
		fmt.Fprintf(w, "%d\t%d\t%s\n", mv.Box, mv.Score, describe(mv.Score))
	}
	w.Flush()

	fmt.Fprintf(out, "best: %d (%s)\n", an.Best.Box, describe(an.Best.Score))
	fmt.Fprintf(out, "visited=%d terminal=%d\n", an.Stats.Visited, an.Stats.Terminal)
}

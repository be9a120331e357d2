package selfplay

import (
	"context"
	"ctchen222/tictactoe/internal/bot"
	"ctchen222/tictactoe/internal/config"
	"ctchen222/tictactoe/internal/player"
	"ctchen222/tictactoe/internal/session"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
)

type Command struct {
	p1      string
	p2      string
	seed    uint64
	games   int
	threads int
	swap    bool
}

func (*Command) Name() string     { return "selfplay" }
func (*Command) Synopsis() string { return "Play two bots against each other and report results" }
func (*Command) Usage() string {
	return `selfplay [flags]
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.p1, "p1", "", "player1 difficulty (default bot.difficulty from config)")
	flags.StringVar(&c.p2, "p2", string(bot.Easy), "player2 difficulty")
	flags.Uint64Var(&c.seed, "seed", 0, "random seed for easy and medium bots; each game derives its own seed from it (default from config)")
	flags.IntVar(&c.games, "games", 100, "number of games to play")
	flags.IntVar(&c.threads, "threads", 0, "number of games played at once (0 = GOMAXPROCS)")
	flags.BoolVar(&c.swap, "swap", true, "swap marks each game")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg := args[0].(*config.Config)
	if c.p1 == "" {
		c.p1 = cfg.Bot.Difficulty
	}
	if c.seed == 0 {
		c.seed = cfg.Bot.Seed
	}

	p1, err := newContestant("p1", c.p1, c.seed, cfg.Bot.Parallel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	p2Seed := c.seed
	if p2Seed != 0 {
		p2Seed++
	}
	p2, err := newContestant("p2", c.p2, p2Seed, cfg.Bot.Parallel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	arena, err := session.NewArena(p1, p2, session.ArenaConfig{
		Games:     c.games,
		Workers:   c.threads,
		SwapMarks: c.swap,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	tally, err := arena.Run(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "selfplay failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	writeTally(os.Stdout, tally, p1.Name, p2.Name)
	return subcommands.ExitSuccess
}

// newContestant validates difficulty and returns a contestant that builds a
// fresh bot for every game. With a non-zero seed, game i plays with
// seed+i<<32, so results do not depend on how many games run at once.
func newContestant(name, difficulty string, seed uint64, parallel bool) (session.Contestant, error) {
	d, err := bot.ParseDifficulty(difficulty)
	if err != nil {
		return session.Contestant{}, fmt.Errorf("-%s: %w", name, err)
	}
	return session.Contestant{
		Name: fmt.Sprintf("%s (%s)", name, d),
		NewMover: func(i int) (player.Mover, error) {
			cfg := bot.Config{Difficulty: d, Parallel: parallel}
			if seed != 0 {
				cfg.Seed = seed + uint64(i)<<32
			}
			return bot.New(cfg)
		},
	}, nil
}

func writeTally(out io.Writer, t session.Tally, p1, p2 string) {
	w := tabwriter.NewWriter(out, 4, 8, 1, ' ', 0)
	fmt.Fprintf(w, "games\t%d\n", t.Games)
	fmt.Fprintf(w, "%s wins\t%d\n", p1, t.Wins[p1])
	fmt.Fprintf(w, "%s wins\t%d\n", p2, t.Wins[p2])
	fmt.Fprintf(w, "ties\t%d\n", t.Ties)
	fmt.Fprintf(w, "X wins\t%d\n", t.XWins)
	fmt.Fprintf(w, "O wins\t%d\n", t.OWins)
	w.Flush()
}

package play

import (
	"context"
	"ctchen222/tictactoe/internal/bot"
	"ctchen222/tictactoe/internal/config"
	"ctchen222/tictactoe/internal/player"
	"ctchen222/tictactoe/internal/session"
	"ctchen222/tictactoe/internal/terminal"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/subcommands"
)

type Command struct {
	difficulty string
	parallel   bool
	noClear    bool
	color      string
}

func (*Command) Name() string     { return "play" }
func (*Command) Synopsis() string { return "Play tic-tac-toe against a bot in the terminal" }
func (*Command) Usage() string {
	return `play [flags]

Play against a bot. You are asked whether you want to go first and, unless
-difficulty is given, whether the bot should be smart (hard) or not (easy).
`
}

func (c *Command) SetFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.difficulty, "difficulty", "", "bot difficulty (easy, medium, hard); ask when empty")
	flags.BoolVar(&c.parallel, "parallel", false, "search the hard bot's root moves in parallel")
	flags.BoolVar(&c.noClear, "no-clear", false, "keep earlier boards on screen")
	flags.StringVar(&c.color, "color", "", "color output: auto, always or never")
}

func (c *Command) Execute(ctx context.Context, flag *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg := *args[0].(*config.Config)
	if c.parallel {
		cfg.Bot.Parallel = true
	}
	if c.noClear {
		cfg.Display.NoClear = true
	}
	if c.color != "" {
		cfg.Display.Color = c.color
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	var fixed bot.Difficulty
	if c.difficulty != "" {
		d, err := bot.ParseDifficulty(c.difficulty)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		fixed = d
	}

	console := terminal.NewStdio(terminal.Options{
		Color:   terminal.ColorMode(cfg.Display.Color),
		NoClear: cfg.Display.NoClear,
	})

	if _, err := loop(ctx, console, &cfg, fixed, bot.New); err != nil {
		if quit(err) {
			fmt.Println()
			return subcommands.ExitSuccess
		}
		slog.ErrorContext(ctx, "play failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// quit reports whether err means the human left: end of input or Ctrl-C.
func quit(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, context.Canceled)
}

// loop runs sessions until the human declines another game and returns
// how many were played. fixed skips the "smart bot" question when set.
func loop(ctx context.Context, console *terminal.Console, cfg *config.Config, fixed bot.Difficulty, newBot func(bot.Config) (bot.Bot, error)) (int, error) {
	console.Title()

	played := 0
	for {
		humanFirst, err := console.AskYesNo(ctx, "Would you like to go first?")
		if err != nil {
			return played, err
		}

		difficulty := fixed
		if difficulty == "" {
			smart, err := console.AskYesNo(ctx, "Should the bot be smart?")
			if err != nil {
				return played, err
			}
			difficulty = bot.Easy
			if smart {
				difficulty = bot.Hard
			}
		}

		b, err := newBot(bot.Config{Difficulty: difficulty, Seed: cfg.Bot.Seed, Parallel: cfg.Bot.Parallel})
		if err != nil {
			return played, err
		}

		human := player.NewHuman("You", console)
		opponent := player.NewBot("Bot", b)
		x, o := human, opponent
		if !humanFirst {
			x, o = opponent, human
		}

		s := session.New(x, o, session.Config{Renderer: console, ThinkDelay: cfg.Bot.ThinkDelay})
		if _, err := s.Play(ctx); err != nil {
			return played, err
		}
		played++

		again, err := console.AskYesNo(ctx, "Would you like to play again?")
		if err != nil {
			return played, err
		}
		if !again {
			return played, nil
		}
	}
}

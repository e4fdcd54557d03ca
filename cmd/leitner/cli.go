package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/hpungsan/leitner/internal/config"
	"github.com/hpungsan/leitner/internal/errors"
	"github.com/hpungsan/leitner/internal/ops"
	"github.com/hpungsan/leitner/internal/schedule"
	"github.com/hpungsan/leitner/internal/store"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(backend store.Backend, cfg *config.Config, logger *slog.Logger) *cli.App {
	if logger == nil {
		logger = slog.Default()
	}
	r := &runner{backend: backend, cfg: cfg, logger: logger}
	app := &cli.App{
		Name:    "leitner",
		Usage:   "Leitner-box spaced repetition scheduler",
		Version: Version,
		Commands: []*cli.Command{
			addCmd(r),
			listCmd(r),
			dueCmd(r),
			reviewCmd(r),
			scheduleCmd(r),
			statsCmd(r),
			importCmd(r),
			reanchorCmd(r),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// runner loads the repository for a command and saves it afterwards when the command mutates it.
type runner struct {
	backend store.Backend
	cfg     *config.Config
	logger  *slog.Logger
}

// run loads the repository, calls fn, and saves when mutate is set.
// Nothing is saved if fn fails.
func (r *runner) run(c *cli.Context, mutate bool, fn func(*store.Repository) (any, error)) error {
	repo, err := r.backend.Load(c.Context)
	if err != nil {
		return outputError(err)
	}

	output, err := fn(repo)
	if err != nil {
		return outputError(err)
	}

	if mutate {
		if err := r.backend.Save(c.Context, repo); err != nil {
			return outputError(err)
		}
		r.logger.Debug("saved repository", "command", c.Command.Name, "facts", repo.Count())
	}

	if output == nil {
		return nil
	}
	return outputJSON(output)
}

// addCmd creates the add command.
func addCmd(r *runner) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a fact at level 1",
		ArgsUsage: "[question] [answer]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "question", Aliases: []string{"q"}, Usage: "Question text"},
			&cli.StringFlag{Name: "answer", Aliases: []string{"a"}, Usage: "Answer text"},
		},
		Action: func(c *cli.Context) error {
			input := ops.AddInput{
				Question: c.String("question"),
				Answer:   c.String("answer"),
			}
			if c.NArg() > 0 && input.Question == "" {
				input.Question = c.Args().Get(0)
			}
			if c.NArg() > 1 && input.Answer == "" {
				input.Answer = c.Args().Get(1)
			}

			return r.run(c, true, func(repo *store.Repository) (any, error) {
				return ops.Add(repo, input)
			})
		},
	}
}

// listCmd creates the list command.
func listCmd(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List facts in insertion order",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "level", Usage: "Only facts at this level"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Maximum items to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Items to skip"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ListInput{
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			}
			if c.IsSet("level") {
				level := c.Int("level")
				input.Level = &level
			}

			return r.run(c, false, func(repo *store.Repository) (any, error) {
				return ops.List(repo, input)
			})
		},
	}
}

// dueCmd creates the due command.
func dueCmd(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "due",
		Usage: "List facts due for review",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "YYYY-MM-DD or RFC 3339 (default: now)"},
			&cli.BoolFlag{Name: "sort-by-level", Usage: "Highest level first"},
			&cli.BoolFlag{Name: "hide-answers", Usage: "Omit answers"},
		},
		Action: func(c *cli.Context) error {
			return r.run(c, false, func(repo *store.Repository) (any, error) {
				date, err := ops.ParseDate(c.String("date"), repo.CreatedAt())
				if err != nil {
					return nil, err
				}
				return ops.Due(repo, ops.DueInput{
					Date:        date,
					SortByLevel: c.Bool("sort-by-level"),
					HideAnswers: c.Bool("hide-answers"),
				})
			})
		},
	}
}

// reviewCmd creates the review command.
func reviewCmd(r *runner) *cli.Command {
	return &cli.Command{
		Name:      "review",
		Usage:     "Record a review outcome for a fact",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "correct", Aliases: []string{"c"}, Usage: "Answer was recalled; move up one level"},
			&cli.BoolFlag{Name: "wrong", Aliases: []string{"w"}, Usage: "Answer was missed; back to level 1"},
			&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "Review date (default: now)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return outputError(errors.NewInvalidRequest("fact id is required"))
			}
			correct, wrong := c.Bool("correct"), c.Bool("wrong")
			if correct == wrong {
				return outputError(errors.NewInvalidRequest("exactly one of --correct or --wrong is required"))
			}

			return r.run(c, true, func(repo *store.Repository) (any, error) {
				at, err := ops.ParseDate(c.String("date"), repo.CreatedAt())
				if err != nil {
					return nil, err
				}
				return ops.Review(repo, ops.ReviewInput{
					ID:      c.Args().First(),
					Correct: &correct,
					At:      at,
				})
			})
		},
	}
}

// scheduleCmd creates the schedule command.
func scheduleCmd(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "schedule",
		Usage: "Print the review cycle with today's row highlighted",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: string(schedule.FormatText), Usage: "text|markdown|html"},
			&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "Row to highlight (default: now)"},
			&cli.BoolFlag{Name: "json", Usage: "Emit JSON instead of the rendered table"},
		},
		Action: func(c *cli.Context) error {
			asJSON := c.Bool("json")
			return r.run(c, false, func(repo *store.Repository) (any, error) {
				date, err := ops.ParseDate(c.String("date"), repo.CreatedAt())
				if err != nil {
					return nil, err
				}
				output, err := ops.ShowSchedule(repo, ops.ScheduleInput{
					Format: c.String("format"),
					Date:   date,
					Styled: !asJSON && stdoutIsTerminal(),
				})
				if err != nil {
					return nil, err
				}
				if asJSON {
					return output, nil
				}
				_, err = io.WriteString(os.Stdout, output.Rendered)
				return nil, err
			})
		},
	}
}

// statsCmd creates the stats command.
func statsCmd(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show counts per level and what is due",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "YYYY-MM-DD or RFC 3339 (default: now)"},
		},
		Action: func(c *cli.Context) error {
			return r.run(c, false, func(repo *store.Repository) (any, error) {
				date, err := ops.ParseDate(c.String("date"), repo.CreatedAt())
				if err != nil {
					return nil, err
				}
				return ops.Stats(repo, ops.StatsInput{Date: date})
			})
		},
	}
}

// importCmd creates the import command.
func importCmd(r *runner) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Import facts from a YAML deck",
		ArgsUsage: "<path>",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return outputError(errors.NewInvalidRequest("path is required"))
			}
			path := c.Args().First()

			return r.run(c, true, func(repo *store.Repository) (any, error) {
				return ops.Import(repo, r.cfg, ops.ImportInput{Path: path})
			})
		},
	}
}

// reanchorCmd creates the reanchor command.
func reanchorCmd(r *runner) *cli.Command {
	return &cli.Command{
		Name:  "reanchor",
		Usage: "Move the schedule start date (levels are kept)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "New start date as RFC 3339 or YYYY-MM-DD (default: now)"},
		},
		Action: func(c *cli.Context) error {
			return r.run(c, true, func(repo *store.Repository) (any, error) {
				date, err := ops.ParseDate(c.String("date"), repo.CreatedAt())
				if err != nil {
					return nil, err
				}
				return ops.Reanchor(repo, ops.ReanchorInput{Date: date})
			})
		},
	}
}

// outputJSON writes indented JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	var lErr *errors.LeitnerError
	if stderrors.As(err, &lErr) {
		return cli.Exit(fmt.Sprintf("[%s] %s", lErr.Code, lErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdoutIsTerminal reports whether output goes to a terminal that can take styling.
func stdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

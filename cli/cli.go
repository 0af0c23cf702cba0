package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/runtests/runtests/history"
	"github.com/urfave/cli/v2"
)

const AppName = "runtests"

type App struct {
	logger zerolog.Logger
	cli    *cli.App

	// Process-boundary seams, replaced in tests.
	stdin       io.Reader
	cmdOut      func(name string, args ...string) ([]byte, error)
	runAttached func(extraEnv []string, name string, args ...string) error
	execFn      func(argv0 string, argv, env []string) error
	lookPath    func(file string) (string, error)
	environ     func() []string
	selfPath    func() (string, error)
	impact      ImpactResolver // nil selects the external change-impact command
}

func New() *App {

	// Set default log level to info
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger :=
		log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339Nano,
		})

	app := &App{
		logger: logger,
		stdin:  os.Stdin,
		cmdOut: func(name string, args ...string) ([]byte, error) {
			return exec.Command(name, args...).Output()
		},
		runAttached: func(extraEnv []string, name string, args ...string) error {
			cmd := exec.Command(name, args...)
			cmd.Stdin = os.Stdin
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			cmd.Env = append(os.Environ(), extraEnv...)
			return cmd.Run()
		},
		execFn:   syscall.Exec,
		lookPath: exec.LookPath,
		environ:  os.Environ,
		selfPath: os.Executable,
	}
	app.cli = &cli.App{
		Name:      AppName,
		Usage:     "Decide how to run the test harness: locally, on LSF, tracked, or once per commit",
		ArgsUsage: "[test paths and harness arguments]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose (debug) logging",
			},
			&cli.BoolFlag{
				Name:    "track",
				Aliases: []string{"t"},
				Usage:   "Record results to the test history store (mutually exclusive with the --lsf flags)",
			},
			&cli.BoolFlag{
				Name:    "lsf",
				Aliases: []string{"l"},
				Usage:   "Submit each test to LSF and attach interactively",
			},
			&cli.BoolFlag{
				Name:  "lsf-redirect",
				Usage: "Submit each test to LSF with output redirected to a log file",
			},
			&cli.BoolFlag{
				Name:  "lsf-tail",
				Usage: "Submit each test to LSF and tail its log live",
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Usage:   "Worker-pool size for the scheduler (default 10 for LSF and tracked runs)",
			},
			&cli.BoolFlag{
				Name:  "junit",
				Usage: "Use a timing-enabled, JUnit-compatible result formatter",
			},
			&cli.BoolFlag{
				Name:    "iterate",
				Aliases: []string{"i"},
				Usage:   "Test every commit in the --git range via an interactive rebase",
			},
			&cli.StringFlag{
				Name:  "git",
				Usage: "Select tests touched by the given revision range (--git= means everything not yet merged)",
			},
			&cli.StringFlag{
				Name:  "order",
				Usage: "Ordering policy for resolved tests: none or alternate",
				Value: orderNone,
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "History store directory (default: <repo>/.runtests/history)",
			},
			&cli.StringFlag{
				Name:  "db-prefix",
				Usage: "Key prefix for duration records in the history store",
				Value: history.DefaultPrefix,
			},
			&cli.StringFlag{
				Name:  "impact-cmd",
				Usage: "External change-impact command mapping a revision range to test paths",
				Value: defaultImpactCommand,
			},
			&cli.StringFlag{
				Name:  "log-dir",
				Usage: "Directory LSF executor adapters write run logs to",
				Value: defaultLogDir,
			},
		},
		Before: func(ctx *cli.Context) error {
			if ctx.Bool("verbose") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			return nil
		},
		// Default action: resolve the mode and run the harness
		Action: app.run,
	}
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "durations",
		Usage:  "List recorded test durations, slowest first",
		Action: app.durations,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Limit number of results (default: 20)",
				Value:   20,
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "prune",
		Usage:  "Remove history records for tests that no longer exist on disk",
		Action: app.pruneCommand,
	})
	return app
}

func (a *App) Run(args []string) error {
	return a.cli.Run(args)
}

// SetVersion sets the version information for the CLI application
func (a *App) SetVersion(version, commit, date string) {
	a.cli.Version = version
	if commit != "none" && commit != "" {
		a.cli.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit[:8], date)
	}
}

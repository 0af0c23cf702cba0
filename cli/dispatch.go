package cli

// This file assembles the final harness invocation and replaces the
// driver process with it. The harness's own exit status becomes the
// driver's exit status; nothing here supervises or retries it.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/runtests/runtests/cli/harness"
)

// logDirEnv tells the LSF executor adapters where to put per-test run
// logs. Set once on the harness environment, before dispatch.
const logDirEnv = "LSF_RUN_LOGDIR"

const defaultLogDir = "lsf-logs"

// dispatch hands control to the harness, never to return on success.
// Driver-derived flags come first, then the resolved tests, then the
// user's trailing arguments.
func (a *App) dispatch(opts Options, tests, userArgs []string) error {
	argv := append([]string{harness.Command}, harness.BuildArgs(opts.harnessOptions(), tests, userArgs)...)

	env := a.environ()
	if opts.distributed() {
		logDir, err := a.ensureLogDir(opts)
		if err != nil {
			return err
		}
		env = append(env, logDirEnv+"="+logDir)
	}

	path, err := a.lookPath(harness.Command)
	if err != nil {
		return fmt.Errorf("test harness %q not found: %w", harness.Command, err)
	}

	a.logger.Debug().Strs("argv", argv).Msg("Handing off to harness")
	return a.execFn(path, argv, env)
}

// ensureLogDir creates the LSF log directory if needed and returns its
// absolute path.
func (a *App) ensureLogDir(opts Options) (string, error) {
	dir, err := filepath.Abs(opts.LogDir)
	if err != nil {
		return "", fmt.Errorf("cannot resolve LSF log directory %s: %w", opts.LogDir, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("could not create LSF log directory %s: %w", dir, err)
	}
	return dir, nil
}

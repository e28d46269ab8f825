package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultTimeout = 300 * time.Second

	// timeoutExitCode is the sentinel reported when the test run exceeds
	// its wall-clock budget.
	timeoutExitCode = 124
)

type Options struct {
	ProjectRoot string
	Settings    string // DJANGO_SETTINGS_MODULE override, empty keeps the ambient value
	Python      string
	Timeout     time.Duration
}

// Result is the stable contract to callers: always populated, never a
// panic or a raw error. Callers render failures from it directly.
type Result struct {
	RunID    string
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Run executes "<python> manage.py test --verbosity 2" in the project root
// and captures the outcome. Timeouts terminate the child and report exit
// code 124 with a diagnostic appended to stderr.
func Run(ctx context.Context, opts Options) Result {
	if opts.Python == "" {
		opts.Python = "python3"
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	result := Result{RunID: uuid.NewString()}

	if _, err := os.Stat(filepath.Join(opts.ProjectRoot, "manage.py")); err != nil {
		result.ExitCode = 1
		result.Stderr = "manage.py not found"
		return result
	}

	runCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, opts.Python, "manage.py", "test", "--verbosity", "2")
	cmd.Dir = opts.ProjectRoot
	cmd.Env = buildEnv(opts.Settings)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	result.Duration = time.Since(start)
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	switch {
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		result.ExitCode = timeoutExitCode
		result.Stderr += fmt.Sprintf("\n[drfspec] ERROR: test execution timed out after %s\n", opts.Timeout)

	case err == nil:
		result.ExitCode = 0

	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			// Covers "tool not found" and anything else exec surfaces
			// before the child produces an exit status.
			result.ExitCode = 1
			result.Stdout = ""
			result.Stderr = fmt.Sprintf("[drfspec] ERROR: unexpected runner error: %v", err)
		}
	}

	return result
}

func buildEnv(settings string) []string {
	env := os.Environ()
	if settings != "" {
		env = append(env, "DJANGO_SETTINGS_MODULE="+settings)
	}
	if !envHas(env, "PYTHONUNBUFFERED") {
		env = append(env, "PYTHONUNBUFFERED=1")
	}
	return env
}

func envHas(env []string, key string) bool {
	prefix := key + "="
	for _, entry := range env {
		if strings.HasPrefix(entry, prefix) {
			return true
		}
	}
	return false
}

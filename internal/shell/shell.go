// Package shell executes one-shot commands through the platform shell.
package shell

import (
	"bytes"
	"context"
	"os/exec"
	"runtime"
	"time"
)

const (
	// DefaultTimeout bounds a command when the caller supplies none.
	DefaultTimeout = 60 * time.Second
	// MaxOutputSize caps captured stdout/stderr at 1 MiB each.
	MaxOutputSize = 1024 * 1024
)

// Result contains the outcome of a command execution.
type Result struct {
	Command  string `json:"command"`
	ExitCode int    `json:"exit_code"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	Duration int64  `json:"duration_ms"`
}

// Run executes command through the platform shell and captures its output.
// A non-zero exit code is reported in the Result, not as an error; only the
// inability to run the shell at all would surface through the result text.
func Run(ctx context.Context, command string, timeout time.Duration) *Result {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, "cmd", "/C", command)
	} else {
		cmd = exec.CommandContext(ctx, "sh", "-c", command)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &Result{
		Command:  command,
		Stdout:   truncate(stdout.String()),
		Stderr:   truncate(stderr.String()),
		Duration: time.Since(start).Milliseconds(),
	}

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			result.ExitCode = -1
			result.Stderr = "command timed out"
		} else if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
			result.Stderr = err.Error()
		}
	}
	return result
}

func truncate(s string) string {
	if len(s) > MaxOutputSize {
		return s[:MaxOutputSize] + "\n... (output truncated)"
	}
	return s
}

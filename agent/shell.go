package agent

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"runtime"
	"time"
)

// Result is the raw outcome of one process run.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

//go:generate mockgen -destination=shellmocks_test.go -package=agent_test github.com/kardolus/taskpilot/agent Shell
type Shell interface {
	Run(
		ctx context.Context,
		workDir string,
		name string,
		args ...string,
	) (Result, error)
}

// waitDelay bounds how long Run waits for inherited pipes to close after the
// process was killed, e.g. when a grandchild still holds stdout.
const waitDelay = 2 * time.Second

type ExecShellRunner struct{}

func NewExecShellRunner() *ExecShellRunner {
	return &ExecShellRunner{}
}

// Run executes name with args. A non-zero exit is reported through
// Result.ExitCode, not as an error; err is only set when the process could not
// be started or waited on.
func (r *ExecShellRunner) Run(
	ctx context.Context,
	workDir string,
	name string,
	args ...string,
) (Result, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = workDir
	cmd.WaitDelay = waitDelay
	configureProcessGroup(cmd)

	var outb, errb bytes.Buffer
	cmd.Stdout = &outb
	cmd.Stderr = &errb

	err := cmd.Run()

	exit := 0
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			exit = ee.ExitCode()
		} else if !errors.Is(err, exec.ErrWaitDelay) {
			return Result{Stdout: outb.String(), Stderr: errb.String(), ExitCode: -1, Duration: time.Since(start)}, err
		}
	}

	return Result{
		Stdout:   outb.String(),
		Stderr:   errb.String(),
		ExitCode: exit,
		Duration: time.Since(start),
	}, nil
}

// ShellInvocation returns the interpreter and arguments used to run a command
// line on the current platform.
func ShellInvocation(command string) (string, []string) {
	return shellInvocationFor(runtime.GOOS, command)
}

func shellInvocationFor(goos, command string) (string, []string) {
	if goos == "windows" {
		return "powershell.exe", []string{"-NoProfile", "-NonInteractive", "-Command", command}
	}
	return "/bin/bash", []string{"-c", command}
}

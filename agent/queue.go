package agent

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

//go:generate mockgen -destination=commandrunnermocks_test.go -package=agent_test github.com/kardolus/taskpilot/agent CommandRunner
type CommandRunner interface {
	Enqueue(ctx context.Context, command string, opts CommandOptions) ToolResult
}

type CommandOptions struct {
	WorkDir string
	Timeout time.Duration
}

// CommandQueue runs shell command lines strictly one at a time, in the order
// Enqueue was called. It never retries.
type CommandQueue struct {
	shell   Shell
	clock   Clock
	workDir string
	timeout time.Duration
	log     *zap.SugaredLogger

	mu      sync.Mutex
	pending []*commandJob
	running bool
	last    *CommandExecution
}

type commandJob struct {
	ctx     context.Context
	command string
	opts    CommandOptions
	done    chan ToolResult
}

type QueueOption func(*CommandQueue)

func WithQueueLogger(l *zap.SugaredLogger) QueueOption {
	return func(q *CommandQueue) {
		if l != nil {
			q.log = l
		}
	}
}

func WithDefaultTimeout(d time.Duration) QueueOption {
	return func(q *CommandQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewCommandQueue(shell Shell, clock Clock, workDir string, opts ...QueueOption) *CommandQueue {
	q := &CommandQueue{
		shell:   shell,
		clock:   clock,
		workDir: workDir,
		timeout: DefaultCommandTimeout,
		log:     zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(q)
	}
	return q
}

// Enqueue blocks until the command has run. Cancelling ctx does not abandon a
// queued or running command; only its timeout stops it.
func (q *CommandQueue) Enqueue(ctx context.Context, command string, opts CommandOptions) ToolResult {
	job := &commandJob{
		ctx:     context.WithoutCancel(ctx),
		command: command,
		opts:    opts,
		done:    make(chan ToolResult, 1),
	}

	q.mu.Lock()
	q.pending = append(q.pending, job)
	if !q.running {
		q.running = true
		go q.drain()
	}
	q.mu.Unlock()

	return <-job.done
}

// Pending reports how many commands are waiting behind the running one.
func (q *CommandQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

func (q *CommandQueue) LastExecution() (CommandExecution, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.last == nil {
		return CommandExecution{}, false
	}
	return *q.last, true
}

func (q *CommandQueue) drain() {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.running = false
			q.mu.Unlock()
			return
		}
		job := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]
		q.mu.Unlock()

		job.done <- q.run(job)
	}
}

func (q *CommandQueue) run(job *commandJob) ToolResult {
	timeout := job.opts.Timeout
	if timeout <= 0 {
		timeout = q.timeout
	}
	dir := q.resolveDir(job.opts.WorkDir)

	runCtx, cancel := context.WithTimeout(job.ctx, timeout)
	defer cancel()

	execution := CommandExecution{Command: job.command, StartTime: q.clock.Now()}
	q.record(execution)

	q.log.Infof("> %s", job.command)
	q.log.Debugf("queue: start cmd=%q dir=%q timeout=%s", job.command, dir, timeout)

	name, args := ShellInvocation(job.command)
	res, err := q.shell.Run(runCtx, dir, name, args...)

	execution.EndTime = q.clock.Now()
	duration := execution.EndTime.Sub(execution.StartTime)
	timedOut := errors.Is(runCtx.Err(), context.DeadlineExceeded)

	if err == nil && res.ExitCode == 0 && !timedOut {
		output := res.Stdout
		if res.Stderr != "" {
			output += "\nStderr: " + res.Stderr
		}
		execution.Output = output
		q.record(execution)

		q.log.Infof("  completed in %s", duration)
		return ToolResult{
			Success: true,
			Output:  strings.TrimSpace(output),
			Data:    CommandData{ExitCode: 0, Duration: duration},
		}
	}

	msg := strings.TrimSpace(res.Stderr)
	if msg == "" {
		msg = strings.TrimSpace(res.Stdout)
	}
	if msg == "" {
		switch {
		case timedOut:
			msg = fmt.Sprintf("command timed out after %s", timeout)
		case err != nil:
			msg = err.Error()
		default:
			msg = fmt.Sprintf("command exited with code %d", res.ExitCode)
		}
	}

	code := res.ExitCode
	if code == 0 {
		code = 1
	}

	execution.ExitCode = code
	execution.Output = res.Stdout
	execution.Error = msg
	q.record(execution)

	if timedOut {
		q.log.Warnf("  timed out after %s", timeout)
	} else {
		q.log.Warnf("  failed (exit=%d): %s", code, firstLine(msg))
	}
	q.log.Debugf("queue: failure cmd=%q exit=%d err=%v", job.command, code, err)

	return ToolResult{
		Success: false,
		Error:   msg,
		Output:  res.Stdout,
		Data:    CommandData{ExitCode: code, Duration: duration},
	}
}

func (q *CommandQueue) resolveDir(dir string) string {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return q.workDir
	}
	if filepath.IsAbs(dir) || q.workDir == "" {
		return dir
	}
	return filepath.Join(q.workDir, dir)
}

func (q *CommandQueue) record(e CommandExecution) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.last = &e
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

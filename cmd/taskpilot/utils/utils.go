package utils

import (
	"strings"
	"sync"
	"time"

	"github.com/kardolus/taskpilot/agent"
	"github.com/kardolus/taskpilot/config"
)

type InputKind int

const (
	InputEmpty InputKind = iota
	InputTask
	InputChat
	InputClear
	InputHistory
	InputState
	InputHelp
	InputExit
	InputUnknown
)

// Input is one parsed line of the interactive session.
type Input struct {
	Kind InputKind
	Arg  string
}

// ParseInput maps a slash command to its kind; any other text is a task.
func ParseInput(line string) Input {
	line = strings.TrimSpace(line)
	if line == "" {
		return Input{Kind: InputEmpty}
	}
	if line == "exit" || line == "quit" {
		return Input{Kind: InputExit}
	}
	if !strings.HasPrefix(line, "/") {
		return Input{Kind: InputTask, Arg: line}
	}

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "/chat":
		if arg == "" {
			return Input{Kind: InputUnknown, Arg: "usage: /chat <message>"}
		}
		return Input{Kind: InputChat, Arg: arg}
	case "/clear":
		return Input{Kind: InputClear}
	case "/history":
		return Input{Kind: InputHistory}
	case "/state":
		return Input{Kind: InputState}
	case "/help":
		return Input{Kind: InputHelp}
	case "/exit", "/quit":
		return Input{Kind: InputExit}
	default:
		return Input{Kind: InputUnknown, Arg: "unknown command: " + cmd}
	}
}

const HelpText = `Type a task to plan and run it, or use:
  /chat <message>  talk to the assistant without running tools
  /history         show executed steps
  /state           show the current task state
  /clear           forget messages, errors and history
  /exit            leave (Ctrl-C twice also exits)`

func ToAgentConfig(c config.AgentConfig) agent.Config {
	cfg := agent.Config{
		WorkDir:        c.WorkDir,
		AutoApprove:    c.AutoApprove,
		DryRun:         c.DryRun,
		MaxRetries:     c.MaxRetries,
		CommandTimeout: time.Duration(c.CommandTimeout) * time.Second,
		FormatResults:  c.FormatResults,
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = "."
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = agent.DefaultMaxRetries
	}
	if cfg.CommandTimeout <= 0 {
		cfg.CommandTimeout = agent.DefaultCommandTimeout
	}
	return cfg
}

func ToBudgetLimits(c config.AgentConfig) agent.BudgetLimits {
	return agent.BudgetLimits{
		MaxSteps:      c.MaxSteps,
		MaxWallTime:   time.Duration(c.MaxWallTime) * time.Second,
		MaxShellCalls: c.MaxShellCalls,
		MaxFileOps:    c.MaxFileOps,
	}
}

// ToPolicyLimits drops allowed actions that are not in the catalog.
func ToPolicyLimits(c config.AgentConfig) agent.PolicyLimits {
	limits := agent.PolicyLimits{
		DeniedShellCommands:    append([]string(nil), c.DeniedShellCommands...),
		RestrictFilesToWorkDir: c.RestrictFilesToWorkDir,
	}
	for _, a := range c.AllowedActions {
		if kind, ok := agent.ParseActionKind(a); ok {
			limits.AllowedActions = append(limits.AllowedActions, kind)
		}
	}
	return limits
}

// Interrupts tracks Ctrl-C presses. Hit reports whether the press is a repeat
// of one within the window; a zero window counts any earlier press.
type Interrupts struct {
	clock  agent.Clock
	window time.Duration

	mu   sync.Mutex
	last time.Time
}

func NewInterrupts(clock agent.Clock, window time.Duration) *Interrupts {
	return &Interrupts{clock: clock, window: window}
}

func (i *Interrupts) Hit() bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.clock.Now()
	repeat := !i.last.IsZero() && (i.window == 0 || now.Sub(i.last) <= i.window)
	i.last = now
	return repeat
}

func (i *Interrupts) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.last = time.Time{}
}

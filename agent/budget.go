package agent

import (
	"fmt"
	"sync"
	"time"
)

//go:generate mockgen -destination=budgetmocks_test.go -package=agent_test github.com/kardolus/taskpilot/agent Budget
type Budget interface {
	Start(now time.Time)
	AllowStep(now time.Time) error
	AllowAction(action ActionKind, now time.Time) error
	Snapshot(now time.Time) BudgetSnapshot
}

const (
	BudgetKindSteps    = "steps"
	BudgetKindShell    = "shell"
	BudgetKindFiles    = "files"
	BudgetKindWallTime = "wall_time"
)

// BudgetLimits caps one task. Zero means unlimited.
type BudgetLimits struct {
	MaxSteps      int
	MaxWallTime   time.Duration
	MaxShellCalls int
	MaxFileOps    int
}

type BudgetSnapshot struct {
	StartedAt   time.Time
	Elapsed     time.Duration
	Limits      BudgetLimits
	StepsUsed   int
	ShellUsed   int
	FileOpsUsed int
}

type DefaultBudget struct {
	limits BudgetLimits

	mu        sync.Mutex
	started   bool
	startedAt time.Time

	stepsUsed   int
	shellUsed   int
	fileOpsUsed int
}

func NewDefaultBudget(limits BudgetLimits) *DefaultBudget {
	return &DefaultBudget{limits: limits}
}

func (b *DefaultBudget) Start(now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.start(now)
}

func (b *DefaultBudget) Snapshot(now time.Time) BudgetSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ensureStarted(now)

	elapsed := now.Sub(b.startedAt)
	if elapsed < 0 {
		elapsed = 0
	}

	return BudgetSnapshot{
		StartedAt:   b.startedAt,
		Elapsed:     elapsed,
		Limits:      b.limits,
		StepsUsed:   b.stepsUsed,
		ShellUsed:   b.shellUsed,
		FileOpsUsed: b.fileOpsUsed,
	}
}

// AllowStep charges one plan step.
func (b *DefaultBudget) AllowStep(now time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ensureStarted(now)

	if err := b.checkWall(now); err != nil {
		return err
	}

	if b.limits.MaxSteps > 0 && b.stepsUsed+1 > b.limits.MaxSteps {
		return BudgetExceededError{
			Kind:    BudgetKindSteps,
			Limit:   b.limits.MaxSteps,
			Used:    b.stepsUsed,
			Message: "step budget exceeded",
		}
	}

	b.stepsUsed++
	return nil
}

// AllowAction charges one dispatch. Shell commands and filesystem mutations
// have their own counters; reads, prompts and analysis are free.
func (b *DefaultBudget) AllowAction(action ActionKind, now time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ensureStarted(now)

	if err := b.checkWall(now); err != nil {
		return err
	}

	switch action {
	case ActionExecuteCommand:
		if b.limits.MaxShellCalls > 0 && b.shellUsed+1 > b.limits.MaxShellCalls {
			return BudgetExceededError{
				Kind:    BudgetKindShell,
				Limit:   b.limits.MaxShellCalls,
				Used:    b.shellUsed,
				Message: "shell call budget exceeded",
			}
		}
		b.shellUsed++

	case ActionWriteFile, ActionCreateFile, ActionCreateDirectory, ActionDeleteFile:
		if b.limits.MaxFileOps > 0 && b.fileOpsUsed+1 > b.limits.MaxFileOps {
			return BudgetExceededError{
				Kind:    BudgetKindFiles,
				Limit:   b.limits.MaxFileOps,
				Used:    b.fileOpsUsed,
				Message: "file ops budget exceeded",
			}
		}
		b.fileOpsUsed++
	}

	return nil
}

func (b *DefaultBudget) start(now time.Time) {
	b.started = true
	b.startedAt = now
	b.stepsUsed = 0
	b.shellUsed = 0
	b.fileOpsUsed = 0
}

func (b *DefaultBudget) ensureStarted(now time.Time) {
	if b.started {
		return
	}
	b.start(now)
}

func (b *DefaultBudget) checkWall(now time.Time) error {
	if b.limits.MaxWallTime <= 0 {
		return nil
	}
	elapsed := now.Sub(b.startedAt)
	if elapsed > b.limits.MaxWallTime {
		return BudgetExceededError{
			Kind:    BudgetKindWallTime,
			LimitD:  b.limits.MaxWallTime,
			UsedD:   elapsed,
			Message: "wall time budget exceeded",
		}
	}
	return nil
}

// BudgetExceededError is a typed error so the orchestrator can branch on it.
type BudgetExceededError struct {
	// "steps" | "shell" | "files" | "wall_time"
	Kind    string
	Limit   int
	Used    int
	LimitD  time.Duration
	UsedD   time.Duration
	Message string
}

func (e BudgetExceededError) Error() string {
	switch e.Kind {
	case BudgetKindWallTime:
		return fmt.Sprintf("%s: limit=%s used=%s", e.Message, e.LimitD, e.UsedD)
	default:
		return fmt.Sprintf("%s: kind=%s limit=%d used=%d", e.Message, e.Kind, e.Limit, e.Used)
	}
}

// UnlimitedBudget never refuses anything.
type UnlimitedBudget struct{}

func (UnlimitedBudget) Start(time.Time)                         {}
func (UnlimitedBudget) AllowStep(time.Time) error               { return nil }
func (UnlimitedBudget) AllowAction(ActionKind, time.Time) error { return nil }
func (UnlimitedBudget) Snapshot(now time.Time) BudgetSnapshot {
	return BudgetSnapshot{StartedAt: now}
}

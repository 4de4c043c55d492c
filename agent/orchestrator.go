package agent

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

const recentErrorsInContext = 5

// Orchestrator runs one task at a time: it asks the advisor for a plan and
// executes the steps in order, consulting the operator when a step fails.
type Orchestrator struct {
	*BaseAgent

	advisor  Advisor
	host     Host
	contexts ContextProvider
	executor Executor
	budget   Budget
	record   *ExecutionRecord

	store     stateStore
	running   atomic.Bool
	cancelled atomic.Bool
}

// Run executes task to completion, cancellation, or an operator stop. Outcomes
// are reported through state; the only error is ErrTaskRunning.
func (o *Orchestrator) Run(ctx context.Context, task string) error {
	if !o.running.CompareAndSwap(false, true) {
		return ErrTaskRunning
	}
	o.cancelled.Store(false)

	start := o.startTimer()
	o.logGoal(task)

	user := o.message(RoleUser, task)
	o.store.update(func(s AgentState) AgentState {
		return s.started(task).withMessage(user)
	})

	defer func() {
		snap := o.budget.Snapshot(o.clock.Now())
		o.debug.Debugf("run: usage steps=%d shell=%d file_ops=%d elapsed=%s",
			snap.StepsUsed, snap.ShellUsed, snap.FileOpsUsed, snap.Elapsed)

		o.store.update(AgentState.finished)
		o.running.Store(false)
		o.finishTimer(start)
	}()

	o.runPlan(ctx, task)
	return nil
}

func (o *Orchestrator) runPlan(ctx context.Context, task string) {
	pc, err := o.gatherContext(ctx)
	if err != nil {
		o.failTask(fmt.Errorf("gather context: %w", err))
		return
	}

	o.budget.Start(o.clock.Now())

	o.debug.Debugf("run: planning root=%q type=%q recent_errors=%d", pc.WorkspaceRoot, pc.ProjectType, len(pc.RecentErrors))
	plan, err := o.advisor.PlanTask(ctx, task, pc, AvailableActions)
	if err != nil {
		o.failTask(err)
		return
	}

	total := len(plan.Steps)
	o.say(fmt.Sprintf("Planning complete (confidence: %.0f%%)\n\n%s\n\nSteps: %d", plan.Confidence*100, plan.Reasoning, total))
	o.out.Infof("Plan: %d step(s), confidence %.0f%%", total, plan.Confidence*100)

	if total == 0 {
		o.say("No actions needed for this task.")
		return
	}

	o.store.update(func(s AgentState) AgentState { return s.withTotal(total) })

	for i, step := range plan.Steps {
		if o.isCancelled(ctx) {
			o.out.Info("Task cancelled by user")
			o.say("Task cancelled by user.")
			return
		}

		if err := o.budget.AllowStep(o.clock.Now()); err != nil {
			o.failTask(err)
			return
		}

		n := i + 1
		announce := o.message(RoleAssistant, fmt.Sprintf("Step %d/%d: %s\nExpected: %s", n, total, step.Action, step.ExpectedOutcome))
		o.store.update(func(s AgentState) AgentState {
			return s.atStep(n).withMessage(announce)
		})
		o.out.Infof("[%d/%d] %s", n, total, step.Action)
		o.debug.Debugf("run: step=%d action=%s params=%s", n, step.Action, renderParams(step.Parameters))

		res := o.executor.ExecuteWithRecovery(ctx, step, o.advise, o.config.MaxRetries)

		switch {
		case res.Success:
			o.out.Infof("  ok: %s", firstLine(res.Output))
			o.say("✓ " + o.display(ctx, step, res, task))

		case res.Skipped:
			o.out.Infof("  skipped: %s", firstLine(res.Error))
			o.say("↷ Skipped: " + res.Error)

		default:
			reason := res.Error
			if reason == "" {
				reason = "Unknown error"
			}
			o.out.Warnf("  failed: %s", firstLine(reason))
			o.say("✗ Failed: " + reason)

			if !o.host.AskContinue(ctx, reason) {
				o.out.Info("Stopped after failure")
				return
			}
		}
	}

	o.say("Task execution completed.")
}

// advise is the recovery callback: it records the failure, asks the advisor
// for a fix and lets the operator decide.
func (o *Orchestrator) advise(ctx context.Context, info ErrorInfo, failed PlanStep) Advice {
	note := o.message(RoleAssistant, fmt.Sprintf("Analyzing error: %s - %s", info.Kind, info.Message))
	o.store.update(func(s AgentState) AgentState {
		return s.withError(info).withMessage(note)
	})

	analysis, err := o.advisor.AnalyzeError(ctx, info)
	if err != nil {
		o.debug.Warnf("advise: analyze failed action=%s: %v", failed.Action, err)
		return Advice{Decision: DecisionDecline}
	}
	if len(analysis.Suggestions) == 0 {
		return Advice{Decision: DecisionDecline}
	}

	o.say("Recovery suggestion: " + analysis.Analysis)

	switch d := o.host.ApproveRecovery(ctx, info, analysis); d {
	case DecisionApply:
		return Advice{Decision: DecisionApply, Steps: analysis.Suggestions}
	case DecisionSkip:
		return Advice{Decision: DecisionSkip}
	default:
		return Advice{Decision: DecisionDecline}
	}
}

// display renders a successful result. Formatting is cosmetic; any failure
// falls back to the raw output.
func (o *Orchestrator) display(ctx context.Context, step PlanStep, res ToolResult, task string) string {
	raw := res.Output
	if raw == "" {
		raw = "Completed successfully"
	}
	if !o.config.FormatResults {
		return raw
	}

	formatted, err := o.advisor.FormatToolResult(ctx, step.Action, res, task)
	if err != nil {
		o.debug.Debugf("run: format result failed, using raw output: %v", err)
		return raw
	}
	if formatted == "" {
		return raw
	}
	return formatted
}

func (o *Orchestrator) gatherContext(ctx context.Context) (ProjectContext, error) {
	var pc ProjectContext
	if o.contexts != nil {
		var err error
		if pc, err = o.contexts.Gather(ctx); err != nil {
			return ProjectContext{}, err
		}
	}
	pc.RecentErrors = o.store.get().recentErrors(recentErrorsInContext)
	return pc, nil
}

// Chat sends a free-form message to the advisor outside of any task.
func (o *Orchestrator) Chat(ctx context.Context, text string) (string, error) {
	user := o.message(RoleUser, text)
	o.store.update(func(s AgentState) AgentState { return s.withMessage(user) })

	reply, err := o.advisor.Chat(ctx, text)
	if err != nil {
		o.say("Error: " + err.Error())
		return "", fmt.Errorf("chat: %w", err)
	}

	o.say(reply)
	return reply, nil
}

// Cancel asks the running task to stop before its next step. In-flight
// commands are not interrupted.
func (o *Orchestrator) Cancel() {
	if o.running.Load() {
		o.cancelled.Store(true)
	}
}

// Clear drops messages, errors, advisor conversation and the execution record.
func (o *Orchestrator) Clear() {
	o.store.update(AgentState.cleared)
	o.advisor.ClearHistory()
	o.record.Clear()
}

func (o *Orchestrator) State() AgentState {
	return o.store.get()
}

// Subscribe registers fn to receive every new snapshot and returns a function
// that unregisters it.
func (o *Orchestrator) Subscribe(fn func(AgentState)) func() {
	return o.store.subscribe(fn)
}

func (o *Orchestrator) History() []HistoryEntry {
	return o.record.Entries()
}

func (o *Orchestrator) Running() bool {
	return o.running.Load()
}

func (o *Orchestrator) isCancelled(ctx context.Context) bool {
	return o.cancelled.Load() || ctx.Err() != nil
}

func (o *Orchestrator) failTask(err error) {
	o.out.Errorf("Error: %v", err)
	o.debug.Errorf("run: task failed: %v", err)
	o.say("Error: " + err.Error())
}

func (o *Orchestrator) say(content string) {
	m := o.message(RoleAssistant, content)
	o.store.update(func(s AgentState) AgentState { return s.withMessage(m) })
}

func (o *Orchestrator) message(role Role, content string) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: o.clock.Now(),
	}
}

package agent

import (
	"context"

	"go.uber.org/zap"
)

// Advice is what the advice callback wants done about a classified failure.
// Apply with no Steps has nothing to fix and is handled like Skip.
type Advice struct {
	Decision Decision
	Steps    []PlanStep
}

// AdviceFunc is consulted once per classified failure of a step.
type AdviceFunc func(ctx context.Context, info ErrorInfo, failed PlanStep) Advice

//go:generate mockgen -destination=executormocks_test.go -package=agent_test github.com/kardolus/taskpilot/agent Executor
type Executor interface {
	ExecuteWithRecovery(ctx context.Context, step PlanStep, advise AdviceFunc, maxRetries int) ToolResult
}

// Recoverer retries a failing step after running model-proposed corrective
// steps. Corrective steps go through the plain dispatcher and are never
// themselves recovered.
type Recoverer struct {
	dispatcher Dispatcher
	classifier *Classifier
	record     *ExecutionRecord
	clock      Clock
	debug      *zap.SugaredLogger
}

func NewRecoverer(d Dispatcher, c *Classifier, record *ExecutionRecord, clock Clock, debug *zap.SugaredLogger) *Recoverer {
	if debug == nil {
		debug = zap.NewNop().Sugar()
	}
	return &Recoverer{dispatcher: d, classifier: c, record: record, clock: clock, debug: debug}
}

func (r *Recoverer) ExecuteWithRecovery(ctx context.Context, step PlanStep, advise AdviceFunc, maxRetries int) ToolResult {
	if maxRetries < 1 {
		maxRetries = 1
	}

	attempts := 0
	for {
		res := r.dispatch(ctx, step, false)
		if res.Success {
			return res
		}

		attempts++
		r.debug.Debugf("recovery: attempt=%d/%d action=%s err=%q", attempts, maxRetries, step.Action, res.Error)

		if attempts >= maxRetries {
			return res
		}
		if res.Refused {
			return res
		}

		raw := res.Error
		if raw == "" {
			raw = res.Output
		}
		info, ok := r.classifier.Classify(raw, failureSource(step))
		if !ok {
			return res
		}

		advice := Advice{Decision: DecisionDecline}
		if advise != nil {
			advice = advise(ctx, info, step)
		}
		r.debug.Debugf("recovery: kind=%s decision=%s corrective=%d", info.Kind, advice.Decision, len(advice.Steps))

		switch advice.Decision {
		case DecisionApply:
			if len(advice.Steps) == 0 {
				res.Skipped = true
				return res
			}
		case DecisionSkip:
			res.Skipped = true
			return res
		default:
			return res
		}

		for _, fix := range advice.Steps {
			fixRes := r.dispatch(ctx, fix, true)
			if !fixRes.Success {
				return fixRes
			}
		}
	}
}

func (r *Recoverer) dispatch(ctx context.Context, step PlanStep, corrective bool) ToolResult {
	res := r.dispatcher.Dispatch(ctx, step.Action, step.Parameters)
	if r.record != nil {
		r.record.Append(HistoryEntry{Step: step, Result: res, At: r.clock.Now(), Corrective: corrective})
	}
	return res
}

func failureSource(step PlanStep) string {
	if step.Action == ActionExecuteCommand {
		if cmd := step.Str("command"); cmd != "" {
			return cmd
		}
	}
	return string(step.Action)
}

package agent

import (
	"context"
)

// Decision is the operator's answer to a proposed recovery.
type Decision int

const (
	DecisionDecline Decision = iota
	DecisionApply
	DecisionSkip
)

func (d Decision) String() string {
	switch d {
	case DecisionApply:
		return "apply"
	case DecisionSkip:
		return "skip"
	default:
		return "decline"
	}
}

// Analysis is the model's diagnosis of a classified failure.
type Analysis struct {
	Analysis    string     `json:"analysis"`
	Suggestions []PlanStep `json:"suggestions"`
}

//go:generate mockgen -destination=hostmocks_test.go -package=agent_test github.com/kardolus/taskpilot/agent Host
type Host interface {
	// Confirm asks a yes/no question before a dangerous action.
	Confirm(ctx context.Context, question string) bool
	// ApproveRecovery shows a failure and its proposed fix.
	ApproveRecovery(ctx context.Context, info ErrorInfo, analysis Analysis) Decision
	// AskContinue is asked after a step fails for good. False stops the run.
	AskContinue(ctx context.Context, failure string) bool
	// Prompt asks a free-form question. An empty answer means no response.
	Prompt(ctx context.Context, question, placeholder string) (string, error)
}

//go:generate mockgen -destination=advisormocks_test.go -package=agent_test github.com/kardolus/taskpilot/agent Advisor
type Advisor interface {
	PlanTask(ctx context.Context, task string, pc ProjectContext, actions []ActionKind) (Plan, error)
	AnalyzeError(ctx context.Context, info ErrorInfo) (Analysis, error)
	FormatToolResult(ctx context.Context, action ActionKind, result ToolResult, task string) (string, error)
	Chat(ctx context.Context, message string) (string, error)
	ClearHistory()
}

//go:generate mockgen -destination=contextmocks_test.go -package=agent_test github.com/kardolus/taskpilot/agent ContextProvider
type ContextProvider interface {
	Gather(ctx context.Context) (ProjectContext, error)
}

package advisor

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/kardolus/taskpilot/agent"
)

// LoggingAdvisor decorates an Advisor and keeps the last plan on disk next to
// the agent logs.
type LoggingAdvisor struct {
	agent.Advisor
	log *zap.SugaredLogger

	// artifacts (overwritten every run)
	rawPath        string
	normalizedPath string
}

func NewLoggingAdvisor(inner agent.Advisor, logs *agent.Logs) *LoggingAdvisor {
	la := &LoggingAdvisor{
		Advisor: inner,
		log:     zap.NewNop().Sugar(),
	}

	if logs == nil {
		return la
	}
	if logs.DebugLogger != nil {
		la.log = logs.DebugLogger
	}
	if logs.Dir != "" {
		la.rawPath = filepath.Join(logs.Dir, "plan.json")
		la.normalizedPath = filepath.Join(logs.Dir, "plan.normalized.json")
	}
	return la
}

func (a *LoggingAdvisor) PlanTask(ctx context.Context, task string, pc agent.ProjectContext, actions []agent.ActionKind) (agent.Plan, error) {
	a.log.Debugf("advisor: plan start task_len=%d", len(strings.TrimSpace(task)))

	plan, err := a.Advisor.PlanTask(ctx, task, pc, actions)
	if err != nil {
		a.log.Debugf("advisor: plan error=%v", err)
		return agent.Plan{}, err
	}

	a.writeNormalized(plan)
	a.log.Debugf("advisor: plan done steps=%d", len(plan.Steps))
	return plan, nil
}

func (a *LoggingAdvisor) AnalyzeError(ctx context.Context, info agent.ErrorInfo) (agent.Analysis, error) {
	a.log.Debugf("advisor: analyze kind=%s source=%q", info.Kind, info.Source)

	analysis, err := a.Advisor.AnalyzeError(ctx, info)
	if err != nil {
		a.log.Debugf("advisor: analyze error=%v", err)
		return analysis, err
	}

	a.log.Debugf("advisor: analyze done suggestions=%d", len(analysis.Suggestions))
	return analysis, nil
}

// WriteRaw stores the unparsed reply of the latest planning request. Use it as
// the client's plan raw sink.
func (a *LoggingAdvisor) WriteRaw(raw string) {
	if a.rawPath == "" {
		return
	}
	_ = os.WriteFile(a.rawPath, []byte(raw), 0o644) // best-effort
}

func (a *LoggingAdvisor) writeNormalized(plan agent.Plan) {
	if a.normalizedPath == "" {
		return
	}
	b, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		a.log.Debugf("advisor: failed to marshal normalized plan: %v", err)
		return
	}
	_ = os.WriteFile(a.normalizedPath, b, 0o644) // best-effort
}

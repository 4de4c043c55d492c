package advisor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kardolus/taskpilot/agent"
)

const rawPreviewLength = 200

type stepJSON struct {
	Action          string         `json:"action"`
	Parameters      map[string]any `json:"parameters"`
	ExpectedOutcome string         `json:"expected_outcome"`
	RollbackPlan    []stepJSON     `json:"rollback_plan"`
}

type planJSON struct {
	Plan       []stepJSON `json:"plan"`
	Reasoning  string     `json:"reasoning"`
	Confidence *float64   `json:"confidence"`
}

type analysisJSON struct {
	Analysis    string     `json:"analysis"`
	Suggestions []stepJSON `json:"suggestions"`
}

func parsePlan(raw string) (agent.Plan, error) {
	var pj planJSON
	if err := decodeObject(raw, &pj); err != nil {
		return agent.Plan{}, err
	}

	out := agent.Plan{
		Steps:      make([]agent.PlanStep, 0, len(pj.Plan)),
		Reasoning:  strings.TrimSpace(pj.Reasoning),
		Confidence: normalizeConfidence(pj.Confidence),
	}

	for i, s := range pj.Plan {
		step, err := convertStep(s)
		if err != nil {
			return agent.Plan{}, fmt.Errorf("plan step %d: %w", i+1, err)
		}
		out.Steps = append(out.Steps, step)
	}
	return out, nil
}

// parseAnalysis keeps the suggestions that name a known action and drops the
// rest.
func parseAnalysis(raw string) (agent.Analysis, error) {
	var aj analysisJSON
	if err := decodeObject(raw, &aj); err != nil {
		return agent.Analysis{}, err
	}

	out := agent.Analysis{Analysis: strings.TrimSpace(aj.Analysis)}
	for _, s := range aj.Suggestions {
		step, err := convertStep(s)
		if err != nil {
			continue
		}
		out.Suggestions = append(out.Suggestions, step)
	}
	return out, nil
}

func convertStep(s stepJSON) (agent.PlanStep, error) {
	kind, ok := agent.ParseActionKind(s.Action)
	if !ok {
		return agent.PlanStep{}, fmt.Errorf("unknown action %q", s.Action)
	}

	params := s.Parameters
	if params == nil {
		params = map[string]any{}
	}

	step := agent.PlanStep{
		Action:          kind,
		Parameters:      params,
		ExpectedOutcome: strings.TrimSpace(s.ExpectedOutcome),
	}
	// rollback steps naming an unknown action are dropped, like suggestions
	for _, r := range s.RollbackPlan {
		if rb, err := convertStep(r); err == nil {
			step.RollbackPlan = append(step.RollbackPlan, rb)
		}
	}
	return step, nil
}

func decodeObject(raw string, v any) error {
	obj, ok := extractJSONObject(raw)
	if !ok {
		return fmt.Errorf("invalid JSON response from model: %s", preview(raw))
	}
	if err := json.Unmarshal([]byte(obj), v); err != nil {
		return fmt.Errorf("invalid JSON response from model: %w", err)
	}
	return nil
}

// extractJSONObject returns the text from the first '{' to the last '}', which
// tolerates markdown fences and prose around the object.
func extractJSONObject(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start == -1 || end < start {
		return "", false
	}
	return raw[start : end+1], true
}

// normalizeConfidence treats a missing or zero confidence as unknown and
// clamps the rest to [0, 1].
func normalizeConfidence(c *float64) float64 {
	if c == nil || *c == 0 {
		return defaultConfidence
	}
	switch {
	case *c < 0:
		return 0
	case *c > 1:
		return 1
	default:
		return *c
	}
}

func preview(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= rawPreviewLength {
		return s
	}
	return s[:rawPreviewLength]
}

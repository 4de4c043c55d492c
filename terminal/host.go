package terminal

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/chzyer/readline"

	"github.com/kardolus/taskpilot/agent"
)

//go:generate mockgen -destination=promptermocks_test.go -package=terminal_test github.com/kardolus/taskpilot/terminal Prompter
type Prompter interface {
	ReadLine(prompt string) (string, error)
}

// ReadlinePrompter reads answers through a shared readline instance so that
// prompts and the interactive session use one terminal state.
type ReadlinePrompter struct {
	rl *readline.Instance
}

func NewReadlinePrompter(rl *readline.Instance) *ReadlinePrompter {
	return &ReadlinePrompter{rl: rl}
}

func (p *ReadlinePrompter) ReadLine(prompt string) (string, error) {
	p.rl.SetPrompt(prompt)
	return p.rl.Readline()
}

// Host asks the operator through a Prompter. Interrupts and read errors count
// as "no".
type Host struct {
	prompter Prompter
	out      io.Writer
}

var _ agent.Host = &Host{}

func NewHost(prompter Prompter, out io.Writer) *Host {
	return &Host{prompter: prompter, out: out}
}

func (h *Host) Confirm(ctx context.Context, question string) bool {
	if ctx.Err() != nil {
		return false
	}
	fmt.Fprintln(h.out, boldYellow("⚠ "+question))
	return h.yes(boldYellow("Proceed? [y/N] "))
}

func (h *Host) ApproveRecovery(ctx context.Context, info agent.ErrorInfo, analysis agent.Analysis) agent.Decision {
	if ctx.Err() != nil {
		return agent.DecisionDecline
	}

	fmt.Fprintf(h.out, "%s %s\n", boldRed(fmt.Sprintf("Error (%s):", info.Kind)), info.Message)
	if analysis.Analysis != "" {
		fmt.Fprintln(h.out, analysis.Analysis)
	}
	fmt.Fprintln(h.out, boldBlue("Suggested fix:"))
	for i, s := range analysis.Suggestions {
		fmt.Fprintf(h.out, "  %d. %s %s\n", i+1, s.Action, dimText(describeParams(s.Parameters)))
	}

	answer, err := h.prompter.ReadLine(boldYellow("Apply fix? [y]es/[n]o/[s]kip step: "))
	if err != nil {
		return agent.DecisionDecline
	}

	switch normalize(answer) {
	case "y", "yes", "apply":
		return agent.DecisionApply
	case "s", "skip":
		return agent.DecisionSkip
	default:
		return agent.DecisionDecline
	}
}

func (h *Host) AskContinue(ctx context.Context, failure string) bool {
	if ctx.Err() != nil {
		return false
	}
	fmt.Fprintf(h.out, "%s %s\n", boldRed("Step failed:"), failure)
	return h.yes(boldYellow("Continue with remaining steps? [y/N] "))
}

func (h *Host) Prompt(ctx context.Context, question, placeholder string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprintln(h.out, boldBlue(question))
	prompt := "> "
	if placeholder != "" {
		prompt = dimText("("+placeholder+") ") + prompt
	}

	answer, err := h.prompter.ReadLine(prompt)
	if err != nil {
		if err == readline.ErrInterrupt || err == io.EOF {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

func (h *Host) yes(prompt string) bool {
	answer, err := h.prompter.ReadLine(prompt)
	if err != nil {
		return false
	}
	switch normalize(answer) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func describeParams(params map[string]any) string {
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, params[k]))
	}
	return strings.Join(parts, " ")
}

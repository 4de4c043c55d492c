package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/kardolus/taskpilot/agent"
)

var (
	boldBlue   = color.New(color.FgBlue, color.Bold).SprintFunc()
	boldGreen  = color.New(color.FgGreen, color.Bold).SprintFunc()
	boldRed    = color.New(color.FgRed, color.Bold).SprintFunc()
	boldYellow = color.New(color.FgYellow, color.Bold).SprintFunc()
	dimText    = color.New(color.Faint).SprintFunc()
)

// Renderer prints the assistant messages of each published snapshot once.
// Pass Render to the orchestrator's Subscribe.
type Renderer struct {
	out io.Writer

	mu   sync.Mutex
	seen int
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

func (r *Renderer) Render(s agent.AgentState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// cleared
	if len(s.Messages) < r.seen {
		r.seen = 0
	}

	for _, m := range s.Messages[r.seen:] {
		if m.Role == agent.RoleUser {
			continue
		}
		fmt.Fprintln(r.out, colorize(m.Content))
	}
	r.seen = len(s.Messages)
}

func colorize(content string) string {
	switch {
	case strings.HasPrefix(content, "✓"):
		return boldGreen("✓") + content[len("✓"):]
	case strings.HasPrefix(content, "✗"), strings.HasPrefix(content, "Error:"):
		return boldRed(content)
	case strings.HasPrefix(content, "↷"):
		return boldYellow(content)
	case strings.HasPrefix(content, "Step "):
		head, rest, _ := strings.Cut(content, "\n")
		if rest == "" {
			return boldBlue(head)
		}
		return boldBlue(head) + "\n" + dimText(rest)
	case strings.HasPrefix(content, "Analyzing error:"), strings.HasPrefix(content, "Recovery suggestion:"):
		return boldYellow(content)
	case strings.HasPrefix(content, "Planning complete"):
		return boldBlue(content)
	default:
		return content
	}
}

// FormatState renders a one-line summary of s.
func FormatState(s agent.AgentState) string {
	if !s.IsRunning {
		return fmt.Sprintf("idle, %d message(s), %d error(s)", len(s.Messages), len(s.Errors))
	}
	return fmt.Sprintf("running %q, step %d/%d, %d error(s)", s.CurrentTask, s.CurrentStep, s.TotalSteps, len(s.Errors))
}

// FormatHistory renders the execution record, one line per dispatch.
func FormatHistory(entries []agent.HistoryEntry) string {
	if len(entries) == 0 {
		return "No steps executed yet."
	}

	var b strings.Builder
	for i, e := range entries {
		status := boldGreen("ok")
		detail := e.Result.Output
		if !e.Result.Success {
			status = boldRed("failed")
			detail = e.Result.Error
		}
		marker := ""
		if e.Corrective {
			marker = dimText(" (fix)")
		}
		fmt.Fprintf(&b, "%3d. %s %s%s %s\n", i+1, e.At.Format("15:04:05"), e.Step.Action, marker, status)
		if line := firstLine(detail); line != "" {
			fmt.Fprintf(&b, "     %s\n", dimText(line))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}

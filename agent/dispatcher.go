package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const cancelledByUser = "Operation cancelled by user"

//go:generate mockgen -destination=dispatchermocks_test.go -package=agent_test github.com/kardolus/taskpilot/agent Dispatcher
type Dispatcher interface {
	Dispatch(ctx context.Context, action ActionKind, params map[string]any) ToolResult
}

// ToolDispatcher maps an action onto its filesystem, process or prompt
// operation. Policy, approval and budget are checked before any side effect.
type ToolDispatcher struct {
	cfg      Config
	files    Files
	commands CommandRunner
	host     Host
	clock    Clock
	policy   Policy
	budget   Budget

	out   *zap.SugaredLogger
	debug *zap.SugaredLogger
}

type DispatcherOption func(*ToolDispatcher)

func WithPolicy(p Policy) DispatcherOption {
	return func(d *ToolDispatcher) { d.policy = p }
}

func WithBudget(b Budget) DispatcherOption {
	return func(d *ToolDispatcher) {
		if b != nil {
			d.budget = b
		}
	}
}

func WithDispatcherLoggers(out, debug *zap.SugaredLogger) DispatcherOption {
	return func(d *ToolDispatcher) {
		if out != nil {
			d.out = out
		}
		if debug != nil {
			d.debug = debug
		}
	}
}

func NewToolDispatcher(cfg Config, files Files, commands CommandRunner, host Host, clock Clock, opts ...DispatcherOption) *ToolDispatcher {
	d := &ToolDispatcher{
		cfg:      cfg,
		files:    files,
		commands: commands,
		host:     host,
		clock:    clock,
		budget:   UnlimitedBudget{},
		out:      zap.NewNop().Sugar(),
		debug:    zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

func (d *ToolDispatcher) Dispatch(ctx context.Context, action ActionKind, params map[string]any) (res ToolResult) {
	defer func() {
		if r := recover(); r != nil {
			d.debug.Errorf("dispatch: panic action=%s: %v", action, r)
			res = failf("Internal error while executing %s: %v", action, r)
		}
	}()

	if params == nil {
		params = map[string]any{}
	}
	d.debug.Debugf("dispatch: action=%s params=%s", action, renderParams(params))

	if _, ok := ParseActionKind(string(action)); !ok {
		return failf("Unknown action: %s", action)
	}
	if missing := missingParam(action, params); missing != "" {
		return failf("Missing required parameter for %s: %s", action, missing)
	}

	if d.policy != nil {
		if err := d.policy.AllowAction(d.cfg, action, params); err != nil {
			var pd PolicyDeniedError
			if errors.As(err, &pd) {
				d.debug.Infof("dispatch: policy denied kind=%s reason=%s", pd.Kind, pd.Reason)
			}
			d.out.Warnf("Blocked %s: %v", action, err)
			return refused(err.Error())
		}
	}

	if question, ok := requiresApproval(action, params); ok && !d.cfg.AutoApprove {
		if d.host == nil || !d.host.Confirm(ctx, question) {
			d.out.Infof("Declined: %s", question)
			return refused(cancelledByUser)
		}
	}

	if err := d.budget.AllowAction(action, d.clock.Now()); err != nil {
		d.out.Warnf("Blocked %s: %v", action, err)
		return refused(err.Error())
	}

	if d.cfg.DryRun && action != ActionAnalyzeError {
		return succeed(dryRunDescription(action, params), nil)
	}

	return d.execute(ctx, action, params)
}

func (d *ToolDispatcher) execute(ctx context.Context, action ActionKind, params map[string]any) ToolResult {
	switch action {
	case ActionReadFile:
		return d.files.ReadFile(paramString(params, "path"))

	case ActionWriteFile:
		return d.files.WriteFile(paramString(params, "path"), paramString(params, "content"))

	case ActionCreateFile:
		return d.files.CreateFile(paramString(params, "path"), paramString(params, "content"))

	case ActionCreateDirectory:
		return d.files.CreateDirectory(paramString(params, "path"))

	case ActionDeleteFile:
		return d.files.DeleteFile(paramString(params, "path"))

	case ActionListDirectory:
		return d.files.ListDirectory(paramString(params, "path"))

	case ActionExecuteCommand:
		return d.commands.Enqueue(ctx, paramString(params, "command"), CommandOptions{
			WorkDir: paramString(params, "cwd"),
			Timeout: paramMillis(params, "timeout"),
		})

	case ActionSearchFiles:
		return d.files.SearchFiles(paramString(params, "pattern"), paramString(params, "content"))

	case ActionAnalyzeError:
		return succeed("Error analysis requested", params)

	case ActionAskUser:
		return d.askUser(ctx, params)
	}

	return failf("Unknown action: %s", action)
}

func (d *ToolDispatcher) askUser(ctx context.Context, params map[string]any) ToolResult {
	if d.host == nil {
		return succeed("No response", "")
	}

	answer, err := d.host.Prompt(ctx, paramString(params, "question"), paramString(params, "placeholder"))
	if err != nil {
		d.debug.Debugf("dispatch: ask_user prompt error: %v", err)
		answer = ""
	}
	if answer == "" {
		return succeed("No response", "")
	}
	return succeed(answer, answer)
}

var requiredParams = map[ActionKind][]string{
	ActionReadFile:        {"path"},
	ActionWriteFile:       {"path", "content"},
	ActionCreateFile:      {"path"},
	ActionCreateDirectory: {"path"},
	ActionDeleteFile:      {"path"},
	ActionExecuteCommand:  {"command"},
	ActionSearchFiles:     {"pattern"},
	ActionAskUser:         {"question"},
}

// missingParam returns the first required parameter that is absent. Content
// may legitimately be empty, so only its presence is checked.
func missingParam(action ActionKind, params map[string]any) string {
	for _, name := range requiredParams[action] {
		v, ok := params[name]
		if !ok || v == nil {
			return name
		}
		if name != "content" && strings.TrimSpace(paramString(params, name)) == "" {
			return name
		}
	}
	return ""
}

func dryRunDescription(action ActionKind, params map[string]any) string {
	switch action {
	case ActionExecuteCommand:
		return fmt.Sprintf("[dry-run] would execute: %s", paramString(params, "command"))
	case ActionWriteFile, ActionCreateFile:
		return fmt.Sprintf("[dry-run] would %s %s (%d bytes)", strings.ReplaceAll(string(action), "_", " "),
			paramString(params, "path"), len(paramString(params, "content")))
	case ActionAskUser:
		return fmt.Sprintf("[dry-run] would ask: %s", paramString(params, "question"))
	default:
		if p := paramString(params, "path"); p != "" {
			return fmt.Sprintf("[dry-run] would %s %s", strings.ReplaceAll(string(action), "_", " "), p)
		}
		return fmt.Sprintf("[dry-run] would %s", strings.ReplaceAll(string(action), "_", " "))
	}
}

func renderParams(params map[string]any) string {
	b, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprint(params)
	}
	return truncate(string(b), 500)
}

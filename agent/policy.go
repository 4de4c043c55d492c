package agent

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

//go:generate mockgen -destination=policymocks_test.go -package=agent_test github.com/kardolus/taskpilot/agent Policy
type Policy interface {
	AllowAction(cfg Config, action ActionKind, params map[string]any) error
}

const (
	PolicyKindAction     = "action"
	PolicyKindShell      = "shell"
	PolicyKindPathEscape = "path_escape"
)

type DefaultPolicy struct {
	limits PolicyLimits
}

type PolicyLimits struct {
	AllowedActions         []ActionKind
	DeniedShellCommands    []string
	RestrictFilesToWorkDir bool
}

func NewDefaultPolicy(limits PolicyLimits) *DefaultPolicy {
	return &DefaultPolicy{limits: limits}
}

func (p *DefaultPolicy) AllowAction(cfg Config, action ActionKind, params map[string]any) error {
	if len(p.limits.AllowedActions) > 0 && !containsAction(p.limits.AllowedActions, action) {
		return PolicyDeniedError{
			Kind:   PolicyKindAction,
			Reason: fmt.Sprintf("action not allowed: %s", action),
		}
	}

	switch action {
	case ActionExecuteCommand:
		fields := strings.Fields(paramString(params, "command"))
		if len(fields) > 0 && containsString(p.limits.DeniedShellCommands, fields[0]) {
			return PolicyDeniedError{Kind: PolicyKindShell, Reason: fmt.Sprintf("shell command denied: %s", fields[0])}
		}
		if cwd := paramString(params, "cwd"); cwd != "" && p.limits.RestrictFilesToWorkDir && cfg.WorkDir != "" {
			if escapesWorkDir(cfg.WorkDir, cwd) {
				return PolicyDeniedError{
					Kind:   PolicyKindPathEscape,
					Reason: fmt.Sprintf("cwd escapes workdir: workdir=%q cwd=%q", cfg.WorkDir, cwd),
				}
			}
		}

	case ActionReadFile, ActionWriteFile, ActionCreateFile, ActionCreateDirectory, ActionDeleteFile, ActionListDirectory:
		path := paramString(params, "path")
		if p.limits.RestrictFilesToWorkDir && cfg.WorkDir != "" && path != "" {
			if escapesWorkDir(cfg.WorkDir, path) {
				return PolicyDeniedError{
					Kind:   PolicyKindPathEscape,
					Reason: fmt.Sprintf("path escapes workdir: workdir=%q path=%q", cfg.WorkDir, path),
				}
			}
		}
	}

	return nil
}

// PolicyDeniedError is a typed error so callers can branch on it.
type PolicyDeniedError struct {
	Kind   string
	Reason string
}

func (e PolicyDeniedError) Error() string {
	return fmt.Sprintf("policy denied: kind=%s reason=%s", e.Kind, e.Reason)
}

// dangerousPatterns are command shapes that always need operator approval.
var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\brm\s+-rf?\b`),
	regexp.MustCompile(`(?i)\bdel\s+/[sfq]`),
	regexp.MustCompile(`(?i)\bformat\b`),
	regexp.MustCompile(`(?i)\bmkfs\b`),
	regexp.MustCompile(`(?i)\bdd\s+if=`),
	regexp.MustCompile(`(?i)>\s*/dev/[sh]d`),
	regexp.MustCompile(`(?i)\bsudo\b`),
	regexp.MustCompile(`(?i)\bchmod\s+777\b`),
	regexp.MustCompile(`(?i)\bchown\s+-R\b`),
	regexp.MustCompile(`:\s*\(\)\s*\{`),
	regexp.MustCompile(`(?i)\beval\s*\(`),
	regexp.MustCompile(`(?i)\bcurl\b.*\|\s*(ba)?sh`),
	regexp.MustCompile(`(?i)\bwget\b.*\|\s*(ba)?sh`),
}

func IsDangerousCommand(command string) bool {
	for _, re := range dangerousPatterns {
		if re.MatchString(command) {
			return true
		}
	}
	return false
}

// requiresApproval reports whether the action must be confirmed by the
// operator, and the question to ask.
func requiresApproval(action ActionKind, params map[string]any) (string, bool) {
	switch action {
	case ActionDeleteFile:
		return fmt.Sprintf("Delete file: %s?", paramString(params, "path")), true
	case ActionExecuteCommand:
		cmd := paramString(params, "command")
		if IsDangerousCommand(cmd) {
			return fmt.Sprintf("Execute potentially dangerous command: %s?", cmd), true
		}
	}
	return "", false
}

func containsAction(xs []ActionKind, k ActionKind) bool {
	for _, x := range xs {
		if x == k {
			return true
		}
	}
	return false
}

func containsString(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

// escapesWorkDir returns true if path, when resolved relative to workdir, is outside workdir.
func escapesWorkDir(workdir, path string) bool {
	wd := filepath.Clean(workdir)

	full := path
	if !filepath.IsAbs(path) {
		full = filepath.Join(wd, path)
	}

	rel, err := filepath.Rel(wd, filepath.Clean(full))
	if err != nil {
		return true
	}
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

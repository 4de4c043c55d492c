package agent

import (
	"fmt"
	"strings"
	"time"
)

type ActionKind string

const (
	ActionReadFile        ActionKind = "read_file"
	ActionWriteFile       ActionKind = "write_file"
	ActionCreateFile      ActionKind = "create_file"
	ActionCreateDirectory ActionKind = "create_directory"
	ActionDeleteFile      ActionKind = "delete_file"
	ActionListDirectory   ActionKind = "list_directory"
	ActionExecuteCommand  ActionKind = "execute_command"
	ActionSearchFiles     ActionKind = "search_files"
	ActionAnalyzeError    ActionKind = "analyze_error"
	ActionAskUser         ActionKind = "ask_user"
)

// AvailableActions is the tool catalog. The dispatcher switches over exactly
// these kinds and every planning request advertises them; change both together.
var AvailableActions = []ActionKind{
	ActionReadFile,
	ActionWriteFile,
	ActionCreateFile,
	ActionCreateDirectory,
	ActionDeleteFile,
	ActionListDirectory,
	ActionExecuteCommand,
	ActionSearchFiles,
	ActionAnalyzeError,
	ActionAskUser,
}

func ParseActionKind(s string) (ActionKind, bool) {
	k := ActionKind(strings.ToLower(strings.TrimSpace(s)))
	for _, a := range AvailableActions {
		if a == k {
			return k, true
		}
	}
	return "", false
}

type Config struct {
	WorkDir        string
	AutoApprove    bool
	DryRun         bool
	MaxRetries     int
	CommandTimeout time.Duration
	FormatResults  bool
}

const (
	DefaultMaxRetries     = 3
	DefaultCommandTimeout = 30 * time.Second
)

type PlanStep struct {
	Action          ActionKind     `json:"action"`
	Parameters      map[string]any `json:"parameters"`
	ExpectedOutcome string         `json:"expected_outcome"`
	RollbackPlan    []PlanStep     `json:"rollback_plan,omitempty"`
}

// Str returns the named parameter rendered as a string. Missing keys and nil
// values yield "".
func (s PlanStep) Str(name string) string {
	return paramString(s.Parameters, name)
}

type Plan struct {
	Steps      []PlanStep `json:"plan"`
	Reasoning  string     `json:"reasoning"`
	Confidence float64    `json:"confidence"`
}

type ToolResult struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Output  string `json:"output,omitempty"`
	Error   string `json:"error,omitempty"`

	// Refused is set when the action was stopped before any side effect
	// (operator decline, policy, budget). Refused results are never classified.
	Refused bool `json:"-"`
	// Skipped is set when the operator chose to skip the step during recovery.
	Skipped bool `json:"-"`
}

func succeed(output string, data any) ToolResult {
	return ToolResult{Success: true, Output: output, Data: data}
}

func failf(format string, args ...any) ToolResult {
	return ToolResult{Success: false, Error: fmt.Sprintf(format, args...)}
}

func refused(msg string) ToolResult {
	return ToolResult{Success: false, Error: msg, Refused: true}
}

type ErrorKind string

const (
	ErrorCommandNotFound   ErrorKind = "command_not_found"
	ErrorPermissionDenied  ErrorKind = "permission_denied"
	ErrorSyntax            ErrorKind = "syntax_error"
	ErrorDependencyMissing ErrorKind = "dependency_missing"
	ErrorNetwork           ErrorKind = "network_error"
	ErrorFileNotFound      ErrorKind = "file_not_found"
	ErrorCompilation       ErrorKind = "compilation_error"
	ErrorRuntime           ErrorKind = "runtime_error"
	ErrorUnknown           ErrorKind = "unknown"
)

type ErrorInfo struct {
	Kind      ErrorKind `json:"type"`
	Message   string    `json:"message"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
	Context   string    `json:"context,omitempty"`
}

type ProjectContext struct {
	WorkspaceRoot string
	CurrentFile   string
	OpenFiles     []string
	RecentErrors  []ErrorInfo
	ProjectType   string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

type ChatMessage struct {
	ID        string
	Role      Role
	Content   string
	Timestamp time.Time
}

// CommandData is the structured payload of an execute_command result.
type CommandData struct {
	ExitCode int           `json:"exitCode"`
	Duration time.Duration `json:"duration"`
}

type DirEntry struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Path string `json:"path"`
}

type SearchMatch struct {
	Path    string   `json:"path"`
	Matches []string `json:"matches,omitempty"`
}

type CommandExecution struct {
	Command   string
	StartTime time.Time
	EndTime   time.Time
	ExitCode  int
	Output    string
	Error     string
}

func paramString(params map[string]any, name string) string {
	v, ok := params[name]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// paramMillis reads a millisecond duration parameter. JSON numbers decode as
// float64, so both numeric and string forms are accepted.
func paramMillis(params map[string]any, name string) time.Duration {
	v, ok := params[name]
	if !ok || v == nil {
		return 0
	}
	var ms float64
	switch t := v.(type) {
	case float64:
		ms = t
	case int:
		ms = float64(t)
	case int64:
		ms = float64(t)
	case string:
		if _, err := fmt.Sscanf(strings.TrimSpace(t), "%g", &ms); err != nil {
			return 0
		}
	default:
		return 0
	}
	if ms <= 0 {
		return 0
	}
	return time.Duration(ms * float64(time.Millisecond))
}

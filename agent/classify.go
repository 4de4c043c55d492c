package agent

import (
	"regexp"
	"strings"
)

const (
	classifierContextMax = 500
	unknownMessageMax    = 200
)

type classifierRule struct {
	re      *regexp.Regexp
	kind    ErrorKind
	summary func(m []string) string
}

func fixed(s string) func([]string) string {
	return func([]string) string { return s }
}

// classifierRules is ordered: specific failures first, generic catch-alls
// last. The first rule that matches wins.
var classifierRules = []classifierRule{
	{
		re:   regexp.MustCompile(`(?i)command not found|not recognized as.*command|'(\w+)' is not recognized`),
		kind: ErrorCommandNotFound,
		summary: func(m []string) string {
			if len(m) > 1 && m[1] != "" {
				return m[1]
			}
			return "Command not found"
		},
	},
	{
		re:      regexp.MustCompile(`(?i)permission denied|access is denied|EACCES|operation not permitted`),
		kind:    ErrorPermissionDenied,
		summary: fixed("Permission denied"),
	},
	{
		re:      regexp.MustCompile(`(?i)SyntaxError|syntax error|unexpected token`),
		kind:    ErrorSyntax,
		summary: fixed("Syntax error in code"),
	},
	{
		re:      regexp.MustCompile(`(?i)Cannot find module|Module not found|ModuleNotFoundError|No module named|package .* not found|cannot find package|no required module provides package`),
		kind:    ErrorDependencyMissing,
		summary: func(m []string) string { return m[0] },
	},
	{
		re:      regexp.MustCompile(`(?i)ECONNREFUSED|ETIMEDOUT|ENOTFOUND|getaddrinfo|connection refused|network is unreachable|\bnetwork\b`),
		kind:    ErrorNetwork,
		summary: fixed("Network connection error"),
	},
	{
		re:      regexp.MustCompile(`(?i)no such file or directory|file not found|ENOENT|cannot find the (?:file|path) specified`),
		kind:    ErrorFileNotFound,
		summary: fixed("File or directory not found"),
	},
	{
		re:      regexp.MustCompile(`(?i)error TS\d+|tsc.*error|TypeScript|compilation failed|build failed|\.go:\d+:\d+: |error\[E\d+\]`),
		kind:    ErrorCompilation,
		summary: fixed("Compilation error"),
	},
	{
		re:      regexp.MustCompile(`(?i)Error:|Exception:|Traceback|panic:|at .* \(.*:\d+:\d+\)`),
		kind:    ErrorRuntime,
		summary: fixed("Runtime error"),
	},
}

// Classifier assigns an ErrorKind to raw failure text.
type Classifier struct {
	clock Clock
}

func NewClassifier(clock Clock) *Classifier {
	return &Classifier{clock: clock}
}

// Classify returns false when the text carries no failure signal at all; the
// caller must then treat the failure as not recoverable.
func (c *Classifier) Classify(raw, source string) (ErrorInfo, bool) {
	for _, r := range classifierRules {
		m := r.re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		return ErrorInfo{
			Kind:      r.kind,
			Message:   r.summary(m),
			Source:    source,
			Timestamp: c.clock.Now(),
			Context:   truncate(raw, classifierContextMax),
		}, true
	}

	lower := strings.ToLower(raw)
	if strings.Contains(lower, "error") || strings.Contains(lower, "failed") {
		return ErrorInfo{
			Kind:      ErrorUnknown,
			Message:   truncate(firstLine(raw), unknownMessageMax),
			Source:    source,
			Timestamp: c.clock.Now(),
			Context:   truncate(raw, classifierContextMax),
		}, true
	}

	return ErrorInfo{}, false
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }

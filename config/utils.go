package config

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// PromptVars are the values substituted into the interactive prompt.
type PromptVars struct {
	Counter int
	Now     time.Time
	WorkDir string
}

// FormatPrompt expands %datetime, %date, %time, %counter and %dir (the
// workspace base name) in str. A non-empty result always ends in a space.
func FormatPrompt(str string, vars PromptVars) string {
	if str == "" {
		return ""
	}

	dir := ""
	if vars.WorkDir != "" {
		dir = filepath.Base(vars.WorkDir)
	}

	// %datetime must be replaced before %date
	r := strings.NewReplacer(
		"%datetime", vars.Now.Format("2006-01-02 15:04:05"),
		"%date", vars.Now.Format("2006-01-02"),
		"%time", vars.Now.Format("15:04:05"),
		"%counter", strconv.Itoa(vars.Counter),
		"%dir", dir,
		`\n`, "\n",
	)
	str = r.Replace(str)

	if !strings.HasSuffix(str, " ") {
		str += " "
	}
	return str
}

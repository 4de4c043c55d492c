package config

type Config struct {
	Name            string            `yaml:"name"`
	APIKey          string            `yaml:"api_key"`
	APIKeyFile      string            `yaml:"api_key_file"`
	Model           string            `yaml:"model"`
	MaxTokens       int               `yaml:"max_tokens"`
	Temperature     float64           `yaml:"temperature"`
	URL             string            `yaml:"url"`
	CompletionsPath string            `yaml:"completions_path"`
	AuthHeader      string            `yaml:"auth_header"`
	AuthTokenPrefix string            `yaml:"auth_token_prefix"`
	CommandPrompt   string            `yaml:"command_prompt"`
	SkipTLSVerify   bool              `yaml:"skip_tls_verify"`
	UserAgent       string            `yaml:"user_agent"`
	CustomHeaders   map[string]string `yaml:"custom_headers,omitempty"`
	Agent           AgentConfig       `yaml:"agent"`
}

type AgentConfig struct {
	WorkDir        string `yaml:"work_dir"`
	AutoApprove    bool   `yaml:"auto_approve"`
	DryRun         bool   `yaml:"dry_run"`
	MaxRetries     int    `yaml:"max_retries"`
	CommandTimeout int    `yaml:"command_timeout"` // seconds
	FormatResults  bool   `yaml:"format_results"`

	// Budgets / guardrails (0 = unlimited)
	MaxSteps      int `yaml:"max_steps"`
	MaxWallTime   int `yaml:"max_wall_time"` // seconds
	MaxShellCalls int `yaml:"max_shell_calls"`
	MaxFileOps    int `yaml:"max_file_ops"`

	// Safety/policy
	AllowedActions         []string `yaml:"allowed_actions,omitempty"`
	DeniedShellCommands    []string `yaml:"denied_shell_commands,omitempty"`
	RestrictFilesToWorkDir bool     `yaml:"restrict_files_to_work_dir"`

	// Logging / artifacts
	LogDir string `yaml:"log_dir"`
}

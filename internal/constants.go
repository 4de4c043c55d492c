package internal

const (
	EnvPrefix = "TASKPILOT"

	ConfigHomeEnv = EnvPrefix + "_CONFIG_HOME"
	CacheHomeEnv  = EnvPrefix + "_CACHE_HOME"
	APIKeyEnv     = EnvPrefix + "_API_KEY"

	DefaultConfigDir  = ".taskpilot"
	DefaultCacheDir   = "cache"
	DefaultLogDir     = "agent"
	ConfigFileName    = "config.yaml"
	SlugPostfixLength = 8
)

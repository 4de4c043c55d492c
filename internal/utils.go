package internal

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// GenerateUniqueSlug appends a short random suffix to prefix.
func GenerateUniqueSlug(prefix string) string {
	return prefix + uuid.NewString()[:SlugPostfixLength]
}

// GetConfigHome is $TASKPILOT_CONFIG_HOME, or ~/.taskpilot.
func GetConfigHome() (string, error) {
	return dirFromEnv(ConfigHomeEnv, func() (string, error) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, DefaultConfigDir), nil
	})
}

// GetCacheHome is $TASKPILOT_CACHE_HOME, or the cache directory in the
// config home.
func GetCacheHome() (string, error) {
	return dirFromEnv(CacheHomeEnv, func() (string, error) {
		return underConfigHome(DefaultCacheDir)
	})
}

// GetLogHome is where run transcripts, debug logs and plan artifacts go
// unless agent.log_dir says otherwise.
func GetLogHome() (string, error) {
	cache, err := GetCacheHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(cache, DefaultLogDir), nil
}

func GetConfigFile() (string, error) {
	return underConfigHome(ConfigFileName)
}

func underConfigHome(name string) (string, error) {
	home, err := GetConfigHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, name), nil
}

func dirFromEnv(env string, fallback func() (string, error)) (string, error) {
	if v := os.Getenv(env); v != "" {
		return v, nil
	}
	return fallback()
}

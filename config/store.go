package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	defaultName            = "openai"
	defaultModel           = "gpt-4o-mini"
	defaultMaxTokens       = 4096
	defaultTemperature     = 0.3
	defaultURL             = "https://api.openai.com"
	defaultCompletionsPath = "/v1/chat/completions"
	defaultAuthHeader      = "Authorization"
	defaultAuthTokenPrefix = "Bearer "
	defaultCommandPrompt   = "[%dir] taskpilot>"
	defaultUserAgent       = "taskpilot"
	defaultMaxRetries      = 3
	defaultCommandTimeout  = 30
)

//go:generate mockgen -destination=storemocks_test.go -package=config_test github.com/kardolus/taskpilot/config ConfigStore
type ConfigStore interface {
	Read() (Config, error)
	ReadDefaults() Config
	Write(Config) error
}

// Ensure FileIO implements ConfigStore interface
var _ ConfigStore = &FileIO{}

type FileIO struct {
	configFilePath string
}

func NewFileIO(configFilePath string) *FileIO {
	return &FileIO{configFilePath: configFilePath}
}

func (f *FileIO) Path() string {
	return f.configFilePath
}

// Read parses the config file over the defaults, so keys the file omits keep
// their default value. A missing file yields fs.ErrNotExist.
func (f *FileIO) Read() (Config, error) {
	return parseFile(f.configFilePath, f.ReadDefaults())
}

func (f *FileIO) ReadDefaults() Config {
	return Config{
		Name:            defaultName,
		Model:           defaultModel,
		MaxTokens:       defaultMaxTokens,
		Temperature:     defaultTemperature,
		URL:             defaultURL,
		CompletionsPath: defaultCompletionsPath,
		AuthHeader:      defaultAuthHeader,
		AuthTokenPrefix: defaultAuthTokenPrefix,
		CommandPrompt:   defaultCommandPrompt,
		UserAgent:       defaultUserAgent,
		Agent: AgentConfig{
			MaxRetries:     defaultMaxRetries,
			CommandTimeout: defaultCommandTimeout,
			FormatResults:  true,
		},
	}
}

// Write replaces the config file atomically while holding an exclusive lock
// next to it, so concurrent writers never interleave.
func (f *FileIO) Write(config Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.configFilePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	lock := newFileLock(f.configFilePath)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	tmp, err := os.CreateTemp(dir, ".config-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp config: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return fmt.Errorf("chmod temp config: %w", err)
	}

	return os.Rename(tmp.Name(), f.configFilePath)
}

func parseFile(fileName string, result Config) (Config, error) {
	buf, err := os.ReadFile(fileName)
	if err != nil {
		return Config{}, err
	}

	if err := yaml.Unmarshal(buf, &result); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", fileName, err)
	}

	return result, nil
}

// IsNotExist reports whether err means the config file is simply absent.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kardolus/taskpilot/internal"
)

type Manager struct {
	configStore ConfigStore
	Config      Config
}

// NewManager starts from the defaults and layers the config file on top. A
// missing file is not an error; an unreadable one is.
func NewManager(cs ConfigStore) (*Manager, error) {
	configuration := cs.ReadDefaults()

	userConfig, err := cs.Read()
	switch {
	case err == nil:
		configuration = replaceByConfigFile(configuration, userConfig)
	case IsNotExist(err):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	return &Manager{configStore: cs, Config: configuration}, nil
}

func (c *Manager) WithEnvironment() *Manager {
	c.Config = replaceByEnvironment(c.Config)
	return c
}

func (c *Manager) APIKeyEnvVarName() string {
	return internal.APIKeyEnv
}

// ResolveAPIKey returns the inline key, or the contents of api_key_file.
func (c *Manager) ResolveAPIKey() (string, error) {
	if key := strings.TrimSpace(c.Config.APIKey); key != "" {
		return key, nil
	}
	if c.Config.APIKeyFile != "" {
		return ReadAPIKeyFile(c.Config.APIKeyFile)
	}
	return "", errors.New("missing api key: set api_key, api_key_file or " + c.APIKeyEnvVarName())
}

// ShowConfig serializes the current configuration to YAML with the API key
// masked.
func (c *Manager) ShowConfig() (string, error) {
	masked := c.Config
	if masked.APIKey != "" {
		masked.APIKey = "********"
	}

	data, err := yaml.Marshal(masked)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// WriteDefaults persists the default configuration.
func (c *Manager) WriteDefaults() error {
	return c.configStore.Write(c.configStore.ReadDefaults())
}

func replaceByConfigFile(defaultConfig, userConfig Config) Config {
	overlay(reflect.ValueOf(&defaultConfig).Elem(), reflect.ValueOf(userConfig))
	return defaultConfig
}

func overlay(dst, src reflect.Value) {
	for i := 0; i < dst.NumField(); i++ {
		defaultField := dst.Field(i)
		userField := src.Field(i)

		switch defaultField.Kind() {
		case reflect.String:
			if userStr := userField.String(); userStr != "" {
				defaultField.SetString(userStr)
			}
		case reflect.Int:
			if userInt := userField.Int(); userInt != 0 {
				defaultField.SetInt(userInt)
			}
		case reflect.Bool:
			defaultField.SetBool(userField.Bool())
		case reflect.Float64:
			if userFloat := userField.Float(); userFloat != 0.0 {
				defaultField.SetFloat(userFloat)
			}
		case reflect.Slice, reflect.Map:
			if userField.Len() > 0 {
				defaultField.Set(userField)
			}
		case reflect.Struct:
			overlay(defaultField, userField)
		}
	}
}

func replaceByEnvironment(configuration Config) Config {
	fromEnv(reflect.ValueOf(&configuration).Elem(), internal.EnvPrefix+"_")
	return configuration
}

// fromEnv sets each field from PREFIX_<YAML_TAG>; nested structs extend the
// prefix with their own tag. Unparsable values are ignored.
func fromEnv(v reflect.Value, prefix string) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ",")
		if tag == "" || tag == "name" {
			continue
		}
		key := prefix + strings.ToUpper(tag)
		field := v.Field(i)

		if field.Kind() == reflect.Struct {
			fromEnv(field, key+"_")
			continue
		}

		value, ok := os.LookupEnv(key)
		if !ok || value == "" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(value)
		case reflect.Int:
			if intValue, err := strconv.Atoi(value); err == nil {
				field.SetInt(int64(intValue))
			}
		case reflect.Bool:
			if boolValue, err := strconv.ParseBool(value); err == nil {
				field.SetBool(boolValue)
			}
		case reflect.Float64:
			if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
				field.SetFloat(floatValue)
			}
		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				field.Set(reflect.ValueOf(splitList(value)))
			}
		}
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

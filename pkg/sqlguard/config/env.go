package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/sllt/sqlguard/pkg/sqlguard/logging"
)

const (
	defaultFileName         = "/.env"
	defaultOverrideFileName = "/.local.env"
	yamlFileName            = "/config.yaml"
)

// EnvLoader resolves keys from the process environment first and from config.yaml second.
type EnvLoader struct {
	logger logging.Logger
	yaml   Config
}

// NewEnvFile loads <folder>/.env and then <folder>/.<APP_ENV>.env (or .local.env when APP_ENV is unset)
// into the environment. Variables already set in the process environment are never overwritten.
// <folder>/config.yaml, if present, provides values for keys missing from the environment.
func NewEnvFile(configFolder string, logger logging.Logger) Config {
	e := &EnvLoader{logger: logger}
	e.read(configFolder)

	return e
}

func (e *EnvLoader) read(folder string) {
	var (
		defaultFile  = folder + defaultFileName
		overrideFile = folder + defaultOverrideFileName
		env          = e.Get("APP_ENV")
	)

	initialEnv := currentEnv()

	if err := godotenv.Load(defaultFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			e.logger.Fatalf("Failed to load config from file: %v, Err: %v", defaultFile, err)
		}

		e.logger.Warnf("Failed to load config from file: %v, Err: %v", defaultFile, err)
	} else {
		e.logger.Infof("Loaded config from file: %v", defaultFile)
	}

	if env != "" {
		overrideFile = fmt.Sprintf("%s/.%s.env", folder, env)
	}

	if err := godotenv.Overload(overrideFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			e.logger.Fatalf("Failed to load config from file: %v, Err: %v", overrideFile, err)
		}
	} else {
		e.logger.Infof("Loaded config from file: %v", overrideFile)
	}

	// the real environment wins over anything read from files
	for k, v := range initialEnv {
		_ = os.Setenv(k, v)
	}

	e.yaml = e.readYAML(folder + yamlFileName)
}

func (e *EnvLoader) readYAML(path string) Config {
	c, err := NewYAMLFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			e.logger.Errorf("Failed to parse config from file: %v, Err: %v", path, err)
		}

		return nil
	}

	e.logger.Infof("Loaded config from file: %v", path)

	return c
}

func (e *EnvLoader) Get(key string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	if e.yaml == nil {
		return ""
	}

	return e.yaml.Get(key)
}

func (e *EnvLoader) GetOrDefault(key, defaultValue string) string {
	if v := e.Get(key); v != "" {
		return v
	}

	return defaultValue
}

func currentEnv() map[string]string {
	env := make(map[string]string)

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}

	return env
}

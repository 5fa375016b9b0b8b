package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type yamlConfig struct {
	values map[string]string
}

// NewYAMLFile reads a YAML document whose nested keys are flattened into the environment naming
// scheme, so db.host is looked up as DB_HOST.
func NewYAMLFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	values, err := FlattenYAML(data)
	if err != nil {
		return nil, err
	}

	return &yamlConfig{values: values}, nil
}

func (y *yamlConfig) Get(key string) string {
	return y.values[key]
}

func (y *yamlConfig) GetOrDefault(key, defaultValue string) string {
	if v := y.values[key]; v != "" {
		return v
	}

	return defaultValue
}

// FlattenYAML turns nested YAML mappings into upper-case, underscore-joined keys.
func FlattenYAML(data []byte) (map[string]string, error) {
	var root map[string]any

	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	out := make(map[string]string)
	flatten("", root, out)

	return out, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := strings.ToUpper(k)
		if prefix != "" {
			key = prefix + "_" + key
		}

		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case nil:
			out[key] = ""
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// Package config reads sqlguard settings from the environment, .env files and an optional YAML file.
package config

// Config is a read-only key/value view of the settings.
type Config interface {
	Get(key string) string
	GetOrDefault(key, defaultValue string) string
}

type mockConfig struct {
	conf map[string]string
}

// NewMockConfig returns a Config backed by the given map, for tests.
func NewMockConfig(configMap map[string]string) Config {
	return &mockConfig{conf: configMap}
}

func (m *mockConfig) Get(key string) string {
	return m.conf[key]
}

func (m *mockConfig) GetOrDefault(key, defaultValue string) string {
	if v, ok := m.conf[key]; ok && v != "" {
		return v
	}

	return defaultValue
}

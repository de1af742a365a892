package config

import (
	"os"
	"strings"
)

// Runtime environments detected from the environment snapshot.
const (
	EnvProduction  = "production"
	EnvTest        = "test"
	EnvDevelopment = "development"
)

// Log levels accepted for environment.logLevel.
var logLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

const defaultLogLevel = "info"

// EnvSnapshot captures the ambient process environment as a plain map.
// Builder calls take a snapshot explicitly so the rest of the call graph
// never reads globals.
func EnvSnapshot() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if i := strings.IndexByte(kv, '='); i > 0 {
			env[kv[:i]] = kv[i+1:]
		}
	}
	return env
}

// DetectEnvironment resolves the runtime environment from a snapshot.
// TASKWEAVE_ENV wins over GO_ENV; a truthy CI flag means test when neither
// names an environment; anything unrecognized is unset.
func DetectEnvironment(env map[string]string) string {
	for _, key := range []string{"TASKWEAVE_ENV", "GO_ENV"} {
		switch strings.ToLower(env[key]) {
		case "production", "prod":
			return EnvProduction
		case "test":
			return EnvTest
		case "development", "dev":
			return EnvDevelopment
		}
	}
	if isTruthy(env["CI"]) {
		return EnvTest
	}
	return ""
}

func isTruthy(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// EnvironmentOverrides is the explicit override layer for environment
// settings, sitting between the environment variables and the config file
// in priority.
type EnvironmentOverrides struct {
	LogLevel    string
	ColorOutput *bool
	Timezone    string
	Locale      string
}

// resolveLogLevel applies the log level priority chain:
// LOG_LEVEL env var > explicit override > config value > "info".
// Unrecognized values at one level fall through to the next.
func resolveLogLevel(env map[string]string, overrides *EnvironmentOverrides, tree Tree) string {
	if lvl := normalizeLogLevel(env["LOG_LEVEL"]); lvl != "" {
		return lvl
	}
	if overrides != nil {
		if lvl := normalizeLogLevel(overrides.LogLevel); lvl != "" {
			return lvl
		}
	}
	if val, ok := GetPath(tree, "environment.logLevel"); ok {
		if s, ok := val.(string); ok {
			if lvl := normalizeLogLevel(s); lvl != "" {
				return lvl
			}
		}
	}
	return defaultLogLevel
}

func normalizeLogLevel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if logLevels[s] {
		return s
	}
	return ""
}

// resolveEnvironmentSection assembles the environment section from the
// snapshot, the override layer, and the migrated tree.
func resolveEnvironmentSection(env map[string]string, overrides *EnvironmentOverrides, tree Tree) EnvironmentSection {
	section := EnvironmentSection{
		LogLevel:    resolveLogLevel(env, overrides, tree),
		ColorOutput: defaultColorOutput,
		Timezone:    defaultTimezone,
		Locale:      defaultLocale,
		Env:         DetectEnvironment(env),
	}

	if val, ok := GetPath(tree, "environment.colorOutput"); ok {
		if b, ok := val.(bool); ok {
			section.ColorOutput = b
		}
	}
	if val, ok := GetPath(tree, "environment.timezone"); ok {
		if s, ok := val.(string); ok && s != "" {
			section.Timezone = s
		}
	}
	if val, ok := GetPath(tree, "environment.locale"); ok {
		if s, ok := val.(string); ok && s != "" {
			section.Locale = s
		}
	}

	if overrides != nil {
		if overrides.ColorOutput != nil {
			section.ColorOutput = *overrides.ColorOutput
		}
		if overrides.Timezone != "" {
			section.Timezone = overrides.Timezone
		}
		if overrides.Locale != "" {
			section.Locale = overrides.Locale
		}
	}

	return section
}

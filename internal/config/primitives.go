package config

import (
	"os"
	"regexp"
	"strings"
)

// Validated primitives. Each constructor is total: any input, including nil
// and non-string values from untyped YAML trees, yields either a valid value
// object or a *ValidationError. No value of these types can exist in an
// invalid state.

const (
	maxPathLength   = 1000
	maxPrefixLength = 100

	// DefaultProfileName is the profile selected when none is given.
	DefaultProfileName = "default"
)

var prefixCharset = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ConfigFilePath is a validated, non-empty path to a configuration file.
// No existence check is performed here; existence is the loader's concern.
type ConfigFilePath struct {
	value string
}

// NewConfigFilePath validates input and wraps the exact string. Leading or
// trailing whitespace is rejected rather than trimmed.
func NewConfigFilePath(input any) (ConfigFilePath, error) {
	s, ok := input.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return ConfigFilePath{}, &ValidationError{
			Kind: KindEmptyPath, Field: "config file path", Input: input,
			Reason: "path must be a non-empty string",
		}
	}
	if s != strings.TrimSpace(s) {
		return ConfigFilePath{}, &ValidationError{
			Kind: KindInvalidFormat, Field: "config file path", Input: s,
			Reason: "path has leading or trailing whitespace",
		}
	}
	if len(s) > maxPathLength {
		return ConfigFilePath{}, &ValidationError{
			Kind: KindPathTooLong, Field: "config file path", Input: s,
			Reason: "path exceeds 1000 characters",
		}
	}
	return ConfigFilePath{value: s}, nil
}

func (p ConfigFilePath) String() string { return p.value }

// ConfigPrefix is an optional, validated profile prefix. Absent input
// (nil or the empty string) is a valid "no prefix" state, not an error.
type ConfigPrefix struct {
	value string
}

// NewConfigPrefix validates input into a prefix.
func NewConfigPrefix(input any) (ConfigPrefix, error) {
	if input == nil {
		return ConfigPrefix{}, nil
	}
	s, ok := input.(string)
	if !ok {
		return ConfigPrefix{}, &ValidationError{
			Kind: KindInvalidType, Field: "config prefix", Input: input,
			Reason: "prefix must be a string",
		}
	}
	if s == "" {
		return ConfigPrefix{}, nil
	}
	if s != strings.TrimSpace(s) {
		return ConfigPrefix{}, &ValidationError{
			Kind: KindInvalidFormat, Field: "config prefix", Input: s,
			Reason: "prefix has leading or trailing whitespace",
		}
	}
	if !prefixCharset.MatchString(s) {
		return ConfigPrefix{}, &ValidationError{
			Kind: KindInvalidCharacters, Field: "config prefix", Input: s,
			Reason: "prefix may only contain letters, digits, underscore, and hyphen",
		}
	}
	if len(s) > maxPrefixLength {
		return ConfigPrefix{}, &ValidationError{
			Kind: KindPrefixTooLong, Field: "config prefix", Input: s,
			Reason: "prefix exceeds 100 characters",
		}
	}
	return ConfigPrefix{value: s}, nil
}

func (p ConfigPrefix) String() string { return p.value }

// IsEmpty reports the "no prefix" state.
func (p ConfigPrefix) IsEmpty() bool { return p.value == "" }

// Apply prepends the prefix to a base file name: "production" + "app.yml"
// yields "production-app.yml". An empty prefix returns base unchanged.
func (p ConfigPrefix) Apply(base string) string {
	if p.value == "" {
		return base
	}
	return p.value + "-" + base
}

// WorkingDirectory is a validated working directory path. Existence on disk
// is checked by UnifiedConfig.Validate, not here.
type WorkingDirectory struct {
	value string
}

// NewWorkingDirectory validates input into a working directory. An unset
// directory is expressed by calling DefaultWorkingDirectory instead; here
// nil, non-string, and empty input are all rejected.
func NewWorkingDirectory(input any) (WorkingDirectory, error) {
	s, ok := input.(string)
	if !ok || s == "" {
		return WorkingDirectory{}, &ValidationError{
			Kind: KindInvalidPath, Field: "working directory", Input: input,
			Reason: "working directory must be a non-empty string",
		}
	}
	if strings.TrimSpace(s) == "" {
		return WorkingDirectory{}, &ValidationError{
			Kind: KindEmptyPath, Field: "working directory", Input: s,
			Reason: "working directory is whitespace only",
		}
	}
	return WorkingDirectory{value: s}, nil
}

// DefaultWorkingDirectory resolves the process's current directory.
func DefaultWorkingDirectory() (WorkingDirectory, error) {
	dir, err := os.Getwd()
	if err != nil {
		return WorkingDirectory{}, &ValidationError{
			Kind: KindInvalidPath, Field: "working directory", Input: nil,
			Reason: "cannot resolve current directory: " + err.Error(),
		}
	}
	return WorkingDirectory{value: dir}, nil
}

func (w WorkingDirectory) String() string { return w.value }

// ProfileName is a named configuration variant. The zero-safe constructor
// silently defaults; the strict constructor reports malformed input instead,
// for call sites that must distinguish "explicitly default" from "garbage".
type ProfileName struct {
	value string
}

// NewProfileName resolves any input to a profile name. Nil, non-string,
// empty, and whitespace-only input all become the default profile; other
// strings are trimmed.
func NewProfileName(input any) ProfileName {
	s, ok := input.(string)
	if !ok {
		return ProfileName{value: DefaultProfileName}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return ProfileName{value: DefaultProfileName}
	}
	return ProfileName{value: s}
}

// NewProfileNameStrict performs the same resolution but returns an
// InvalidInput error where NewProfileName would silently default.
func NewProfileNameStrict(input any) (ProfileName, error) {
	s, ok := input.(string)
	if !ok {
		return ProfileName{}, &ValidationError{
			Kind: KindInvalidInput, Field: "profile name", Input: input,
			Reason: "profile name must be a string",
		}
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ProfileName{}, &ValidationError{
			Kind: KindInvalidInput, Field: "profile name", Input: s,
			Reason: "profile name is empty",
		}
	}
	return ProfileName{value: trimmed}, nil
}

func (n ProfileName) String() string { return n.value }

// IsDefault reports whether this is the default profile.
func (n ProfileName) IsDefault() bool { return n.value == DefaultProfileName }

// FilePrefix returns the file-name prefix for this profile: "production-".
func (n ProfileName) FilePrefix() string { return n.value + "-" }

// ConfigFileName derives a profile-prefixed file name: "production-app.yml".
func (n ProfileName) ConfigFileName(base string) string { return n.value + "-" + base }

// Prefix returns the ConfigPrefix used for provider lookups. The default
// profile maps to the empty prefix so it loads the unprefixed base files.
// A profile name that cannot serve as a prefix is a validation error.
func (n ProfileName) Prefix() (ConfigPrefix, error) {
	if n.IsDefault() {
		return ConfigPrefix{}, nil
	}
	return NewConfigPrefix(n.value)
}

package config

import (
	"fmt"
	"strings"
)

// ValidationKind classifies primitive validation failures.
type ValidationKind string

const (
	KindEmptyPath         ValidationKind = "EmptyPath"
	KindInvalidFormat     ValidationKind = "InvalidFormat"
	KindPathTooLong       ValidationKind = "PathTooLong"
	KindInvalidType       ValidationKind = "InvalidType"
	KindInvalidCharacters ValidationKind = "InvalidCharacters"
	KindPrefixTooLong     ValidationKind = "PrefixTooLong"
	KindInvalidPath       ValidationKind = "InvalidPath"
	KindInvalidInput      ValidationKind = "InvalidInput"
)

// ValidationError reports a primitive construction failure. Input preserves
// the offending value verbatim as evidence; it is never trimmed or repaired.
type ValidationError struct {
	Kind   ValidationKind
	Field  string
	Input  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid %s (%s): %v", e.Kind, e.Field, e.Reason, e.Input)
}

// LoadPhase identifies the stage at which a configuration load failed.
// Each phase maps to exactly one failure kind so errors can be attributed
// without parsing messages.
type LoadPhase string

const (
	PhaseFileRead LoadPhase = "FileReadError"
	PhaseNotFound LoadPhase = "FileNotFound"
	PhaseParse    LoadPhase = "ParseError"
	PhaseStruct   LoadPhase = "ValidationError"
	PhaseImport   LoadPhase = "ImportError"
	PhaseCreate   LoadPhase = "CreateError"
	PhaseLoad     LoadPhase = "LoadError"
	PhaseRetrieve LoadPhase = "ConfigError"
	PhaseUnknown  LoadPhase = "UnexpectedError"
)

// LoadError reports a raw configuration load failure, tagged with the phase
// that produced it.
type LoadError struct {
	Phase  LoadPhase
	Path   string
	Prefix string
	Err    error
}

func (e *LoadError) Error() string {
	var at string
	switch {
	case e.Path != "":
		at = " " + e.Path
	case e.Prefix != "":
		at = " prefix " + e.Prefix
	}
	if e.Err != nil {
		return fmt.Sprintf("%s:%s: %v", e.Phase, at, e.Err)
	}
	return fmt.Sprintf("%s:%s", e.Phase, at)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ConfigNotFoundError is the actionable variant of a load failure: the
// provider had nothing for this profile. Expected lists the file names
// that would have satisfied the lookup.
type ConfigNotFoundError struct {
	Prefix   string
	Expected []string
}

func (e *ConfigNotFoundError) Error() string {
	profile := e.Prefix
	if profile == "" {
		profile = "default"
	}
	return fmt.Sprintf("no configuration found for profile %q: create one of %s",
		profile, strings.Join(e.Expected, ", "))
}

// notFoundIndicators are substrings of underlying provider errors that mean
// "nothing configured for this profile" rather than a genuine failure.
var notFoundIndicators = []string{
	"not found",
	"no such file",
	"does not exist",
	"cannot find",
	"404",
}

// isNotFound reports whether err looks like a missing-config condition.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, ind := range notFoundIndicators {
		if strings.Contains(msg, ind) {
			return true
		}
	}
	return false
}

// ConfigLoadError wraps a lower-stage failure that aborted a Create call.
// Stage names the builder step that failed ("load", "patterns").
type ConfigLoadError struct {
	Stage string
	Err   error
}

func (e *ConfigLoadError) Error() string {
	return fmt.Sprintf("ConfigLoadError: %s: %v", e.Stage, e.Err)
}

func (e *ConfigLoadError) Unwrap() error { return e.Err }

// PathResolutionError reports a path that could not be resolved against the
// working directory.
type PathResolutionError struct {
	Path string
	Err  error
}

func (e *PathResolutionError) Error() string {
	return fmt.Sprintf("PathResolutionError: %s: %v", e.Path, e.Err)
}

func (e *PathResolutionError) Unwrap() error { return e.Err }

// ProfileNotFoundError reports a SwitchProfile target that is not in the
// available set. Available is carried so callers can render alternatives
// without re-scanning.
type ProfileNotFoundError struct {
	Profile   string
	Available []string
}

func (e *ProfileNotFoundError) Error() string {
	return fmt.Sprintf("ProfileNotFound: %q (available: %s)",
		e.Profile, strings.Join(e.Available, ", "))
}

// ValidateError reports the first violation found by UnifiedConfig.Validate.
type ValidateError struct {
	Check  string
	Reason string
}

func (e *ValidateError) Error() string {
	return fmt.Sprintf("ValidationError: %s: %s", e.Check, e.Reason)
}

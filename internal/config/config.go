// Package config resolves, validates, and merges layered YAML configuration
// for taskweave into one immutable canonical configuration, and derives the
// directive/layer pattern validators from it.
//
// The package is organized as a pipeline: validated primitives guard every
// string input, loaders produce untyped trees from files or an injected
// provider, the migrator rewrites legacy key shapes, the merger combines
// trees with later-wins precedence, the pattern provider compiles and
// caches validators, and the unified builder assembles the frozen result.
package config

// ProfileSection identifies the configuration variant in effect.
type ProfileSection struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

// PathsSection holds fully resolved filesystem paths. After a successful
// build every path is absolute or explicitly overridden verbatim.
type PathsSection struct {
	PromptBaseDir string `json:"promptBaseDir"`
	SchemaBaseDir string `json:"schemaBaseDir"`
	OutputBaseDir string `json:"outputBaseDir"`
	WorkingDir    string `json:"workingDir"`
	ResourceDir   string `json:"resourceDir"`
}

// PatternsSection holds the configured pattern source strings. Compiled
// matchers live in the PatternProvider, not here.
type PatternsSection struct {
	Directive string `json:"directive"`
	Layer     string `json:"layer"`
}

// FeatureSettings are boolean application toggles.
type FeatureSettings struct {
	ExtendedThinking bool `json:"extendedThinking"`
	StrictValidation bool `json:"strictValidation"`
}

// LimitSettings are numeric application bounds.
type LimitSettings struct {
	MaxFileSize      int64 `json:"maxFileSize"`
	MaxPatternLength int   `json:"maxPatternLength"`
}

// AppSection groups features and limits.
type AppSection struct {
	Features FeatureSettings `json:"features"`
	Limits   LimitSettings   `json:"limits"`
}

// EnvironmentSection holds resolved environment settings.
type EnvironmentSection struct {
	LogLevel    string `json:"logLevel"`
	ColorOutput bool   `json:"colorOutput"`
	Timezone    string `json:"timezone"`
	Locale      string `json:"locale"`
	Env         string `json:"env,omitempty"`
}

// CanonicalConfig is the central artifact: six named sections plus the raw
// unmigrated tree for backward-compatible passthrough. Instances returned
// by UnifiedConfig accessors are copies; the built configuration itself is
// never mutated.
type CanonicalConfig struct {
	Profile     ProfileSection     `json:"profile"`
	Paths       PathsSection       `json:"paths"`
	Patterns    PatternsSection    `json:"patterns"`
	App         AppSection         `json:"app"`
	User        Tree               `json:"user,omitempty"`
	Environment EnvironmentSection `json:"environment"`
	Raw         Tree               `json:"raw,omitempty"`
}

// clone returns a deep copy, so callers can hold and mutate the result
// without touching the built configuration.
func (c CanonicalConfig) clone() CanonicalConfig {
	out := c
	out.User = CloneTree(c.User)
	out.Raw = CloneTree(c.Raw)
	return out
}

// tree renders the canonical configuration as an untyped tree for dot-path
// access and export.
func (c CanonicalConfig) tree() Tree {
	t := Tree{
		"profile": Tree{
			"name":   c.Profile.Name,
			"source": c.Profile.Source,
		},
		"paths": Tree{
			"promptBaseDir": c.Paths.PromptBaseDir,
			"schemaBaseDir": c.Paths.SchemaBaseDir,
			"outputBaseDir": c.Paths.OutputBaseDir,
			"workingDir":    c.Paths.WorkingDir,
			"resourceDir":   c.Paths.ResourceDir,
		},
		"patterns": Tree{
			"directive": c.Patterns.Directive,
			"layer":     c.Patterns.Layer,
		},
		"app": Tree{
			"features": Tree{
				"extendedThinking": c.App.Features.ExtendedThinking,
				"strictValidation": c.App.Features.StrictValidation,
			},
			"limits": Tree{
				"maxFileSize":      c.App.Limits.MaxFileSize,
				"maxPatternLength": c.App.Limits.MaxPatternLength,
			},
		},
		"environment": Tree{
			"logLevel":    c.Environment.LogLevel,
			"colorOutput": c.Environment.ColorOutput,
			"timezone":    c.Environment.Timezone,
			"locale":      c.Environment.Locale,
			"env":         c.Environment.Env,
		},
	}
	if c.User != nil {
		t["user"] = CloneTree(c.User)
	}
	if c.Raw != nil {
		t["raw"] = CloneTree(c.Raw)
	}
	return t
}

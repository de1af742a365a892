package config

// Fixed defaults for every canonical field not supplied by any source.
const (
	defaultPromptBaseDir = "prompts"
	defaultSchemaBaseDir = "schemas"
	defaultOutputBaseDir = "output"

	// ResourceDirName is the per-project directory holding configuration,
	// profiles, and packaged resources.
	ResourceDirName = ".taskweave"

	// ProfilesDirName is the subdirectory scanned for profile configs.
	ProfilesDirName = "profiles"

	defaultMaxFileSize      = int64(10 * 1024 * 1024)
	defaultMaxPatternLength = 500

	defaultColorOutput = true
	defaultTimezone    = "UTC"
	defaultLocale      = "en-US"
)

// defaultFeatures returns the feature toggles used when the tree supplies
// nothing.
func defaultFeatures() FeatureSettings {
	return FeatureSettings{
		ExtendedThinking: false,
		StrictValidation: true,
	}
}

// defaultLimits returns the limit settings used when the tree supplies
// nothing.
func defaultLimits() LimitSettings {
	return LimitSettings{
		MaxFileSize:      defaultMaxFileSize,
		MaxPatternLength: defaultMaxPatternLength,
	}
}

// resolveAppSection derives features and limits from a migrated tree,
// falling back to fixed defaults field by field.
func resolveAppSection(tree Tree) AppSection {
	app := AppSection{
		Features: defaultFeatures(),
		Limits:   defaultLimits(),
	}

	if val, ok := GetPath(tree, "features.extendedThinking"); ok {
		if b, ok := val.(bool); ok {
			app.Features.ExtendedThinking = b
		}
	}
	if val, ok := GetPath(tree, "features.strictValidation"); ok {
		if b, ok := val.(bool); ok {
			app.Features.StrictValidation = b
		}
	}
	if val, ok := GetPath(tree, "limits.maxFileSize"); ok {
		if n, ok := asInt64(val); ok {
			app.Limits.MaxFileSize = n
		}
	}
	if val, ok := GetPath(tree, "limits.maxPatternLength"); ok {
		if n, ok := asInt64(val); ok {
			app.Limits.MaxPatternLength = int(n)
		}
	}

	return app
}

// asInt64 widens YAML's numeric decodings to int64.
func asInt64(val any) (int64, bool) {
	switch n := val.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

// resolveUserSection extracts the user customization passthrough, nil when
// absent or not a mapping.
func resolveUserSection(tree Tree) Tree {
	val, ok := GetPath(tree, "user")
	if !ok {
		return nil
	}
	m, ok := val.(map[string]any)
	if !ok {
		return nil
	}
	return CloneTree(m)
}

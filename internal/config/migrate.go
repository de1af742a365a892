package config

import "fmt"

// legacyKeys maps flat legacy keys to their canonical dotted locations.
// app_prompt.base_dir and friends predate the nested canonical shape and
// are still accepted on input.
var legacyKeys = map[string]string{
	"app_prompt.base_dir": "paths.promptBaseDir",
	"app_schema.base_dir": "paths.schemaBaseDir",
	"app_output.base_dir": "paths.outputBaseDir",
	"working_dir":         "paths.workingDir",
	"extended_thinking":   "features.extendedThinking",
	"strict_validation":   "features.strictValidation",
	"max_file_size":       "limits.maxFileSize",
	"log_level":           "environment.logLevel",
	"color_output":        "environment.colorOutput",
	"timezone":            "environment.timezone",
	"locale":              "environment.locale",
	"directive_pattern":   "patterns.directive",
	"layer_pattern":       "patterns.layer",
	"user_variables":      "user",
}

// legacyRoots are the top-level keys consumed by legacy mappings. They are
// removed from the migrated tree once rewritten; everything else passes
// through verbatim for forward compatibility.
var legacyRoots = map[string]bool{
	"app_prompt":        true,
	"app_schema":        true,
	"app_output":        true,
	"working_dir":       true,
	"extended_thinking": true,
	"strict_validation": true,
	"max_file_size":     true,
	"log_level":         true,
	"color_output":      true,
	"timezone":          true,
	"locale":            true,
	"directive_pattern": true,
	"layer_pattern":     true,
	"user_variables":    true,
}

// migrationDefaults are canonical fields guaranteed present after migration
// when not derivable from either shape.
var migrationDefaults = map[string]any{
	"features.extendedThinking": false,
	"features.strictValidation": true,
	"environment.logLevel":      "info",
}

// MigrateConfig rewrites legacy flat keys into the canonical nested shape.
// Already-canonical keys win over their legacy equivalents, unrecognized
// keys are preserved verbatim, and fixed defaults fill any canonical field
// neither shape supplies. The input is never mutated.
func MigrateConfig(tree Tree) Tree {
	out := make(Tree)

	// Pass through everything that is not a legacy root.
	for key, val := range tree {
		if legacyRoots[key] {
			continue
		}
		out[key] = cloneValue(val)
	}

	// Rewrite legacy keys into canonical locations, unless the canonical
	// location is already populated.
	for legacy, canonical := range legacyKeys {
		val, ok := GetPath(tree, legacy)
		if !ok {
			continue
		}
		if HasPath(out, canonical) {
			continue
		}
		SetPath(out, canonical, cloneValue(val))
	}

	for path, def := range migrationDefaults {
		if !HasPath(out, path) {
			SetPath(out, path, def)
		}
	}

	return out
}

// ValidateMigration reports human-readable gaps in a migrated tree. An empty
// result means the tree is acceptable to proceed with; gaps are advisory,
// not fatal.
func ValidateMigration(tree Tree) []string {
	var gaps []string
	if !HasPath(tree, "paths") {
		gaps = append(gaps, "missing paths section: prompt, schema, and output directories will use defaults")
	}
	if !HasPath(tree, "patterns.directive") && !HasPath(tree, "patterns.layer") {
		gaps = append(gaps, "missing pattern configuration: directive and layer validation is unavailable")
	} else {
		if !HasPath(tree, "patterns.directive") {
			gaps = append(gaps, "missing patterns.directive: directive validation is unavailable")
		}
		if !HasPath(tree, "patterns.layer") {
			gaps = append(gaps, "missing patterns.layer: layer validation is unavailable")
		}
	}
	return gaps
}

// describeGaps renders a gap list for log output.
func describeGaps(gaps []string) string {
	if len(gaps) == 0 {
		return "none"
	}
	return fmt.Sprintf("%d gap(s): %s", len(gaps), gaps[0])
}

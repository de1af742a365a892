package config

import (
	"regexp"
	"sync"
)

// PatternKind names the two classification axes validated by configured
// regular expressions.
type PatternKind string

const (
	PatternDirective PatternKind = "directive"
	PatternLayer     PatternKind = "layer"
)

// patternLocations maps each kind to its canonical tree location followed
// by accepted legacy fallbacks.
var patternLocations = map[PatternKind][]string{
	PatternDirective: {"patterns.directive", "directive_pattern"},
	PatternLayer:     {"patterns.layer", "layer_pattern"},
}

// Pattern is a compiled-pattern handle: the configured source string plus a
// reusable matcher. Compilation is pure, so equal sources always produce
// equivalent matchers.
type Pattern struct {
	kind   PatternKind
	source string
	re     *regexp.Regexp
}

// Kind returns the classification axis this pattern validates.
func (p *Pattern) Kind() PatternKind { return p.kind }

// Source returns the configured pattern string.
func (p *Pattern) Source() string { return p.source }

// MatchString reports whether the value matches the pattern.
func (p *Pattern) MatchString(s string) bool { return p.re.MatchString(s) }

// PatternProvider serves compiled validators derived from a raw config
// tree. Lookups never return an error: "no valid pattern configured" is a
// legitimate state expressed as nil. Compiled handles are cached per kind
// until ClearCache.
//
// The cache is instance-scoped. An instance must not be shared across
// profiles without an explicit ClearCache between them; callers needing
// isolation construct one provider per profile.
type PatternProvider struct {
	mu    sync.Mutex
	tree  Tree
	cache map[PatternKind]*Pattern
}

// NewPatternProvider creates a provider for the given prefix and working
// directory, loading the raw config tree through the configuration
// provider. Creation is the only phase that can fail; lookups afterwards
// are synchronous and error-free.
func NewPatternProvider(provider Provider, prefixInput, workDirInput any) (*PatternProvider, error) {
	tree, err := LoadRaw(provider, prefixInput, workDirInput)
	if err != nil {
		return nil, err
	}
	return NewPatternProviderFromTree(tree), nil
}

// NewPatternProviderFromTree creates a provider over an already-loaded tree.
func NewPatternProviderFromTree(tree Tree) *PatternProvider {
	return &PatternProvider{
		tree:  tree,
		cache: make(map[PatternKind]*Pattern),
	}
}

// DirectivePattern returns the compiled directive pattern, or nil when none
// is configured or the configured string does not compile.
func (p *PatternProvider) DirectivePattern() *Pattern {
	return p.lookup(PatternDirective)
}

// LayerTypePattern returns the compiled layer pattern, or nil when none is
// configured or the configured string does not compile.
func (p *PatternProvider) LayerTypePattern() *Pattern {
	return p.lookup(PatternLayer)
}

// HasValidPatterns reports whether both kinds currently resolve. Used as a
// precondition before validation-dependent operations.
func (p *PatternProvider) HasValidPatterns() bool {
	return p.lookup(PatternDirective) != nil && p.lookup(PatternLayer) != nil
}

// ClearCache drops all cached handles. Required when the provider is
// pointed at a different configuration, e.g. after a profile switch.
func (p *PatternProvider) ClearCache() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache = make(map[PatternKind]*Pattern)
}

// Retarget swaps the underlying tree and clears the cache in one step.
func (p *PatternProvider) Retarget(tree Tree) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tree = tree
	p.cache = make(map[PatternKind]*Pattern)
}

func (p *PatternProvider) lookup(kind PatternKind) *Pattern {
	p.mu.Lock()
	defer p.mu.Unlock()

	if cached, ok := p.cache[kind]; ok {
		return cached
	}

	source, ok := p.extract(kind)
	if !ok {
		return nil
	}
	re, err := regexp.Compile(source)
	if err != nil {
		return nil
	}

	compiled := &Pattern{kind: kind, source: source, re: re}
	p.cache[kind] = compiled
	return compiled
}

// extract finds the pattern string for a kind, canonical location first,
// then legacy fallbacks. Non-string and empty values do not resolve.
func (p *PatternProvider) extract(kind PatternKind) (string, bool) {
	for _, loc := range patternLocations[kind] {
		val, ok := GetPath(p.tree, loc)
		if !ok {
			continue
		}
		s, ok := val.(string)
		if !ok || s == "" {
			continue
		}
		return s, true
	}
	return "", false
}

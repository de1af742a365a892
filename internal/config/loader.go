package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads and parses a YAML configuration file into an untyped tree.
// Outcomes are phase-tagged: a path that does not resolve to a regular file
// is FileNotFound, an unreadable file is FileReadError, malformed YAML is
// ParseError, and a well-formed document with the wrong top-level shape is
// a structural ValidationError.
func LoadFile(path any) (Tree, error) {
	p, err := NewConfigFilePath(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(p.String())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Phase: PhaseNotFound, Path: p.String(), Err: err}
		}
		return nil, &LoadError{Phase: PhaseFileRead, Path: p.String(), Err: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &LoadError{
			Phase: PhaseNotFound, Path: p.String(),
			Err: fmt.Errorf("%s is not a regular file", p.String()),
		}
	}

	data, err := os.ReadFile(p.String())
	if err != nil {
		return nil, &LoadError{Phase: PhaseFileRead, Path: p.String(), Err: err}
	}

	return ParseTree(data, p.String())
}

// ParseTree parses YAML bytes and checks the top-level shape. Accepted
// shapes: mapping, sequence of mappings (merged in order, later documents
// win), or empty/null (an empty tree).
func ParseTree(data []byte, path string) (Tree, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Phase: PhaseParse, Path: path, Err: err}
	}

	switch v := doc.(type) {
	case nil:
		return make(Tree), nil
	case map[string]any:
		return v, nil
	case []any:
		trees := make([]Tree, 0, len(v))
		for i, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, &LoadError{
					Phase: PhaseStruct, Path: path,
					Err: fmt.Errorf("element %d is not a mapping", i),
				}
			}
			trees = append(trees, m)
		}
		return MergeConfigs(trees...), nil
	default:
		return nil, &LoadError{
			Phase: PhaseStruct, Path: path,
			Err: fmt.Errorf("top-level value must be a mapping, a sequence of mappings, or empty; got %T", doc),
		}
	}
}

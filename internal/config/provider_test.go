package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeProvider scripts each phase of the provider sequence.
type fakeProvider struct {
	createErr   error
	nilInstance bool
	loadErr     error
	getErr      error
	tree        Tree
}

func (p *fakeProvider) Create(_ ConfigPrefix) (Instance, error) {
	if p.createErr != nil {
		return nil, p.createErr
	}
	if p.nilInstance {
		return nil, nil
	}
	return &fakeInstance{p: p}, nil
}

type fakeInstance struct {
	p *fakeProvider
}

func (i *fakeInstance) LoadConfig() error {
	return i.p.loadErr
}

func (i *fakeInstance) GetConfig() (Tree, error) {
	if i.p.getErr != nil {
		return nil, i.p.getErr
	}
	return i.p.tree, nil
}

func TestLoadRaw_Success(t *testing.T) {
	provider := &fakeProvider{tree: Tree{"log_level": "info"}}
	tree, err := LoadRaw(provider, "production", "/work")
	require.NoError(t, err)
	require.Equal(t, "info", tree["log_level"])
}

func TestLoadRaw_NilTreeBecomesEmpty(t *testing.T) {
	tree, err := LoadRaw(&fakeProvider{}, nil, "/work")
	require.NoError(t, err)
	require.NotNil(t, tree)
	require.Empty(t, tree)
}

func TestLoadRaw_PhaseAttribution(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
		phase    LoadPhase
	}{
		{"create failure", &fakeProvider{createErr: errors.New("bad wiring")}, PhaseCreate},
		{"nil instance", &fakeProvider{nilInstance: true}, PhaseCreate},
		{"nil provider", nil, PhaseCreate},
		{"load failure", &fakeProvider{loadErr: errors.New("io timeout")}, PhaseLoad},
		{"retrieve failure", &fakeProvider{getErr: errors.New("not loaded")}, PhaseRetrieve},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRaw(tt.provider, "production", "/work")
			var lerr *LoadError
			require.ErrorAs(t, err, &lerr)
			require.Equal(t, tt.phase, lerr.Phase)
			require.Equal(t, "production", lerr.Prefix)
		})
	}
}

func TestLoadRaw_NotFoundIndicators(t *testing.T) {
	// An underlying "not found" load error is surfaced as the actionable
	// missing-config condition, not a generic load failure.
	provider := &fakeProvider{loadErr: fmt.Errorf("open x: no such file or directory")}
	_, err := LoadRaw(provider, "production", "/work")

	var nf *ConfigNotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, "production", nf.Prefix)
	require.Contains(t, nf.Expected, "production-app.yml")
	require.Contains(t, nf.Error(), "production")
}

func TestLoadRaw_InvalidInputs(t *testing.T) {
	provider := &fakeProvider{}

	_, err := LoadRaw(provider, 42, "/work")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, KindInvalidType, verr.Kind)

	_, err = LoadRaw(provider, "ok", "")
	require.ErrorAs(t, err, &verr)
	require.Equal(t, KindInvalidPath, verr.Kind)
}

func TestResolveProvider(t *testing.T) {
	p, err := ResolveProvider("", "/dir")
	require.NoError(t, err)
	require.IsType(t, &FileProvider{}, p)

	p, err = ResolveProvider(ProviderFile, "/dir")
	require.NoError(t, err)
	require.IsType(t, &FileProvider{}, p)

	_, err = ResolveProvider("consul@v2")
	var lerr *LoadError
	require.ErrorAs(t, err, &lerr)
	require.Equal(t, PhaseImport, lerr.Phase)
}

func TestFileProvider_LoadsAppConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.yml", "log_level: warn\n")

	tree, err := LoadRaw(NewFileProvider(dir), "", dir)
	require.NoError(t, err)
	require.Equal(t, "warn", tree["log_level"])
}

func TestFileProvider_UserOverlayWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.yml", `
features:
  extendedThinking: false
  strictValidation: true
`)
	writeFile(t, dir, "user.yml", `
features:
  extendedThinking: true
`)

	tree, err := LoadRaw(NewFileProvider(dir), "", dir)
	require.NoError(t, err)

	val, _ := GetPath(tree, "features.extendedThinking")
	require.Equal(t, true, val)
	val, _ = GetPath(tree, "features.strictValidation")
	require.Equal(t, true, val)
}

func TestFileProvider_PrefixedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.yml", "log_level: info\n")
	writeFile(t, dir, "production-app.yml", "log_level: error\n")

	tree, err := LoadRaw(NewFileProvider(dir), "production", dir)
	require.NoError(t, err)
	require.Equal(t, "error", tree["log_level"])
}

func TestFileProvider_FirstDirectoryWins(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeFile(t, first, "app.yml", "log_level: debug\n")
	writeFile(t, second, "app.yml", "log_level: error\n")

	tree, err := LoadRaw(NewFileProvider(first, second), "", first)
	require.NoError(t, err)
	require.Equal(t, "debug", tree["log_level"])
}

func TestFileProvider_MissingConfigIsActionable(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadRaw(NewFileProvider(dir), "staging", dir)
	var nf *ConfigNotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, "staging", nf.Prefix)
	require.Equal(t, []string{filepath.Join(dir, "staging-app.yml")}, nf.Expected)
}

func TestFileProvider_NoDirectoriesIsCreateError(t *testing.T) {
	_, err := LoadRaw(NewFileProvider(), "", "/work")
	var lerr *LoadError
	require.ErrorAs(t, err, &lerr)
	require.Equal(t, PhaseCreate, lerr.Phase)
}

func TestFileProvider_ParseFailurePropagates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.yml", "key: [broken")

	_, err := LoadRaw(NewFileProvider(dir), "", dir)
	var lerr *LoadError
	require.ErrorAs(t, err, &lerr)
	require.Equal(t, PhaseLoad, lerr.Phase)
	// The parse failure is preserved as the cause.
	var parse *LoadError
	require.ErrorAs(t, lerr.Err, &parse)
	require.Equal(t, PhaseParse, parse.Phase)
}

func TestFileInstance_GetBeforeLoad(t *testing.T) {
	provider := NewFileProvider(t.TempDir())
	instance, err := provider.Create(ConfigPrefix{})
	require.NoError(t, err)

	_, err = instance.GetConfig()
	require.Error(t, err)
	require.Contains(t, err.Error(), "not loaded")
}

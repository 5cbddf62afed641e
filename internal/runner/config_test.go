package runner

import (
	"path/filepath"
	"testing"

	"github.com/Veraticus/testgen/internal/common"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	fsys := afero.NewMemMapFs()

	cfg, err := Load(fsys, "tests/runner.yaml", "tests")
	require.NoError(t, err)
	assert.Equal(t, Default("tests"), cfg)
}

func TestSaveAndLoad(t *testing.T) {
	fsys := afero.NewMemMapFs()
	want := Default("tests")

	require.NoError(t, Save(fsys, "tests/runner.yaml", want, false))

	got, err := Load(fsys, "tests/runner.yaml", "ignored")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	raw, err := afero.ReadFile(fsys, "tests/runner.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "testMatch:")
	assert.Contains(t, string(raw), "testPathIgnorePatterns:")
	assert.Contains(t, string(raw), "collectCoverageFrom:")
}

func TestSaveRefusesOverwrite(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "runner.yaml", []byte("testMatch: ['x']\n"), 0o644))

	err := Save(fsys, "runner.yaml", Default("tests"), false)
	assert.ErrorIs(t, err, common.ErrOutputExists)

	raw, err := afero.ReadFile(fsys, "runner.yaml")
	require.NoError(t, err)
	assert.Equal(t, "testMatch: ['x']\n", string(raw))

	require.NoError(t, Save(fsys, "runner.yaml", Default("tests"), true))
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed yaml", content: "testMatch: [unclosed"},
		{name: "no test patterns", content: "testMatch: []\n"},
		{name: "bad glob", content: "testMatch: ['tests/[unit']\n"},
		{name: "bad ignore glob", content: "testMatch: ['**/*.js']\ntestPathIgnorePatterns: ['a/{b']\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fsys, "runner.yaml", []byte(tt.content), 0o644))

			_, err := Load(fsys, "runner.yaml", "tests")
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}

func TestIsTest(t *testing.T) {
	cfg := Default("tests")

	tests := []struct {
		path string
		want bool
	}{
		{path: "tests/unit/test-user-validation.js", want: true},
		{path: "tests/integration/test-orders.js", want: true},
		{path: "test-root.js", want: true},
		{path: "tests/unit/helper.js", want: false},
		{path: "tests/tmp/test-scratch.js", want: false},
		{path: "tests/templates/test-x.js", want: false},
		{path: "node_modules/pkg/test-lib.js", want: false},
		{path: "tests/unit/test-user.ts", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.IsTest(tt.path))
		})
	}
}

func TestIsCovered(t *testing.T) {
	cfg := Default("tests")

	assert.True(t, cfg.IsCovered("src/app.js"))
	assert.True(t, cfg.IsCovered("src/lib/db.js"))
	assert.False(t, cfg.IsCovered("src/types/index.d.ts"))
	assert.False(t, cfg.IsCovered("tests/unit/test-app.js"))
}

func TestDiscover(t *testing.T) {
	fsys := afero.NewMemMapFs()
	files := []string{
		"tests/unit/test-a.js",
		"tests/unit/helper.js",
		"tests/debug/test-b.js",
		"tests/tmp/test-scratch.js",
		"tests/templates/test-template.js",
		"node_modules/dep/test-dep.js",
		"src/app.js",
	}
	for _, f := range files {
		require.NoError(t, afero.WriteFile(fsys, filepath.Join("project", f), []byte("x"), 0o644))
	}

	want := []string{
		filepath.Join("project", "tests", "debug", "test-b.js"),
		filepath.Join("project", "tests", "unit", "test-a.js"),
	}

	tests := []struct {
		name string
		dir  string
		want []string
	}{
		{name: "project root", dir: "project", want: want},
		{name: "test root", dir: filepath.Join("project", "tests"), want: want},
		{name: "scratch directory", dir: filepath.Join("project", "tests", "tmp")},
		{name: "single category", dir: filepath.Join("project", "tests", "unit"), want: want[1:]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := Default("tests").Discover(fsys, "project", tt.dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, found)
		})
	}
}

func TestCoverageSources(t *testing.T) {
	fsys := afero.NewMemMapFs()
	for _, f := range []string{
		"src/app.js",
		"src/lib/db.js",
		"src/types/index.d.ts",
		"tests/unit/test-app.js",
		"node_modules/dep/src/index.js",
	} {
		require.NoError(t, afero.WriteFile(fsys, f, []byte("x"), 0o644))
	}

	found, err := Default("tests").CoverageSources(fsys, ".", ".")
	require.NoError(t, err)
	assert.Equal(t, []string{"src/app.js", filepath.Join("src", "lib", "db.js")}, found)

	found, err = Default("tests").CoverageSources(fsys, ".", filepath.Join("src", "lib"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("src", "lib", "db.js")}, found)
}

func TestEnviron(t *testing.T) {
	cfg := &Config{Environment: map[string]string{"B": "2", "A": "1", "NODE_ENV": "test"}}
	assert.Equal(t, []string{"A=1", "B=2", "NODE_ENV=test"}, cfg.Environ())

	assert.Empty(t, (&Config{}).Environ())
}

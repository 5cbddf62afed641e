package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/testgen/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("TESTGEN_PATH_TEST", "/srv/project")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "tilde", input: "~", want: home},
		{name: "tilde prefix", input: "~/tests", want: filepath.Join(home, "tests")},
		{name: "env var", input: "$TESTGEN_PATH_TEST/tests", want: "/srv/project/tests"},
		{name: "relative", input: "./tests/", want: "tests"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	s, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "tests", s.TestRoot)
	assert.Equal(t, filepath.Join("tests", "templates"), s.TemplatesDir)
	assert.Equal(t, "js", s.Extension)
	assert.Equal(t, filepath.Join("tests", "runner.yaml"), s.RunnerConfig)
	assert.Equal(t, "npm test --", s.RunnerCommand)
	assert.Equal(t, filepath.Join("tests", "tmp"), s.ScratchDir())
}

func TestLoadOverrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set(KeyTestRoot, "acceptance")
	v.Set(KeyTemplates, "scaffolding")
	v.Set(KeyExtension, ".ts")

	s, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "acceptance", s.TestRoot)
	assert.Equal(t, "scaffolding", s.TemplatesDir)
	assert.Equal(t, "ts", s.Extension)
	assert.Equal(t, filepath.Join("acceptance", "runner.yaml"), s.RunnerConfig)
}

func TestLoadRejectsBadExtension(t *testing.T) {
	for _, ext := range []string{"", "js/x"} {
		v := viper.New()
		SetDefaults(v)
		v.Set(KeyExtension, ext)

		_, err := Load(v)
		assert.ErrorIs(t, err, common.ErrInvalidConfig, "extension %q", ext)
	}
}

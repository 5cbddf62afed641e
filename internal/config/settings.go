package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Veraticus/testgen/internal/common"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyTestRoot      = "tests.root"
	KeyTemplates     = "tests.templates"
	KeyExtension     = "tests.extension"
	KeyRunnerConfig  = "runner.config"
	KeyRunnerCommand = "runner.command"
	KeyLogLevel      = "logging.level"
	KeyLogFormat     = "logging.format"
)

// Defaults.
const (
	DefaultTestRoot      = "tests"
	DefaultExtension     = "js"
	DefaultRunnerCommand = "npm test --"
	TemplatesDirName     = "templates"
	ScratchDirName       = "tmp"
	RunnerConfigName     = "runner.yaml"
)

// Settings holds the resolved configuration for a single invocation.
type Settings struct {
	TestRoot      string
	TemplatesDir  string
	Extension     string
	RunnerConfig  string
	RunnerCommand string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyTestRoot, DefaultTestRoot)
	v.SetDefault(KeyExtension, DefaultExtension)
	v.SetDefault(KeyRunnerCommand, DefaultRunnerCommand)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "console")
}

// Load resolves Settings from v. Paths that are left empty are derived from the test root.
func Load(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		TestRoot:      ExpandPath(v.GetString(KeyTestRoot)),
		TemplatesDir:  ExpandPath(v.GetString(KeyTemplates)),
		Extension:     strings.TrimPrefix(strings.TrimSpace(v.GetString(KeyExtension)), "."),
		RunnerConfig:  ExpandPath(v.GetString(KeyRunnerConfig)),
		RunnerCommand: strings.TrimSpace(v.GetString(KeyRunnerCommand)),
	}

	if s.TestRoot == "" {
		s.TestRoot = DefaultTestRoot
	}
	if s.TemplatesDir == "" {
		s.TemplatesDir = filepath.Join(s.TestRoot, TemplatesDirName)
	}
	if s.RunnerConfig == "" {
		s.RunnerConfig = filepath.Join(s.TestRoot, RunnerConfigName)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate checks the settings for values the generator cannot work with.
func (s *Settings) Validate() error {
	if s.Extension == "" {
		return fmt.Errorf("%w: %s must not be empty", common.ErrInvalidConfig, KeyExtension)
	}
	if strings.ContainsAny(s.Extension, `/\`) {
		return fmt.Errorf("%w: %s must not contain path separators: %q", common.ErrInvalidConfig, KeyExtension, s.Extension)
	}
	return nil
}

// ScratchDir returns the scratch directory beneath the test root.
func (s *Settings) ScratchDir() string {
	return filepath.Join(s.TestRoot, ScratchDirName)
}

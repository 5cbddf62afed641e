// Package runner reads and writes the declarative configuration consumed by the
// external test runner. Nothing in this package executes tests.
package runner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/Veraticus/testgen/internal/common"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Config mirrors the runner's file match, ignore, coverage, and bootstrap settings.
type Config struct {
	Environment map[string]string `yaml:"environment,omitempty"`
	TestMatch   []string          `yaml:"testMatch"`
	Ignore      []string          `yaml:"testPathIgnorePatterns,omitempty"`
	Coverage    []string          `yaml:"collectCoverageFrom,omitempty"`
	SetupFiles  []string          `yaml:"setupFiles,omitempty"`
}

// Default returns the configuration written by "runner init" for a test root.
func Default(testRoot string) *Config {
	root := filepath.ToSlash(testRoot)
	return &Config{
		TestMatch:  []string{"**/test-*.js"},
		Ignore:     []string{"**/node_modules/**", root + "/tmp/**", root + "/templates/**"},
		Coverage:   []string{"src/**/*.js", "!src/**/*.d.ts"},
		SetupFiles: []string{root + "/setup.js"},
		Environment: map[string]string{
			"NODE_ENV":      "test",
			"TEST_TMP_DIR":  root + "/tmp",
			"SUPPRESS_LOGS": "true",
		},
	}
}

// Load reads the configuration at path. A missing file yields Default(testRoot).
func Load(fsys afero.Fs, path, testRoot string) (*Config, error) {
	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(testRoot), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read runner config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parse runner config %s: %v", common.ErrInvalidConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("runner config %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes cfg to path. An existing file is kept unless force is set.
func Save(fsys afero.Fs, path string, cfg *Config, force bool) error {
	if !force {
		exists, err := afero.Exists(fsys, path)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s", common.ErrOutputExists, path)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode runner config: %w", err)
	}

	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create runner config directory: %w", err)
	}

	return afero.WriteFile(fsys, path, data, 0o644)
}

// Validate checks that every pattern is a well-formed glob.
func (c *Config) Validate() error {
	if len(c.TestMatch) == 0 {
		return fmt.Errorf("%w: testMatch must list at least one pattern", common.ErrInvalidConfig)
	}

	groups := map[string][]string{
		"testMatch":              c.TestMatch,
		"testPathIgnorePatterns": c.Ignore,
		"collectCoverageFrom":    c.Coverage,
	}
	for field, patterns := range groups {
		for _, p := range patterns {
			if !doublestar.ValidatePattern(trimNegation(p)) {
				return fmt.Errorf("%w: %s has invalid pattern %q", common.ErrInvalidConfig, field, p)
			}
		}
	}

	return nil
}

// IsTest reports whether the slash-separated path is picked up as a test file.
func (c *Config) IsTest(path string) bool {
	path = filepath.ToSlash(path)
	return matchAny(c.TestMatch, path) && !matchAny(c.Ignore, path)
}

// IsCovered reports whether the path counts toward coverage.
// Patterns prefixed with "!" exclude what earlier patterns included.
func (c *Config) IsCovered(path string) bool {
	path = filepath.ToSlash(path)
	covered := false
	for _, p := range c.Coverage {
		if neg := trimNegation(p); neg != p {
			if ok, _ := doublestar.Match(neg, path); ok {
				covered = false
			}
			continue
		}
		if ok, _ := doublestar.Match(p, path); ok {
			covered = true
		}
	}
	return covered
}

// Discover returns the test files under dir that the runner would pick up, sorted.
// Patterns are matched against paths relative to root, the project directory the
// configuration is written for; dir only narrows the walk.
func (c *Config) Discover(fsys afero.Fs, root, dir string) ([]string, error) {
	found, err := c.walk(fsys, root, dir, c.IsTest)
	if err != nil {
		return nil, fmt.Errorf("discover tests under %s: %w", dir, err)
	}
	return found, nil
}

// CoverageSources returns the files under dir that count toward coverage, sorted.
// Paths are matched relative to root, as in Discover.
func (c *Config) CoverageSources(fsys afero.Fs, root, dir string) ([]string, error) {
	found, err := c.walk(fsys, root, dir, c.IsCovered)
	if err != nil {
		return nil, fmt.Errorf("collect coverage sources under %s: %w", dir, err)
	}
	return found, nil
}

// walk visits dir and keeps the files whose root-relative path satisfies keep.
// Directories matched by an ignore pattern are skipped.
func (c *Config) walk(fsys afero.Fs, root, dir string, keep func(rel string) bool) ([]string, error) {
	var found []string
	err := afero.Walk(fsys, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if rel != "." && (matchAny(c.Ignore, rel) || matchAny(c.Ignore, rel+"/")) {
				return filepath.SkipDir
			}
			return nil
		}
		if keep(rel) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(found)
	return found, nil
}

// Environ returns the bootstrap environment as sorted KEY=VALUE pairs, ready to hand to the runner process.
func (c *Config) Environ() []string {
	keys := make([]string, 0, len(c.Environment))
	for k := range c.Environment {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, k+"="+c.Environment[k])
	}
	return env
}

func matchAny(patterns []string, path string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, path); ok {
			return true
		}
	}
	return false
}

func trimNegation(pattern string) string {
	if len(pattern) > 0 && pattern[0] == '!' {
		return pattern[1:]
	}
	return pattern
}

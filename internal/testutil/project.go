// Package testutil provides test utilities for building throwaway project trees.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/testgen/internal/model"
	"github.com/spf13/afero"
)

// Project is a test root seeded with templates on an afero file system.
type Project struct {
	Fs           afero.Fs
	t            *testing.T
	TestRoot     string
	TemplatesDir string
}

// ProjectBuilder provides a fluent interface for seeding a Project.
//
// Example:
//
//	p := testutil.NewProject(t).
//		WithStubTemplates().
//		WithFile("tests/unit/test-existing.js", "keep me").
//		Build()
type ProjectBuilder struct {
	fs           afero.Fs
	t            *testing.T
	testRoot     string
	templatesDir string
	files        map[string]string
	dirs         []string
}

// NewProject starts a builder backed by an in-memory file system rooted at "tests".
func NewProject(t *testing.T) *ProjectBuilder {
	t.Helper()
	return &ProjectBuilder{
		fs:           afero.NewMemMapFs(),
		t:            t,
		testRoot:     "tests",
		templatesDir: filepath.Join("tests", "templates"),
		files:        make(map[string]string),
	}
}

// OnDisk switches the builder to a real file system under t.TempDir().
func (b *ProjectBuilder) OnDisk() *ProjectBuilder {
	base := b.t.TempDir()
	b.fs = afero.NewOsFs()
	b.testRoot = filepath.Join(base, "tests")
	b.templatesDir = filepath.Join(b.testRoot, "templates")
	return b
}

// WithTemplate seeds a template file with the given content.
func (b *ProjectBuilder) WithTemplate(file, content string) *ProjectBuilder {
	b.files[filepath.Join(b.templatesDir, file)] = content
	return b
}

// WithStubTemplates seeds one small template per category that uses every declared placeholder.
func (b *ProjectBuilder) WithStubTemplates() *ProjectBuilder {
	for _, d := range model.Descriptors() {
		b.WithTemplate(d.TemplateFile, StubTemplate(d))
	}
	return b
}

// WithFile seeds a file. Paths starting with "tests/" are placed under the test root.
func (b *ProjectBuilder) WithFile(path, content string) *ProjectBuilder {
	b.files[b.resolve(path)] = content
	return b
}

// WithDir seeds an empty directory.
func (b *ProjectBuilder) WithDir(path string) *ProjectBuilder {
	b.dirs = append(b.dirs, b.resolve(path))
	return b
}

// Build writes the seeded files and returns the project.
func (b *ProjectBuilder) Build() *Project {
	b.t.Helper()

	for _, dir := range b.dirs {
		if err := b.fs.MkdirAll(dir, 0o755); err != nil {
			b.t.Fatalf("failed to seed directory %q: %v", dir, err)
		}
	}

	for path, content := range b.files {
		if err := b.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			b.t.Fatalf("failed to seed directory for %q: %v", path, err)
		}
		if err := afero.WriteFile(b.fs, path, []byte(content), 0o644); err != nil {
			b.t.Fatalf("failed to seed file %q: %v", path, err)
		}
	}

	return &Project{
		Fs:           b.fs,
		t:            b.t,
		TestRoot:     b.testRoot,
		TemplatesDir: b.templatesDir,
	}
}

// resolve maps "tests/..." paths onto the builder's test root.
func (b *ProjectBuilder) resolve(path string) string {
	rel := strings.TrimPrefix(filepath.ToSlash(path), "tests/")
	if rel == "tests" {
		return b.testRoot
	}
	return filepath.Join(b.testRoot, filepath.FromSlash(rel))
}

// Path maps a "tests/..." path onto the project's test root.
func (p *Project) Path(path string) string {
	rel := strings.TrimPrefix(filepath.ToSlash(path), "tests/")
	return filepath.Join(p.TestRoot, filepath.FromSlash(rel))
}

// MustRead returns the content of a file or fails the test.
func (p *Project) MustRead(path string) string {
	p.t.Helper()
	data, err := afero.ReadFile(p.Fs, path)
	if err != nil {
		p.t.Fatalf("failed to read %q: %v", path, err)
	}
	return string(data)
}

// Snapshot lists every file and directory currently on the project file system.
func (p *Project) Snapshot() []string {
	p.t.Helper()
	var entries []string
	err := afero.Walk(p.Fs, p.TestRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		entries = append(entries, fmt.Sprintf("%s dir=%t size=%d", path, info.IsDir(), info.Size()))
		return nil
	})
	if err != nil {
		p.t.Fatalf("failed to walk project: %v", err)
	}
	return entries
}

// StubTemplate returns a minimal template body for d that references every placeholder twice.
func StubTemplate(d model.Descriptor) string {
	var sb strings.Builder
	title := strings.ToUpper(string(d.Category[:1])) + string(d.Category[1:])
	fmt.Fprintf(&sb, "describe('MODULE_NAME %s Tests', () => {\n", title)
	for _, token := range d.Placeholders {
		fmt.Fprintf(&sb, "  test('%s', () => expect('%s').toBeDefined());\n", token, token)
	}
	sb.WriteString("});\n")
	return sb.String()
}

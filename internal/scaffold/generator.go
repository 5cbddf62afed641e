// Package scaffold creates new test files from category templates.
package scaffold

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/testgen/internal/common"
	"github.com/Veraticus/testgen/internal/model"
	"github.com/spf13/afero"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Options locates templates and generated files on the file system.
type Options struct {
	TestRoot     string
	TemplatesDir string
	ScratchDir   string
	Extension    string
}

// Result describes a generated test file.
type Result struct {
	Descriptor       model.Descriptor
	Path             string
	TemplatePath     string
	Replacements     int
	CreatedDirectory bool
}

// Generator materializes test files from templates.
// It is not safe for concurrent use against the same output path.
type Generator struct {
	fs   afero.Fs
	opts Options
}

// New creates a generator backed by fs.
func New(fs afero.Fs, opts Options) *Generator {
	if opts.Extension == "" {
		opts.Extension = "js"
	}
	if opts.TemplatesDir == "" {
		opts.TemplatesDir = filepath.Join(opts.TestRoot, "templates")
	}
	if opts.ScratchDir == "" {
		opts.ScratchDir = filepath.Join(opts.TestRoot, "tmp")
	}
	return &Generator{fs: fs, opts: opts}
}

// ListCategories returns the descriptors of every known category.
func (g *Generator) ListCategories() []model.Descriptor {
	return model.Descriptors()
}

// TemplatePath returns where the template for d is read from.
func (g *Generator) TemplatePath(d model.Descriptor) string {
	return filepath.Join(g.opts.TemplatesDir, d.TemplateFile)
}

// OutputPath returns where a test called name in category d is written.
func (g *Generator) OutputPath(d model.Descriptor, name string) string {
	return filepath.Join(g.opts.TestRoot, d.TargetDirectory, model.OutputFileName(name, g.opts.Extension))
}

// Generate renders the category template for name and writes it as a new file.
// An existing file is never overwritten.
func (g *Generator) Generate(category, name string) (*Result, error) {
	desc, templatePath, err := g.resolve(category, name)
	if err != nil {
		return nil, err
	}

	outputPath := g.OutputPath(desc, name)
	created, err := g.ensureDir(filepath.Dir(outputPath))
	if err != nil {
		return nil, generationFailed(category, "mkdir", filepath.Dir(outputPath), err)
	}

	exists, err := afero.Exists(g.fs, outputPath)
	if err != nil {
		return nil, generationFailed(category, "stat", outputPath, err)
	}
	if exists {
		return nil, outputExists(category, outputPath)
	}

	content, replaced, err := g.render(desc, templatePath, name)
	if err != nil {
		return nil, err
	}

	if err := g.writeExclusive(outputPath, content); err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, outputExists(category, outputPath)
		}
		return nil, generationFailed(category, "write", outputPath, err)
	}

	slog.Info("Generated test file",
		"category", desc.Category,
		"path", outputPath,
		"template", templatePath,
		"replacements", replaced)

	return &Result{
		Descriptor:       desc,
		Path:             outputPath,
		TemplatePath:     templatePath,
		Replacements:     replaced,
		CreatedDirectory: created,
	}, nil
}

// Preview renders the category template for name without writing anything.
func (g *Generator) Preview(category, name string) (string, error) {
	desc, templatePath, err := g.resolve(category, name)
	if err != nil {
		return "", err
	}

	content, _, err := g.render(desc, templatePath, name)
	return content, err
}

// EnsureScratchDirectory creates the shared scratch directory if it is missing.
func (g *Generator) EnsureScratchDirectory() (string, error) {
	if err := g.fs.MkdirAll(g.opts.ScratchDir, dirPerm); err != nil {
		return "", generationFailed("", "mkdir", g.opts.ScratchDir, err)
	}
	return g.opts.ScratchDir, nil
}

// resolve validates the request and locates the category template.
func (g *Generator) resolve(category, name string) (model.Descriptor, string, error) {
	desc, ok := model.Lookup(category)
	if !ok {
		return model.Descriptor{}, "", unknownCategory(category, model.CategoryNames())
	}

	if err := ValidateName(name); err != nil {
		return model.Descriptor{}, "", err
	}

	templatePath := g.TemplatePath(desc)
	isFile, err := afero.Exists(g.fs, templatePath)
	if err != nil {
		return model.Descriptor{}, "", generationFailed(category, "stat", templatePath, err)
	}
	if !isFile {
		return model.Descriptor{}, "", templateMissing(category, templatePath)
	}

	common.LogDebug("Resolved template", common.Fields{
		"category": category,
		"template": templatePath,
	})

	return desc, templatePath, nil
}

func (g *Generator) render(desc model.Descriptor, templatePath, name string) (string, int, error) {
	raw, err := afero.ReadFile(g.fs, templatePath)
	if err != nil {
		return "", 0, generationFailed(string(desc.Category), "read", templatePath, err)
	}

	content, replaced := Render(string(raw), desc.Placeholders, name)
	return content, replaced, nil
}

func (g *Generator) ensureDir(dir string) (bool, error) {
	exists, err := afero.DirExists(g.fs, dir)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if err := g.fs.MkdirAll(dir, dirPerm); err != nil {
		return false, err
	}

	slog.Info("Created test directory", "path", dir)
	return true, nil
}

// writeExclusive creates path and fails with os.ErrExist if it is already there.
func (g *Generator) writeExclusive(path, content string) error {
	f, err := g.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		return err
	}

	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		_ = g.fs.Remove(path)
		return err
	}

	return f.Close()
}

// Render replaces every literal occurrence of each placeholder with name, in declaration order.
// It returns the rendered text and the number of replacements made.
//
// There is no escaping: when name itself contains a later placeholder, that occurrence is replaced too.
func Render(template string, placeholders []string, name string) (string, int) {
	replaced := 0
	for _, token := range placeholders {
		if token == "" {
			continue
		}
		replaced += strings.Count(template, token)
		template = strings.ReplaceAll(template, token, name)
	}
	return template, replaced
}

// ValidateName rejects names that would place the generated file outside its category directory.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return invalidName(name, "must not be empty")
	case name == "." || name == "..":
		return invalidName(name, "must not be a relative directory reference")
	case strings.ContainsAny(name, `/\`):
		return invalidName(name, "must not contain path separators")
	}
	return nil
}

package scaffold

import (
	"embed"
	"fmt"
	"path"
	"path/filepath"

	"github.com/Veraticus/testgen/internal/model"
	"github.com/spf13/afero"
)

//go:embed templates/*.template.js
var defaultTemplates embed.FS

// DefaultTemplate returns the built-in template text for a category.
func DefaultTemplate(category model.Category) (string, error) {
	desc, ok := model.Lookup(string(category))
	if !ok {
		return "", unknownCategory(string(category), model.CategoryNames())
	}

	data, err := defaultTemplates.ReadFile(path.Join("templates", desc.TemplateFile))
	if err != nil {
		return "", fmt.Errorf("read built-in template %s: %w", desc.TemplateFile, err)
	}
	return string(data), nil
}

// InstalledTemplate is a template file written by InstallTemplates.
type InstalledTemplate struct {
	Path     string
	Replaced bool
}

// InstallTemplates writes the built-in templates into the templates directory.
// Existing templates are left alone unless force is set.
func (g *Generator) InstallTemplates(force bool) ([]InstalledTemplate, error) {
	if err := g.fs.MkdirAll(g.opts.TemplatesDir, dirPerm); err != nil {
		return nil, generationFailed("", "mkdir", g.opts.TemplatesDir, err)
	}

	var written []InstalledTemplate
	for _, desc := range model.Descriptors() {
		target := filepath.Join(g.opts.TemplatesDir, desc.TemplateFile)

		exists, err := afero.Exists(g.fs, target)
		if err != nil {
			return written, generationFailed(string(desc.Category), "stat", target, err)
		}
		if exists && !force {
			continue
		}

		content, err := DefaultTemplate(desc.Category)
		if err != nil {
			return written, err
		}

		if err := afero.WriteFile(g.fs, target, []byte(content), filePerm); err != nil {
			return written, generationFailed(string(desc.Category), "write", target, err)
		}
		written = append(written, InstalledTemplate{Path: target, Replaced: exists})
	}

	return written, nil
}

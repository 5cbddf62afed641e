// Package model defines the core domain types used throughout the application.
package model

import "fmt"

// Category identifies one of the fixed kinds of test the generator knows about.
type Category string

const (
	// CategoryUnit is for tests of a single module in isolation.
	CategoryUnit Category = "unit"
	// CategoryIntegration is for tests that exercise real collaborators.
	CategoryIntegration Category = "integration"
	// CategoryDebug is for focused reproduction tests.
	CategoryDebug Category = "debug"
	// CategoryIsolated is for tests that need a fresh environment.
	CategoryIsolated Category = "isolated"
)

// Placeholder tokens recognized inside templates.
const (
	PlaceholderModule  = "MODULE_NAME"
	PlaceholderFeature = "FEATURE_NAME"
	PlaceholderIssue   = "ISSUE_NAME"
)

// Descriptor describes how a category maps onto a template and an output directory.
type Descriptor struct {
	Category        Category
	TemplateFile    string
	TargetDirectory string
	Description     string
	Placeholders    []string
}

// descriptors is the closed category set, in display order.
var descriptors = []Descriptor{
	{
		Category:        CategoryUnit,
		TemplateFile:    "unit.template.js",
		TargetDirectory: "unit",
		Placeholders:    []string{PlaceholderModule},
		Description:     "Unit tests for a single module in isolation",
	},
	{
		Category:        CategoryIntegration,
		TemplateFile:    "integration.template.js",
		TargetDirectory: "integration",
		Placeholders:    []string{PlaceholderModule, PlaceholderFeature},
		Description:     "Integration tests that exercise real collaborators (database, file system)",
	},
	{
		Category:        CategoryDebug,
		TemplateFile:    "debug.template.js",
		TargetDirectory: "debug",
		Placeholders:    []string{PlaceholderModule, PlaceholderIssue},
		Description:     "Focused reproduction tests for investigating a specific bug",
	},
	{
		Category:        CategoryIsolated,
		TemplateFile:    "isolated.template.js",
		TargetDirectory: "isolated",
		Placeholders:    []string{PlaceholderModule},
		Description:     "Tests that run with a fresh environment and no shared state",
	},
}

// Descriptors returns a copy of every category descriptor in display order.
func Descriptors() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	for i, d := range descriptors {
		d.Placeholders = append([]string(nil), d.Placeholders...)
		out[i] = d
	}
	return out
}

// Lookup returns the descriptor for the named category.
func Lookup(name string) (Descriptor, bool) {
	for _, d := range Descriptors() {
		if string(d.Category) == name {
			return d, true
		}
	}
	return Descriptor{}, false
}

// CategoryNames returns the category identifiers in display order.
func CategoryNames() []string {
	names := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		names = append(names, string(d.Category))
	}
	return names
}

// OutputFileName returns the file name generated for name with the given extension.
func OutputFileName(name, ext string) string {
	return fmt.Sprintf("test-%s.%s", name, ext)
}

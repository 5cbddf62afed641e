package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptorsAreClosedAndUnique(t *testing.T) {
	descs := Descriptors()
	require.Len(t, descs, 4)

	seen := make(map[Category]bool)
	dirs := make(map[string]bool)
	for _, d := range descs {
		assert.False(t, seen[d.Category], "duplicate descriptor for %s", d.Category)
		assert.False(t, dirs[d.TargetDirectory], "duplicate target directory %s", d.TargetDirectory)
		seen[d.Category] = true
		dirs[d.TargetDirectory] = true

		assert.NotEmpty(t, d.TemplateFile)
		assert.NotEmpty(t, d.Description)
		assert.NotEmpty(t, d.Placeholders)
	}

	assert.Equal(t, []string{"unit", "integration", "debug", "isolated"}, CategoryNames())
}

func TestDescriptorsReturnsCopies(t *testing.T) {
	descs := Descriptors()
	descs[0].Placeholders[0] = "MUTATED"
	descs[0].Description = "changed"

	unit, ok := Lookup("unit")
	require.True(t, ok)
	assert.Equal(t, []string{PlaceholderModule}, unit.Placeholders)
	assert.Equal(t, "Unit tests for a single module in isolation", unit.Description)
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantOK   bool
		wantFile string
	}{
		{name: "unit", input: "unit", wantOK: true, wantFile: "unit.template.js"},
		{name: "integration", input: "integration", wantOK: true, wantFile: "integration.template.js"},
		{name: "debug", input: "debug", wantOK: true, wantFile: "debug.template.js"},
		{name: "isolated", input: "isolated", wantOK: true, wantFile: "isolated.template.js"},
		{name: "unknown", input: "bogus", wantOK: false},
		{name: "case sensitive", input: "Unit", wantOK: false},
		{name: "empty", input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := Lookup(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantFile, d.TemplateFile)
		})
	}
}

func TestOutputFileName(t *testing.T) {
	assert.Equal(t, "test-user-validation.js", OutputFileName("user-validation", "js"))
	assert.Equal(t, "test-api.ts", OutputFileName("api", "ts"))
}

package cli

import (
	"bytes"
	"testing"

	"github.com/Veraticus/testgen/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteUsage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUsage(&buf, "testgen", model.Descriptors()))

	out := buf.String()
	assert.Contains(t, out, "testgen <category> <name>")
	for _, d := range model.Descriptors() {
		assert.Contains(t, out, string(d.Category))
		assert.Contains(t, out, d.Description)
	}
	assert.Contains(t, out, "testgen unit user-validation")
	assert.Contains(t, out, "testgen integration database-operations")
}

func TestWriteCategories(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCategories(&buf, model.Descriptors()))

	out := buf.String()
	assert.Contains(t, out, "CATEGORY")
	assert.Contains(t, out, "isolated")
	assert.Contains(t, out, "Focused reproduction tests")
}

func TestWriteGenerated(t *testing.T) {
	var buf bytes.Buffer
	err := WriteGenerated(&buf, Generated{
		Path:             "tests/unit/test-cart.js",
		Description:      "Unit tests for a single module in isolation",
		Template:         "tests/templates/unit.template.js",
		RunCommand:       "npm test --",
		CreatedDirectory: true,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Created directory tests/unit")
	assert.Contains(t, out, "Created tests/unit/test-cart.js")
	assert.Contains(t, out, "Unit tests for a single module in isolation")
	assert.Contains(t, out, "tests/templates/unit.template.js")
	assert.Contains(t, out, "npm test -- tests/unit/test-cart.js")
}

func TestWriteGeneratedWithoutRunCommand(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGenerated(&buf, Generated{Path: "test-x.js"}))

	assert.NotContains(t, buf.String(), "Run it")
	assert.NotContains(t, buf.String(), "Created directory")
}

func TestDirOf(t *testing.T) {
	assert.Equal(t, "tests/unit", dirOf("tests/unit/test-a.js"))
	assert.Equal(t, ".", dirOf("test-a.js"))
}

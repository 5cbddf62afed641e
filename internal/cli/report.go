package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/testgen/internal/model"
)

// Generated is what the success report shows about a new test file.
type Generated struct {
	Path             string
	Description      string
	Template         string
	RunCommand       string
	CreatedDirectory bool
}

// WriteCategories prints the category table.
func WriteCategories(w io.Writer, descs []model.Descriptor) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\t%s\t%s\n",
		TableHeaderStyle.Render("CATEGORY"),
		TableHeaderStyle.Render("DIRECTORY"),
		TableHeaderStyle.Render("DESCRIPTION"))
	for _, d := range descs {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Category, d.TargetDirectory, d.Description)
	}

	return tw.Flush()
}

// WriteUsage prints the command usage, the categories and a few examples.
func WriteUsage(w io.Writer, tool string, descs []model.Descriptor) error {
	fmt.Fprintln(w, FormatTitle("Test file generator"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Usage:\n  %s <category> <name>\n\n", tool)
	fmt.Fprintln(w, "Categories:")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, d := range descs {
		fmt.Fprintf(tw, "  %s\t%s\n", d.Category, d.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	examples := map[model.Category]string{
		model.CategoryUnit:        "user-validation",
		model.CategoryIntegration: "database-operations",
		model.CategoryDebug:       "login-timeout",
		model.CategoryIsolated:    "config-loader",
	}
	for _, d := range descs {
		if name, ok := examples[d.Category]; ok {
			fmt.Fprintf(w, "  %s %s %s\n", tool, d.Category, name)
		}
	}

	_, err := fmt.Fprintln(w)
	return err
}

// WriteGenerated prints the confirmation lines and next steps for a new test file.
func WriteGenerated(w io.Writer, g Generated) error {
	if g.CreatedDirectory {
		fmt.Fprintln(w, FormatInfo("Created directory "+dirOf(g.Path)))
	}
	fmt.Fprintln(w, FormatSuccess("Created "+g.Path))
	fmt.Fprintf(w, "  %s %s\n", SubtleStyle.Render("Category:"), g.Description)
	fmt.Fprintf(w, "  %s %s\n", SubtleStyle.Render("Template:"), g.Template)
	fmt.Fprintln(w)
	fmt.Fprintln(w, BoldStyle.Render("Next steps:"))
	fmt.Fprintf(w, "  %s Edit %s and replace the placeholder assertions\n", NextIcon, g.Path)
	if g.RunCommand != "" {
		fmt.Fprintf(w, "  %s Run it: %s %s\n", NextIcon, g.RunCommand, g.Path)
	}
	_, err := fmt.Fprintf(w, "  %s Keep throwaway files under the scratch directory\n", NextIcon)
	return err
}

func dirOf(path string) string {
	i := strings.LastIndexAny(path, `/\`)
	if i < 0 {
		return "."
	}
	return path[:i]
}

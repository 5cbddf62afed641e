package main

import (
	"fmt"

	"github.com/Veraticus/testgen/internal/cli"
	"github.com/spf13/cobra"
)

func (a *app) templatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage test templates",
	}

	cmd.AddCommand(a.templatesInitCmd())

	return cmd
}

func (a *app) templatesInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the built-in templates",
		Long: `Write the built-in template for every category into the templates directory.
Templates that already exist are kept unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			written, err := a.generator().InstallTemplates(force)
			for _, w := range written {
				if w.Replaced {
					fmt.Fprintln(out, cli.FormatWarning("Overwrote "+w.Path))
					continue
				}
				fmt.Fprintln(out, cli.FormatSuccess("Wrote "+w.Path))
			}
			if err != nil {
				return err
			}

			if len(written) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("All templates already present in "+a.settings.TemplatesDir))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing templates")

	return cmd
}

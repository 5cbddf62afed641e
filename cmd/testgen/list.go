package main

import (
	"github.com/Veraticus/testgen/internal/cli"
	"github.com/spf13/cobra"
)

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"categories"},
		Short:   "List test categories",
		Long:    `Display every test category with its target directory and description.`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.WriteCategories(cmd.OutOrStdout(), a.generator().ListCategories())
		},
	}
}

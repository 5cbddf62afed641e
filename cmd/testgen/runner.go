package main

import (
	"fmt"

	"github.com/Veraticus/testgen/internal/cli"
	"github.com/Veraticus/testgen/internal/runner"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func (a *app) runnerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runner",
		Short: "Manage the test runner configuration",
		Long: `Create and inspect the declarative configuration consumed by the external test runner:
which files count as tests, which are ignored, what counts toward coverage, and the
environment handed to each test file.`,
	}

	cmd.AddCommand(a.runnerInitCmd())
	cmd.AddCommand(a.runnerListCmd())
	cmd.AddCommand(a.runnerCoverageCmd())
	cmd.AddCommand(a.runnerEnvCmd())

	return cmd
}

func (a *app) runnerInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default runner configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.settings.RunnerConfig
			if err := runner.Save(a.fs, path, runner.Default(a.settings.TestRoot), force); err != nil {
				return fmt.Errorf("failed to write runner config: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Wrote "+path))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing runner configuration")

	return cmd
}

func (a *app) runnerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [dir]",
		Short: "List the files the runner would treat as tests",
		Long: `Print every file under dir (default: current directory) matched by the runner's test patterns.
Patterns are always matched relative to the current directory; dir only narrows the listing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.listRunnerFiles(cmd, args, "No test files found under ", (*runner.Config).Discover)
		},
	}
}

func (a *app) runnerCoverageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "coverage [dir]",
		Short: "List the source files that count toward coverage",
		Long: `Print every file under dir (default: current directory) matched by collectCoverageFrom.
Patterns are always matched relative to the current directory; dir only narrows the listing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.listRunnerFiles(cmd, args, "No coverage sources found under ", (*runner.Config).CoverageSources)
		},
	}
}

type runnerWalk func(cfg *runner.Config, fsys afero.Fs, root, dir string) ([]string, error)

func (a *app) listRunnerFiles(cmd *cobra.Command, args []string, emptyMsg string, walk runnerWalk) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	cfg, err := a.runnerConfig(cmd)
	if err != nil {
		return err
	}

	files, err := walk(cfg, a.fs, ".", dir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(files) == 0 {
		fmt.Fprintln(out, cli.FormatInfo(emptyMsg+dir))
		return nil
	}
	for _, f := range files {
		fmt.Fprintln(out, f)
	}
	return nil
}

func (a *app) runnerEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Print the environment handed to each test file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.runnerConfig(cmd)
			if err != nil {
				return err
			}

			for _, kv := range cfg.Environ() {
				fmt.Fprintln(cmd.OutOrStdout(), kv)
			}
			return nil
		},
	}
}

func (a *app) runnerConfig(cmd *cobra.Command) (*runner.Config, error) {
	path := a.settings.RunnerConfig

	exists, err := afero.Exists(a.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load runner config: %w", err)
	}
	if !exists {
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning("No runner config at "+path+", using defaults"))
	}

	cfg, err := runner.Load(a.fs, path, a.settings.TestRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load runner config: %w", err)
	}
	return cfg, nil
}

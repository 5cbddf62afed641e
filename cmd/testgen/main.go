package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/testgen/internal/cli"
	"github.com/Veraticus/testgen/internal/common"
	"github.com/Veraticus/testgen/internal/config"
	"github.com/Veraticus/testgen/internal/scaffold"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const toolName = "testgen"

var version = "dev"

// app carries the state shared by every command of one invocation.
type app struct {
	fs       afero.Fs
	v        *viper.Viper
	settings *config.Settings
	cfgFile  string
	dryRun   bool
}

func main() {
	os.Exit(run(afero.NewOsFs(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(fs afero.Fs, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(fs)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, common.ErrUsage) {
			fmt.Fprintln(stderr, cli.FormatError(err.Error()))
		}
		return 1
	}
	return 0
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	a := &app{fs: fs, v: viper.New()}
	a.v.SetFs(fs)
	config.SetDefaults(a.v)

	cmd := &cobra.Command{
		Use:   toolName + " <category> <name>",
		Short: "Scaffold new test files from templates",
		Long: `testgen creates a new test file from the template of the requested category.

The file is written to <test-root>/<category-directory>/test-<name>.<ext>.
Existing files are never overwritten.`,
		Example: `  testgen unit user-validation
  testgen integration database-operations --dry-run
  testgen list`,
		Args:              cobra.MaximumNArgs(2),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initConfig,
		RunE:              a.runGenerate,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./testgen.yaml or $HOME/.config/testgen/testgen.yaml)")
	cmd.PersistentFlags().String("test-root", "", "directory that holds the test tree (default: tests)")
	cmd.PersistentFlags().String("templates", "", "templates directory (default: <test-root>/templates)")
	cmd.PersistentFlags().String("ext", "", "extension of generated files (default: js)")
	cmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "", "log format (console, json)")
	cmd.Flags().BoolVar(&a.dryRun, "dry-run", false, "print the rendered test instead of writing it")

	// Bind flags to viper
	_ = a.v.BindPFlag(config.KeyTestRoot, cmd.PersistentFlags().Lookup("test-root"))
	_ = a.v.BindPFlag(config.KeyTemplates, cmd.PersistentFlags().Lookup("templates"))
	_ = a.v.BindPFlag(config.KeyExtension, cmd.PersistentFlags().Lookup("ext"))
	_ = a.v.BindPFlag(config.KeyLogLevel, cmd.PersistentFlags().Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyLogFormat, cmd.PersistentFlags().Lookup("log-format"))

	cmd.AddCommand(a.listCmd())
	cmd.AddCommand(a.templatesCmd())
	cmd.AddCommand(a.runnerCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(config.ExpandPath(a.cfgFile))
	} else {
		a.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(filepath.Join(home, ".config", toolName))
		}
		a.v.SetConfigName(toolName)
		a.v.SetConfigType("yaml")
	}

	// Environment variables
	a.v.SetEnvPrefix("TESTGEN")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return common.NewUserError("failed to read config", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	if err := common.SetupLogger(cmd.ErrOrStderr(), a.v.GetString(config.KeyLogLevel), a.v.GetString(config.KeyLogFormat)); err != nil {
		return common.NewUserError("failed to setup logging", err)
	}

	settings, err := config.Load(a.v)
	if err != nil {
		return common.NewUserError("failed to load config", err)
	}
	a.settings = settings

	common.LogDebug("Configuration loaded", common.Fields{
		"config":    a.v.ConfigFileUsed(),
		"test_root": settings.TestRoot,
		"templates": settings.TemplatesDir,
	})

	return nil
}

func (a *app) generator() *scaffold.Generator {
	return scaffold.New(a.fs, scaffold.Options{
		TestRoot:     a.settings.TestRoot,
		TemplatesDir: a.settings.TemplatesDir,
		ScratchDir:   a.settings.ScratchDir(),
		Extension:    a.settings.Extension,
	})
}

func (a *app) runGenerate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	gen := a.generator()

	if _, err := gen.EnsureScratchDirectory(); err != nil {
		logGenerationFailure(err, common.Fields{"step": "scratch"})
		return err
	}

	if len(args) < 2 {
		if err := cli.WriteUsage(out, toolName, gen.ListCategories()); err != nil {
			return err
		}
		return common.ErrUsage
	}

	category, name := args[0], args[1]

	if a.dryRun {
		content, err := gen.Preview(category, name)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, content)
		return err
	}

	result, err := gen.Generate(category, name)
	if err != nil {
		logGenerationFailure(err, common.Fields{
			"category": category,
			"name":     name,
		})
		return err
	}

	return cli.WriteGenerated(out, cli.Generated{
		Path:             result.Path,
		Description:      result.Descriptor.Description,
		Template:         result.Descriptor.TemplateFile,
		RunCommand:       a.settings.RunnerCommand,
		CreatedDirectory: result.CreatedDirectory,
	})
}

// logGenerationFailure records I/O failures at error level with their cause.
// Rejected requests (unknown category, existing file, ...) are only traced at debug.
func logGenerationFailure(err error, fields common.Fields) {
	if errors.Is(err, common.ErrGenerationFailed) {
		common.LogError(err, "Test generation failed", fields)
		return
	}
	fields["error"] = err
	common.LogDebug("Test generation rejected", fields)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", toolName, version)
		},
	}
}

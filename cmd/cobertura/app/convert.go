package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjy-dev/cobertura/internal/config"
	"github.com/zjy-dev/cobertura/internal/coverage"
	"github.com/zjy-dev/cobertura/internal/logger"
	"github.com/zjy-dev/cobertura/internal/report"
)

// NewConvertCommand creates the "convert" subcommand.
func NewConvertCommand() *cobra.Command {
	var (
		projectRoot string
		outputDir   string
		input       string
		format      string
		commandName string
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Write coverage.xml from collected coverage data.",
		Long: `Convert collected coverage data into a Cobertura XML report.

The input is read from the configured collector output:
  simplecov  {output_dir}/.resultset.json
  gcovr      {output_dir}/coverage.json  (gcovr --json -r {project_root})

The report is written atomically to {output_dir}/coverage.xml.

Configuration:
  Values are read from configs/config.yaml (or --config) under 'report'.
  COBERTURA_* environment variables override the file, flags override both.

Examples:
  # Convert SimpleCov results using defaults
  cobertura convert

  # Convert a gcovr report for a CMake project
  cobertura convert --format gcovr --input build/coverage.json --output-dir build/coverage

  # Pick one command out of a merged result set
  cobertura convert --command-name RSpec`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			flags := cmd.Flags()
			if flags.Changed("project-root") {
				cfg.Report.ProjectRoot = projectRoot
			}
			if flags.Changed("output-dir") {
				cfg.Report.OutputDir = outputDir
			}
			if flags.Changed("input") {
				cfg.Report.Input = input
			}
			if flags.Changed("format") {
				cfg.Report.Format = format
			}
			if flags.Changed("command-name") {
				cfg.Report.CommandName = commandName
			}
			if level, _ := cmd.Flags().GetString("log-level"); level != "" {
				cfg.Log.Level = level
			}

			if err := cfg.Resolve(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			logger.SetLevel(cfg.Log.Level)

			rc := cfg.Report
			logger.Debug("reading %s coverage from %s", rc.Format, rc.Input)
			result, err := coverage.Load(coverage.Format(rc.Format), rc.Input, rc.ProjectRoot, rc.CommandName)
			if err != nil {
				return fmt.Errorf("failed to load coverage: %w", err)
			}
			result.Groups = coverage.GroupFiles(rc.ProjectRoot, result.Files, rc.Groups)
			logger.Info("loaded %d files for %s", len(result.Files), result.CommandName)

			reporter := report.NewCoberturaReporter(report.Options{
				ProjectRoot: rc.ProjectRoot,
				OutputDir:   rc.OutputDir,
			}, cmd.OutOrStdout(), logger.Default())

			if _, err := reporter.Format(result); err != nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRoot, "project-root", "", "Project root directory reported paths are relative to")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory receiving coverage.xml")
	cmd.Flags().StringVarP(&input, "input", "i", "", "Coverage data file")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Input format: simplecov or gcovr")
	cmd.Flags().StringVar(&commandName, "command-name", "", "Test command to select (simplecov) or name (gcovr)")

	return cmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.LoadFile(path)
	}
	return config.LoadConfig()
}

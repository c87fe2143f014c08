// Package cli wires the laptopspecs commands with cobra.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/laptop-specs/internal/common"
	"github.com/joseph-ayodele/laptop-specs/internal/metrics"
	"github.com/joseph-ayodele/laptop-specs/internal/schema"
)

const serviceName = "laptopspecs"

// app carries what every command needs once the root pre-run has loaded it.
type app struct {
	configPath string
	logLevel   string

	cfg     *common.Config
	logger  *slog.Logger
	metrics *metrics.BatchMetrics

	stdout io.Writer
	stderr io.Writer
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   serviceName,
		Short: "laptopspecs - extract structured laptop specifications from vendor datasheets",
		Long: `laptopspecs reads vendor PDF datasheets (and saved product pages), extracts
their specifications with a rule table, normalizes the records, validates them
against the laptop specification schema and writes flat JSON files for the
prompt-assembly layer.

Usage:
  laptopspecs run [flags]
  laptopspecs extract --dir data/pdfs`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.flushMetrics()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML or TOML config file (env vars override it)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug|info|warn|error (default from LOG_LEVEL or config)")

	root.AddCommand(
		newExtractCmd(a),
		newNormalizeCmd(a),
		newValidateCmd(a),
		newListingsCmd(a),
		newMergeCmd(a),
		newReportCmd(a),
		newExportCmd(a),
		newSchemaCmd(a),
		newRunCmd(a),
	)
	return root
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := common.LoadConfigFile(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = strings.ToLower(a.logLevel)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.stdout = cmd.OutOrStdout()
	a.stderr = cmd.ErrOrStderr()
	// stdout carries command output (reports, schema); logs go to stderr
	a.logger = common.NewLogger(a.stderr, serviceName, cfg.Log.Level)
	a.metrics = metrics.NewBatchMetrics(serviceName)

	cmd.SetContext(common.WithLogger(cmd.Context(), a.logger))
	a.logger.Debug("config.loaded",
		"config_file", a.configPath,
		"pdf_dir", cfg.Paths.PDFDir,
		"output_dir", cfg.Paths.OutputDir,
		"workers", cfg.Extract.Workers,
	)
	return nil
}

func (a *app) flushMetrics() error {
	if a.cfg == nil || a.cfg.Paths.MetricsFile == "" {
		return nil
	}
	if err := a.metrics.WriteTextfile(a.cfg.Paths.MetricsFile); err != nil {
		return err
	}
	a.logger.Debug("metrics.written", "path", a.cfg.Paths.MetricsFile)
	return nil
}

// loadSchema returns the schema file given by flag or config, else the embedded one.
func (a *app) loadSchema(path string) (*schema.Schema, error) {
	if path == "" {
		path = a.cfg.Paths.SchemaFile
	}
	if path == "" {
		return schema.Default()
	}
	s, err := schema.Load(path)
	if err != nil {
		return nil, common.NewAppError("SCHEMA_ERROR", "load schema", err)
	}
	return s, nil
}

func pick(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tordrt/coddschema"
	"github.com/tordrt/coddschema/internal/config"
	"github.com/tordrt/coddschema/internal/logger"
	"github.com/tordrt/coddschema/internal/normalize"
)

// flagKeys maps command-line flags to configuration keys
var flagKeys = map[string]string{
	"target":           "target",
	"require-legal":    "require_legal",
	"require-lossless": "require_lossless",
	"format":           "format",
	"output":           "output",
	"output-dir":       "output_dir",
	"log-level":        "log.level",
	"log-json":         "log.json",
	"schema":           "database.schema",
	"tables":           "database.tables",
	"exclude":          "database.exclude",
}

// app carries state from the root pre-run into subcommands
type app struct {
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "coddschema",
		Short: "Normalize relational schemas with functional dependencies",
		Long: `coddschema derives minimal covers, candidate keys and normal forms for relations
and decomposes them until a target normal form is reached. Relations come from
YAML/JSON documents, the line format on stdin, or a PostgreSQL, MySQL or SQLite
database.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Configuration file (YAML)")
	flags.String("log-level", "info", "Log level: debug, info, warn, error or disabled")
	flags.Bool("log-json", false, "Log as JSON")
	flags.String("target", "BCNF", "Target normal form: 1NF, 2NF, 3NF or BCNF")
	flags.Bool("require-legal", false, "Only apply decompositions that preserve dependencies")
	flags.Bool("require-lossless", false, "Only apply lossless decompositions")
	flags.StringP("format", "f", "text", "Output format: text, markdown or styled")
	flags.StringP("output", "o", "", "Output file (default: stdout)")
	flags.StringP("output-dir", "d", "", "Output directory for multi-file output")

	rootCmd.AddCommand(newAnalyzeCmd(a), newImportCmd(a))
	return rootCmd
}

// setup loads the configuration and installs the logger on the command context
func (a *app) setup(cmd *cobra.Command) error {
	overrides := make(map[string]any)
	cmd.Flags().Visit(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}
		if key == "database.tables" || key == "database.exclude" {
			overrides[key] = parseTableList(f.Value.String())
			return
		}
		overrides[key] = f.Value.String()
	})

	cfg, err := config.Load(a.configPath, overrides)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	logCfg.JSON = cfg.Log.JSON
	logCfg.Output = cmd.ErrOrStderr()
	log := logger.NewLogger(logCfg)
	cmd.SetContext(logger.ContextWithLogger(cmd.Context(), log))

	log.Debug("configuration loaded",
		"target", cfg.Target.String(),
		"format", cfg.Format,
		"config", a.configPath)
	return nil
}

func (a *app) options() *coddschema.Options {
	return &coddschema.Options{
		Target:          a.cfg.Target,
		RequireLegal:    a.cfg.RequireLegal,
		RequireLossless: a.cfg.RequireLossless,
		Tables:          a.cfg.Database.Tables,
		ExcludeTables:   a.cfg.Database.Exclude,
		SchemaName:      a.cfg.Database.Schema,
	}
}

// report normalizes rels and writes the configured output
func (a *app) report(cmd *cobra.Command, rels []*normalize.Relation) error {
	ctx := cmd.Context()
	logger.FromContext(ctx).Info("normalizing relations", "count", len(rels), "target", a.cfg.Target.String())

	trees, err := coddschema.NormalizeAll(ctx, rels, a.options())
	if err != nil {
		return err
	}

	outOpts := &coddschema.OutputOptions{
		Format:    a.cfg.Format,
		OutputDir: a.cfg.OutputDir,
	}
	var writer io.Writer = cmd.OutOrStdout()
	if a.cfg.Output != "" {
		f, err := os.Create(a.cfg.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				logger.FromContext(ctx).Warn("failed to close output file", "error", err)
			}
		}()
		writer = f
	}
	outOpts.Writer = writer

	if err := coddschema.FormatTrees(trees, outOpts); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	return nil
}

// parseTableList splits a comma-separated flag value, dropping blanks
func parseTableList(s string) []string {
	var tables []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tables = append(tables, t)
		}
	}
	return tables
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

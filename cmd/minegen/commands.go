package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lucasvr/synthetic-mine-maker/internal/config"
	"github.com/lucasvr/synthetic-mine-maker/internal/export"
	"github.com/lucasvr/synthetic-mine-maker/internal/mine"
	"github.com/lucasvr/synthetic-mine-maker/internal/observability"
	"github.com/lucasvr/synthetic-mine-maker/internal/pipeline"
	"github.com/lucasvr/synthetic-mine-maker/internal/random"
	"github.com/lucasvr/synthetic-mine-maker/internal/report"
)

const (
	exitFailure = 1
	exitUsage   = 2
)

// usageError marks bad invocations; they exit like configuration errors.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

func exitCode(err error) int {
	var ue usageError
	if errors.As(err, &ue) || errors.Is(err, config.ErrConfiguration) {
		return exitUsage
	}
	return exitFailure
}

type runOptions struct {
	configPath  string
	outputDir   string
	outputType  string
	seed        uint64
	metricsFile string
}

func (o *runOptions) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.configPath, "config", "c", "", "run configuration file (required)")
	fs.StringVarP(&o.outputDir, "output", "o", "", "output directory (required)")
	fs.StringVarP(&o.outputType, "type", "t", "wkt", "output type: "+joinNames())
	fs.Uint64Var(&o.seed, "seed", 0, "random seed; 0 draws a fresh one")
	fs.StringVar(&o.metricsFile, "metrics-file", "", "write run metrics in prometheus text format")
}

func newRootCmd() *cobra.Command {
	opts := &runOptions{}
	root := &cobra.Command{
		Use:           "minegen",
		Short:         "Generate synthetic multi-floor mine datasets",
		Long:          "minegen samples a floor count, splits shape and drill hole totals across floors,\nand writes one geometry artifact per floor into the output directory.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("unexpected argument %q", args[0])
			}
			return nil
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			observability.InitLogger("minegen")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}
	opts.bind(root.Flags())
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	root.AddCommand(newInitCmd(), newValidateCmd())
	return root
}

func runGenerate(cmd *cobra.Command, opts *runOptions) error {
	if opts.configPath == "" {
		return usagef("--config is required")
	}
	if opts.outputDir == "" {
		return usagef("--output is required")
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("type") {
		cfg.OutputType = opts.outputType
	}
	if flags.Changed("seed") {
		cfg.Seed = opts.seed
	}

	exp, err := cfg.Exporter(export.NewDefaultRegistry())
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		if seed, err = random.NewSeed(); err != nil {
			return err
		}
	}
	log.Info().Uint64("seed", seed).Str("config", opts.configPath).Str("output_type", cfg.OutputType).Msg("minegen.run starting")

	src := random.New(seed)
	samplers, err := cfg.Samplers(src)
	if err != nil {
		return err
	}
	gen, err := mine.NewGenerator(cfg.MineConfig(), samplers, src)
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrConfiguration, err)
	}

	observability.RegisterMetrics()
	summary, runErr := pipeline.Run(cfg.Settings(opts.outputDir), pipeline.Components{
		Random:    src,
		Generator: gen,
		Exporter:  exp,
	})
	if opts.metricsFile != "" {
		if err := observability.WriteTextfile(opts.metricsFile); err != nil {
			log.Warn().Err(err).Str("path", opts.metricsFile).Msg("minegen.run metrics not written")
		}
	}
	if runErr != nil {
		return runErr
	}

	manifest := report.NewManifest(summary, seed, cfg.OutputType, opts.configPath)
	if err := report.WriteManifest(opts.outputDir, manifest); err != nil {
		return err
	}
	return report.Print(cmd.OutOrStdout(), summary)
}

func newInitCmd() *cobra.Command {
	var path string
	var force, stdout bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if stdout {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.Template())
				return err
			}
			if err := config.WriteTemplate(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote config template to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "output", "o", "minegen.toml", "path of the new config file")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "print the template instead of writing a file")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load a configuration and build its samplers without generating",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				return usagef("--config is required")
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if _, err := cfg.Exporter(export.NewDefaultRegistry()); err != nil {
				return err
			}
			if _, err := cfg.Samplers(random.New(1)); err != nil {
				return err
			}
			if err := cfg.MineConfig().Validate(); err != nil {
				return fmt.Errorf("%w: %w", config.ErrConfiguration, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"config ok: %s (output %s, floors [%v, %v), shapes [%v, %v), drill holes [%v, %v))\n",
				path, cfg.OutputType,
				cfg.Floors.Min, cfg.Floors.Max,
				cfg.Shapes.Min, cfg.Shapes.Max,
				cfg.DrillHoles.Min, cfg.DrillHoles.Max)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "config", "c", "", "configuration file (required)")
	return cmd
}

func joinNames() string {
	return strings.Join(export.NewDefaultRegistry().Names(), "|")
}

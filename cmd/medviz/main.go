package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"medviz/app"
	"medviz/internal"
	"medviz/internal/config"
	"medviz/internal/errors"
	"medviz/internal/profiling"
	"medviz/internal/testkit"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// flag overrides shared by every command that reads the table
type globalFlags struct {
	input     string
	delimiter string
	outputDir string
	quantile  string
	logLevel  string
}

func main() {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:   "medviz",
		Short: "Draw risk-factor and correlation figures from medical examination data",
		Long: `medviz reads a medical examination table, derives an overweight flag,
normalizes cholesterol and glucose to good/bad, and draws two figures:

  catplot.png   counts of each risk factor split by cardio status
  heatmap.png   lower-triangular correlation matrix of the cleaned cohort

Settings come from the environment (or a .env file) and can be overridden
with flags:

  MEDVIZ_INPUT, MEDVIZ_DELIMITER, MEDVIZ_OUTPUT_DIR, MEDVIZ_CATPLOT_FILE,
  MEDVIZ_HEATMAP_FILE, MEDVIZ_QUANTILE_METHOD, LOG_LEVEL, LOG_FORMAT

Example: medviz render --input medical_examination.csv --output-dir figures`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), flags, renderBoth)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.input, "input", "i", "", "Input table (.csv or .xlsx)")
	pf.StringVar(&flags.delimiter, "delimiter", "", "Field delimiter; sniffed from the header when empty")
	pf.StringVarP(&flags.outputDir, "output-dir", "o", "", "Directory figures are written to")
	pf.StringVar(&flags.quantile, "quantile-method", "", "Quantile method for the outlier filter: linear, nearest-rank or empirical")
	pf.StringVar(&flags.logLevel, "log-level", "", "ERROR, WARN, INFO, DEBUG or TRACE")

	rootCmd.AddCommand(
		newRenderCmd(&flags, "render", "Draw both figures", renderBoth),
		newRenderCmd(&flags, "catplot", "Draw only the risk-factor count figure", renderCatPlot),
		newRenderCmd(&flags, "heatmap", "Draw only the correlation heatmap", renderHeatMap),
		newDescribeCmd(&flags),
		newGenerateCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error [%s]: %v\n", errors.GetCode(err), err)
		os.Exit(1)
	}
}

type renderTarget int

const (
	renderBoth renderTarget = iota
	renderCatPlot
	renderHeatMap
)

func newRenderCmd(flags *globalFlags, use, short string, target renderTarget) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), *flags, target)
		},
	}
}

func newDescribeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Print summary statistics of every derived column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(*flags)
			if err != nil {
				return err
			}
			defer logger.Sync()

			v, err := app.Load(cfg, logger)
			if err != nil {
				return err
			}
			summaries, err := v.Describe()
			if err != nil {
				return err
			}
			printSummaries(v.Table().Source, v.Table().Len(), summaries)
			return nil
		},
	}
}

func newGenerateCmd() *cobra.Command {
	var out string
	var delimiter string
	gen := testkit.DefaultExamConfig()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic examination table",
		Long: `Write a deterministic synthetic examination table in the input format.

Example: medviz generate --patients 5000 --seed 7 --out medical_examination.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			delim := []rune(delimiter)
			if len(delim) != 1 {
				return errors.ConfigInvalid("delimiter must be a single character")
			}
			if gen.PatientCount <= 0 {
				return errors.ConfigInvalid("patients must be positive")
			}

			f, err := os.Create(out)
			if err != nil {
				return errors.IOError(out, err)
			}
			table := testkit.NewExamGenerator(gen).Generate()
			if err := testkit.WriteCSV(f, table, delim[0]); err != nil {
				f.Close()
				return errors.IOError(out, err)
			}
			if err := f.Close(); err != nil {
				return errors.IOError(out, err)
			}
			color.Green("✓ Wrote %d examinations to %s", table.Len(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "medical_examination.csv", "Output file")
	cmd.Flags().StringVar(&delimiter, "delimiter", ";", "Field delimiter")
	cmd.Flags().IntVarP(&gen.PatientCount, "patients", "n", gen.PatientCount, "Number of patients")
	cmd.Flags().Int64Var(&gen.Seed, "seed", gen.Seed, "Random seed for deterministic output")
	cmd.Flags().Float64Var(&gen.CardioRate, "cardio-rate", gen.CardioRate, "Share of patients with cardiovascular disease")
	cmd.Flags().Float64Var(&gen.InvertedBPRate, "inverted-bp-rate", gen.InvertedBPRate, "Share of rows with diastolic above systolic")
	cmd.Flags().Float64Var(&gen.ExtremeHeightRate, "extreme-height-rate", gen.ExtremeHeightRate, "Share of rows with implausible heights")

	return cmd
}

func loadConfig(flags globalFlags) (*config.Config, *internal.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if flags.input != "" {
		cfg.Data.InputFile = flags.input
	}
	if flags.delimiter != "" {
		cfg.Data.Delimiter = flags.delimiter
	}
	if flags.outputDir != "" {
		cfg.Output.Dir = flags.outputDir
	}
	if flags.quantile != "" {
		cfg.Cohort.QuantileMethod = strings.ToLower(flags.quantile)
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return nil, nil, err
	}

	logger := internal.NewLoggerWithFormat(internal.ParseLogLevel(cfg.Logging.Level), cfg.Logging.Format)
	return cfg, logger, nil
}

func runRender(ctx context.Context, flags globalFlags, target renderTarget) error {
	cfg, logger, err := loadConfig(flags)
	if err != nil {
		return err
	}
	defer logger.Sync()

	v, err := app.Load(cfg, logger)
	if err != nil {
		return err
	}

	var paths []string
	switch target {
	case renderCatPlot:
		fig, err := v.DrawCatPlot(ctx)
		if err != nil {
			return err
		}
		paths = append(paths, fig.Path)
	case renderHeatMap:
		fig, err := v.DrawHeatMap(ctx)
		if err != nil {
			return err
		}
		paths = append(paths, fig.Path)
	default:
		figs, err := v.DrawAll(ctx)
		if err != nil {
			return err
		}
		paths = append(paths, figs.CatPlot.Path, figs.HeatMap.Path)
	}

	for _, p := range paths {
		color.Green("✓ Wrote %s", p)
	}
	return nil
}

func printSummaries(source string, rows int, summaries []profiling.ColumnSummary) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	bold.Printf("%s: %d rows\n\n", source, rows)
	fmt.Printf("%-12s %8s %10s %10s %9s %9s %9s %9s %9s %8s %8s\n",
		"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max", "skew", "outliers")
	for _, s := range summaries {
		fmt.Printf("%-12s %8d %10.3f %10.3f %9.2f %9.2f %9.2f %9.2f %9.2f %8.3f %s\n",
			s.Column, s.Count, s.Mean, s.StdDev, s.Min, s.Q25, s.Median, s.Q75, s.Max, s.Skewness,
			faint.Sprintf("%8d", s.Outliers))
	}
}

package app

import (
	"context"
	"time"

	"medviz/adapters/excel"
	"medviz/domain/core"
	"medviz/domain/exam"
	"medviz/internal"
	"medviz/internal/analysis"
	"medviz/internal/config"
	"medviz/internal/derive"
	"medviz/internal/errors"
	"medviz/internal/profiling"
	"medviz/internal/render"

	"golang.org/x/sync/errgroup"
)

// Visualizer owns a derived examination table and renders both figures
// from it. The table is never modified, so the draw methods are safe to
// call repeatedly and concurrently.
type Visualizer struct {
	table   *exam.Table
	config  *config.Config
	logger  *internal.Logger
	runID   core.RunID
	method  analysis.QuantileMethod
	catOpts render.CatPlotOptions
	heatOpt render.HeatMapOptions
}

// Figures holds the handles of a full run
type Figures struct {
	CatPlot *render.Figure
	HeatMap *render.Figure
}

// Load reads the configured input, derives the table and returns a ready Visualizer
func Load(cfg *config.Config, logger *internal.Logger) (*Visualizer, error) {
	start := time.Now()
	delim, err := delimiterRune(cfg.Data.Delimiter)
	if err != nil {
		return nil, err
	}

	raw, err := excel.ReadExaminations(excel.ReaderConfig{
		FilePath:  cfg.Data.InputFile,
		Delimiter: delim,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", cfg.Data.InputFile)
	}

	table, err := derive.Derive(raw)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive examination table")
	}

	v, err := NewVisualizer(table, cfg, logger)
	if err != nil {
		return nil, err
	}
	v.logger.Info("loaded %d examinations from %s in %s", table.Len(), cfg.Data.InputFile, time.Since(start).Round(time.Millisecond))
	if logger != nil && logger.GetLevel() >= internal.LogLevelDebug {
		v.logSummaries()
	}
	return v, nil
}

// NewVisualizer wraps an already derived table
func NewVisualizer(table *exam.Table, cfg *config.Config, logger *internal.Logger) (*Visualizer, error) {
	if table == nil {
		return nil, errors.InvalidInput("visualizer needs a derived table")
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	method, err := analysis.ParseQuantileMethod(cfg.Cohort.QuantileMethod)
	if err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, err)
	}

	runID := core.NewRunID()
	return &Visualizer{
		table:   table,
		config:  cfg,
		logger:  logger.With("run_id", runID.String()),
		runID:   runID,
		method:  method,
		catOpts: render.DefaultCatPlotOptions(),
		heatOpt: render.DefaultHeatMapOptions(),
	}, nil
}

// RunID identifies this visualizer's log lines
func (v *Visualizer) RunID() core.RunID { return v.runID }

// Table returns the derived table
func (v *Visualizer) Table() *exam.Table { return v.table }

// DrawCatPlot renders the risk-factor counts split by cardio status and
// writes them to the configured catplot path.
func (v *Visualizer) DrawCatPlot(ctx context.Context) (*render.Figure, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	long := analysis.Melt(v.table.Rows)
	counts := analysis.CountFeatures(long)
	v.logger.Debug("catplot: %d long-form rows, %d cardio levels", len(long), len(counts.CardioLevels))

	fig, err := render.CatPlot(counts, v.catOpts)
	if err != nil {
		return nil, errors.Wrap(err, "catplot")
	}
	return v.save(ctx, fig, v.config.CatPlotPath())
}

// DrawHeatMap renders the lower-triangular correlation matrix of the
// outlier-free cohort and writes it to the configured heatmap path.
func (v *Visualizer) DrawHeatMap(ctx context.Context) (*render.Figure, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cohort, filter, err := analysis.FilterCohort(v.table.Rows, v.method)
	if err != nil {
		return nil, errors.Wrap(err, "heatmap cohort")
	}
	v.logger.Info("heatmap: kept %d of %d rows (height %.1f..%.1f, weight %.1f..%.1f, %s quantiles, cohort %s)",
		len(cohort), v.table.Len(), filter.HeightLow, filter.HeightHigh, filter.WeightLow, filter.WeightHigh,
		filter.Method, core.Hash(core.ComputeCohortHash(analysis.IDs(cohort))).Short())
	for name, n := range filter.Rejections(v.table.Rows) {
		v.logger.Trace("heatmap: predicate %s rejects %d rows", name, n)
	}

	corr, err := analysis.Correlate(cohort)
	if err != nil {
		return nil, errors.Wrap(err, "heatmap correlation")
	}

	fig, err := render.HeatMap(corr, analysis.UpperTriangleMask(corr.Size()), v.heatOpt)
	if err != nil {
		return nil, errors.Wrap(err, "heatmap")
	}
	return v.save(ctx, fig, v.config.HeatMapPath())
}

// DrawAll renders both figures concurrently
func (v *Visualizer) DrawAll(ctx context.Context) (*Figures, error) {
	var out Figures
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fig, err := v.DrawCatPlot(gctx)
		out.CatPlot = fig
		return err
	})
	g.Go(func() error {
		fig, err := v.DrawHeatMap(gctx)
		out.HeatMap = fig
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// Describe summarizes every derived column
func (v *Visualizer) Describe() ([]profiling.ColumnSummary, error) {
	return profiling.NewDataProfiler(v.method).DescribeTable(v.table)
}

func (v *Visualizer) logSummaries() {
	summaries, err := v.Describe()
	if err != nil {
		v.logger.Warn("describe failed: %v", err)
		return
	}
	for _, s := range summaries {
		v.logger.Debug("%-12s mean=%.3f std=%.3f min=%.2f p25=%.2f p50=%.2f p75=%.2f max=%.2f outliers=%d",
			s.Column, s.Mean, s.StdDev, s.Min, s.Q25, s.Median, s.Q75, s.Max, s.Outliers)
	}
}

func (v *Visualizer) save(ctx context.Context, fig *render.Figure, path string) (*render.Figure, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := fig.Save(path); err != nil {
		return nil, errors.Wrapf(err, "failed to write %s", path)
	}
	v.logger.Info("wrote %s (%dx%d, sha256 %s)", path, fig.Width, fig.Height, core.Hash(fig.Hash).Short())
	return fig, nil
}

func delimiterRune(s string) (rune, error) {
	r := []rune(s)
	switch len(r) {
	case 0:
		return 0, nil
	case 1:
		return r[0], nil
	}
	return 0, errors.ConfigInvalid("delimiter must be a single character")
}

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"longeda/adapters/csvsource"
	"longeda/adapters/excel"
	"longeda/adapters/sqldb"
	"longeda/adapters/term"
	"longeda/domain/study"
	"longeda/internal"
	"longeda/internal/analysis"
	"longeda/internal/config"
	"longeda/ports"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type options struct {
	input    string
	sheet    string
	dsn      string
	query    string
	subject  string
	time     string
	nominal  string
	actual   string
	by       []string
	outcomes []string
}

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "longeda",
		Short: "Exploratory analysis of longitudinal study data",
		Long: `longeda loads a long-format study table from CSV, Excel, or a SQL
query and prints participation, visit-timing deviation, and stratified
outcome summaries.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
		SilenceUsage: true,
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "", "path to a .csv or .xlsx study file")
	flags.StringVar(&opts.sheet, "sheet", "", "worksheet name for Excel input")
	flags.StringVar(&opts.dsn, "dsn", "", "postgres DSN (alternative to --input)")
	flags.StringVar(&opts.query, "query", "", "SELECT statement to load when using --dsn")
	flags.StringVar(&opts.subject, "subject", "", "subject identifier column (default "+analysis.DefaultSubjectKey+")")
	flags.StringVar(&opts.time, "time", "", "visit time column (default "+analysis.DefaultTimeKey+")")
	flags.StringVar(&opts.nominal, "nominal", "", "nominal (planned) time column, enables deviation analysis")
	flags.StringVar(&opts.actual, "actual", "", "actual (observed) time column, enables deviation analysis")
	flags.StringSliceVar(&opts.by, "by", nil, "structural variables to stratify by, e.g. sex,site")
	flags.StringSliceVar(&opts.outcomes, "outcomes", nil, "outcome columns (default: auto-discover numeric columns)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *options) error {
	// .env is optional; the environment fills in flags the user omitted.
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyConfig(opts, cfg)
	logger := internal.NewDefaultLogger()

	source, cleanup, err := buildSource(opts)
	if err != nil {
		return err
	}
	defer cleanup()

	t, err := source.Load(ctx)
	if err != nil {
		return err
	}
	logger.Debug("table %s ready (%d rows)", t.Name(), t.Len())

	// The analyzers are pure over the immutable table, so they can run
	// concurrently. Rendering happens afterwards, in a fixed order.
	var (
		participation *study.ParticipationSummary
		deviation     *study.DeviationSummary
		structural    *study.StructuralReport
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		participation, err = analysis.NewParticipationAnalyzer(nil).Describe(t, opts.subject, opts.time)
		return err
	})
	if opts.nominal != "" || opts.actual != "" {
		g.Go(func() error {
			var err error
			deviation, err = analysis.NewTimeDeviationAnalyzer(nil).Analyze(t, opts.subject, opts.nominal, opts.actual)
			return err
		})
	}
	if len(opts.by) > 0 {
		g.Go(func() error {
			var err error
			structural, err = analysis.NewStructuralSummarizer(nil).Summarize(t, opts.subject, opts.by, opts.outcomes)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	render(term.NewSink(os.Stdout), opts, participation, deviation, structural)
	return nil
}

// applyConfig fills in options the user left unset. The analyzers
// apply their own column defaults when these stay empty.
func applyConfig(opts *options, cfg *config.Config) {
	if opts.input == "" {
		opts.input = cfg.Input.Path
	}
	if opts.sheet == "" {
		opts.sheet = cfg.Input.Sheet
	}
	if opts.dsn == "" {
		opts.dsn = cfg.Database.DSN
	}
	if opts.query == "" {
		opts.query = cfg.Database.Query
	}
	if opts.subject == "" {
		opts.subject = cfg.Columns.SubjectKey
	}
	if opts.time == "" {
		opts.time = cfg.Columns.TimeKey
	}
	if opts.nominal == "" {
		opts.nominal = cfg.Columns.NominalKey
	}
	if opts.actual == "" {
		opts.actual = cfg.Columns.ActualKey
	}
}

func buildSource(opts *options) (ports.TableSource, func(), error) {
	noop := func() {}
	switch {
	case opts.input != "" && opts.dsn != "":
		return nil, noop, fmt.Errorf("--input and --dsn are mutually exclusive")
	case opts.input != "":
		switch strings.ToLower(filepath.Ext(opts.input)) {
		case ".csv":
			return csvsource.New(opts.input), noop, nil
		case ".xlsx", ".xls":
			return excel.NewWithSheet(opts.input, opts.sheet), noop, nil
		default:
			return nil, noop, fmt.Errorf("unsupported input extension: %s", opts.input)
		}
	case opts.dsn != "":
		if opts.query == "" {
			return nil, noop, fmt.Errorf("--dsn requires --query")
		}
		db, err := sqlx.Connect("postgres", opts.dsn)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to connect to database: %w", err)
		}
		return sqldb.New(db, opts.query, "study"), func() { db.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("either --input or --dsn is required")
	}
}

func render(sink *term.Sink, opts *options, participation *study.ParticipationSummary, deviation *study.DeviationSummary, structural *study.StructuralReport) {
	if participation != nil {
		sink.RenderMetrics("Participation summary", participation.Metrics())
		sink.RenderMatrix("Participation (subjects x time points)", participation.Subjects, participation.TimePoints, participation.Matrix)
		sink.RenderDistribution("Visits per subject", participation.VisitCounts)
	}
	if deviation != nil {
		sink.RenderMetrics("Time deviation", deviation.Metrics())
		sink.RenderTable("Deviation by nominal time", analysis.DeviationTable(opts.nominal, deviation))
		sink.RenderDistribution("Deviation distribution", deviation.Deviations)
	}
	if structural != nil {
		for _, v := range structural.Vars {
			sink.RenderTable(fmt.Sprintf("Summary by %s", v), structural.Tables[v].Rounded())
		}
	}
}

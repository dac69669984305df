// Package main provides the CLI entrypoint for dictstat.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/dictstat/internal/config"
	"github.com/verte-zerg/dictstat/internal/history"
	"github.com/verte-zerg/dictstat/internal/lexicon"
	"github.com/verte-zerg/dictstat/internal/logger"
	"github.com/verte-zerg/dictstat/internal/model"
	"github.com/verte-zerg/dictstat/internal/pipeline"
	"github.com/verte-zerg/dictstat/internal/stats"
	"github.com/verte-zerg/dictstat/internal/statsui"
	"github.com/verte-zerg/dictstat/internal/store"
)

const reportPlotHeight = 8

var (
	flagSince    string
	flagMode     string
	flagLast     int
	flagHistory  string
	flagNoSync   bool
	flagLogLevel string

	reportWidth int
	reportColor bool

	importFile string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dictstat",
		Short:         "Analytics for your dictation history",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runDashboardCmd,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagSince, "since", "", "only sessions on or after this date (YYYY-MM-DD)")
	pf.StringVar(&flagMode, "mode", "", "only sessions of this mode (transcribe, greppy, cleanup, plan)")
	pf.IntVar(&flagLast, "last", 0, "limit to last N sessions")
	pf.StringVar(&flagHistory, "history", "", "history file (default from config or ~/.vibetotext/history.json)")
	pf.BoolVar(&flagNoSync, "no-sync", false, "report from the archive without reading the history file")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// app holds everything a command needs after config and flags are resolved.
type app struct {
	cfg      model.Config
	statsCfg model.StatsConfig
	store    *store.Store
	pipe     *pipeline.Pipeline
	// logFile is set when logs go to the state dir; closed last.
	logFile io.Closer
}

func (a *app) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			logger.Get().Warn().Err(err).Msg("failed to close db")
		}
	}
	closeLogFile(a.logFile)
	a.logFile = nil
}

func closeLogFile(f io.Closer) {
	if f == nil {
		return
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
	}
}

// loadSettings merges defaults, the config file and flags, in that order.
func loadSettings(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := fileCfg.Apply(config.Defaults())
	applyStringFlag(cmd, "history", &cfg.HistoryPath, config.ExpandHome(flagHistory))
	applyStringFlag(cmd, "log-level", &cfg.LogLevel, strings.ToLower(flagLogLevel))
	if err := config.Validate(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func applyStringFlag(cmd *cobra.Command, name string, target *string, value string) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

// setup resolves settings, starts logging and opens the archive. logFile
// sends logs to the state dir instead of stderr.
func setup(cmd *cobra.Command, logFile bool) (a *app, err error) {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	logCloser, err := initLogger(cfg, logFile)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			closeLogFile(logCloser)
		}
	}()
	loc, err := config.Location(cfg)
	if err != nil {
		return nil, err
	}
	statsCfg, err := buildStatsConfig(cfg, loc)
	if err != nil {
		return nil, err
	}
	lex := lexicon.Default()
	if cfg.CommonWordsFile != "" {
		words, err := lexicon.LoadWords(cfg.CommonWordsFile, lexicon.FilterForLang("en"))
		if err != nil {
			return nil, fmt.Errorf("failed to load common words: %w", err)
		}
		lex = lex.WithCommonWords(words)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	pipe := pipeline.New(st, stats.NewAggregator(lex), cfg.HistoryPath, loc)
	pipe.NoSync = flagNoSync
	logger.Get().Debug().
		Str("history", cfg.HistoryPath).
		Str("db", config.DefaultDBPath()).
		Str("timezone", loc.String()).
		Msg("settings resolved")
	return &app{cfg: cfg, statsCfg: statsCfg, store: st, pipe: pipe, logFile: logCloser}, nil
}

// initLogger returns the opened log file, or nil when logs go to stderr.
func initLogger(cfg model.Config, logFile bool) (io.Closer, error) {
	opts := logger.FromEnv()
	if opts.Level == "" {
		opts.Level = cfg.LogLevel
	}
	if !logFile {
		logger.Init(opts)
		return nil, nil
	}
	path := config.DefaultLogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	opts.Writer = f
	logger.Init(opts)
	return f, nil
}

// buildStatsConfig validates the filter flags. Dates are read in loc.
func buildStatsConfig(cfg model.Config, loc *time.Location) (model.StatsConfig, error) {
	var since *time.Time
	if flagSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", flagSince, loc)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		since = &parsed
	}
	if flagLast < 0 {
		return model.StatsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	return model.StatsConfig{
		Since:      since,
		Mode:       model.Mode(strings.ToLower(strings.TrimSpace(flagMode))),
		Last:       flagLast,
		DailyGoal:  cfg.DailyGoal,
		WeeklyGoal: cfg.WeeklyGoal,
		TopWords:   cfg.TopWords,
	}, nil
}

func runDashboardCmd(cmd *cobra.Command, args []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return runReportCmd(cmd, args)
	}
	a, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ui := statsui.NewModel(a.pipe, a.statsCfg, statsui.Options{
		Refresh:  time.Duration(a.cfg.RefreshSeconds) * time.Second,
		Location: a.pipe.Location(),
	})
	program := tea.NewProgram(ui, tea.WithAltScreen(), tea.WithContext(ctx))

	if a.cfg.Watch && !flagNoSync {
		go func() {
			err := history.Watch(ctx, a.cfg.HistoryPath, history.DefaultDebounce, func() {
				program.Send(statsui.HistoryChangedMsg{})
			})
			if err != nil {
				logger.Named("history").Warn().Err(err).Msg("history watcher stopped")
			}
		}()
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the full report as plain text",
		Args:  cobra.NoArgs,
		RunE:  runReportCmd,
	}
	cmd.Flags().IntVar(&reportWidth, "width", 0, "plot width in columns (default: terminal width)")
	cmd.Flags().BoolVar(&reportColor, "color", false, "force colored plots")
	return cmd
}

func runReportCmd(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.pipe.Report(cmd.Context(), a.statsCfg, time.Now())
	if err != nil {
		return err
	}
	opts := stats.RenderOptions{Width: reportWidth, PlotHeight: reportPlotHeight, Color: reportColor}
	if err := stats.RenderReport(cmd.OutOrStdout(), report, opts); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the analytics snapshot as JSON",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
}

type exportFilters struct {
	Since *time.Time `json:"since,omitempty"`
	Mode  string     `json:"mode,omitempty"`
	Last  int        `json:"last,omitempty"`
}

type exportDoc struct {
	GeneratedAt time.Time      `json:"generatedAt"`
	Filters     exportFilters  `json:"filters"`
	Snapshot    stats.Snapshot `json:"snapshot"`
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.pipe.Report(cmd.Context(), a.statsCfg, time.Now())
	if err != nil {
		return err
	}
	return writeExport(cmd.OutOrStdout(), report)
}

func writeExport(w io.Writer, report stats.Report) error {
	doc := exportDoc{
		GeneratedAt: report.GeneratedAt,
		Filters: exportFilters{
			Since: report.Config.Since,
			Mode:  string(report.Config.Mode),
			Last:  report.Config.Last,
		},
		Snapshot: report.Snapshot,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy new history entries into the archive",
		Args:  cobra.NoArgs,
		RunE:  runImportCmd,
	}
	cmd.Flags().StringVar(&importFile, "file", "", "history file to import (default: --history)")
	return cmd
}

func runImportCmd(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("file") {
		flagHistory = importFile
		if err := cmd.Flags().Set("history", importFile); err != nil {
			return fmt.Errorf("failed to apply --file: %w", err)
		}
	}
	a, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer a.Close()

	run, err := a.pipe.Sync(cmd.Context())
	if err != nil {
		return err
	}
	total, err := a.store.CountSessions(cmd.Context())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %s new sessions from %s (%s read, %s skipped, %s archived)\n",
		stats.FormatInt(run.Inserted), a.cfg.HistoryPath, stats.FormatInt(run.Seen), stats.FormatInt(run.Skipped), stats.FormatInt(total))
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

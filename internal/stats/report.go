package stats

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/verte-zerg/dictstat/internal/model"
)

// SessionSource supplies the records a report is built from.
type SessionSource interface {
	ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionRecord, error)
}

// Report pairs a snapshot with the inputs it was computed from.
type Report struct {
	Config      model.StatsConfig
	GeneratedAt time.Time
	Records     int
	Snapshot    Snapshot
	// Recent holds up to RecentLimit records, newest first.
	Recent []model.SessionRecord
}

// BuildReport loads records from src and aggregates them with the default lexicon.
func BuildReport(ctx context.Context, src SessionSource, cfg model.StatsConfig, now time.Time) (Report, error) {
	return NewAggregator(nil).BuildReport(ctx, src, cfg, now)
}

// BuildReport loads records from src and aggregates them.
func (a *Aggregator) BuildReport(ctx context.Context, src SessionSource, cfg model.StatsConfig, now time.Time) (Report, error) {
	records, err := src.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list sessions: %w", err)
	}
	if cfg.Last > 0 && len(records) > cfg.Last {
		records = records[len(records)-cfg.Last:]
	}
	return Report{
		Config:      cfg,
		GeneratedAt: now,
		Records:     len(records),
		Snapshot:    a.Aggregate(records, now),
		Recent:      RecentSessions(records),
	}, nil
}

// RenderOptions sizes the plain text report.
type RenderOptions struct {
	Width      int
	PlotHeight int
	Color      bool
}

// RenderReport writes every section of the report.
func RenderReport(w io.Writer, r Report, opts RenderOptions) error {
	snap := r.Snapshot
	if snap.Sessions == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	sections := []func() error{
		func() error { return RenderSummary(w, snap) },
		func() error { return RenderGoals(w, snap, r.Config.DailyGoal, r.Config.WeeklyGoal) },
		func() error { return RenderPeriodComparison(w, snap) },
		func() error { return RenderHeatmap(w, snap) },
		func() error { return RenderCalendar(w, snap, r.GeneratedAt) },
		func() error { return RenderHourly(w, snap) },
		func() error { return RenderDurationHistogram(w, snap) },
		func() error { return RenderTrends(w, snap, opts.Width, opts.PlotHeight, opts.Color) },
		func() error { return RenderFillers(w, snap) },
		func() error { return RenderPhrases(w, snap) },
		func() error { return RenderSentiment(w, snap) },
		func() error { return RenderModes(w, snap) },
		func() error { return RenderVocabulary(w, snap) },
		func() error { return RenderTopWords(w, snap, r.Config.TopWords) },
		func() error { return RenderRecent(w, r.Recent, r.GeneratedAt, opts.Width) },
	}
	for _, render := range sections {
		if err := render(); err != nil {
			return err
		}
	}
	return nil
}

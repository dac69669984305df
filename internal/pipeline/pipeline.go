// Package pipeline syncs the history file into the archive and builds
// reports from it.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/verte-zerg/dictstat/internal/history"
	"github.com/verte-zerg/dictstat/internal/logger"
	"github.com/verte-zerg/dictstat/internal/model"
	"github.com/verte-zerg/dictstat/internal/stats"
	"github.com/verte-zerg/dictstat/internal/store"
)

// Pipeline connects the history file, the store and the aggregator.
type Pipeline struct {
	store       *store.Store
	agg         *stats.Aggregator
	historyPath string
	loc         *time.Location
	// NoSync reports from the archive without reading the history file.
	NoSync bool
}

// New returns a pipeline reading historyPath in loc.
func New(st *store.Store, agg *stats.Aggregator, historyPath string, loc *time.Location) *Pipeline {
	if agg == nil {
		agg = stats.NewAggregator(nil)
	}
	if loc == nil {
		loc = time.Local
	}
	return &Pipeline{store: st, agg: agg, historyPath: historyPath, loc: loc}
}

// Location is the zone used for day keys and naive timestamps.
func (p *Pipeline) Location() *time.Location {
	return p.loc
}

// Sync copies new history entries into the store.
func (p *Pipeline) Sync(ctx context.Context) (store.ImportRun, error) {
	res, err := history.Load(p.historyPath, p.loc)
	if err != nil {
		return store.ImportRun{}, err
	}
	inserted, err := p.store.UpsertSessions(ctx, res.Records)
	if err != nil {
		return store.ImportRun{}, err
	}
	run := store.ImportRun{
		Source:   p.historyPath,
		At:       time.Now(),
		Seen:     len(res.Records),
		Inserted: inserted,
		Skipped:  res.Skipped,
	}
	log := logger.Named("sync")
	if res.Skipped > 0 {
		log.Warn().Int("skipped", res.Skipped).Str("path", p.historyPath).Msg("skipped history entries with unreadable timestamps")
	}
	log.Debug().Int("seen", run.Seen).Int("inserted", inserted).Msg("history synced")
	if inserted > 0 || res.Skipped > 0 {
		if err := p.store.RecordImport(ctx, run); err != nil {
			return run, err
		}
	}
	return run, nil
}

// Report syncs unless NoSync is set, then aggregates the archive as of now.
// now is converted to the pipeline's location.
func (p *Pipeline) Report(ctx context.Context, cfg model.StatsConfig, now time.Time) (stats.Report, error) {
	if !p.NoSync {
		if _, err := p.Sync(ctx); err != nil {
			return stats.Report{}, fmt.Errorf("failed to sync history: %w", err)
		}
	}
	return p.agg.BuildReport(ctx, p.store, cfg, now.In(p.loc))
}

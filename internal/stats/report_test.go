package stats

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/dictstat/internal/model"
	"github.com/verte-zerg/dictstat/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "dictstat.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	var records []model.SessionRecord
	for i := 0; i < 3; i++ {
		records = append(records, model.SessionRecord{
			Timestamp:       base.Add(time.Duration(i) * 24 * time.Hour),
			Text:            "ship the release",
			WordCount:       3,
			DurationSeconds: 2,
			WPM:             model.Float(90),
		})
	}
	if _, err := st.UpsertSessions(ctx, records); err != nil {
		t.Fatalf("upsert sessions: %v", err)
	}

	now := base.Add(2*24*time.Hour + time.Hour)
	report, err := BuildReport(ctx, st, model.StatsConfig{Last: 2}, now)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if report.Records != 2 {
		t.Fatalf("expected 2 records, got %d", report.Records)
	}
	if report.Snapshot.Sessions != 2 {
		t.Fatalf("expected 2 sessions in snapshot, got %d", report.Snapshot.Sessions)
	}
	if report.Snapshot.CurrentStreak != 2 {
		t.Fatalf("expected streak of 2, got %d", report.Snapshot.CurrentStreak)
	}
	if len(report.Recent) != 2 || !report.Recent[0].Timestamp.Equal(records[2].Timestamp) {
		t.Fatalf("expected newest two records first, got %+v", report.Recent)
	}
	if !report.GeneratedAt.Equal(now) {
		t.Fatalf("unexpected generation time: %v", report.GeneratedAt)
	}
}

type failingSource struct{}

func (failingSource) ListSessions(context.Context, model.StatsConfig) ([]model.SessionRecord, error) {
	return nil, errors.New("disk on fire")
}

func TestBuildReportPropagatesSourceErrors(t *testing.T) {
	_, err := BuildReport(context.Background(), failingSource{}, model.StatsConfig{}, time.Now())
	if err == nil {
		t.Fatalf("expected error")
	}
}

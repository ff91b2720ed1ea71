// Package report assembles analytics reports from live or cached data.
package report

import (
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"sync"
	"time"

	"github.com/tempora/tempora/internal/analytics"
	"github.com/tempora/tempora/internal/core/model"
	"github.com/tempora/tempora/internal/data/cache"
	"github.com/tempora/tempora/internal/presentation/formatter"
	"github.com/tempora/tempora/internal/remote"
	"github.com/tempora/tempora/internal/util"
)

// Builder fetches entries and projects, runs the analytics engine, and
// produces a ready-to-format report. When the service is unreachable it
// falls back to the last synced snapshot.
type Builder struct {
	api    remote.API
	cache  *cache.SnapshotCache
	engine *analytics.Engine

	// Results are memoized until the entry set or window changes.
	memoMu sync.Mutex
	memo   map[string]*formatter.Report
}

func NewBuilder(api remote.API, snapshots *cache.SnapshotCache, engine *analytics.Engine) *Builder {
	return &Builder{
		api:    api,
		cache:  snapshots,
		engine: engine,
		memo:   make(map[string]*formatter.Report),
	}
}

// Build produces the report for the trailing windowDays.
func (b *Builder) Build(ctx context.Context, windowDays int) (*formatter.Report, error) {
	entries, projects, offline, age, err := b.fetch(ctx)
	if err != nil {
		return nil, err
	}

	key := memoKey(entries, windowDays, offline)
	b.memoMu.Lock()
	if cached, ok := b.memo[key]; ok {
		b.memoMu.Unlock()
		return cached, nil
	}
	b.memoMu.Unlock()

	filtered := b.engine.FilterWindow(entries, windowDays)
	metrics := b.engine.ComputeMetrics(entries, windowDays)
	insights := b.engine.GenerateInsights(filtered, metrics)

	tp := util.GetTimeProvider()
	names := projectNames(projects)
	rows := make([]formatter.EntryRow, 0, len(filtered))
	for _, entry := range filtered {
		name := names[entry.ProjectID]
		if name == "" {
			name = entry.ProjectID
		}
		rows = append(rows, formatter.EntryRow{
			Date:        tp.DateKey(entry.StartTime),
			Project:     name,
			Duration:    util.FormatDuration(entry.Duration()),
			Description: entry.Description,
		})
	}

	result := &formatter.Report{
		WindowDays:  windowDays,
		GeneratedAt: tp.Now(),
		Offline:     offline,
		SnapshotAge: age,
		Metrics:     metrics,
		Insights:    insights,
		Entries:     rows,
	}

	b.memoMu.Lock()
	b.memo[key] = result
	b.memoMu.Unlock()
	return result, nil
}

// fetch pulls live data and refreshes the snapshot; on remote failure it
// serves the snapshot instead, reporting its age.
func (b *Builder) fetch(ctx context.Context) ([]*model.TimeEntry, []*model.Project, bool, time.Duration, error) {
	entries, err := b.api.ListEntries(ctx)
	if err == nil {
		projects, perr := b.api.ListProjects(ctx)
		if perr != nil {
			util.LogWarnf("Project lookup failed, names will show as ids: %v", perr)
			projects = nil
		}
		if b.cache != nil {
			if serr := b.cache.Save(entries, projects); serr != nil {
				util.LogWarnf("Snapshot save failed: %v", serr)
			}
		}
		return entries, projects, false, 0, nil
	}

	if b.cache != nil {
		if snapshot, ok := b.cache.Load(); ok {
			util.LogWarnf("Remote unavailable, using snapshot from %s ago: %v",
				util.FormatDuration(snapshot.Age()), err)
			return snapshot.Entries, snapshot.Projects, true, snapshot.Age(), nil
		}
	}
	return nil, nil, false, 0, err
}

// memoKey identifies one analytics input: the window plus a digest of every
// entry, so editing or deleting an older entry invalidates the memo even
// when the count and the newest entry are unchanged.
func memoKey(entries []*model.TimeEntry, windowDays int, offline bool) string {
	h := fnv.New64a()
	for _, e := range entries {
		io.WriteString(h, e.ID)
		io.WriteString(h, e.ProjectID)
		io.WriteString(h, e.Description)
		io.WriteString(h, e.StartTime.String())
		if e.EndTime != nil {
			io.WriteString(h, e.EndTime.String())
		}
		fmt.Fprintf(h, "%d|%t\x00", e.DurationSeconds, e.Running)
	}
	return fmt.Sprintf("%d|%t|%x", windowDays, offline, h.Sum64())
}

func projectNames(projects []*model.Project) map[string]string {
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}
	return names
}

package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tempora/tempora/internal/core/model"
)

func sampleData() ([]*model.TimeEntry, []*model.Project) {
	start := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	entries := []*model.TimeEntry{
		{
			ID:              "entry-1",
			ProjectID:       "proj-1",
			Description:     "deep work",
			StartTime:       start,
			EndTime:         &end,
			DurationSeconds: 7200,
		},
	}
	projects := []*model.Project{
		{ID: "proj-1", Name: "Website", Color: "#3b82f6", Active: true},
	}
	return entries, projects
}

func TestSnapshotRoundTrip(t *testing.T) {
	cache, err := NewSnapshotCache(t.TempDir())
	require.NoError(t, err)

	entries, projects := sampleData()
	require.NoError(t, cache.Save(entries, projects))

	snapshot, found := cache.Load()
	require.True(t, found)
	require.Len(t, snapshot.Entries, 1)
	assert.Equal(t, "entry-1", snapshot.Entries[0].ID)
	assert.Equal(t, 7200, snapshot.Entries[0].DurationSeconds)
	require.Len(t, snapshot.Projects, 1)
	assert.Equal(t, "Website", snapshot.Projects[0].Name)
	assert.LessOrEqual(t, snapshot.Age(), time.Minute)
}

func TestLoadReadsFromDiskAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	writer, err := NewSnapshotCache(dir)
	require.NoError(t, err)
	entries, projects := sampleData()
	require.NoError(t, writer.Save(entries, projects))

	// A fresh instance has no memory copy and must hit the file.
	reader, err := NewSnapshotCache(dir)
	require.NoError(t, err)
	snapshot, found := reader.Load()
	require.True(t, found)
	assert.Equal(t, "entry-1", snapshot.Entries[0].ID)
}

func TestLoadMissingSnapshot(t *testing.T) {
	cache, err := NewSnapshotCache(t.TempDir())
	require.NoError(t, err)

	snapshot, found := cache.Load()
	assert.False(t, found)
	assert.Nil(t, snapshot)
}

func TestLoadDiscardsCorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "snapshot.json"), []byte("{not json"), 0644))

	cache, err := NewSnapshotCache(dir)
	require.NoError(t, err)

	_, found := cache.Load()
	assert.False(t, found)
}

func TestClearRemovesDiskAndMemory(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewSnapshotCache(dir)
	require.NoError(t, err)

	entries, projects := sampleData()
	require.NoError(t, cache.Save(entries, projects))
	require.NoError(t, cache.Clear())

	_, found := cache.Load()
	assert.False(t, found)
	_, statErr := os.Stat(filepath.Join(dir, "snapshot.json"))
	assert.True(t, os.IsNotExist(statErr))

	// Clearing an already-empty cache is not an error.
	assert.NoError(t, cache.Clear())
}

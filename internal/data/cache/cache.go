// Package cache persists the last successful sync so reports can run while
// the time-tracking service is unreachable.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/tempora/tempora/internal/core/model"
	"github.com/tempora/tempora/internal/util"
)

const snapshotFile = "snapshot.json"

// Snapshot is one point-in-time view of the remote data.
type Snapshot struct {
	SyncedAt int64              `json:"syncedAt"` // Unix timestamp of the sync
	Entries  []*model.TimeEntry `json:"entries"`
	Projects []*model.Project   `json:"projects"`
}

// Age returns how long ago the snapshot was taken.
func (s *Snapshot) Age() time.Duration {
	return time.Since(time.Unix(s.SyncedAt, 0))
}

// SnapshotCache stores the snapshot as a JSON file under the cache dir, with
// a memory copy so repeated reads in one run skip the disk.
type SnapshotCache struct {
	baseDir string
	mu      sync.RWMutex
	memory  *Snapshot
}

func NewSnapshotCache(baseDir string) (*SnapshotCache, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &SnapshotCache{baseDir: baseDir}, nil
}

// Save replaces the cached snapshot, stamping it with the current time.
func (c *SnapshotCache) Save(entries []*model.TimeEntry, projects []*model.Project) error {
	snapshot := &Snapshot{
		SyncedAt: time.Now().Unix(),
		Entries:  entries,
		Projects: projects,
	}

	data, err := sonic.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	path := filepath.Join(c.baseDir, snapshotFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	c.mu.Lock()
	c.memory = snapshot
	c.mu.Unlock()

	util.LogDebugf("Saved snapshot: %d entries, %d projects", len(entries), len(projects))
	return nil
}

// Load returns the cached snapshot, or found=false when none exists.
func (c *SnapshotCache) Load() (*Snapshot, bool) {
	c.mu.RLock()
	if c.memory != nil {
		snapshot := c.memory
		c.mu.RUnlock()
		return snapshot, true
	}
	c.mu.RUnlock()

	path := filepath.Join(c.baseDir, snapshotFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var snapshot Snapshot
	if err := sonic.Unmarshal(data, &snapshot); err != nil {
		util.LogWarnf("Discarding unreadable snapshot %s: %v", path, err)
		return nil, false
	}

	c.mu.Lock()
	c.memory = &snapshot
	c.mu.Unlock()
	return &snapshot, true
}

// Clear removes the snapshot from disk and memory.
func (c *SnapshotCache) Clear() error {
	c.mu.Lock()
	c.memory = nil
	c.mu.Unlock()

	path := filepath.Join(c.baseDir, snapshotFile)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"grocery-planner/internal/deals"
)

const snapshotPrefix = "deals_"

// DealSnapshotStore keeps fetched deal sets as JSON files, one per week and source.
type DealSnapshotStore struct {
	basePath string
}

// NewDealSnapshotStore creates a new DealSnapshotStore and ensures the base directory exists.
func NewDealSnapshotStore(basePath string) (*DealSnapshotStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &DealSnapshotStore{basePath: basePath}, nil
}

// snapshotPath returns the full path for a given week and source.
func (s *DealSnapshotStore) snapshotPath(weekOf, source string) string {
	filename := fmt.Sprintf("%s%s_%s.json", snapshotPrefix, weekOf, source)
	return filepath.Join(s.basePath, filename)
}

// Save stores a fetch result, replacing any snapshot for the same week and source.
func (s *DealSnapshotStore) Save(res deals.FetchResult) error {
	if res.WeekOf == "" || res.Source == "" {
		return fmt.Errorf("snapshot needs a week and a source")
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal deal snapshot: %w", err)
	}

	if err := os.WriteFile(s.snapshotPath(res.WeekOf, res.Source), data, 0644); err != nil {
		return fmt.Errorf("failed to write deal snapshot: %w", err)
	}
	return nil
}

// Load retrieves the snapshot for a week and source.
func (s *DealSnapshotStore) Load(weekOf, source string) (*deals.FetchResult, error) {
	return s.load(s.snapshotPath(weekOf, source))
}

// Exists checks if a snapshot for the week and source exists.
func (s *DealSnapshotStore) Exists(weekOf, source string) bool {
	_, err := os.Stat(s.snapshotPath(weekOf, source))
	return !os.IsNotExist(err)
}

// Latest returns the most recently fetched snapshot of the newest week, or nil if there is none.
func (s *DealSnapshotStore) Latest() (*deals.FetchResult, error) {
	files, err := s.files()
	if err != nil {
		return nil, err
	}

	var latest *deals.FetchResult
	for _, f := range files {
		res, err := s.load(f)
		if err != nil {
			return nil, err
		}
		if latest == nil || res.WeekOf > latest.WeekOf ||
			(res.WeekOf == latest.WeekOf && res.FetchedAt.After(latest.FetchedAt)) {
			latest = res
		}
	}
	return latest, nil
}

// RemoveOlderThan deletes snapshots of weeks before weekOf and reports how many were removed.
func (s *DealSnapshotStore) RemoveOlderThan(weekOf string) (int, error) {
	files, err := s.files()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, f := range files {
		week, _, _ := strings.Cut(strings.TrimPrefix(filepath.Base(f), snapshotPrefix), "_")
		if week >= weekOf {
			continue
		}
		if err := os.Remove(f); err != nil {
			return removed, fmt.Errorf("failed to remove stale file %s: %w", f, err)
		}
		removed++
	}
	return removed, nil
}

func (s *DealSnapshotStore) files() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.basePath, snapshotPrefix+"*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob snapshot files: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}

func (s *DealSnapshotStore) load(path string) (*deals.FetchResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deal snapshot: %w", err)
	}

	var res deals.FetchResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deal snapshot: %w", err)
	}
	return &res, nil
}

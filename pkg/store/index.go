package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/entrhq/dt/pkg/i18n"
	"github.com/entrhq/dt/pkg/types"
)

// GetAllRecords returns the live index, newest first. A missing or
// malformed index reads as empty.
func (s *Store) GetAllRecords() ([]types.CommandRecord, error) {
	return s.readRecords(s.indexPath())
}

// RebuildIndex regenerates the index from every meta file under records/,
// ignoring whatever the index held before.
func (s *Store) RebuildIndex() error {
	records, err := s.scanRecords()
	if err != nil {
		return s.wrap(i18n.ErrRebuildIndex, err)
	}
	sortNewestFirst(records)
	if err := writeJSON(s.indexPath(), records); err != nil {
		return s.wrap(i18n.ErrRebuildIndex, err)
	}
	return nil
}

// scanRecords reads every meta file in every bucket. Unreadable files are
// skipped.
func (s *Store) scanRecords() ([]types.CommandRecord, error) {
	buckets, err := os.ReadDir(s.recordsDir())
	if errors.Is(err, fs.ErrNotExist) {
		return []types.CommandRecord{}, nil
	}
	if err != nil {
		return nil, err
	}

	records := []types.CommandRecord{}
	for _, bucket := range buckets {
		if !bucket.IsDir() {
			continue
		}
		metas, err := s.metaFiles(bucket.Name())
		if err != nil {
			return nil, err
		}
		for _, path := range metas {
			record, err := s.readMeta(path)
			if err != nil {
				s.logger.Warnf("skipping unreadable metadata %s: %v", path, err)
				continue
			}
			records = append(records, record)
		}
	}
	return records, nil
}

func (s *Store) metaFiles(hash string) ([]string, error) {
	entries, err := os.ReadDir(s.bucketDir(hash))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.Type().IsRegular() && strings.HasPrefix(name, "meta_") && strings.HasSuffix(name, ".json") {
			paths = append(paths, filepath.Join(s.bucketDir(hash), name))
		}
	}
	return paths, nil
}

func (s *Store) readMeta(path string) (types.CommandRecord, error) {
	var record types.CommandRecord
	data, err := os.ReadFile(path)
	if err != nil {
		return record, err
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return record, err
	}
	return record, nil
}

// updateIndex applies retention to the live index and adds record.
//
// With auto-archive on, records at or before the cutoff move into their
// year's archive first. Whatever is still older than the cutoff is dropped.
func (s *Store) updateIndex(record types.CommandRecord) error {
	entries, err := s.readRecords(s.indexPath())
	if err != nil {
		return s.wrap(i18n.ErrUpdateIndex, err)
	}

	cutoff := s.cutoff()
	if s.cfg.AutoArchive {
		if err := s.archive(entries, cutoff); err != nil {
			return err
		}
	}

	live := make([]types.CommandRecord, 0, len(entries)+1)
	for _, r := range entries {
		if r.RecordID != record.RecordID && r.Timestamp.After(cutoff) {
			live = append(live, r)
		}
	}
	if record.Timestamp.After(cutoff) {
		live = append(live, record)
	}
	sortNewestFirst(live)

	if err := writeJSON(s.indexPath(), live); err != nil {
		return s.wrap(i18n.ErrUpdateIndex, err)
	}
	return nil
}

func (s *Store) cutoff() time.Time {
	return s.now().UTC().Add(-time.Duration(s.cfg.MaxRetentionDays) * 24 * time.Hour)
}

// archive merges every entry at or before cutoff into index_<year>.json,
// one file per calendar year, deduplicated by record id.
func (s *Store) archive(entries []types.CommandRecord, cutoff time.Time) error {
	byYear := make(map[int][]types.CommandRecord)
	for _, r := range entries {
		if !r.Timestamp.After(cutoff) {
			year := r.Timestamp.UTC().Year()
			byYear[year] = append(byYear[year], r)
		}
	}

	for year, records := range byYear {
		path := s.archivePath(year)
		existing, err := s.readRecords(path)
		if err != nil {
			return s.wrap(i18n.ErrSaveArchive, err, year)
		}

		seen := make(map[string]struct{}, len(existing)+len(records))
		merged := make([]types.CommandRecord, 0, len(existing)+len(records))
		for _, r := range append(existing, records...) {
			if _, dup := seen[r.RecordID]; dup {
				continue
			}
			seen[r.RecordID] = struct{}{}
			merged = append(merged, r)
		}
		sortNewestFirst(merged)

		if err := writeJSON(path, merged); err != nil {
			return s.wrap(i18n.ErrSaveArchive, err, year)
		}
		s.logger.Infof("archived %d records into %s", len(records), filepath.Base(path))
	}
	return nil
}

// ArchivedRecords returns the archive for year, newest first.
func (s *Store) ArchivedRecords(year int) ([]types.CommandRecord, error) {
	return s.readRecords(s.archivePath(year))
}

// readRecords loads a JSON array of records. Missing files are empty;
// malformed files are logged and treated as empty so a rebuild can heal them.
func (s *Store) readRecords(path string) ([]types.CommandRecord, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []types.CommandRecord{}, nil
	}
	if err != nil {
		return nil, s.wrap(i18n.ErrReadIndex, err)
	}

	var records []types.CommandRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warnf("ignoring malformed %s: %v", filepath.Base(path), err)
		return []types.CommandRecord{}, nil
	}
	if records == nil {
		records = []types.CommandRecord{}
	}
	return records, nil
}

// writeJSON writes v as indented JSON via a temp file and rename.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	return writeFileAtomic(path, data)
}

func writeFileAtomic(path string, data []byte) error {
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

func sortNewestFirst(records []types.CommandRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
}

func sortOldestFirst(executions []*types.CommandExecution) {
	sort.SliceStable(executions, func(i, j int) bool {
		return executions[i].Record.Timestamp.Before(executions[j].Record.Timestamp)
	})
}

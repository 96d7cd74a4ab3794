package store

import (
	"fmt"
	"os"
	"time"

	"github.com/entrhq/dt/pkg/i18n"
	"github.com/entrhq/dt/pkg/types"
)

// Save writes the execution's meta, stdout and stderr files into its
// bucket and then updates the index.
//
// Files are keyed by epoch second. If that second is already taken in the
// bucket the record is moved forward to the next free second.
func (s *Store) Save(exec *types.CommandExecution) error {
	record := &exec.Record
	dir := s.bucketDir(record.CommandHash)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return s.wrap(i18n.ErrCreateRecordDir, err)
	}

	for {
		if _, err := os.Stat(s.metaPath(record.CommandHash, record.Epoch())); err != nil {
			break
		}
		s.logger.Debugf("epoch %d taken in bucket %s, moving to next second", record.Epoch(), record.CommandHash)
		record.Restamp(record.Timestamp.Add(time.Second))
	}

	epoch := record.Epoch()
	if err := writeJSON(s.metaPath(record.CommandHash, epoch), record); err != nil {
		return s.wrap(i18n.ErrSaveMetadata, err)
	}

	exec.StdoutPath = s.stdoutPath(record.CommandHash, epoch)
	if err := os.WriteFile(exec.StdoutPath, []byte(exec.Stdout), 0600); err != nil {
		return s.wrap(i18n.ErrSaveStdout, err)
	}
	exec.StderrPath = s.stderrPath(record.CommandHash, epoch)
	if err := os.WriteFile(exec.StderrPath, []byte(exec.Stderr), 0600); err != nil {
		return s.wrap(i18n.ErrSaveStderr, err)
	}

	return s.updateIndex(*record)
}

// FindExecutions loads every execution in the bucket for hash, oldest
// first. A missing payload file is replaced by a placeholder message.
func (s *Store) FindExecutions(hash string) ([]*types.CommandExecution, error) {
	metas, err := s.metaFiles(hash)
	if err != nil {
		return nil, s.wrap(i18n.ErrReadRecords, err)
	}

	executions := make([]*types.CommandExecution, 0, len(metas))
	for _, path := range metas {
		record, err := s.readMeta(path)
		if err != nil {
			s.logger.Warnf("skipping unreadable metadata %s: %v", path, err)
			continue
		}
		executions = append(executions, s.loadPayload(record))
	}
	sortOldestFirst(executions)
	return executions, nil
}

func (s *Store) loadPayload(record types.CommandRecord) *types.CommandExecution {
	exec := &types.CommandExecution{
		Record:     record,
		StdoutPath: s.stdoutPath(record.CommandHash, record.Epoch()),
		StderrPath: s.stderrPath(record.CommandHash, record.Epoch()),
	}
	exec.Stdout = s.readPayload(exec.StdoutPath, i18n.ErrReadStdout)
	exec.Stderr = s.readPayload(exec.StderrPath, i18n.ErrReadStderr)
	return exec
}

func (s *Store) readPayload(path string, placeholder i18n.Key) string {
	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.Warnf("payload unavailable %s: %v", path, err)
		return s.tr.T(placeholder)
	}
	return string(data)
}

// FindByShortCode returns the execution in the bucket for hash carrying
// code, or ErrNotFound.
func (s *Store) FindByShortCode(hash, code string) (*types.CommandExecution, error) {
	executions, err := s.FindExecutions(hash)
	if err != nil {
		return nil, err
	}
	for _, exec := range executions {
		if exec.Record.Code() == code {
			return exec, nil
		}
	}
	return nil, fmt.Errorf("short code %q: %w", code, ErrNotFound)
}

// DeleteExecution removes one execution's files and rebuilds the index.
func (s *Store) DeleteExecution(record types.CommandRecord) error {
	if err := s.removeRecordFiles(record); err != nil {
		return s.wrap(i18n.ErrDeleteRecord, err)
	}
	return s.RebuildIndex()
}

// removeRecordFiles deletes the three files of record. Files already gone
// are not an error. An emptied bucket directory is removed too.
func (s *Store) removeRecordFiles(record types.CommandRecord) error {
	epoch := record.Epoch()
	for _, path := range []string{
		s.metaPath(record.CommandHash, epoch),
		s.stdoutPath(record.CommandHash, epoch),
		s.stderrPath(record.CommandHash, epoch),
	} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	// Fails harmlessly while other executions remain in the bucket.
	_ = os.Remove(s.bucketDir(record.CommandHash))
	return nil
}

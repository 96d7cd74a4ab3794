// Package store persists command executions in a content-addressed file
// layout and maintains the newest-first index over them.
//
// Layout under the root directory:
//
//	records/<hash>/meta_<epoch>.json
//	records/<hash>/stdout_<epoch>.txt
//	records/<hash>/stderr_<epoch>.txt
//	index                 live records, newest first
//	index_<year>.json     archived records for that year
//
// The index is a projection of the meta files and can always be rebuilt
// from them. Nothing here is locked; concurrent dt processes may race.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/entrhq/dt/pkg/config"
	"github.com/entrhq/dt/pkg/i18n"
	"github.com/entrhq/dt/pkg/logging"
)

const (
	recordsDirName = "records"
	indexFileName  = "index"
)

// ErrNotFound is returned by lookups that match nothing.
var ErrNotFound = errors.New("record not found")

// Store is the file-backed record store rooted at one data directory.
type Store struct {
	root   string
	cfg    config.StorageConfig
	tr     *i18n.Translator
	logger *logging.Logger
	now    func() time.Time
}

// New opens the store at root, creating root and its records directory.
func New(root string, cfg config.StorageConfig, tr *i18n.Translator, logger *logging.Logger) (*Store, error) {
	if tr == nil {
		tr = i18n.New("en")
	}
	if logger == nil {
		logger = logging.Nop()
	}
	s := &Store{root: root, cfg: cfg, tr: tr, logger: logger, now: time.Now}

	if err := os.MkdirAll(root, 0750); err != nil {
		return nil, s.wrap(i18n.ErrCreateDataDir, err)
	}
	if err := os.MkdirAll(s.recordsDir(), 0750); err != nil {
		return nil, s.wrap(i18n.ErrCreateRecordsDir, err)
	}
	return s, nil
}

// Root returns the data directory.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) recordsDir() string {
	return filepath.Join(s.root, recordsDirName)
}

func (s *Store) bucketDir(hash string) string {
	return filepath.Join(s.recordsDir(), hash)
}

func (s *Store) metaPath(hash string, epoch int64) string {
	return filepath.Join(s.bucketDir(hash), fmt.Sprintf("meta_%d.json", epoch))
}

func (s *Store) stdoutPath(hash string, epoch int64) string {
	return filepath.Join(s.bucketDir(hash), fmt.Sprintf("stdout_%d.txt", epoch))
}

func (s *Store) stderrPath(hash string, epoch int64) string {
	return filepath.Join(s.bucketDir(hash), fmt.Sprintf("stderr_%d.txt", epoch))
}

func (s *Store) indexPath() string {
	return filepath.Join(s.root, indexFileName)
}

func (s *Store) archivePath(year int) string {
	return filepath.Join(s.root, fmt.Sprintf("index_%d.json", year))
}

// wrap prefixes err with the localized description of the failing step.
func (s *Store) wrap(key i18n.Key, err error, args ...any) error {
	return fmt.Errorf("%s: %w", s.tr.Tf(key, args...), err)
}

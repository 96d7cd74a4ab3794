package store

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/entrhq/dt/pkg/i18n"
	"github.com/entrhq/dt/pkg/types"
)

// MatchesQuery reports whether command matches a clean/list query: a
// case-insensitive substring, or failing that a case-insensitive
// subsequence. A blank query matches nothing.
func MatchesQuery(command, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	cmd := strings.ToLower(command)
	return strings.Contains(cmd, q) || isSubsequence(q, cmd)
}

func isSubsequence(needle, haystack string) bool {
	rest := []rune(haystack)
	for _, nc := range needle {
		i := 0
		for i < len(rest) && rest[i] != nc {
			i++
		}
		if i == len(rest) {
			return false
		}
		rest = rest[i+1:]
	}
	return true
}

// FileMatcher selects records related to one file or directory.
type FileMatcher struct {
	literal   string
	canonical string
}

// NewFileMatcher prepares a matcher for target as the user typed it.
func NewFileMatcher(target string) FileMatcher {
	return FileMatcher{literal: target, canonical: canonicalPath(target)}
}

// Target returns the canonical form of the target path.
func (m FileMatcher) Target() string {
	return m.canonical
}

// Match reports whether the record ran in the target directory or its
// command mentions the target literally, canonically, or relative to the
// record's working directory.
func (m FileMatcher) Match(r types.CommandRecord) bool {
	if m.literal == "" {
		return false
	}
	if filepath.Clean(r.WorkingDir) == m.canonical {
		return true
	}
	if strings.Contains(r.Command, m.literal) || strings.Contains(r.Command, m.canonical) {
		return true
	}
	if filepath.IsAbs(m.canonical) && filepath.IsAbs(r.WorkingDir) {
		rel, err := filepath.Rel(r.WorkingDir, m.canonical)
		if err == nil && rel != "." && strings.Contains(r.Command, rel) {
			return true
		}
	}
	return false
}

// canonicalPath resolves path to an absolute, symlink-free form, or
// returns it unchanged when it does not exist.
func canonicalPath(path string) string {
	if path == "" {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return path
	}
	return resolved
}

// CountByQuery returns how many indexed records CleanByQuery would remove.
func (s *Store) CountByQuery(query string) (int, error) {
	matched, err := s.selectRecords(func(r types.CommandRecord) bool { return MatchesQuery(r.Command, query) })
	return len(matched), err
}

// CountByFile returns how many indexed records CleanByFile would remove.
func (s *Store) CountByFile(target string) (int, error) {
	matched, err := s.selectRecords(NewFileMatcher(target).Match)
	return len(matched), err
}

// CleanByQuery deletes every indexed record matching query and rebuilds
// the index. It returns the removed records.
func (s *Store) CleanByQuery(query string) ([]types.CommandRecord, error) {
	return s.cleanWhere(func(r types.CommandRecord) bool { return MatchesQuery(r.Command, query) })
}

// CleanByFile deletes every indexed record related to target and rebuilds
// the index. It returns the removed records.
func (s *Store) CleanByFile(target string) ([]types.CommandRecord, error) {
	return s.cleanWhere(NewFileMatcher(target).Match)
}

func (s *Store) selectRecords(match func(types.CommandRecord) bool) ([]types.CommandRecord, error) {
	records, err := s.GetAllRecords()
	if err != nil {
		return nil, err
	}
	var matched []types.CommandRecord
	for _, r := range records {
		if match(r) {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

func (s *Store) cleanWhere(match func(types.CommandRecord) bool) ([]types.CommandRecord, error) {
	matched, err := s.selectRecords(match)
	if err != nil {
		return nil, err
	}
	for _, r := range matched {
		if err := s.removeRecordFiles(r); err != nil {
			return nil, s.wrap(i18n.ErrDeleteRecord, err)
		}
		s.logger.Infof("cleaned %s", r.RecordID)
	}
	if err := s.RebuildIndex(); err != nil {
		return nil, err
	}
	return matched, nil
}

// CleanAll removes every record and the live index. Yearly archives are
// kept.
func (s *Store) CleanAll() error {
	if err := os.RemoveAll(s.recordsDir()); err != nil {
		return s.wrap(i18n.ErrCleanAll, err)
	}
	if err := os.MkdirAll(s.recordsDir(), 0750); err != nil {
		return s.wrap(i18n.ErrCreateRecordsDir, err)
	}
	if err := os.Remove(s.indexPath()); err != nil && !os.IsNotExist(err) {
		return s.wrap(i18n.ErrCleanAll, err)
	}
	return nil
}

// RelatedFiles lists paths mentioned by indexed records: every working
// directory plus command tokens that look like paths. Existing paths are
// canonicalized; others are kept as typed. The result is sorted.
func (s *Store) RelatedFiles() ([]string, error) {
	records, err := s.GetAllRecords()
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{})
	for _, r := range records {
		if r.WorkingDir != "" {
			set[r.WorkingDir] = struct{}{}
		}
		for _, token := range strings.Fields(r.Command) {
			if !looksLikePath(token) {
				continue
			}
			if _, err := os.Stat(token); err == nil {
				set[canonicalPath(token)] = struct{}{}
			} else {
				set[token] = struct{}{}
			}
		}
	}

	files := make([]string, 0, len(set))
	for f := range set {
		files = append(files, f)
	}
	sort.Strings(files)
	return files, nil
}

func looksLikePath(token string) bool {
	if strings.Contains(token, "/") || token == "ls" || token == "cat" {
		return true
	}
	base := filepath.Base(token)
	dot := strings.LastIndexByte(base, '.')
	return dot > 0 && dot < len(base)-1
}

// CommandGroup summarizes the indexed executions of one command.
type CommandGroup struct {
	Hash    string    `json:"command_hash" yaml:"command_hash"`
	Command string    `json:"command" yaml:"command"`
	Count   int       `json:"count" yaml:"count"`
	Latest  time.Time `json:"latest" yaml:"latest"`
}

// CommandGroups returns one group per distinct command hash in the index,
// most recently run first.
func (s *Store) CommandGroups() ([]CommandGroup, error) {
	records, err := s.GetAllRecords()
	if err != nil {
		return nil, err
	}

	byHash := make(map[string]*CommandGroup)
	var order []string
	for _, r := range records {
		g, ok := byHash[r.CommandHash]
		if !ok {
			g = &CommandGroup{Hash: r.CommandHash, Command: r.Command}
			byHash[r.CommandHash] = g
			order = append(order, r.CommandHash)
		}
		g.Count++
		if r.Timestamp.After(g.Latest) {
			g.Latest = r.Timestamp
		}
	}

	groups := make([]CommandGroup, 0, len(order))
	for _, h := range order {
		groups = append(groups, *byHash[h])
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Latest.After(groups[j].Latest)
	})
	return groups, nil
}

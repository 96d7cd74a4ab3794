package store

import (
	"path/filepath"

	"github.com/entrhq/dt/pkg/types"
)

// shortCodeAlphabet orders the 62 short-code symbols; "a" encodes 1.
const shortCodeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// EncodeShortCode renders n >= 1 in bijective base 62, so 1 is "a", 62 is
// "9" and 63 is "aa". Zero has no code and encodes as "".
func EncodeShortCode(n uint64) string {
	base := uint64(len(shortCodeAlphabet))
	var buf []byte
	for n > 0 {
		// A remainder of zero means the last symbol: decrement first so
		// the digit lands on it and one is borrowed from the next place.
		n--
		buf = append(buf, shortCodeAlphabet[n%base])
		n /= base
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// IsShortCode reports whether s consists only of short-code symbols.
func IsShortCode(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// AssignShortCode gives record the smallest code not yet used by any meta
// file in its bucket. It must run before Save so the code is persisted.
func (s *Store) AssignShortCode(record *types.CommandRecord) error {
	used, err := s.usedShortCodes(record.CommandHash)
	if err != nil {
		return err
	}
	for n := uint64(1); ; n++ {
		code := EncodeShortCode(n)
		if _, taken := used[code]; !taken {
			record.SetCode(code)
			return nil
		}
	}
}

func (s *Store) usedShortCodes(hash string) (map[string]struct{}, error) {
	used := make(map[string]struct{})
	metas, err := filepath.Glob(filepath.Join(s.bucketDir(hash), "meta_*.json"))
	if err != nil {
		return nil, err
	}
	for _, path := range metas {
		record, err := s.readMeta(path)
		if err != nil {
			s.logger.Warnf("skipping unreadable metadata %s: %v", path, err)
			continue
		}
		if code := record.Code(); code != "" {
			used[code] = struct{}{}
		}
	}
	return used, nil
}

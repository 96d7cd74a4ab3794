package types

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// NormalizeCommand trims the command, collapses whitespace runs to a single
// space and removes whitespace on both sides of every pipe symbol.
//
//	"echo 1   |   grep 1" -> "echo 1|grep 1"
func NormalizeCommand(command string) string {
	var sb strings.Builder
	sb.Grow(len(command))

	pendingSpace := false
	var last rune
	for _, r := range strings.TrimSpace(command) {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = true
		case r == '|':
			sb.WriteRune(r)
			pendingSpace = false
			last = r
		default:
			if pendingSpace && last != '|' {
				sb.WriteByte(' ')
			}
			pendingSpace = false
			sb.WriteRune(r)
			last = r
		}
	}

	return sb.String()
}

// HashCommand returns the hex SHA-256 of the normalized command.
// Normalizing twice is harmless, so callers may pass raw text.
func HashCommand(command string) string {
	sum := sha256.Sum256([]byte(NormalizeCommand(command)))
	return hex.EncodeToString(sum[:])
}

package types

import (
	"fmt"
	"time"
)

// CommandRecord is the metadata of one recorded execution.
// Two records describe the same logical command iff their CommandHash values match.
type CommandRecord struct {
	Command     string    `json:"command" yaml:"command"`
	CommandHash string    `json:"command_hash" yaml:"command_hash"`
	Timestamp   time.Time `json:"timestamp" yaml:"timestamp"`
	WorkingDir  string    `json:"working_dir" yaml:"working_dir"`
	ExitCode    int       `json:"exit_code" yaml:"exit_code"`
	DurationMS  uint64    `json:"duration_ms" yaml:"duration_ms"`
	RecordID    string    `json:"record_id" yaml:"record_id"`
	ShortCode   *string   `json:"short_code,omitempty" yaml:"short_code,omitempty"`
}

// Code returns the short code or an empty string when none was assigned.
func (r *CommandRecord) Code() string {
	if r.ShortCode == nil {
		return ""
	}
	return *r.ShortCode
}

// SetCode attaches a short code to the record.
func (r *CommandRecord) SetCode(code string) {
	r.ShortCode = &code
}

// Epoch returns the timestamp in whole seconds, which keys the on-disk files.
func (r *CommandRecord) Epoch() int64 {
	return r.Timestamp.Unix()
}

// CommandExecution pairs a record with the output captured for it.
type CommandExecution struct {
	Record CommandRecord `json:"record"`
	Stdout string        `json:"stdout"`
	Stderr string        `json:"stderr"`

	// Locations on disk, populated when the execution was loaded from a store.
	StdoutPath string `json:"-"`
	StderrPath string `json:"-"`
}

// RecordID derives the record identifier from a command hash and a timestamp.
// Two executions of the same command within one second share an identifier.
func RecordID(commandHash string, ts time.Time) string {
	return fmt.Sprintf("%s_%d", commandHash, ts.Unix())
}

// NewRecord builds a record for a finished command. The command text is
// normalized and hashed here so every caller agrees on identity.
func NewRecord(command, workingDir string, exitCode int, duration time.Duration, ts time.Time) CommandRecord {
	normalized := NormalizeCommand(command)
	hash := HashCommand(normalized)
	ts = ts.UTC()

	ms := duration.Milliseconds()
	if ms < 0 {
		ms = 0
	}

	return CommandRecord{
		Command:     normalized,
		CommandHash: hash,
		Timestamp:   ts,
		WorkingDir:  workingDir,
		ExitCode:    exitCode,
		DurationMS:  uint64(ms),
		RecordID:    RecordID(hash, ts),
	}
}

// Restamp moves the record to ts, keeping RecordID in step.
func (r *CommandRecord) Restamp(ts time.Time) {
	r.Timestamp = ts.UTC()
	r.RecordID = RecordID(r.CommandHash, r.Timestamp)
}

package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/dt/pkg/capture"
	"github.com/entrhq/dt/pkg/config"
	"github.com/entrhq/dt/pkg/i18n"
	"github.com/entrhq/dt/pkg/logging"
	"github.com/entrhq/dt/pkg/types"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, cfg config.StorageConfig) *Store {
	t.Helper()
	s, err := New(t.TempDir(), cfg, i18n.New("en"), logging.Nop())
	require.NoError(t, err)
	s.now = func() time.Time { return fixedNow }
	return s
}

func defaultStorage() config.StorageConfig {
	return config.Default().Storage
}

func newExecution(command, workDir string, ts time.Time, stdout string) *types.CommandExecution {
	return &types.CommandExecution{
		Record: types.NewRecord(command, workDir, 0, 10*time.Millisecond, ts),
		Stdout: stdout,
	}
}

func saveWithCode(t *testing.T, s *Store, exec *types.CommandExecution) {
	t.Helper()
	require.NoError(t, s.AssignShortCode(&exec.Record))
	require.NoError(t, s.Save(exec))
}

func TestNew_CreatesLayout(t *testing.T) {
	root := filepath.Join(t.TempDir(), "data")
	s, err := New(root, defaultStorage(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, root, s.Root())

	info, err := os.Stat(filepath.Join(root, "records"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSave_WritesLayout(t *testing.T) {
	s := newTestStore(t, defaultStorage())
	exec := newExecution("echo hi", "/tmp", fixedNow.Add(-time.Hour), "hi\n")
	exec.Stderr = "warn\n"
	saveWithCode(t, s, exec)

	hash := exec.Record.CommandHash
	epoch := exec.Record.Epoch()
	dir := filepath.Join(s.Root(), "records", hash)

	stdout, err := os.ReadFile(filepath.Join(dir, "stdout_"+itoa(epoch)+".txt"))
	require.NoError(t, err)
	assert.Equal(t, "hi\n", string(stdout))

	stderr, err := os.ReadFile(filepath.Join(dir, "stderr_"+itoa(epoch)+".txt"))
	require.NoError(t, err)
	assert.Equal(t, "warn\n", string(stderr))

	meta, err := s.readMeta(filepath.Join(dir, "meta_"+itoa(epoch)+".json"))
	require.NoError(t, err)
	assert.Equal(t, "a", meta.Code())
	assert.Equal(t, exec.Record.RecordID, meta.RecordID)

	records, err := s.GetAllRecords()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, exec.Record.RecordID, records[0].RecordID)
}

func TestSave_SameSecondMovesForward(t *testing.T) {
	s := newTestStore(t, defaultStorage())
	ts := fixedNow.Add(-time.Minute)

	first := newExecution("echo hi", "/tmp", ts, "1\n")
	second := newExecution("echo hi", "/tmp", ts, "2\n")
	saveWithCode(t, s, first)
	saveWithCode(t, s, second)

	assert.Equal(t, first.Record.Epoch()+1, second.Record.Epoch())
	assert.NotEqual(t, first.Record.RecordID, second.Record.RecordID)

	executions, err := s.FindExecutions(first.Record.CommandHash)
	require.NoError(t, err)
	require.Len(t, executions, 2)
	assert.Equal(t, "1\n", executions[0].Stdout)
	assert.Equal(t, "2\n", executions[1].Stdout)
}

func TestFindExecutions_OrderAndPlaceholders(t *testing.T) {
	s := newTestStore(t, defaultStorage())
	later := newExecution("make test", "/src", fixedNow.Add(-time.Minute), "later\n")
	earlier := newExecution("make test", "/src", fixedNow.Add(-2*time.Hour), "earlier\n")
	saveWithCode(t, s, later)
	saveWithCode(t, s, earlier)

	require.NoError(t, os.Remove(earlier.StdoutPath))

	executions, err := s.FindExecutions(later.Record.CommandHash)
	require.NoError(t, err)
	require.Len(t, executions, 2)
	assert.Equal(t, earlier.Record.RecordID, executions[0].Record.RecordID)
	assert.Equal(t, "Cannot read stdout", executions[0].Stdout)
	assert.Equal(t, "", executions[0].Stderr)
	assert.Equal(t, "later\n", executions[1].Stdout)
}

func TestFindExecutions_UnknownBucket(t *testing.T) {
	s := newTestStore(t, defaultStorage())
	executions, err := s.FindExecutions("deadbeef")
	require.NoError(t, err)
	assert.Empty(t, executions)
}

func TestFindByShortCode(t *testing.T) {
	s := newTestStore(t, defaultStorage())
	a := newExecution("ls", "/", fixedNow.Add(-2*time.Minute), "x\n")
	b := newExecution("ls", "/", fixedNow.Add(-time.Minute), "y\n")
	saveWithCode(t, s, a)
	saveWithCode(t, s, b)

	found, err := s.FindByShortCode(a.Record.CommandHash, "b")
	require.NoError(t, err)
	assert.Equal(t, "y\n", found.Stdout)

	_, err = s.FindByShortCode(a.Record.CommandHash, "zz")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDeleteExecution(t *testing.T) {
	s := newTestStore(t, defaultStorage())
	a := newExecution("ls", "/", fixedNow.Add(-2*time.Minute), "x\n")
	b := newExecution("ls", "/", fixedNow.Add(-time.Minute), "y\n")
	saveWithCode(t, s, a)
	saveWithCode(t, s, b)

	require.NoError(t, s.DeleteExecution(a.Record))

	records, err := s.GetAllRecords()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, b.Record.RecordID, records[0].RecordID)
	_, err = os.Stat(a.StdoutPath)
	assert.True(t, os.IsNotExist(err))
}

func TestGetAllRecords_MalformedIndexIsEmpty(t *testing.T) {
	s := newTestStore(t, defaultStorage())
	require.NoError(t, os.WriteFile(s.indexPath(), []byte("{not json"), 0600))

	records, err := s.GetAllRecords()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRebuildIndex_Converges(t *testing.T) {
	s := newTestStore(t, defaultStorage())
	var ids []string
	for i, cmd := range []string{"echo a", "echo b", "echo a", "date"} {
		exec := newExecution(cmd, "/w", fixedNow.Add(-time.Duration(i+1)*time.Hour), cmd)
		saveWithCode(t, s, exec)
		ids = append(ids, exec.Record.RecordID)
	}

	for _, prior := range []string{"garbage", "[]", `[{"record_id":"ghost"}]`} {
		require.NoError(t, os.WriteFile(s.indexPath(), []byte(prior), 0600))
		require.NoError(t, s.RebuildIndex())

		records, err := s.GetAllRecords()
		require.NoError(t, err)
		got := make([]string, len(records))
		for i, r := range records {
			got[i] = r.RecordID
		}
		assert.Equal(t, ids, got, "rebuild from %q should list records newest first", prior)
	}
}

func TestRebuildIndex_SkipsMalformedMeta(t *testing.T) {
	s := newTestStore(t, defaultStorage())
	exec := newExecution("uptime", "/", fixedNow.Add(-time.Hour), "")
	saveWithCode(t, s, exec)

	bad := filepath.Join(s.bucketDir(exec.Record.CommandHash), "meta_1.json")
	require.NoError(t, os.WriteFile(bad, []byte("nope"), 0600))

	require.NoError(t, s.RebuildIndex())
	records, err := s.GetAllRecords()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestCleanByQuery(t *testing.T) {
	s := newTestStore(t, defaultStorage())
	for i, cmd := range []string{"git status", "git log --oneline", "make build"} {
		saveWithCode(t, s, newExecution(cmd, "/repo", fixedNow.Add(-time.Duration(i+1)*time.Minute), ""))
	}

	n, err := s.CountByQuery("GIT")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.CountByQuery("mkbd")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "subsequence match")

	n, err = s.CountByQuery("   ")
	require.NoError(t, err)
	assert.Zero(t, n)

	cleaned, err := s.CleanByQuery("git")
	require.NoError(t, err)
	assert.Len(t, cleaned, 2)

	records, err := s.GetAllRecords()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "make build", records[0].Command)
}

func TestCleanByFile(t *testing.T) {
	s := newTestStore(t, defaultStorage())
	project := t.TempDir()
	project, err := filepath.EvalSymlinks(project)
	require.NoError(t, err)
	file := filepath.Join(project, "notes.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))

	inDir := newExecution("ls", project, fixedNow.Add(-4*time.Minute), "")
	byAbs := newExecution("cat "+file, "/", fixedNow.Add(-3*time.Minute), "")
	byRel := newExecution("wc -l notes.txt", project, fixedNow.Add(-2*time.Minute), "")
	other := newExecution("uname -a", "/", fixedNow.Add(-time.Minute), "")
	for _, e := range []*types.CommandExecution{inDir, byAbs, byRel, other} {
		saveWithCode(t, s, e)
	}

	n, err := s.CountByFile(project)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	cleaned, err := s.CleanByFile(file)
	require.NoError(t, err)
	assert.Len(t, cleaned, 2)

	records, err := s.GetAllRecords()
	require.NoError(t, err)
	var left []string
	for _, r := range records {
		left = append(left, r.Command)
	}
	assert.ElementsMatch(t, []string{"ls", "uname -a"}, left)
}

func TestFileMatcher_EmptyAndDot(t *testing.T) {
	r := types.NewRecord("echo .", "/work", 0, 0, fixedNow)
	assert.False(t, NewFileMatcher("").Match(r))
	assert.True(t, NewFileMatcher("/work").Match(r))
}

func TestCleanAll_KeepsArchives(t *testing.T) {
	s := newTestStore(t, defaultStorage())
	saveWithCode(t, s, newExecution("echo hi", "/", fixedNow.Add(-time.Minute), "hi\n"))
	archive := s.archivePath(2020)
	require.NoError(t, os.WriteFile(archive, []byte("[]"), 0600))

	require.NoError(t, s.CleanAll())

	records, err := s.GetAllRecords()
	require.NoError(t, err)
	assert.Empty(t, records)
	_, err = os.Stat(s.indexPath())
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(archive)
	assert.NoError(t, err)
	entries, err := os.ReadDir(s.recordsDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRelatedFiles(t *testing.T) {
	s := newTestStore(t, defaultStorage())
	saveWithCode(t, s, newExecution("cat /definitely/missing/file.log", "/srv", fixedNow.Add(-2*time.Minute), ""))
	saveWithCode(t, s, newExecution("python main.py --verbose", "/srv", fixedNow.Add(-time.Minute), ""))

	files, err := s.RelatedFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"/definitely/missing/file.log", "/srv", "cat", "main.py"}, files)
}

func TestCommandGroups(t *testing.T) {
	s := newTestStore(t, defaultStorage())
	saveWithCode(t, s, newExecution("echo a", "/", fixedNow.Add(-3*time.Minute), ""))
	saveWithCode(t, s, newExecution("echo b", "/", fixedNow.Add(-2*time.Minute), ""))
	saveWithCode(t, s, newExecution("echo  a", "/", fixedNow.Add(-time.Minute), ""))

	groups, err := s.CommandGroups()
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "echo a", groups[0].Command)
	assert.Equal(t, 2, groups[0].Count)
	assert.True(t, fixedNow.Add(-time.Minute).Equal(groups[0].Latest))
	assert.Equal(t, "echo b", groups[1].Command)
	assert.Equal(t, 1, groups[1].Count)
}

func TestEndToEnd_ShortCodesPerBucket(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}
	s, err := New(t.TempDir(), defaultStorage(), i18n.New("en"), logging.Nop())
	require.NoError(t, err)

	ex := capture.New()
	ex.Dir = t.TempDir()
	ex.Stdin = strings.NewReader("")
	ex.Stdout = &strings.Builder{}
	ex.Stderr = &strings.Builder{}

	run := func(command string) *types.CommandExecution {
		exec, err := ex.Execute(context.Background(), command)
		require.NoError(t, err)
		require.NoError(t, s.AssignShortCode(&exec.Record))
		require.NoError(t, s.Save(exec))
		return exec
	}

	first := run("echo hi")
	assert.Equal(t, 0, first.Record.ExitCode)
	assert.Equal(t, "hi\n", first.Stdout)
	assert.Equal(t, "a", first.Record.Code())

	bye := run("echo bye")
	assert.NotEqual(t, first.Record.CommandHash, bye.Record.CommandHash)
	assert.Equal(t, "a", bye.Record.Code())

	again := run("echo  hi")
	assert.Equal(t, first.Record.CommandHash, again.Record.CommandHash)
	assert.Equal(t, "b", again.Record.Code())

	executions, err := s.FindExecutions(first.Record.CommandHash)
	require.NoError(t, err)
	assert.Len(t, executions, 2)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

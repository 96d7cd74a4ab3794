package differ

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/dt/pkg/i18n"
	"github.com/entrhq/dt/pkg/types"
)

var base = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

func execution(stdout, stderr string, exitCode int, ms time.Duration, at time.Time, code string) *types.CommandExecution {
	e := &types.CommandExecution{
		Record: types.NewRecord("make test", "/src", exitCode, ms, at),
		Stdout: stdout,
		Stderr: stderr,
	}
	if code != "" {
		e.Record.SetCode(code)
	}
	return e
}

func render(t *testing.T, execs ...*types.CommandExecution) string {
	t.Helper()
	out, ok := Diff(execs, i18n.New("en"), Options{Location: time.UTC})
	require.True(t, ok)
	return out
}

func TestDiff_NeedsTwo(t *testing.T) {
	_, ok := Diff(nil, i18n.New("en"), Options{})
	assert.False(t, ok)
	_, ok = Diff([]*types.CommandExecution{execution("", "", 0, 0, base, "")}, i18n.New("en"), Options{})
	assert.False(t, ok)
}

func TestDiff_Report(t *testing.T) {
	earlier := execution("a\nb\nc\n", "", 0, 120*time.Millisecond, base, "a")
	later := execution("a\nB\nc\n", "warn\n", 2, 80*time.Millisecond, base.Add(time.Hour), "b")

	want := strings.Join([]string{
		"Command: make test",
		"- Earlier: 2025-03-01 09:30:00 [code: a]",
		"+ Later  : 2025-03-01 10:30:00 [code: b]",
		"exit code: 0 -> 2",
		"execution time: 120ms -> 80ms",
		"",
		"stdout diff:",
		" a",
		"-b",
		"+B",
		" c",
		"",
		"stderr diff:",
		"+warn",
		"",
		"",
	}, "\n")
	assert.Equal(t, want, render(t, earlier, later))
}

func TestDiff_Identical(t *testing.T) {
	earlier := execution("same\n", "err\n", 1, 10*time.Millisecond, base, "")
	later := execution("same\n", "err\n", 1, 12*time.Millisecond, base.Add(time.Minute), "")

	out := render(t, earlier, later)
	assert.Contains(t, out, "output is identical\n")
	assert.NotContains(t, out, "stdout diff:")
	assert.NotContains(t, out, "stderr diff:")
	assert.NotContains(t, out, "exit code:")
	assert.NotContains(t, out, "[code:")
}

func TestDiff_SelfNeverReportsExitChange(t *testing.T) {
	e := execution("x\n", "", 3, time.Second, base, "c")
	out := render(t, e, e)
	assert.NotContains(t, out, "exit code:")
	assert.Contains(t, out, "execution time: 1000ms -> 1000ms")
	assert.Contains(t, out, "output is identical")
}

func TestDiff_UsesFirstTwoOnly(t *testing.T) {
	a := execution("1\n", "", 0, 0, base, "")
	b := execution("2\n", "", 0, 0, base.Add(time.Minute), "")
	c := execution("3\n", "", 0, 0, base.Add(2*time.Minute), "")
	out := render(t, a, b, c)
	assert.Contains(t, out, "-1\n+2\n")
	assert.NotContains(t, out, "+3")
}

func TestDiff_ChineseLabelsAligned(t *testing.T) {
	a := execution("", "", 0, 0, base, "")
	b := execution("", "", 0, 0, base.Add(time.Minute), "")
	out, ok := Diff([]*types.CommandExecution{a, b}, i18n.New("zh"), Options{Location: time.UTC})
	require.True(t, ok)
	assert.Contains(t, out, "- 较早: 2025-03-01 09:30:00")
	assert.Contains(t, out, "+ 较晚: 2025-03-01 09:31:00")
	assert.Contains(t, out, "输出完全一致")
}

func TestDiff_ColorDoesNotDropContent(t *testing.T) {
	a := execution("old line\n", "", 0, 0, base, "")
	b := execution("new line\n", "", 0, 0, base.Add(time.Minute), "")
	out, ok := Diff([]*types.CommandExecution{a, b}, i18n.New("en"), Options{Color: true, Location: time.UTC})
	require.True(t, ok)
	assert.Contains(t, out, "old line")
	assert.Contains(t, out, "new line")
}

func TestLineDiff(t *testing.T) {
	tests := []struct {
		name string
		old  string
		next string
		want string
	}{
		{"both empty", "", "", ""},
		{"added", "", "x\n", "+x\n"},
		{"removed", "x\n", "", "-x\n"},
		{"missing trailing newline", "a\nb", "a\nb\n", " a\n-b\n+b\n"},
		{"insert in middle", "a\nc\n", "a\nb\nc\n", " a\n+b\n c\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LineDiff(tt.old, tt.next))
		})
	}
}

package picker

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/entrhq/dt/pkg/i18n"
	"github.com/entrhq/dt/pkg/store"
	"github.com/entrhq/dt/pkg/types"
)

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}-\d{2}`),
	regexp.MustCompile(`\d{2}-\d{2}`),
	regexp.MustCompile(`\d{4}`),
	regexp.MustCompile(`\d{1,2}/\d{1,2}`),
	regexp.MustCompile(`\d{4}/\d{1,2}`),
}

var monthAbbrevs = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

// ExecutionFallback returns a Source.Fallback that runs SimpleSelectExecutions.
func ExecutionFallback(tr *i18n.Translator, loc *time.Location) func(io.Reader, io.Writer, []Item[*types.CommandExecution]) []Item[*types.CommandExecution] {
	return func(r io.Reader, w io.Writer, items []Item[*types.CommandExecution]) []Item[*types.CommandExecution] {
		return SimpleSelectExecutions(r, w, items, tr, loc)
	}
}

// SimpleSelectExecutions lists the executions and reads one line choosing
// two of them. The line may hold one or two short codes, a date filter such
// as 2024, 2024-06, 06-15 or a month name, or two 1-based row numbers.
// Two distinct in-range row numbers are always read as rows, even where
// digits are also short codes. Anything else selects the first two rows.
// The result is oldest first.
func SimpleSelectExecutions(r io.Reader, w io.Writer, items []Item[*types.CommandExecution], tr *i18n.Translator, loc *time.Location) []Item[*types.CommandExecution] {
	if len(items) <= 2 {
		return items
	}
	if loc == nil {
		loc = time.Local
	}

	fmt.Fprintln(w, tr.Tf(i18n.SelectExecutions, len(items)))
	for _, it := range items {
		fmt.Fprintln(w, it.Label)
	}
	fmt.Fprintln(w, tr.T(i18n.InputNumbers))

	input := strings.TrimSpace(readLine(r))
	if isIndexPair(input, len(items)) {
		return selectByIndex(w, items, input, tr)
	}
	if codes := codeFilter(input, items); len(codes) > 0 {
		return selectByCode(items, codes)
	}
	if isDateFilter(input, tr) {
		return selectByDate(w, items, input, tr, loc)
	}
	return selectByIndex(w, items, input, tr)
}

// SimpleSelectOne lists the rows and reads one 1-based row number. An empty
// or invalid answer selects nothing.
func SimpleSelectOne[T any](r io.Reader, w io.Writer, items []Item[T], tr *i18n.Translator) []Item[T] {
	for i, it := range items {
		fmt.Fprintf(w, "%d: %s\n", i+1, it.Label)
	}
	fmt.Fprintln(w, tr.T(i18n.InputIndex))

	n, err := strconv.Atoi(strings.TrimSpace(readLine(r)))
	if err != nil || n < 1 || n > len(items) {
		return nil
	}
	return []Item[T]{items[n-1]}
}

// readLine reads one line. A *bufio.Reader is used directly so later reads
// from the same reader see the rest of the input.
func readLine(r io.Reader) string {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	line, _ := br.ReadString('\n')
	return line
}

// codeFilter returns the tokens of input that are short codes present among
// items. Input with more than two tokens or any non short-code token is not
// a code filter.
func codeFilter(input string, items []Item[*types.CommandExecution]) []string {
	tokens := strings.FieldsFunc(input, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
	if len(tokens) == 0 || len(tokens) > 2 {
		return nil
	}

	available := make(map[string]bool, len(items))
	for _, it := range items {
		if code := it.Value.Record.Code(); code != "" {
			available[code] = true
		}
	}

	var picked []string
	for _, t := range tokens {
		if !store.IsShortCode(t) {
			return nil
		}
		if available[t] {
			picked = append(picked, t)
		}
	}
	return picked
}

// selectByCode picks the rows with the given codes. A single code is paired
// with the most recent other execution.
func selectByCode(items []Item[*types.CommandExecution], codes []string) []Item[*types.CommandExecution] {
	byCode := make(map[string]Item[*types.CommandExecution], len(items))
	for _, it := range items {
		if code := it.Value.Record.Code(); code != "" {
			byCode[code] = it
		}
	}

	var selected []Item[*types.CommandExecution]
	contains := func(id string) bool {
		for _, s := range selected {
			if s.ID == id {
				return true
			}
		}
		return false
	}
	for _, c := range codes {
		if it, ok := byCode[c]; ok && !contains(it.ID) {
			selected = append(selected, it)
		}
	}

	if len(selected) < 2 {
		for _, it := range newestFirst(items) {
			if !contains(it.ID) {
				selected = append(selected, it)
				break
			}
		}
	}
	if len(selected) < 2 {
		return firstN(items, 2)
	}
	return oldestFirst(selected)
}

func isDateFilter(input string, tr *i18n.Translator) bool {
	for _, re := range datePatterns {
		if re.MatchString(input) {
			return true
		}
	}
	lower := strings.ToLower(input)
	for _, m := range monthAbbrevs {
		if strings.Contains(lower, m) {
			return true
		}
	}
	for _, m := range tr.MonthNames() {
		if strings.Contains(input, m) {
			return true
		}
	}
	return false
}

// selectByDate keeps the two most recent rows matching filter. With fewer
// than two matches it falls back to the two most recent rows overall.
func selectByDate(w io.Writer, items []Item[*types.CommandExecution], filter string, tr *i18n.Translator, loc *time.Location) []Item[*types.CommandExecution] {
	var matched []Item[*types.CommandExecution]
	for _, it := range items {
		if matchesDate(it.Time.In(loc), filter, tr) {
			matched = append(matched, it)
		}
	}

	if len(matched) < 2 {
		fmt.Fprintln(w, tr.T(i18n.FewRecordsFallback))
		return oldestFirst(firstN(newestFirst(items), 2))
	}

	picked := oldestFirst(firstN(newestFirst(matched), 2))
	fmt.Fprintln(w, tr.T(i18n.UsingFilteredRecords))
	for _, it := range picked {
		fmt.Fprintf(w, "  - %s\n", it.Time.In(loc).Format(timeLayout))
	}
	return picked
}

// matchesDate reports whether ts falls on the date described by filter:
// YYYY, YYYY-MM, MM-DD (slashes work too), a month name, or any substring
// of the formatted timestamp.
func matchesDate(ts time.Time, filter string, tr *i18n.Translator) bool {
	f := strings.ReplaceAll(strings.TrimSpace(filter), "/", "-")
	parts := strings.Split(f, "-")
	if nums, ok := atoiAll(parts); ok {
		switch {
		case len(parts) == 1 && len(parts[0]) == 4:
			return ts.Year() == nums[0]
		case len(parts) == 2 && len(parts[0]) == 4:
			return ts.Year() == nums[0] && int(ts.Month()) == nums[1]
		case len(parts) == 2:
			return int(ts.Month()) == nums[0] && ts.Day() == nums[1]
		}
	}

	lower := strings.ToLower(filter)
	for i, m := range monthAbbrevs {
		if strings.Contains(lower, m) {
			return int(ts.Month()) == i+1
		}
	}
	// Longest names first: 十一月 also contains 一月.
	names := tr.MonthNames()
	for i := len(names) - 1; i >= 0; i-- {
		if strings.Contains(filter, names[i]) {
			return int(ts.Month()) == i+1
		}
	}

	return strings.Contains(strings.ToLower(ts.Format(timeLayout)), lower)
}

func atoiAll(parts []string) ([]int, bool) {
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, false
		}
		nums[i] = n
	}
	return nums, true
}

// isIndexPair reports whether input names two different rows of n.
func isIndexPair(input string, n int) bool {
	nums, ok := atoiAll(strings.Fields(input))
	if !ok || len(nums) != 2 || nums[0] == nums[1] {
		return false
	}
	for _, v := range nums {
		if v < 1 || v > n {
			return false
		}
	}
	return true
}

func selectByIndex(w io.Writer, items []Item[*types.CommandExecution], input string, tr *i18n.Translator) []Item[*types.CommandExecution] {
	fields := strings.Fields(input)
	if len(fields) != 2 {
		fmt.Fprintln(w, tr.T(i18n.InvalidInput))
		return firstN(items, 2)
	}

	var picked []Item[*types.CommandExecution]
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 || n > len(items) {
			fmt.Fprintln(w, tr.T(i18n.InvalidInput))
			return firstN(items, 2)
		}
		picked = append(picked, items[n-1])
	}
	if picked[0].ID == picked[1].ID {
		fmt.Fprintln(w, tr.T(i18n.InvalidInput))
		return firstN(items, 2)
	}
	return oldestFirst(picked)
}

func newestFirst[T any](items []Item[T]) []Item[T] {
	out := append([]Item[T](nil), items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.After(out[j].Time) })
	return out
}

func oldestFirst[T any](items []Item[T]) []Item[T] {
	out := append([]Item[T](nil), items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out
}

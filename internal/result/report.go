package result

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// printOrder is the fixed severity order within a file block: least to
// most severe, so the worst findings sit closest to the next header.
var printOrder = []Severity{SeverityHint, SeverityInfo, SeverityWarning, SeverityError}

// Format renders an ordered collection of per-file results into a
// human-readable report plus run-wide statistics.
//
// Each severity bucket is stable-sorted by ascending line number. Line
// numbers right-align to the widest line number in the run; messages
// right-pad to the widest error or warning message so the trailing rule
// identifier aligns (info/hint messages do not influence the message
// column). File blocks are ordered by descending (errors, warnings,
// infos, hints) counts, errors most significant; full ties keep input
// order. A run with zero messages renders as the empty string, which
// callers must treat as the clean-run case.
func Format(results []FileResult) string {
	total := 0
	for _, fr := range results {
		total += fr.Result.Total()
	}
	if total == 0 {
		return ""
	}

	views := make([]fileView, 0, len(results))
	for _, fr := range results {
		views = append(views, newFileView(fr))
	}

	sort.SliceStable(views, func(i, j int) bool {
		return moreSevere(views[i].counts, views[j].counts)
	})

	lineWidth, msgWidth := columnWidths(views)

	var b strings.Builder
	for _, v := range views {
		b.WriteString(v.file)
		b.WriteByte('\n')
		for i, sev := range printOrder {
			for _, m := range v.buckets[i] {
				fmt.Fprintf(&b, "  %-7s %*d  %-*s  %s\n",
					sev, lineWidth, m.Line, msgWidth, m.Message, m.Rule)
			}
		}
		b.WriteByte('\n')
	}

	writeStatistics(&b, views)

	return b.String()
}

// ExitCode computes the process exit status for a run: 1 when any file
// carries an error, 2 when zero files were successfully linted, 0 otherwise.
func ExitCode(results []FileResult) int {
	if len(results) == 0 {
		return 2
	}
	for _, fr := range results {
		if len(fr.Result.Errors) > 0 {
			return 1
		}
	}
	return 0
}

// fileView holds one file's buckets sorted for printing, leaving the
// underlying Result untouched.
type fileView struct {
	file string
	// buckets indexed in printOrder: hints, infos, warnings, errors.
	buckets [4][]Message
	// counts ordered most significant first: errors, warnings, infos, hints.
	counts [4]int
}

func newFileView(fr FileResult) fileView {
	v := fileView{file: fr.File}
	for i, src := range [][]Message{fr.Result.Hints, fr.Result.Infos, fr.Result.Warnings, fr.Result.Errors} {
		bucket := make([]Message, len(src))
		copy(bucket, src)
		sort.SliceStable(bucket, func(a, b int) bool {
			return bucket[a].Line < bucket[b].Line
		})
		v.buckets[i] = bucket
	}
	v.counts = [4]int{
		len(fr.Result.Errors),
		len(fr.Result.Warnings),
		len(fr.Result.Infos),
		len(fr.Result.Hints),
	}
	return v
}

// moreSevere orders count tuples descending lexicographically.
func moreSevere(a, b [4]int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}
	return false
}

// columnWidths computes the two run-wide alignment widths: the widest
// rendered line number over every message, and the widest message over
// error and warning messages only.
func columnWidths(views []fileView) (lineWidth, msgWidth int) {
	for _, v := range views {
		for i, bucket := range v.buckets {
			sev := printOrder[i]
			for _, m := range bucket {
				if w := len(strconv.Itoa(m.Line)); w > lineWidth {
					lineWidth = w
				}
				if sev == SeverityError || sev == SeverityWarning {
					if w := len(m.Message); w > msgWidth {
						msgWidth = w
					}
				}
			}
		}
	}
	return lineWidth, msgWidth
}

// writeStatistics appends the trailing totals section: hints, infos,
// warnings, errors, nonzero counts only, pluralized.
func writeStatistics(b *strings.Builder, views []fileView) {
	names := []string{"hint", "info", "warning", "error"}
	// counts is ordered errors-first; statistics print least severe first.
	totals := make([]int, 4)
	for _, v := range views {
		for i := range totals {
			totals[i] += v.counts[3-i]
		}
	}
	for i, n := range totals {
		if n == 0 {
			continue
		}
		fmt.Fprintf(b, "%d %s\n", n, pluralize(n, names[i]))
	}
}

func pluralize(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

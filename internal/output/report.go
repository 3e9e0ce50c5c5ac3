package output

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"

	"bennypowers.dev/i18n-extract/internal/pipeline"
	"bennypowers.dev/i18n-extract/internal/units"
)

// TopFiles is how many files the report ranks
const TopFiles = 10

type fileCount struct {
	file  string
	count int
}

// Report renders counts by type, the parameterization ratio, the files
// with the most texts and the duplicate and conflict summary
func Report(result *pipeline.Result) string {
	var b strings.Builder
	total := len(result.Texts)

	fmt.Fprintf(&b, "Namespace: %s\n", result.Namespace)
	fmt.Fprintf(&b, "Files: %d (%d failed)\n", result.Stats.Files, result.Stats.Failed)
	fmt.Fprintf(&b, "Texts: %d unique, %d found\n", total, result.Stats.Raw)

	byType := map[units.Type]int{}
	byFile := map[string]int{}
	parameterized := 0
	for _, u := range result.Texts {
		byType[u.Type]++
		byFile[u.Location.File]++
		if u.Parameterized() {
			parameterized++
		}
	}

	b.WriteString("\nBy type:\n")
	for _, t := range units.Types {
		fmt.Fprintf(&b, "  %-22s %d\n", t, byType[t])
	}
	fmt.Fprintf(&b, "\nParameterized: %d/%d (%s)\n", parameterized, total, percent(parameterized, total))

	if len(byFile) > 0 {
		counts := make([]fileCount, 0, len(byFile))
		for _, file := range slices.Sorted(maps.Keys(byFile)) {
			counts = append(counts, fileCount{file, byFile[file]})
		}
		slices.SortStableFunc(counts, func(a, b fileCount) int {
			return cmp.Compare(b.count, a.count)
		})
		b.WriteString("\nTop files:\n")
		for _, fc := range counts[:min(TopFiles, len(counts))] {
			fmt.Fprintf(&b, "  %4d  %s\n", fc.count, fc.file)
		}
	}

	if len(result.Duplicates) > 0 {
		fmt.Fprintf(&b, "\nReused texts: %d\n", len(result.Duplicates))
		for _, d := range result.Duplicates {
			fmt.Fprintf(&b, "  %s %q x%d\n", d.Key, d.Text, d.Count)
		}
	}
	if len(result.Conflicts) > 0 {
		fmt.Fprintf(&b, "\nConflicts: %d\n", len(result.Conflicts))
		for _, c := range result.Conflicts {
			fmt.Fprintf(&b, "  %s\n", c.Key)
			for _, o := range c.Texts {
				fmt.Fprintf(&b, "    %q at %s\n", o.Text, o.Location)
			}
		}
	}
	if len(result.Warnings) > 0 {
		fmt.Fprintf(&b, "\nWarnings: %d\n", len(result.Warnings))
	}
	return b.String()
}

func percent(n, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(n)*100/float64(total))
}

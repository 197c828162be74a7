package doctor

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/lilydev/bg3mm/internal/instance"
)

// Check compares the index file on disk with the instance directories.
// It reads only; nothing is changed.
func Check(ctx context.Context, m *instance.Manager) (Report, error) {
	ids, err := m.Store().List()
	if err != nil {
		return Report{}, err
	}

	idx, err := m.Load(ctx)
	if errors.Is(err, instance.ErrDeserialization) {
		return unreadableReport(err, ids), nil
	}
	if err != nil {
		return Report{}, err
	}

	onDisk := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		onDisk[id] = true
	}

	report := Report{Indexed: len(idx.Instances), OnDisk: len(ids)}
	seen := make(map[uuid.UUID]bool, len(idx.Instances))
	var orphans []Issue

	for _, info := range idx.Instances {
		if seen[info.ID] {
			report.Issues = append(report.Issues, Issue{
				ID:          info.ID,
				Name:        info.Name,
				Description: "id appears more than once in the index",
				FixAction:   ActionDropDuplicate,
				Category:    CategoryIndex,
			})
			continue
		}
		seen[info.ID] = true

		if !onDisk[info.ID] {
			orphans = append(orphans, Issue{
				ID:          info.ID,
				Name:        info.Name,
				Description: "indexed but its directory is missing",
				FixAction:   ActionDropGhost,
				Category:    CategoryOrphan,
			})
			continue
		}
		report.Healthy++
	}

	for _, id := range ids {
		if seen[id] {
			continue
		}
		orphans = append(orphans, Issue{
			ID:          id,
			Description: "directory exists but is not indexed",
			FixAction:   ActionAdopt,
			Category:    CategoryOrphan,
		})
	}

	report.Issues = append(report.Issues, orphans...)
	return report, nil
}

// unreadableReport describes an index file that cannot be parsed. Every
// directory on disk becomes unindexed, since the file says nothing usable.
func unreadableReport(parseErr error, ids []uuid.UUID) Report {
	report := Report{OnDisk: len(ids)}
	report.Issues = append(report.Issues, Issue{
		Description: fmt.Sprintf("index file cannot be parsed: %v", parseErr),
		FixAction:   ActionRebuild,
		Category:    CategoryIndex,
	})
	for _, id := range ids {
		report.Issues = append(report.Issues, Issue{
			ID:          id,
			Description: "directory exists but is not indexed",
			FixAction:   ActionAdopt,
			Category:    CategoryOrphan,
		})
	}
	return report
}

// Print writes a categorized summary of report to w.
func Print(w io.Writer, report Report) {
	stats := report.Stats()

	fmt.Fprintf(w, "  ✓ %d instances healthy\n", report.Healthy)
	if stats.Unreadable > 0 {
		fmt.Fprintln(w, "  ⚠ index file cannot be parsed")
	}
	if stats.Duplicates > 0 {
		fmt.Fprintf(w, "  ⚠ %d duplicate index entries\n", stats.Duplicates)
	}
	if stats.Ghosts > 0 {
		fmt.Fprintf(w, "  ⚠ %d index entries without a directory\n", stats.Ghosts)
	}
	if stats.Unindexed > 0 {
		fmt.Fprintf(w, "  ⚠ %d directories not in the index\n", stats.Unindexed)
	}

	if len(report.Issues) == 0 {
		fmt.Fprintln(w, "\n✓ No issues found")
		return
	}

	fmt.Fprintf(w, "\nFound %d issues:\n", len(report.Issues))
	printIssuesByCategory(w, report.Issues)
}

// printIssuesByCategory groups and prints issues.
func printIssuesByCategory(w io.Writer, issues []Issue) {
	byCategory := make(map[IssueCategory][]Issue)
	for _, issue := range issues {
		byCategory[issue.Category] = append(byCategory[issue.Category], issue)
	}

	categoryNames := map[IssueCategory]string{
		CategoryIndex:  "Index issues",
		CategoryOrphan: "Orphan issues",
	}

	for _, cat := range []IssueCategory{CategoryIndex, CategoryOrphan} {
		catIssues := byCategory[cat]
		if len(catIssues) == 0 {
			continue
		}

		fmt.Fprintf(w, "\n%s:\n", categoryNames[cat])
		for _, issue := range catIssues {
			label := issue.ID.String()
			if issue.ID == uuid.Nil {
				label = instance.IndexFile
			}
			if issue.Name != "" {
				label = fmt.Sprintf("%s (%s)", label, issue.Name)
			}
			fmt.Fprintf(w, "  • %s: %s\n", label, issue.Description)
		}
	}
}

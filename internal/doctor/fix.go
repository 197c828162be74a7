package doctor

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/google/uuid"

	"github.com/lilydev/bg3mm/internal/instance"
)

// adoptedName returns the placeholder name given to an adopted directory.
func adoptedName(id uuid.UUID) string {
	return "Recovered " + id.String()[:8]
}

// Fix rewrites the index file to resolve issues and reports each change to w.
// An unparsable index is backed up and replaced by an empty one first.
// Otherwise the index is re-read, so entries added since the check are kept.
// It returns the number of issues fixed. The cache is not refreshed.
func Fix(ctx context.Context, m *instance.Manager, issues []Issue, w io.Writer) (int, error) {
	if len(issues) == 0 {
		return 0, nil
	}

	var rebuilt int
	if slices.ContainsFunc(issues, func(i Issue) bool { return i.FixAction == ActionRebuild }) {
		backup, err := m.Reset(ctx, instance.Index{})
		if err != nil {
			return 0, err
		}
		fmt.Fprintf(w, "  ✓ Started a new index file (old one kept as %s)\n", backup)
		rebuilt = 1
	}

	var fixed int
	err := m.Rewrite(ctx, func(idx *instance.Index) {
		fixed = 0
		dedupe := false

		for _, issue := range issues {
			switch issue.FixAction {
			case ActionDropDuplicate:
				dedupe = true

			case ActionDropGhost:
				if idx.Remove(issue.ID) > 0 {
					fmt.Fprintf(w, "  ✓ Removed index entry %s\n", issue.ID)
					fixed++
				}

			case ActionAdopt:
				if _, ok := idx.Find(issue.ID); ok {
					continue
				}
				name := adoptedName(issue.ID)
				idx.Append(instance.Info{ID: issue.ID, Name: name})
				fmt.Fprintf(w, "  ✓ Indexed %s as %q\n", issue.ID, name)
				fixed++
			}
		}

		if dedupe {
			n := dropDuplicates(idx)
			if n > 0 {
				fmt.Fprintf(w, "  ✓ Removed %d duplicate index entries\n", n)
				fixed += n
			}
		}
	})
	if err != nil {
		return rebuilt, err
	}

	return rebuilt + fixed, nil
}

// dropDuplicates keeps the first entry for each id and returns how many were dropped.
func dropDuplicates(idx *instance.Index) int {
	seen := make(map[uuid.UUID]bool, len(idx.Instances))
	kept := idx.Instances[:0]
	for _, info := range idx.Instances {
		if seen[info.ID] {
			continue
		}
		seen[info.ID] = true
		kept = append(kept, info)
	}
	dropped := len(idx.Instances) - len(kept)
	idx.Instances = kept
	return dropped
}

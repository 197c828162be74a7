package doctor

import "github.com/google/uuid"

// IssueCategory groups issues by type.
type IssueCategory string

const (
	// CategoryIndex represents problems inside the index file itself, including
	// a file that cannot be parsed.
	CategoryIndex IssueCategory = "index"
	// CategoryOrphan represents directories and entries that lost their counterpart.
	CategoryOrphan IssueCategory = "orphan"
)

// Fix actions applied by --fix.
const (
	ActionDropDuplicate = "drop_duplicate" // keep the first entry with an id, drop the rest
	ActionDropGhost     = "drop_ghost"     // remove an index entry whose directory is gone
	ActionAdopt         = "adopt"          // index an unindexed instance directory
	ActionRebuild       = "rebuild"        // back up an unparsable index and start a new one
)

// Issue represents a problem detected by doctor.
type Issue struct {
	ID          uuid.UUID     // instance id
	Name        string        // instance name, empty for unindexed directories
	Description string        // human-readable description
	FixAction   string        // what --fix would do
	Category    IssueCategory // issue category
}

// Report is the result of a check.
type Report struct {
	Indexed int     // entries in the index
	OnDisk  int     // instance directories on disk
	Healthy int     // indexed entries with a directory and a unique id
	Issues  []Issue // every problem found, index issues first
}

// IssueStats tracks counts by fix action.
type IssueStats struct {
	Duplicates int // repeated ids in the index
	Ghosts     int // entries in the index without a directory
	Unindexed  int // directories on disk without an index entry
	Unreadable int // index file that cannot be parsed
}

// Stats counts the report's issues by kind.
func (r Report) Stats() IssueStats {
	var s IssueStats
	for _, issue := range r.Issues {
		switch issue.FixAction {
		case ActionDropDuplicate:
			s.Duplicates++
		case ActionDropGhost:
			s.Ghosts++
		case ActionAdopt:
			s.Unindexed++
		case ActionRebuild:
			s.Unreadable++
		}
	}
	return s
}

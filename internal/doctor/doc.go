// Package doctor reconciles the instance index with the instance
// directories on disk.
//
// Catalog operations never repair partial failures. A create whose index
// write failed leaves a directory nobody indexes; a delete whose index write
// failed, or a directory removed by hand, leaves an entry without a
// directory. Doctor finds both, plus repeated ids in the index.
//
// # Usage
//
//	report, err := doctor.Check(ctx, manager)  // diagnose only
//	fixed, err := doctor.Fix(ctx, manager, report.Issues, os.Stdout)
//
// # Issue Categories
//
//   - [CategoryIndex]: repeated ids in the index file, or a file that cannot be parsed
//   - [CategoryOrphan]: unindexed directories and entries without a directory
//
// Fixing rewrites the index file only. Directories are never deleted;
// unindexed directories are adopted under a placeholder name. An unparsable
// index file is moved aside to instances.index.json.bak before a new one is
// started.
package doctor

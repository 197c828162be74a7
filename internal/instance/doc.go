// Package instance manages the catalog of instances: isolated working
// directories tracked in an index file.
//
// # Layout
//
// Everything lives under the configured instances directory:
//
//	instances.index.json       the index, pretty-printed JSON
//	<id>/                      one directory per instance
//	<id>/instance.<ext>        optional cover image
//
// The index file has the form:
//
//	{
//	  "instances": [
//	    { "id": "1b4e28ba-2fa1-11d2-883f-0016d3cca427", "name": "Honour run", "order_index": 0 }
//	  ]
//	}
//
// # Index and Cache
//
// The index file is authoritative. [Manager.Create], [Manager.Delete] and
// [Manager.Get] always read it from disk. [Manager.Index] serves the in-memory
// [Cache], which only changes on [Manager.Refresh]; after a create or delete
// the cache is stale until the next refresh.
//
// # Partial Failures
//
// Create makes the directory before writing the index, so a failed index
// write leaves a directory that is not indexed. Delete removes the directory
// before writing the index, so a failed index write leaves an entry without a
// directory. Neither is repaired automatically; the doctor package reports
// both.
//
// # Errors
//
// Failures are [*Error] values whose kind is one of [ErrIO],
// [ErrSerialization], [ErrDeserialization], [ErrNotFound] or
// [ErrInvalidInput]. Use errors.Is to test the kind.
package instance

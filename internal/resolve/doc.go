// Package resolve turns instance references given on the command line into
// instance ids.
//
// # Reference Forms
//
//   - Full id: 6f1c9a52-3b5e-4f7a-9d2c-1e8b7a6c5d40
//   - Id prefix (at least 4 characters): 6f1c9a52
//   - Exact instance name: "Honour run"
//
// Names are not unique. An ambiguous reference is an error that lists the
// matching ids. A reference matching nothing suggests close names using
// fuzzy matching.
package resolve

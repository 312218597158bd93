// Package registry holds the canonical XAML namespace and type tables.
//
// Everything the converter knows about UiPath XAML vocabulary lives in one
// embedded CUE file: prefix-to-URI bindings, the baseline prefixes every
// document declares, prefix-to-CLR-namespace imports, prefix and namespace
// assembly mappings, the default assembly reference list, the type map, and
// designer hint sizes.
//
// DECLARATIVE TABLES:
//
// The tables are data, not code. tables.cue carries both the schema
// (#Tables) and the concrete values; Load compiles the file, validates it
// against the schema, then checks the cross-table invariants CUE cannot
// express (every baseline prefix has a URI, every baseline import has an
// assembly, every type map target uses a known prefix, no duplicate URIs).
// All violations are accumulated before reporting, so a bad table edit
// surfaces completely in one run.
//
// AMBIGUITY IS DATA:
//
// The tables deliberately contain one ambiguity: System.Drawing is
// importable under both sd1 (System.Drawing.Primitives) and sd2
// (System.Drawing.Common). PrefixesForImport exposes this by returning
// multiple prefixes; the type normalizer turns it into a warning rather
// than guessing.
//
// The Registry is immutable after Load and safe for concurrent use.
// Default returns a process-wide instance built from the embedded tables.
package registry

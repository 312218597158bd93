// Package resolve decides which namespace declarations, expression
// imports, and assembly references a produced document must carry, and
// auto-corrects the workflow body before serialization.
//
// ARCHITECTURE:
//
// The package owns the per-conversion Context: document xmlns bindings,
// the URI-to-canonical-prefix table derived from them, and the scan
// state that accumulates while a conversion runs (used prefixes, used
// types, applied corrections, warnings). A Context is created at the
// start of one conversion and discarded at the end, threaded through
// every call in between. It is never shared across conversions; the
// shared piece is the immutable registry.
//
// Resolution is deliberately biased toward over-inclusion. An
// undeclared namespace makes the runtime refuse the document, while a
// surplus declaration is harmless, so every unresolvable item degrades
// to a safe default plus a warning instead of an error:
//
//   - DetectRequiredPrefixes over-collects: every prefix:Name token and
//     every bare name the type map knows contributes its prefix.
//   - GenerateImportStrings seeds the baseline import list only when the
//     document carried none, preserving user-authored imports exactly.
//   - GenerateMinimalAssemblyReferences falls back to the fixed default
//     list only when both metadata and detection produced nothing.
//   - FilterUsedCustomNamespaces is the one subtractive step: a custom
//     binding survives only when a whole-token scan finds it in use, and
//     canonical prefixes can never be shadowed.
//
// The Corrector applies the pre-serialization fixes the runtime's VB
// expression parser demands: bracket-wrapping expression values and
// normalizing type references, over a traversal that mirrors the exact
// container schema of the document vocabulary.
package resolve

// Package ir provides the canonical intermediate representation for
// workflow documents.
//
// This package contains value types and serialization only. All other
// internal packages import ir; ir imports nothing internal. This ensures
// IR remains the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - NO float types anywhere - use int64 for numbers; deterministic
//     serialization is a hard requirement and float formatting breaks it
//   - null is a legal value: decision branches use it as a terminal marker
//   - MarshalCanonical is the only serialization used for identity
//     (RFC 8785 key order, NFC strings, no HTML escaping)
//   - trees handed to conversion passes are deep-copied first; the IR a
//     caller supplies is never mutated
package ir

// Package typeref converts between IR type names and prefixed XAML type
// references.
//
// Three transform families:
//
//   - Mapping: ToTypeReference / ToJSONType translate through the
//     registry type map, recursing into List<T> and Dictionary<K,V>
//     generics. The reverse direction prefers short names, so
//     x:String always comes back as String, never System.String.
//   - Canonicalization: Canonicalize rewrites document-local prefixes to
//     canonical ones by URI identity, descending into generic argument
//     lists and argument wrappers with paren-balanced comma splitting.
//   - Normalization: NormalizeTypeReference turns fully-qualified CLR
//     names into prefixed references with canonical-map-first precedence.
//     It never guesses: an ambiguous namespace (System.Drawing lives
//     under both sd1 and sd2) or an unknown one returns the input
//     unchanged plus a Diagnostic for the caller to record.
//
// Everything here is a pure function over immutable registry data: no
// mutation, no I/O, no logging. Resolution state (used prefixes, used
// types, warnings) belongs to the resolve package's Context, which is why
// diagnostics are returned rather than recorded.
package typeref

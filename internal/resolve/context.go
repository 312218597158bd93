package resolve

import (
	"slices"

	"github.com/Preyvik/MCP-UiPath/internal/registry"
)

// Correction kinds recorded by the auto-corrector.
const (
	CorrectionExpressionWrap = "expression_wrap"
	CorrectionSafetyNetWrap  = "safety_net_wrap"
	CorrectionTypeNormalize  = "type_normalize"
)

// Correction records one auto-applied fix.
type Correction struct {
	Kind     string `json:"kind"`
	Before   string `json:"before"`
	After    string `json:"after"`
	TypeHint string `json:"typeHint,omitempty"`
}

// Context carries the resolution state for exactly one conversion.
//
// Bindings and URIToCanonical are fixed at construction; the remaining
// fields accumulate as the corrector and resolvers walk the tree.
// A Context must never be shared across concurrent conversions; each
// conversion builds its own and discards it when done.
type Context struct {
	// Bindings is the document's prefix -> URI mapping (canonical and
	// custom alike). Empty for fresh documents.
	Bindings map[string]string

	// URIToCanonical maps each bound URI to the registry's canonical
	// prefix, for URIs the registry knows. Derived from Bindings.
	URIToCanonical map[string]string

	// UsedPrefixes collects every namespace prefix seen on a visited
	// type reference.
	UsedPrefixes map[string]bool

	// UsedTypes collects every type reference visited by the corrector,
	// post-normalization, including unchanged ones.
	UsedTypes map[string]bool

	// Corrections lists every change the corrector applied, in
	// application order.
	Corrections []Correction

	// Warnings collects resolution diagnostics: ambiguous or unmapped
	// type references, anything that degraded to a fallback.
	Warnings []string
}

// NewContext builds the resolution context for one conversion.
//
// bindings is the document's xmlns prefix -> URI map; nil is fine for
// fresh documents. The URI -> canonical-prefix table is derived by
// looking up each bound URI in the registry. URIs the registry does
// not know are simply absent, which makes canonicalization leave their
// prefixes untouched.
func NewContext(bindings map[string]string, reg *registry.Registry) *Context {
	ctx := &Context{
		Bindings:       make(map[string]string, len(bindings)),
		URIToCanonical: make(map[string]string, len(bindings)),
		UsedPrefixes:   make(map[string]bool),
		UsedTypes:      make(map[string]bool),
	}
	for prefix, uri := range bindings {
		ctx.Bindings[prefix] = uri
		if canonical, ok := reg.PrefixForURI(uri); ok {
			ctx.URIToCanonical[uri] = canonical
		}
	}
	return ctx
}

// RecordType notes a visited type reference and, when prefixed, its
// prefix. Called for every type the corrector touches so the context
// reflects the whole document even when nothing needed fixing.
func (c *Context) RecordType(ref string) {
	if ref == "" {
		return
	}
	c.UsedTypes[ref] = true
	if i := indexColon(ref); i > 0 {
		c.UsedPrefixes[ref[:i]] = true
	}
}

// RecordCorrection appends one applied fix.
func (c *Context) RecordCorrection(kind, before, after string) {
	c.Corrections = append(c.Corrections, Correction{Kind: kind, Before: before, After: after})
}

// RecordCorrectionWithHint appends one applied fix with the type hint
// that triggered it.
func (c *Context) RecordCorrectionWithHint(kind, before, after, hint string) {
	c.Corrections = append(c.Corrections, Correction{Kind: kind, Before: before, After: after, TypeHint: hint})
}

// Warn appends a resolution diagnostic.
func (c *Context) Warn(msg string) {
	c.Warnings = append(c.Warnings, msg)
}

// CorrectionCount returns how many corrections of the given kind were
// applied, or the total when kind is empty.
func (c *Context) CorrectionCount(kind string) int {
	if kind == "" {
		return len(c.Corrections)
	}
	n := 0
	for _, corr := range c.Corrections {
		if corr.Kind == kind {
			n++
		}
	}
	return n
}

// SortedUsedPrefixes returns the recorded prefixes in sorted order.
func (c *Context) SortedUsedPrefixes() []string {
	return sortedKeys(c.UsedPrefixes)
}

// SortedUsedTypes returns the recorded type references in sorted order.
func (c *Context) SortedUsedTypes() []string {
	return sortedKeys(c.UsedTypes)
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func indexColon(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return i
		}
	}
	return -1
}

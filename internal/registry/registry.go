package registry

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed tables.cue
var tablesCUE string

// tables mirrors the #Tables schema in tables.cue.
type tables struct {
	Namespaces        map[string]string   `json:"namespaces"`
	BaselinePrefixes  []string            `json:"baselinePrefixes"`
	PrefixImports     map[string][]string `json:"prefixImports"`
	PrefixAssemblies  map[string][]string `json:"prefixAssemblies"`
	BaselineImports   []string            `json:"baselineImports"`
	ImportAssemblies  map[string]string   `json:"importAssemblies"`
	DefaultAssemblies []string            `json:"defaultAssemblies"`
	TypeMap           map[string]string   `json:"typeMap"`
	HintSizes         map[string]string   `json:"hintSizes"`
}

// Registry answers the namespace, assembly, and type questions the
// resolvers ask. It is immutable after Load and safe for concurrent use.
type Registry struct {
	t           tables
	uriToPrefix map[string]string
	jsonTypes   map[string]string // prefixed XAML form -> simple name
}

// LoadError is a table loading or validation failure with CUE position
// info when available.
type LoadError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := cueerrors.Positions(firstErr)
	if len(positions) > 0 {
		return &LoadError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}

// Load compiles the embedded tables and validates every cross-table
// invariant, accumulating all violations before reporting.
func Load() (*Registry, error) {
	return load(tablesCUE)
}

func load(src string) (*Registry, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(src, cue.Filename("tables.cue"))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	tv := v.LookupPath(cue.ParsePath("tables"))
	if !tv.Exists() {
		return nil, &LoadError{Field: "tables", Message: "tables struct is required"}
	}
	if err := tv.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	var t tables
	if err := tv.Decode(&t); err != nil {
		return nil, formatCUEError(err)
	}

	r := &Registry{t: t}
	if errs := r.check(); len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	r.buildDerived()
	return r, nil
}

// check validates cross-table invariants the CUE schema cannot express.
// All violations are collected so a bad edit surfaces completely.
func (r *Registry) check() []error {
	var errs []error
	fail := func(field, format string, args ...any) {
		errs = append(errs, &LoadError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	for _, p := range r.t.BaselinePrefixes {
		if _, ok := r.t.Namespaces[p]; !ok {
			fail("baselinePrefixes", "prefix %q has no namespace entry", p)
		}
	}
	for p := range r.t.PrefixImports {
		if _, ok := r.t.Namespaces[p]; !ok {
			fail("prefixImports", "prefix %q has no namespace entry", p)
		}
	}
	for p := range r.t.PrefixAssemblies {
		if _, ok := r.t.Namespaces[p]; !ok {
			fail("prefixAssemblies", "prefix %q has no namespace entry", p)
		}
	}
	for _, ns := range r.t.BaselineImports {
		if _, ok := r.t.ImportAssemblies[ns]; !ok {
			fail("baselineImports", "namespace %q has no assembly entry", ns)
		}
	}
	for name, mapped := range r.t.TypeMap {
		prefix, _, ok := strings.Cut(mapped, ":")
		if !ok {
			fail("typeMap", "%q maps to unprefixed %q", name, mapped)
			continue
		}
		if _, known := r.t.Namespaces[prefix]; !known {
			fail("typeMap", "%q maps to unknown prefix %q", name, prefix)
		}
	}

	// Duplicate URIs would make the reverse lookup order-dependent.
	// The sd1/sd2 pair is fine: their URIs differ in the assembly suffix.
	seen := make(map[string]string, len(r.t.Namespaces))
	for _, p := range r.sortedPrefixes() {
		uri := r.t.Namespaces[p]
		if prev, dup := seen[uri]; dup {
			fail("namespaces", "URI %q bound to both %q and %q", uri, prev, p)
			continue
		}
		seen[uri] = p
	}

	return errs
}

func (r *Registry) buildDerived() {
	r.uriToPrefix = make(map[string]string, len(r.t.Namespaces))
	for p, uri := range r.t.Namespaces {
		r.uriToPrefix[uri] = p
	}

	// Two passes so short names win when a prefixed form has both a
	// short and a fully-qualified source.
	r.jsonTypes = make(map[string]string, len(r.t.TypeMap))
	for name, mapped := range r.t.TypeMap {
		if strings.Contains(name, ".") {
			r.jsonTypes[mapped] = name
		}
	}
	for name, mapped := range r.t.TypeMap {
		if !strings.Contains(name, ".") {
			r.jsonTypes[mapped] = name
		}
	}
}

func (r *Registry) sortedPrefixes() []string {
	prefixes := make([]string, 0, len(r.t.Namespaces))
	for p := range r.t.Namespaces {
		prefixes = append(prefixes, p)
	}
	slices.Sort(prefixes)
	return prefixes
}

// URIFor returns the namespace URI bound to a canonical prefix.
func (r *Registry) URIFor(prefix string) (string, bool) {
	uri, ok := r.t.Namespaces[prefix]
	return uri, ok
}

// PrefixForURI returns the canonical prefix for a namespace URI.
func (r *Registry) PrefixForURI(uri string) (string, bool) {
	p, ok := r.uriToPrefix[uri]
	return p, ok
}

// IsPrefix reports whether prefix is in the canonical registry.
func (r *Registry) IsPrefix(prefix string) bool {
	_, ok := r.t.Namespaces[prefix]
	return ok
}

// Prefixes returns all canonical prefixes in sorted order.
func (r *Registry) Prefixes() []string {
	return r.sortedPrefixes()
}

// BaselinePrefixes returns the prefixes every generated document
// declares, in table order.
func (r *Registry) BaselinePrefixes() []string {
	return slices.Clone(r.t.BaselinePrefixes)
}

// ImportsForPrefix returns the CLR namespaces importable under a prefix.
// Prefixes without expression imports return nil.
func (r *Registry) ImportsForPrefix(prefix string) []string {
	return slices.Clone(r.t.PrefixImports[prefix])
}

// AssembliesForPrefix returns the assemblies backing a prefix. XAML
// infrastructure prefixes return an empty list.
func (r *Registry) AssembliesForPrefix(prefix string) []string {
	return slices.Clone(r.t.PrefixAssemblies[prefix])
}

// BaselineImports returns the CLR namespaces every workflow imports.
func (r *Registry) BaselineImports() []string {
	return slices.Clone(r.t.BaselineImports)
}

// AssemblyForImport returns the assembly that provides a CLR namespace.
func (r *Registry) AssemblyForImport(clrNamespace string) (string, bool) {
	asm, ok := r.t.ImportAssemblies[clrNamespace]
	return asm, ok
}

// DefaultAssemblies returns the assembly references for documents that
// declare none. Order is the table's fixed order, not sorted.
func (r *Registry) DefaultAssemblies() []string {
	return slices.Clone(r.t.DefaultAssemblies)
}

// XAMLType returns the prefixed XAML form for a simple or
// fully-qualified type name.
func (r *Registry) XAMLType(name string) (string, bool) {
	mapped, ok := r.t.TypeMap[name]
	return mapped, ok
}

// JSONType returns the simple name for a prefixed XAML form. Short names
// win over fully-qualified aliases.
func (r *Registry) JSONType(xamlType string) (string, bool) {
	name, ok := r.jsonTypes[xamlType]
	return name, ok
}

// PrefixesForImport returns the prefixes whose import lists contain the
// CLR namespace, sorted. More than one element means the namespace is
// ambiguous (System.Drawing maps to both sd1 and sd2).
func (r *Registry) PrefixesForImport(clrNamespace string) []string {
	var matches []string
	for p, imports := range r.t.PrefixImports {
		if slices.Contains(imports, clrNamespace) {
			matches = append(matches, p)
		}
	}
	slices.Sort(matches)
	return matches
}

// HintSize returns the designer hint size for an activity kind.
func (r *Registry) HintSize(kind string) (string, bool) {
	size, ok := r.t.HintSizes[kind]
	return size, ok
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
	defaultErr  error
)

// Default returns the registry built from the embedded tables, loading
// it once. The embedded tables are static, so a failure here is a
// programming error and panics.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg, defaultErr = Load()
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("registry: embedded tables invalid: %v", defaultErr))
	}
	return defaultReg
}

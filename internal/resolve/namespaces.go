package resolve

import (
	"regexp"
	"strings"

	"github.com/Preyvik/MCP-UiPath/internal/ir"
)

// GenerateImportStrings produces the sorted CLR import list for the
// document's expression compilation settings.
//
// Prefix-derived imports and valid carried-over imports union; blank
// and whitespace-only entries are dropped. The fixed baseline list is
// seeded only when the carried-over set is empty after filtering, so a
// document that declared its own imports keeps exactly those plus the
// derived ones.
func (r *Resolver) GenerateImportStrings(prefixes map[string]bool, existingImports []string) []string {
	imports := make(map[string]bool)
	for prefix := range prefixes {
		for _, ns := range r.reg.ImportsForPrefix(prefix) {
			imports[ns] = true
		}
	}
	carried := 0
	for _, ns := range existingImports {
		trimmed := strings.TrimSpace(ns)
		if trimmed == "" {
			continue
		}
		imports[trimmed] = true
		carried++
	}
	if carried == 0 {
		for _, ns := range r.reg.BaselineImports() {
			imports[ns] = true
		}
	}
	return sortedKeys(imports)
}

// GenerateMinimalAssemblyReferences produces the assembly reference
// list: valid existing refs seeded first, prefix-derived assemblies
// added, and the fixed default list returned verbatim only when the
// combined set came out empty. The fallback keeps its fixed order; any
// non-fallback result sorts.
func (r *Resolver) GenerateMinimalAssemblyReferences(usedPrefixes map[string]bool, existingRefs []string) []string {
	refs := make(map[string]bool)
	for _, ref := range existingRefs {
		if trimmed := strings.TrimSpace(ref); trimmed != "" {
			refs[trimmed] = true
		}
	}
	for prefix := range usedPrefixes {
		for _, assembly := range r.reg.AssembliesForPrefix(prefix) {
			if assembly != "" {
				refs[assembly] = true
			}
		}
	}
	if len(refs) == 0 {
		return r.reg.DefaultAssemblies()
	}
	return sortedKeys(refs)
}

// FilterUsedCustomNamespaces keeps only the custom bindings a
// whole-token scan finds in use. Canonical prefixes are dropped
// unconditionally; a document binding can never shadow a canonical
// URI.
func (r *Resolver) FilterUsedCustomNamespaces(custom map[string]string, workflow ir.IRValue) map[string]string {
	used := make(map[string]string)
	for prefix, uri := range custom {
		if r.reg.IsPrefix(prefix) {
			continue
		}
		// QuoteMeta keeps arbitrary document prefixes from being read
		// as pattern syntax.
		pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(prefix) + `:`)
		if prefixInUse(workflow, pattern) {
			used[prefix] = uri
		}
	}
	return used
}

// prefixInUse walks string values only; keys never count as usage.
func prefixInUse(v ir.IRValue, pattern *regexp.Regexp) bool {
	switch val := v.(type) {
	case ir.IRString:
		return pattern.MatchString(string(val))
	case ir.IRObject:
		for _, child := range val {
			if prefixInUse(child, pattern) {
				return true
			}
		}
	case ir.IRArray:
		for _, item := range val {
			if prefixInUse(item, pattern) {
				return true
			}
		}
	}
	return false
}

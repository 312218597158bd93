package resolve

import (
	"log/slog"

	"github.com/Preyvik/MCP-UiPath/internal/registry"
	"github.com/Preyvik/MCP-UiPath/internal/typeref"
)

// Resolver answers the namespace, import, and assembly questions for
// one document vocabulary. It is stateless apart from the registry and
// safe for concurrent use; per-conversion state lives on the Context.
type Resolver struct {
	reg    *registry.Registry
	mapper *typeref.Mapper
	log    *slog.Logger
}

// NewResolver builds a resolver over the given registry. A nil logger
// falls back to slog.Default().
func NewResolver(reg *registry.Registry, logger *slog.Logger) *Resolver {
	if reg == nil {
		reg = registry.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		reg:    reg,
		mapper: typeref.NewMapper(reg),
		log:    logger,
	}
}

// ResolveNamespaceDeclarations merges the three prefix tiers into the
// final declaration set: auto-detected from the workflow body, the
// always-required baseline, and prefixes preserved from the document's
// own bindings. Pure union, so tier order never matters.
func ResolveNamespaceDeclarations(autoDetected, baselineRequired, metadataPreserved map[string]bool) map[string]bool {
	merged := make(map[string]bool, len(autoDetected)+len(baselineRequired)+len(metadataPreserved))
	for _, tier := range []map[string]bool{autoDetected, baselineRequired, metadataPreserved} {
		for prefix := range tier {
			merged[prefix] = true
		}
	}
	return merged
}

// PrefixSet builds a membership set from a prefix list.
func PrefixSet(prefixes []string) map[string]bool {
	set := make(map[string]bool, len(prefixes))
	for _, p := range prefixes {
		set[p] = true
	}
	return set
}

// SortedPrefixes returns the set's members in sorted order.
func SortedPrefixes(set map[string]bool) []string {
	return sortedKeys(set)
}

package resolve

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Preyvik/MCP-UiPath/internal/ir"
	"github.com/Preyvik/MCP-UiPath/internal/registry"
)

func TestGenerateImportStringsSeedsBaselineWhenEmpty(t *testing.T) {
	r := newResolver(t)

	got := r.GenerateImportStrings(PrefixSet([]string{"uix"}), nil)

	// Baseline plus the uix-derived imports, sorted.
	for _, baseline := range registry.Default().BaselineImports() {
		assert.Contains(t, got, baseline)
	}
	assert.Contains(t, got, "UiPath.UIAutomationNext.Activities")
	assert.Contains(t, got, "UiPath.UIAutomationNext.Enums")
	assert.IsIncreasing(t, got)
}

func TestGenerateImportStringsPreservesCarried(t *testing.T) {
	r := newResolver(t)

	got := r.GenerateImportStrings(
		PrefixSet([]string{"sd"}),
		[]string{"  MyCompany.Invoicing  ", "", "   "},
	)

	// A document that declared its own imports keeps exactly those plus
	// the derived ones; no baseline seeding.
	assert.Equal(t, []string{"MyCompany.Invoicing", "System.Data"}, got)
}

func TestGenerateImportStringsBlankOnlyCountsAsEmpty(t *testing.T) {
	r := newResolver(t)

	got := r.GenerateImportStrings(nil, []string{"", "   "})
	assert.Equal(t, sortedCopy(registry.Default().BaselineImports()), got)
}

func TestGenerateMinimalAssemblyReferences(t *testing.T) {
	r := newResolver(t)

	got := r.GenerateMinimalAssemblyReferences(
		PrefixSet([]string{"ui"}),
		[]string{" CustomAssembly ", ""},
	)
	assert.Equal(t, []string{"CustomAssembly", "UiPath.System.Activities"}, got)
}

func TestGenerateMinimalAssemblyReferencesFallback(t *testing.T) {
	r := newResolver(t)
	reg := registry.Default()

	got := r.GenerateMinimalAssemblyReferences(nil, nil)

	// The fallback list keeps its fixed order rather than sorting;
	// mscorlib sits near the front despite its lowercase name.
	assert.Equal(t, reg.DefaultAssemblies(), got)
	assert.Equal(t, "mscorlib", got[2])
}

func TestGenerateMinimalAssemblyReferencesInfraPrefixesFallBack(t *testing.T) {
	r := newResolver(t)

	// x and sap carry no assemblies, so the combined set stays empty
	// and the default list applies.
	got := r.GenerateMinimalAssemblyReferences(PrefixSet([]string{"x", "sap"}), nil)
	assert.Equal(t, registry.Default().DefaultAssemblies(), got)
}

func TestFilterUsedCustomNamespaces(t *testing.T) {
	r := newResolver(t)

	workflow := ir.IRObject{
		"type": ir.IRString("Sequence"),
		"children": ir.IRArray{
			ir.IRObject{
				"type": ir.IRString("foo:SpecialActivity"),
			},
			ir.IRObject{
				"type": ir.IRString("sd:DataTable"),
			},
		},
	}
	custom := map[string]string{
		"foo": "http://example.com/foo",
		"bar": "http://example.com/bar",
		"sd":  "http://example.com/shadow",
	}

	got := r.FilterUsedCustomNamespaces(custom, workflow)

	// foo is in use; bar is not; sd is canonical and can never be
	// shadowed even though sd: tokens appear in the tree.
	assert.Equal(t, map[string]string{"foo": "http://example.com/foo"}, got)
}

func TestFilterUsedCustomNamespacesWholeToken(t *testing.T) {
	r := newResolver(t)

	workflow := ir.IRObject{"type": ir.IRString("buffoo:Thing")}
	custom := map[string]string{"foo": "http://example.com/foo"}

	// "buffoo:" must not count as a use of "foo".
	assert.Empty(t, r.FilterUsedCustomNamespaces(custom, workflow))
}

func TestFilterUsedCustomNamespacesEmpty(t *testing.T) {
	r := newResolver(t)
	assert.Empty(t, r.FilterUsedCustomNamespaces(nil, ir.IRObject{}))
}

func sortedCopy(in []string) []string {
	out := slices.Clone(in)
	slices.Sort(out)
	return out
}

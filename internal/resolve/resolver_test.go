package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveNamespaceDeclarations(t *testing.T) {
	auto := PrefixSet([]string{"sd", "scg"})
	baseline := PrefixSet([]string{"x", "ui", "sd"})
	preserved := PrefixSet([]string{"uix"})

	got := ResolveNamespaceDeclarations(auto, baseline, preserved)
	assert.Equal(t, []string{"scg", "sd", "ui", "uix", "x"}, SortedPrefixes(got))

	// Tier order never matters.
	swapped := ResolveNamespaceDeclarations(preserved, auto, baseline)
	assert.Equal(t, got, swapped)
}

func TestResolveNamespaceDeclarationsEmptyTiers(t *testing.T) {
	got := ResolveNamespaceDeclarations(nil, PrefixSet([]string{"x"}), nil)
	assert.Equal(t, []string{"x"}, SortedPrefixes(got))

	assert.Empty(t, ResolveNamespaceDeclarations(nil, nil, nil))
}

func TestNewResolverDefaults(t *testing.T) {
	r := NewResolver(nil, nil)
	assert.NotNil(t, r.reg)
	assert.NotNil(t, r.mapper)
	assert.NotNil(t, r.log)
}

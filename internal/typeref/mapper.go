package typeref

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Preyvik/MCP-UiPath/internal/registry"
)

// Mapper converts between IR type names and prefixed XAML references.
// All methods are pure string transforms over the immutable registry.
type Mapper struct {
	reg *registry.Registry
}

// NewMapper returns a Mapper over the given registry tables.
func NewMapper(reg *registry.Registry) *Mapper {
	return &Mapper{reg: reg}
}

// Diagnostic reports a type reference the mapper refused to rewrite.
// The input passes through unchanged; the caller decides whether the
// message becomes a warning.
type Diagnostic struct {
	Ref     string
	Message string
}

var (
	genericName = regexp.MustCompile(`^(\w+)<(.+)>$`)
	genericRef  = regexp.MustCompile(`^scg:(\w+)\((.+)\)$`)
)

// ToTypeReference maps an IR type name to its prefixed XAML form.
// One level of List<T> and Dictionary<K,V> is recognized and the
// arguments are mapped recursively. Unmapped names pass through.
func (m *Mapper) ToTypeReference(name string) string {
	if match := genericName.FindStringSubmatch(name); match != nil {
		container, inner := match[1], match[2]
		switch container {
		case "List":
			return fmt.Sprintf("scg:List(%s)", m.ToTypeReference(inner))
		case "Dictionary":
			parts := strings.Split(inner, ",")
			if len(parts) == 2 {
				return fmt.Sprintf("scg:Dictionary(%s, %s)",
					m.ToTypeReference(strings.TrimSpace(parts[0])),
					m.ToTypeReference(strings.TrimSpace(parts[1])))
			}
		}
	}
	if mapped, ok := m.reg.XAMLType(name); ok {
		return mapped
	}
	return name
}

// ToJSONType maps a prefixed XAML reference back to its IR type name.
// scg:Name(...) generics are unpacked recursively; short names win over
// fully-qualified spellings through the registry's reverse table.
func (m *Mapper) ToJSONType(ref string) string {
	if match := genericRef.FindStringSubmatch(ref); match != nil {
		container, inner := match[1], match[2]
		parts := splitTypeArgs(inner)
		names := make([]string, len(parts))
		for i, p := range parts {
			names[i] = m.ToJSONType(strings.TrimSpace(p))
		}
		return fmt.Sprintf("%s<%s>", container, strings.Join(names, ", "))
	}
	if name, ok := m.reg.JSONType(ref); ok {
		return name
	}
	return ref
}

// NormalizeTypeReference rewrites a fully-qualified CLR type name to its
// prefixed form, canonical-map first:
//
//  1. already prefixed: unchanged
//  2. no dot: unchanged (bare names stay bare)
//  3. type map hit: the mapped reference
//  4. namespace resolves to exactly one prefix: prefix:ShortName
//  5. multiple prefixes: unchanged, ambiguity diagnostic
//  6. no prefix: unchanged, unmapped diagnostic
//
// The mapper never guesses between ambiguous prefixes.
func (m *Mapper) NormalizeTypeReference(ref string) (string, *Diagnostic) {
	if ref == "" {
		return ref, nil
	}
	if strings.Contains(ref, ":") {
		return ref, nil
	}
	if !strings.Contains(ref, ".") {
		return ref, nil
	}
	if mapped, ok := m.reg.XAMLType(ref); ok {
		return mapped, nil
	}

	lastDot := strings.LastIndex(ref, ".")
	namespace, short := ref[:lastDot], ref[lastDot+1:]

	prefixes := m.reg.PrefixesForImport(namespace)
	switch len(prefixes) {
	case 1:
		return prefixes[0] + ":" + short, nil
	case 0:
		return ref, &Diagnostic{
			Ref:     ref,
			Message: fmt.Sprintf("Unmapped type: %s has no matching namespace prefix", ref),
		}
	default:
		return ref, &Diagnostic{
			Ref:     ref,
			Message: fmt.Sprintf("Ambiguous type: %s matches prefixes %v", ref, prefixes),
		}
	}
}

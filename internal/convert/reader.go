package convert

import (
	"log/slog"
	"strings"

	"github.com/Preyvik/MCP-UiPath/internal/ir"
	"github.com/Preyvik/MCP-UiPath/internal/registry"
	"github.com/Preyvik/MCP-UiPath/internal/typeref"
)

// typeBearingKeys are the attribute keys whose string values can carry
// document type references. "type" doubles as the node kind
// discriminator; canonicalization leaves bare kind names untouched, so
// only genuinely prefixed values rewrite.
var typeBearingKeys = []string{
	"type",
	"x:TypeArguments",
	"variableType",
	"argumentType",
	"exceptionType",
	"typeArguments",
	"typeArgument",
}

// Reader normalizes parsed documents into canonical IR trees plus a
// metadata envelope. It is the read half of the pipeline: the write
// half consumes exactly what Normalize produces.
type Reader struct {
	reg    *registry.Registry
	mapper *typeref.Mapper
	log    *slog.Logger
}

// NewReader creates a Reader over the given registry. A nil registry
// uses the embedded default; a nil logger uses slog.Default().
func NewReader(reg *registry.Registry, logger *slog.Logger) *Reader {
	if reg == nil {
		reg = registry.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{reg: reg, mapper: typeref.NewMapper(reg), log: logger}
}

// Normalize canonicalizes a parsed document against its own xmlns
// bindings and splits it into workflow body and metadata envelope.
//
// Every type-bearing string in the body is rewritten to the registry's
// canonical prefix for whatever URI the document bound it to, so two
// documents that spell the same namespace with different prefixes
// normalize to identical trees. Variable types and member argument
// types additionally convert to IR type names, with argument direction
// recovered from the InArgument/OutArgument/InOutArgument wrapper.
//
// The metadata envelope collects the document's top-level "class",
// "namespaces", "assemblyReferences" and "arguments" keys (blank
// entries dropped) plus every binding whose prefix the registry does
// not claim. The body is the "body" key, then "workflow", then the
// document itself when it carries a "type" discriminator. The input is
// never mutated.
func (r *Reader) Normalize(doc ir.IRValue, bindings map[string]string) (ir.IRValue, ir.Metadata) {
	meta := ir.DefaultMetadata()
	root, ok := doc.(ir.IRObject)
	if !ok {
		return ir.DeepCopy(doc), meta
	}

	table := r.canonicalTable(bindings)
	copied := ir.DeepCopyObject(root)

	body, isEnvelope := r.extractBody(copied)
	if isEnvelope {
		// An activity-only document has no envelope keys; its
		// "arguments" belong to the activity, not the members list.
		meta.Class = copied.StringOr("class", "")
		meta.Namespaces = stringList(copied, "namespaces")
		meta.AssemblyReferences = stringList(copied, "assemblyReferences")
		meta.Arguments = r.normalizeArguments(copied, bindings, table)
	}
	for prefix, uri := range bindings {
		if prefix == "" || r.reg.IsPrefix(prefix) {
			continue
		}
		if meta.XmlnsBindings == nil {
			meta.XmlnsBindings = make(map[string]string)
		}
		meta.XmlnsBindings[prefix] = uri
	}

	rewrites := 0
	r.normalizeValue(body, bindings, table, &rewrites)

	r.log.Debug("document normalized",
		"class", meta.Class,
		"type_rewrites", rewrites,
		"arguments", len(meta.Arguments),
		"custom_bindings", len(meta.XmlnsBindings),
	)
	return body, meta
}

// canonicalTable maps each bound URI to the registry's canonical
// prefix. Non-identity remaps are logged once per document here;
// they mark inputs authored with foreign prefix conventions.
func (r *Reader) canonicalTable(bindings map[string]string) map[string]string {
	table := make(map[string]string, len(bindings))
	for prefix, uri := range bindings {
		canonical, ok := r.reg.PrefixForURI(uri)
		if !ok {
			continue
		}
		table[uri] = canonical
		if canonical != prefix {
			r.log.Debug("prefix remapped", "from", prefix, "to", canonical)
		}
	}
	return table
}

// extractBody locates the workflow body. The second return reports
// whether the document wrapped it in an envelope; a document that is
// itself the activity has no envelope keys to read.
func (r *Reader) extractBody(doc ir.IRObject) (ir.IRValue, bool) {
	if body, ok := doc.Get("body"); ok && !ir.IsNull(body) {
		return body, true
	}
	if body, ok := doc.Get("workflow"); ok && !ir.IsNull(body) {
		return body, true
	}
	if doc.Has(ir.KeyType) {
		return doc, false
	}
	return ir.IRNull{}, true
}

// normalizeValue walks the whole tree rather than a container-key
// vocabulary: canonicalization is idempotent and the type-bearing keys
// only ever hold references, so over-visiting is harmless and no
// nesting shape can hide a stale prefix.
func (r *Reader) normalizeValue(v ir.IRValue, bindings, table map[string]string, rewrites *int) {
	switch node := v.(type) {
	case ir.IRObject:
		for _, key := range typeBearingKeys {
			raw, ok := node.GetString(key)
			if !ok || raw == "" {
				continue
			}
			canonical := typeref.Canonicalize(raw, bindings, table)
			if canonical != raw {
				node[key] = ir.IRString(canonical)
				*rewrites++
			}
		}
		if vars, ok := node.GetArray(ir.KeyVariables); ok {
			r.normalizeVariables(vars, bindings, table, rewrites)
		}
		for key, child := range node {
			if key == ir.KeyVariables {
				continue
			}
			r.normalizeValue(child, bindings, table, rewrites)
		}
	case ir.IRArray:
		for _, child := range node {
			r.normalizeValue(child, bindings, table, rewrites)
		}
	}
}

// normalizeVariables rewrites each variable's "type" to an IR type
// name. Here "type" is a reference, not a discriminator, which is why
// variable entries bypass the generic walk.
func (r *Reader) normalizeVariables(vars ir.IRArray, bindings, table map[string]string, rewrites *int) {
	for _, entry := range vars {
		varObj, ok := entry.(ir.IRObject)
		if !ok {
			continue
		}
		raw, ok := varObj.GetString(ir.KeyType)
		if !ok || raw == "" {
			continue
		}
		name := r.mapper.ToJSONType(typeref.Canonicalize(raw, bindings, table))
		if name != raw {
			varObj[ir.KeyType] = ir.IRString(name)
			*rewrites++
		}
	}
}

// normalizeArguments builds the member list from the document's
// "arguments" array. Entries without both a name and a type are
// dropped, matching the envelope contract that every member is fully
// declared.
func (r *Reader) normalizeArguments(doc ir.IRObject, bindings, table map[string]string) []ir.Argument {
	arr, ok := doc.GetArray("arguments")
	if !ok {
		return []ir.Argument{}
	}
	args := make([]ir.Argument, 0, len(arr))
	for _, entry := range arr {
		obj, ok := entry.(ir.IRObject)
		if !ok {
			continue
		}
		name, ok := obj.GetString("name")
		if !ok || name == "" {
			continue
		}
		rawType, ok := obj.GetString(ir.KeyType)
		if !ok || rawType == "" {
			continue
		}
		direction, inner := typeref.UnwrapArgumentType(rawType)
		inner = typeref.Canonicalize(inner, bindings, table)
		args = append(args, ir.Argument{
			Name:      name,
			Direction: direction,
			Type:      r.mapper.ToJSONType(inner),
		})
	}
	return args
}

func stringList(doc ir.IRObject, key string) []string {
	out := []string{}
	arr, ok := doc.GetArray(key)
	if !ok {
		return out
	}
	for _, entry := range arr {
		s, ok := entry.(ir.IRString)
		if !ok {
			continue
		}
		trimmed := strings.TrimSpace(string(s))
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

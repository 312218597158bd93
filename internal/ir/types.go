package ir

import "strings"

// Argument directions for workflow members.
const (
	DirectionIn    = "In"
	DirectionOut   = "Out"
	DirectionInOut = "InOut"
)

// Argument is one workflow member declaration carried in the metadata
// envelope.
type Argument struct {
	Name      string `json:"name"`
	Direction string `json:"direction"`
	Type      string `json:"type"`
}

// Metadata is the envelope carried beside the workflow body: the document
// class name, expression imports, assembly references, member arguments,
// and any custom xmlns bindings the input document declared.
type Metadata struct {
	Class              string            `json:"class"`
	Namespaces         []string          `json:"namespaces"`
	AssemblyReferences []string          `json:"assemblyReferences"`
	Arguments          []Argument        `json:"arguments"`
	XmlnsBindings      map[string]string `json:"xmlnsBindings,omitempty"`
}

// DefaultMetadata returns the envelope used for fresh documents.
// XmlnsBindings stays nil until a document actually declares custom
// bindings.
func DefaultMetadata() Metadata {
	return Metadata{
		Class:              "",
		Namespaces:         []string{},
		AssemblyReferences: []string{},
		Arguments:          []Argument{},
	}
}

// ParseMetadata extracts a Metadata envelope from an IR value.
// Missing or wrong-typed keys fall back to defaults; whitespace-only
// assembly references are dropped. A non-object input yields the default
// envelope, so callers never branch on envelope presence.
func ParseMetadata(v IRValue) Metadata {
	obj, ok := v.(IRObject)
	if !ok {
		return DefaultMetadata()
	}

	m := DefaultMetadata()
	m.Class = obj.StringOr("class", "")

	if arr, ok := obj.GetArray("namespaces"); ok {
		for _, elem := range arr {
			if s, ok := elem.(IRString); ok {
				m.Namespaces = append(m.Namespaces, string(s))
			}
		}
	}

	if arr, ok := obj.GetArray("assemblyReferences"); ok {
		for _, elem := range arr {
			s, ok := elem.(IRString)
			if !ok || strings.TrimSpace(string(s)) == "" {
				continue
			}
			m.AssemblyReferences = append(m.AssemblyReferences, string(s))
		}
	}

	if arr, ok := obj.GetArray("arguments"); ok {
		for _, elem := range arr {
			argObj, ok := elem.(IRObject)
			if !ok {
				continue
			}
			name, ok := argObj.GetString("name")
			if !ok || name == "" {
				continue
			}
			m.Arguments = append(m.Arguments, Argument{
				Name:      name,
				Direction: argObj.StringOr("direction", DirectionIn),
				Type:      argObj.StringOr("type", "String"),
			})
		}
	}

	if bindings, ok := obj.GetObject("xmlnsBindings"); ok {
		for prefix, uriVal := range bindings {
			uri, ok := uriVal.(IRString)
			if !ok {
				continue
			}
			if m.XmlnsBindings == nil {
				m.XmlnsBindings = make(map[string]string, len(bindings))
			}
			m.XmlnsBindings[prefix] = string(uri)
		}
	}

	return m
}

// Value converts the envelope back to its IR form.
func (m Metadata) Value() IRObject {
	namespaces := make(IRArray, len(m.Namespaces))
	for i, ns := range m.Namespaces {
		namespaces[i] = IRString(ns)
	}
	refs := make(IRArray, len(m.AssemblyReferences))
	for i, ref := range m.AssemblyReferences {
		refs[i] = IRString(ref)
	}
	args := make(IRArray, len(m.Arguments))
	for i, arg := range m.Arguments {
		args[i] = IRObject{
			"name":      IRString(arg.Name),
			"direction": IRString(arg.Direction),
			"type":      IRString(arg.Type),
		}
	}

	obj := IRObject{
		"class":              IRString(m.Class),
		"namespaces":         namespaces,
		"assemblyReferences": refs,
		"arguments":          args,
	}
	if len(m.XmlnsBindings) > 0 {
		bindings := make(IRObject, len(m.XmlnsBindings))
		for prefix, uri := range m.XmlnsBindings {
			bindings[prefix] = IRString(uri)
		}
		obj["xmlnsBindings"] = bindings
	}
	return obj
}

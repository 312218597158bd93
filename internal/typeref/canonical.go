package typeref

import (
	"regexp"
	"strings"
)

var (
	prefixedGeneric   = regexp.MustCompile(`^(\w+:\w+)\((.+)\)$`)
	unprefixedGeneric = regexp.MustCompile(`^(\w+)\((.+)\)$`)
)

// Canonicalize rewrites every prefix in a XAML type reference to the
// framework's canonical prefix, using the document's own xmlns bindings
// to find each prefix's URI and the uriToCanonical table to find the
// canonical prefix for that URI.
//
// Generic containers (scg:List(sd:Image)), argument wrappers
// (InArgument(sd:Image)), and comma-joined argument lists are descended
// into; commas inside nested parentheses are respected. A prefix with no
// binding, or a URI outside the canonical table, is left untouched.
func Canonicalize(ref string, bindings, uriToCanonical map[string]string) string {
	if ref == "" || len(bindings) == 0 || len(uriToCanonical) == 0 {
		return ref
	}

	if match := prefixedGeneric.FindStringSubmatch(ref); match != nil {
		container := canonicalizeSinglePrefix(match[1], bindings, uriToCanonical)
		return container + "(" + canonicalizeArgs(match[2], bindings, uriToCanonical) + ")"
	}

	if match := unprefixedGeneric.FindStringSubmatch(ref); match != nil {
		return match[1] + "(" + canonicalizeArgs(match[2], bindings, uriToCanonical) + ")"
	}

	if strings.Contains(ref, ",") && !strings.Contains(ref, "(") {
		return canonicalizeArgs(ref, bindings, uriToCanonical)
	}

	return canonicalizeSinglePrefix(ref, bindings, uriToCanonical)
}

func canonicalizeArgs(inner string, bindings, uriToCanonical map[string]string) string {
	parts := splitTypeArgs(inner)
	for i, p := range parts {
		parts[i] = Canonicalize(strings.TrimSpace(p), bindings, uriToCanonical)
	}
	return strings.Join(parts, ", ")
}

func canonicalizeSinglePrefix(ref string, bindings, uriToCanonical map[string]string) string {
	prefix, local, ok := strings.Cut(ref, ":")
	if !ok {
		return ref
	}
	uri, ok := bindings[prefix]
	if !ok {
		return ref
	}
	canonical, ok := uriToCanonical[uri]
	if !ok {
		return ref
	}
	if canonical == prefix {
		return ref
	}
	return canonical + ":" + local
}

// splitTypeArgs splits a comma-joined argument list, ignoring commas
// inside nested parentheses:
// "scg:List(x:String), x:Object" -> ["scg:List(x:String)", " x:Object"].
func splitTypeArgs(inner string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, ch := range inner {
		switch ch {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, inner[start:i])
				start = i + 1
			}
		}
	}
	if start < len(inner) {
		parts = append(parts, inner[start:])
	}
	return parts
}

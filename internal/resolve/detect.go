package resolve

import (
	"regexp"
	"strings"

	"github.com/Preyvik/MCP-UiPath/internal/ir"
)

// prefixToken matches a prefixed type occurrence such as "sd:DataTable"
// or "scg:List[x:String]" inside any string value.
var prefixToken = regexp.MustCompile(`(\w+):[\w\[\]]+`)

// DetectRequiredPrefixes scans the workflow body for every namespace
// prefix the produced document will need.
//
// Two signals contribute: any prefix:Name token whose prefix the
// registry knows, and any bare name the type map resolves to a
// prefixed form (so "DataTable" pulls in "sd" even though no prefix
// appears in the input). The scan visits type annotation keys,
// variable declarations, expression holders, every known child
// collection, and generically any remaining string, object, or array.
func (r *Resolver) DetectRequiredPrefixes(workflow ir.IRValue) map[string]bool {
	prefixes := make(map[string]bool)
	if obj, ok := workflow.(ir.IRObject); ok {
		r.scanObjectForPrefixes(obj, prefixes)
	}
	return prefixes
}

func (r *Resolver) scanStringForPrefixes(value string, prefixes map[string]bool) {
	for _, m := range prefixToken.FindAllStringSubmatch(value, -1) {
		if r.reg.IsPrefix(m[1]) {
			prefixes[m[1]] = true
		}
	}
	// Bare names resolve through the type map so implicit requirements
	// surface too.
	stripped := strings.TrimSpace(value)
	if xamlType, ok := r.reg.XAMLType(stripped); ok {
		if i := strings.Index(xamlType, ":"); i > 0 {
			if prefix := xamlType[:i]; r.reg.IsPrefix(prefix) {
				prefixes[prefix] = true
			}
		}
	}
}

func (r *Resolver) scanValueForPrefixes(v ir.IRValue, prefixes map[string]bool) {
	if s, ok := v.(ir.IRString); ok {
		r.scanStringForPrefixes(string(s), prefixes)
	}
}

func (r *Resolver) scanObjectForPrefixes(obj ir.IRObject, prefixes map[string]bool) {
	for key, value := range obj {
		switch {
		case isDetectTypeKey(key):
			r.scanValueForPrefixes(value, prefixes)
		case key == ir.KeyVariables:
			arr, ok := value.(ir.IRArray)
			if !ok {
				continue
			}
			for _, item := range arr {
				if varObj, ok := item.(ir.IRObject); ok {
					r.scanStringForPrefixes(varObj.StringOr("type", ""), prefixes)
					r.scanStringForPrefixes(varObj.StringOr("default", ""), prefixes)
				}
			}
		case isContainerKey(key):
			switch val := value.(type) {
			case ir.IRArray:
				for _, item := range val {
					if child, ok := item.(ir.IRObject); ok {
						r.scanObjectForPrefixes(child, prefixes)
					}
				}
			case ir.IRObject:
				r.scanObjectForPrefixes(val, prefixes)
			}
		case isExpressionKey(key):
			switch val := value.(type) {
			case ir.IRObject:
				r.scanStringForPrefixes(val.StringOr("type", ""), prefixes)
				r.scanObjectForPrefixes(val, prefixes)
			case ir.IRString:
				r.scanStringForPrefixes(string(val), prefixes)
			}
		default:
			switch val := value.(type) {
			case ir.IRObject:
				r.scanObjectForPrefixes(val, prefixes)
			case ir.IRString:
				r.scanStringForPrefixes(string(val), prefixes)
			case ir.IRArray:
				for _, item := range val {
					switch elem := item.(type) {
					case ir.IRObject:
						r.scanObjectForPrefixes(elem, prefixes)
					case ir.IRString:
						r.scanStringForPrefixes(string(elem), prefixes)
					}
				}
			}
		}
	}
}

// isDetectTypeKey lists the type annotation keys the prefix scan reads
// directly. Wider than the corrector's normalization set: detection is
// read-only so over-matching is harmless.
func isDetectTypeKey(key string) bool {
	switch key {
	case "type", "typeArgument", "TypeArguments", "x:TypeArguments",
		"argumentType", "variableType", "exceptionType":
		return true
	}
	return false
}

// isContainerKey lists every child collection key in the document
// vocabulary, step bodies and scope branches included.
func isContainerKey(key string) bool {
	switch key {
	case "children", "activities", "body", "then", "else",
		"catches", "finally", "cases", "default",
		"trueBody", "falseBody", "nodes", "ifExists", "ifNotExists":
		return true
	}
	return false
}

// isExpressionKey lists the holders whose value is either a bare
// expression string or an object carrying {value, type}.
func isExpressionKey(key string) bool {
	switch key {
	case "to", "value", "condition", "expression":
		return true
	}
	return false
}

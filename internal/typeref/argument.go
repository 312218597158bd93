package typeref

import (
	"regexp"

	"github.com/Preyvik/MCP-UiPath/internal/ir"
)

// Argument wrapper patterns. InOutArgument must be probed before
// OutArgument: the former contains the latter as a substring.
var (
	inOutArgInner = regexp.MustCompile(`InOutArgument\((.+)\)`)
	outArgInner   = regexp.MustCompile(`OutArgument\((.+)\)`)
	inArgInner    = regexp.MustCompile(`InArgument\((.+)\)`)
)

// UnwrapArgumentType splits a workflow member's wrapped type into its
// direction and inner reference:
//
//	InArgument(x:String)    -> In, x:String
//	OutArgument(x:String)   -> Out, x:String
//	InOutArgument(x:String) -> InOut, x:String
//
// An unwrapped type is an In argument of itself.
func UnwrapArgumentType(ref string) (direction, inner string) {
	switch {
	case inOutArgInner.MatchString(ref):
		return ir.DirectionInOut, inOutArgInner.FindStringSubmatch(ref)[1]
	case outArgInner.MatchString(ref):
		return ir.DirectionOut, outArgInner.FindStringSubmatch(ref)[1]
	case inArgInner.MatchString(ref):
		return ir.DirectionIn, inArgInner.FindStringSubmatch(ref)[1]
	default:
		return ir.DirectionIn, ref
	}
}

// WrapArgumentType builds the wrapped member type for a direction.
// Unknown directions wrap as In.
func WrapArgumentType(direction, ref string) string {
	switch direction {
	case ir.DirectionOut:
		return "OutArgument(" + ref + ")"
	case ir.DirectionInOut:
		return "InOutArgument(" + ref + ")"
	default:
		return "InArgument(" + ref + ")"
	}
}

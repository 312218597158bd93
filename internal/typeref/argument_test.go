package typeref

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Preyvik/MCP-UiPath/internal/ir"
)

func TestUnwrapArgumentType(t *testing.T) {
	tests := []struct {
		ref       string
		direction string
		inner     string
	}{
		{"InArgument(x:String)", ir.DirectionIn, "x:String"},
		{"OutArgument(x:String)", ir.DirectionOut, "x:String"},
		{"InOutArgument(x:String)", ir.DirectionInOut, "x:String"},
		{"InOutArgument(sd:DataTable)", ir.DirectionInOut, "sd:DataTable"},
		// Wrappers around generics keep the full inner reference.
		{"InArgument(scg:List(x:String))", ir.DirectionIn, "scg:List(x:String)"},
		{"OutArgument(scg:Dictionary(x:String, x:Int32))", ir.DirectionOut, "scg:Dictionary(x:String, x:Int32)"},
		// Unwrapped types default to In.
		{"x:String", ir.DirectionIn, "x:String"},
		{"sd:DataTable", ir.DirectionIn, "sd:DataTable"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			direction, inner := UnwrapArgumentType(tt.ref)
			assert.Equal(t, tt.direction, direction)
			assert.Equal(t, tt.inner, inner)
		})
	}
}

func TestWrapArgumentType(t *testing.T) {
	tests := []struct {
		direction string
		ref       string
		want      string
	}{
		{ir.DirectionIn, "x:String", "InArgument(x:String)"},
		{ir.DirectionOut, "x:String", "OutArgument(x:String)"},
		{ir.DirectionInOut, "sd:DataTable", "InOutArgument(sd:DataTable)"},
		// Unknown directions wrap as In.
		{"sideways", "x:String", "InArgument(x:String)"},
		{"", "x:String", "InArgument(x:String)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, WrapArgumentType(tt.direction, tt.ref))
		})
	}
}

func TestWrapUnwrapRoundTrip(t *testing.T) {
	for _, direction := range []string{ir.DirectionIn, ir.DirectionOut, ir.DirectionInOut} {
		wrapped := WrapArgumentType(direction, "scg:List(x:String)")
		gotDir, gotInner := UnwrapArgumentType(wrapped)
		assert.Equal(t, direction, gotDir)
		assert.Equal(t, "scg:List(x:String)", gotInner)
	}
}

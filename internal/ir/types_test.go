package ir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgumentJSONFieldNaming(t *testing.T) {
	arg := Argument{
		Name:      "invoiceTotal",
		Direction: DirectionOut,
		Type:      "Decimal",
	}
	data, err := json.Marshal(arg)
	require.NoError(t, err)

	// Wire format is camelCase to match the IR documents.
	assert.Contains(t, string(data), `"name"`)
	assert.Contains(t, string(data), `"direction"`)
	assert.Contains(t, string(data), `"type"`)
	assert.Contains(t, string(data), `"out"`)
}

func TestDefaultMetadata(t *testing.T) {
	m := DefaultMetadata()

	assert.Empty(t, m.Class)
	assert.NotNil(t, m.Namespaces)
	assert.Empty(t, m.Namespaces)
	assert.NotNil(t, m.AssemblyReferences)
	assert.Empty(t, m.AssemblyReferences)
	assert.NotNil(t, m.Arguments)
	assert.Empty(t, m.Arguments)
}

func TestParseMetadata(t *testing.T) {
	tests := []struct {
		name string
		in   IRValue
		want Metadata
	}{
		{
			name: "nil input yields defaults",
			in:   nil,
			want: DefaultMetadata(),
		},
		{
			name: "non-object input yields defaults",
			in:   NewIRString("metadata"),
			want: DefaultMetadata(),
		},
		{
			name: "empty object yields defaults",
			in:   NewIRObjectFromPairs(),
			want: DefaultMetadata(),
		},
		{
			name: "class and namespaces carried through",
			in: O(
				IRPair{"class", NewIRString("InvoiceFlow")},
				IRPair{"namespaces", NewIRArray(NewIRString("System"), NewIRString("System.Data"))},
			),
			want: Metadata{
				Class:              "InvoiceFlow",
				Namespaces:         []string{"System", "System.Data"},
				AssemblyReferences: []string{},
				Arguments:          []Argument{},
			},
		},
		{
			name: "blank assembly references dropped",
			in: O(
				IRPair{"assemblyReferences", NewIRArray(
					NewIRString("System.Activities"),
					NewIRString("   "),
					NewIRString(""),
					NewIRString("UiPath.System.Activities"),
				)},
			),
			want: Metadata{
				Namespaces:         []string{},
				AssemblyReferences: []string{"System.Activities", "UiPath.System.Activities"},
				Arguments:          []Argument{},
			},
		},
		{
			name: "argument defaults applied",
			in: O(
				IRPair{"arguments", NewIRArray(
					O(IRPair{"name", NewIRString("input1")}),
					O(
						IRPair{"name", NewIRString("result")},
						IRPair{"direction", NewIRString("out")},
						IRPair{"type", NewIRString("Int32")},
					),
				)},
			),
			want: Metadata{
				Namespaces:         []string{},
				AssemblyReferences: []string{},
				Arguments: []Argument{
					{Name: "input1", Direction: DirectionIn, Type: "String"},
					{Name: "result", Direction: DirectionOut, Type: "Int32"},
				},
			},
		},
		{
			name: "nameless arguments skipped",
			in: O(
				IRPair{"arguments", NewIRArray(
					O(IRPair{"direction", NewIRString("in")}),
					O(IRPair{"name", NewIRString("kept")}),
				)},
			),
			want: Metadata{
				Namespaces:         []string{},
				AssemblyReferences: []string{},
				Arguments:          []Argument{{Name: "kept", Direction: DirectionIn, Type: "String"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseMetadata(tt.in)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMetadataInOutDirection(t *testing.T) {
	in := O(
		IRPair{"arguments", NewIRArray(
			O(
				IRPair{"name", NewIRString("counter")},
				IRPair{"direction", NewIRString("inout")},
			),
		)},
	)
	got := ParseMetadata(in)
	require.Len(t, got.Arguments, 1)
	assert.Equal(t, DirectionInOut, got.Arguments[0].Direction)
}

func TestMetadataValueRoundTrip(t *testing.T) {
	m := Metadata{
		Class:              "OrderFlow",
		Namespaces:         []string{"System", "UiPath.Core"},
		AssemblyReferences: []string{"System.Activities"},
		Arguments: []Argument{
			{Name: "orderId", Direction: DirectionIn, Type: "String"},
			{Name: "total", Direction: DirectionOut, Type: "Decimal"},
		},
	}
	got := ParseMetadata(m.Value())
	assert.Equal(t, m, got)
}

func TestMetadataValueEmitsEmptyCollections(t *testing.T) {
	v := DefaultMetadata().Value()

	// Downstream consumers expect the collection keys even when empty.
	_, ok := v.Get("namespaces")
	assert.True(t, ok)
	_, ok = v.Get("assemblyReferences")
	assert.True(t, ok)
	_, ok = v.Get("arguments")
	assert.True(t, ok)
	_, ok = v.Get("class")
	assert.True(t, ok)
}

func TestMetadataValueXmlnsBindingsOmittedWhenEmpty(t *testing.T) {
	v := DefaultMetadata().Value()
	_, ok := v.Get("xmlnsBindings")
	assert.False(t, ok)

	m := DefaultMetadata()
	m.XmlnsBindings = map[string]string{"cust": "clr-namespace:Custom.Lib;assembly=Custom.Lib"}
	v = m.Value()
	bindings, ok := v.GetObject("xmlnsBindings")
	require.True(t, ok)
	got, ok := bindings.GetString("cust")
	require.True(t, ok)
	assert.Equal(t, "clr-namespace:Custom.Lib;assembly=Custom.Lib", got)
}

func TestMetadataCanonicalStability(t *testing.T) {
	m := Metadata{
		Class:      "Main",
		Namespaces: []string{"System"},
	}
	a, err := MarshalCanonical(m.Value())
	require.NoError(t, err)
	b, err := MarshalCanonical(m.Value())
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

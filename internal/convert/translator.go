package convert

import (
	"github.com/Preyvik/MCP-UiPath/internal/ir"
	"github.com/Preyvik/MCP-UiPath/internal/resolve"
)

// Translator turns a validated workflow tree into the output document
// body. The writer calls it exactly once per conversion, after
// correction and flowchart validation, with the reference-remapped and
// layout-annotated tree.
//
// Implementations read resolution state (used prefixes, corrections)
// from the context but must not mutate the tree they are handed.
type Translator interface {
	Translate(body ir.IRValue, ctx *resolve.Context) (ir.IRValue, error)
}

// IdentityTranslator emits the validated tree unchanged. It is the
// writer's default and the conformance harness translator: everything
// the pipeline guarantees (canonical prefixes, remapped references,
// layout geometry) is already in the tree, so the identity document is
// directly comparable against goldens.
type IdentityTranslator struct{}

// Translate returns body as is.
func (IdentityTranslator) Translate(body ir.IRValue, _ *resolve.Context) (ir.IRValue, error) {
	return body, nil
}

// ScopeReport is the result shape of an activity scope check: a
// verdict plus the activities found outside their required container.
// The check itself runs outside the conversion core; callers merge the
// report into their response envelope.
type ScopeReport struct {
	IsValid           bool              `json:"isValid"`
	InvalidActivities []InvalidActivity `json:"invalidActivities"`
}

// InvalidActivity identifies one activity that appeared outside the
// container its kind requires.
type InvalidActivity struct {
	Type          string `json:"type"`
	DisplayName   string `json:"displayName"`
	CurrentParent string `json:"currentParent"`
}

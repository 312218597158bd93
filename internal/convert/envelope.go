package convert

import (
	"github.com/Preyvik/MCP-UiPath/internal/ir"
)

// ParseEnvelope splits a conversion payload into its metadata envelope
// and workflow body. Two shapes are accepted:
//
//   - edit: an object carrying a "metadata" object plus the workflow
//     under "body" (preferred) or "workflow". The envelope is parsed
//     with defaults filled and blank assembly references dropped.
//   - new: anything else. The payload itself is the workflow body and
//     the envelope is the default set.
//
// A "metadata" key holding a non-object does not make a payload an
// edit; the whole payload is then treated as the body. An edit payload
// whose body keys are both absent or null is an error.
func ParseEnvelope(payload ir.IRValue) (ir.Metadata, ir.IRValue, error) {
	obj, ok := payload.(ir.IRObject)
	if !ok {
		return ir.DefaultMetadata(), payload, nil
	}
	metaObj, ok := obj.GetObject("metadata")
	if !ok {
		return ir.DefaultMetadata(), payload, nil
	}
	meta := ir.ParseMetadata(metaObj)
	if body, ok := obj.Get("body"); ok && !ir.IsNull(body) {
		return meta, body, nil
	}
	if body, ok := obj.Get("workflow"); ok && !ir.IsNull(body) {
		return meta, body, nil
	}
	return meta, nil, NewEnvelopeError("edit payload carries metadata but no 'body' or 'workflow'")
}

// BuildEnvelope reassembles the edit payload shape around a workflow
// body, making the reader's output feed directly into the next
// conversion.
func BuildEnvelope(meta ir.Metadata, body ir.IRValue) ir.IRObject {
	if body == nil {
		body = ir.IRNull{}
	}
	return ir.IRObject{
		"metadata": meta.Value(),
		"workflow": body,
	}
}

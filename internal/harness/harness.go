package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Preyvik/MCP-UiPath/internal/convert"
	"github.com/Preyvik/MCP-UiPath/internal/ir"
)

// defaultTraceToken is used when a scenario does not fix its own, so
// golden snapshots stay deterministic either way.
const defaultTraceToken = "test-trace-default"

// Run executes one scenario and returns the result.
//
// The conversion runs over a writer with a fixed trace token and a
// discarded logger, so a scenario is a pure function of its file
// content. A rejected flowchart is a scenario outcome, not an
// execution error: the report lands on the result and expectations
// run against it. Execution errors (unconvertible workflow trees,
// translator failures) abort the run instead.
func Run(scenario *Scenario) (*Result, error) {
	body, err := convertMapToIRObject(scenario.Workflow)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: workflow: %w", scenario.Name, err)
	}
	meta := buildMetadata(scenario.Metadata)

	token := scenario.TraceToken
	if token == "" {
		token = defaultTraceToken
	}

	writer := convert.NewWriter(nil,
		convert.WithTokenGenerator(convert.NewFixedGenerator(token)),
		convert.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	result := NewResult()
	result.Token = token

	write, err := writer.Convert(body, meta)
	switch {
	case err == nil:
		result.Valid = true
		result.Write = write
		result.Report = write.Report
	case convert.IsFlowchartError(err):
		result.Valid = false
		result.Report = convert.FlowchartReport(err)
	default:
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	for _, msg := range EvaluateExpectations(scenario, result) {
		result.AddError(msg)
	}
	return result, nil
}

// buildMetadata converts the scenario's metadata block to the envelope
// the writer consumes. Argument direction defaults to In and type to
// String, matching the envelope parser's defaults.
func buildMetadata(spec *MetadataSpec) ir.Metadata {
	meta := ir.DefaultMetadata()
	if spec == nil {
		return meta
	}
	meta.Class = spec.Class
	meta.Namespaces = append(meta.Namespaces, spec.Namespaces...)
	meta.AssemblyReferences = append(meta.AssemblyReferences, spec.AssemblyReferences...)
	for _, arg := range spec.Arguments {
		direction := arg.Direction
		if direction == "" {
			direction = ir.DirectionIn
		}
		argType := arg.Type
		if argType == "" {
			argType = "String"
		}
		meta.Arguments = append(meta.Arguments, ir.Argument{
			Name:      arg.Name,
			Direction: direction,
			Type:      argType,
		})
	}
	if len(spec.XmlnsBindings) > 0 {
		meta.XmlnsBindings = make(map[string]string, len(spec.XmlnsBindings))
		for prefix, uri := range spec.XmlnsBindings {
			meta.XmlnsBindings[prefix] = uri
		}
	}
	return meta
}

// convertMapToIRObject converts a YAML-parsed map to an ir.IRObject.
func convertMapToIRObject(m map[string]interface{}) (ir.IRObject, error) {
	result := make(ir.IRObject, len(m))
	for key, val := range m {
		irVal, err := convertToIRValue(val)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		result[key] = irVal
	}
	return result, nil
}

// convertToIRValue converts a YAML-parsed value to an IRValue. YAML
// null becomes the explicit IR null, the legal terminal form for
// successor references. Non-integral numbers are rejected; the IR
// forbids floats.
func convertToIRValue(val interface{}) (ir.IRValue, error) {
	if val == nil {
		return ir.IRNull{}, nil
	}
	switch v := val.(type) {
	case string:
		return ir.IRString(v), nil
	case int:
		return ir.IRInt(int64(v)), nil
	case int64:
		return ir.IRInt(v), nil
	case float64:
		// YAML parses untagged numbers as float64.
		if v == float64(int64(v)) {
			return ir.IRInt(int64(v)), nil
		}
		return nil, fmt.Errorf("floats are forbidden in workflow trees: %v", v)
	case bool:
		return ir.IRBool(v), nil
	case []interface{}:
		arr := make(ir.IRArray, len(v))
		for i, elem := range v {
			irElem, err := convertToIRValue(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = irElem
		}
		return arr, nil
	case map[string]interface{}:
		return convertMapToIRObject(v)
	default:
		return nil, fmt.Errorf("unsupported type %T", val)
	}
}

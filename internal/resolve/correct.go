package resolve

import (
	"regexp"
	"strings"

	"github.com/Preyvik/MCP-UiPath/internal/ir"
)

// vbExpressionPatterns match VB constructs that only parse inside
// expression brackets: function calls, object creation, casts, member
// access, operators, logical keywords.
var vbExpressionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`If\(`),
	regexp.MustCompile(`New\s+\w+`),
	regexp.MustCompile(`(?:CType|CInt|CStr|CDate|CDbl|CBool)\(`),
	regexp.MustCompile(`DirectCast\(`),
	regexp.MustCompile(`\w+\.\w+`),
	regexp.MustCompile(`[+\-*/&]`),
	regexp.MustCompile(`[<>=]`),
	regexp.MustCompile(`\b(?:And|Or|Not|Mod|AndAlso|OrElse)\b`),
	regexp.MustCompile(`\.(?:Count|Length|Rows|Columns|ToString)\b`),
}

// literalPatterns match values that must never be wrapped: quoted
// strings, numbers, True/False/Nothing, already-bracketed identifiers.
var literalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^".*"$`),
	regexp.MustCompile(`^-?\d+(\.\d+)?$`),
	regexp.MustCompile(`^(?:True|False|Nothing)$`),
	regexp.MustCompile(`^\[[\w_]+\]$`),
}

func isLiteral(value string) bool {
	for _, p := range literalPatterns {
		if p.MatchString(value) {
			return true
		}
	}
	return false
}

func isVBExpression(value string) bool {
	if value == "" {
		return false
	}
	if strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
		return false
	}
	if isLiteral(value) {
		return false
	}
	for _, p := range vbExpressionPatterns {
		if p.MatchString(value) {
			return true
		}
	}
	return false
}

// Correct deep-copies the workflow subtree, applies expression
// bracket-wrapping and type normalization to the copy, and returns it.
// The input is never mutated. Every visited type reference lands on
// the Context; every change appends a correction record.
func (r *Resolver) Correct(workflow ir.IRValue, ctx *Context) ir.IRValue {
	corrected := ir.DeepCopy(workflow)
	obj, ok := corrected.(ir.IRObject)
	if !ok {
		return corrected
	}
	r.correctActivity(obj, ctx)
	if len(ctx.Corrections) > 0 {
		r.log.Debug("auto-corrections applied",
			"expressions_wrapped", ctx.CorrectionCount(CorrectionExpressionWrap)+ctx.CorrectionCount(CorrectionSafetyNetWrap),
			"types_normalized", ctx.CorrectionCount(CorrectionTypeNormalize),
		)
	}
	return corrected
}

// correctExpressionValue wraps one expression value in brackets when
// it matches a VB expression pattern and is not a literal. A
// non-String type hint additionally wraps any non-literal bare value,
// catching plain variable references in typed fields.
func (r *Resolver) correctExpressionValue(value, typeHint string, ctx *Context) string {
	if value == "" {
		return value
	}
	if strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
		return value
	}
	if isVBExpression(value) {
		corrected := "[" + value + "]"
		ctx.RecordCorrection(CorrectionExpressionWrap, value, corrected)
		return corrected
	}
	if typeHint != "" && typeHint != "x:String" && !isLiteral(value) {
		corrected := "[" + value + "]"
		ctx.RecordCorrectionWithHint(CorrectionSafetyNetWrap, value, corrected, typeHint)
		return corrected
	}
	return value
}

// correctTypeReference normalizes one type reference and records it.
// Unchanged references are recorded too, so the Context sees every
// type the document carries.
func (r *Resolver) correctTypeReference(ref string, ctx *Context) string {
	if ref == "" {
		return ref
	}
	result, diag := r.mapper.NormalizeTypeReference(ref)
	if diag != nil {
		ctx.Warn(diag.Message)
	}
	if result != ref {
		ctx.RecordCorrection(CorrectionTypeNormalize, ref, result)
	}
	ctx.RecordType(result)
	return result
}

// normTypeKeys are the annotation keys the corrector normalizes on an
// activity object. Slice, not set: application order is part of the
// correction record contract.
var normTypeKeys = []string{
	"type", "x:TypeArguments", "variableType", "argumentType",
	"exceptionType", "typeArguments", "typeArgument",
}

// expressionHolderKeys in application order.
var expressionHolderKeys = []string{"value", "condition", "expression", "to"}

// inlineChildKeys are the single-object child slots visited between
// the keyed collections, in application order.
var inlineChildKeys = []string{
	"activity", "next", "true", "false", "then", "else", "try", "finally",
}

// correctActivity applies all corrections to one activity object in
// place, then recurses over the container schema: children, nodes,
// inline successors, branch bodies, try/catch arms, action wrappers,
// switch cases, scope branches, and both argument schemas.
func (r *Resolver) correctActivity(activity ir.IRObject, ctx *Context) {
	// Expression holders first: the wrap decision reads the raw type
	// hint before normalization touches it.
	for _, key := range expressionHolderKeys {
		val, ok := activity[key]
		if !ok {
			continue
		}
		switch v := val.(type) {
		case ir.IRString:
			hint := activity.StringOr("x:TypeArguments", "x:String")
			activity[key] = ir.NewIRString(r.correctExpressionValue(string(v), hint, ctx))
		case ir.IRObject:
			if inner, ok := v.GetString("value"); ok {
				hint := v.StringOr("type", "x:String")
				v["value"] = ir.NewIRString(r.correctExpressionValue(inner, hint, ctx))
			}
		}
	}

	for _, key := range normTypeKeys {
		if s, ok := activity.GetString(key); ok {
			activity[key] = ir.NewIRString(r.correctTypeReference(s, ctx))
		}
	}

	// Variables: type normalizes before the default is wrapped, so the
	// default's hint reflects the corrected type.
	if vars, ok := activity.GetArray(ir.KeyVariables); ok {
		for _, item := range vars {
			varObj, ok := item.(ir.IRObject)
			if !ok {
				continue
			}
			if t, ok := varObj.GetString("type"); ok {
				varObj["type"] = ir.NewIRString(r.correctTypeReference(t, ctx))
			}
			if def, ok := varObj.GetString("default"); ok {
				hint := r.mapper.ToTypeReference(varObj.StringOr("type", "String"))
				varObj["default"] = ir.NewIRString(r.correctExpressionValue(def, hint, ctx))
			}
		}
	}

	for _, key := range []string{"children", ir.KeyNodes} {
		if items, ok := activity.GetArray(key); ok {
			for _, item := range items {
				if child, ok := item.(ir.IRObject); ok {
					r.correctActivity(child, ctx)
				}
			}
		}
	}

	// Inline successors are visited here rather than in a flowchart
	// branch so nested objects inside decision branches correct too.
	for _, key := range inlineChildKeys {
		if child, ok := activity.GetObject(key); ok {
			r.correctActivity(child, ctx)
		}
	}

	if catches, ok := activity.GetArray("catches"); ok {
		for _, item := range catches {
			catchObj, ok := item.(ir.IRObject)
			if !ok {
				continue
			}
			if et, ok := catchObj.GetString("exceptionType"); ok {
				catchObj["exceptionType"] = ir.NewIRString(r.correctTypeReference(et, ctx))
			}
			if handler, ok := catchObj.GetObject("handler"); ok {
				r.correctActivity(handler, ctx)
			}
		}
	}

	if body, ok := activity.GetObject("activityBody"); ok {
		r.correctActivity(body, ctx)
	}
	if cond, ok := activity.GetObject(ir.KeyCondition); ok {
		if inner, ok := cond.GetObject(ir.KeyActivity); ok {
			r.correctActivity(inner, ctx)
		}
	}

	// Action wrappers carry body.activity; plain loop bodies are the
	// activity object directly.
	if body, ok := activity.GetObject("body"); ok {
		if inner, ok := body.GetObject(ir.KeyActivity); ok {
			r.correctActivity(inner, ctx)
		} else if !body.Has(ir.KeyActivity) {
			r.correctActivity(body, ctx)
		}
	}

	if cases, ok := activity.GetArray("cases"); ok {
		for _, item := range cases {
			if caseObj, ok := item.(ir.IRObject); ok {
				if inner, ok := caseObj.GetObject(ir.KeyActivity); ok {
					r.correctActivity(inner, ctx)
				}
			}
		}
	}
	if def, ok := activity.GetObject("default"); ok {
		r.correctActivity(def, ctx)
	}
	for _, key := range []string{"ifExists", "ifNotExists"} {
		if child, ok := activity.GetObject(key); ok {
			r.correctActivity(child, ctx)
		}
	}

	r.correctArguments(activity, ctx)
}

// correctArguments handles both argument schemas: the keyed form
// carrying x:TypeArguments and the file-invocation form carrying a
// plain type name. The hint for value wrapping comes from whichever
// schema the entry uses, before normalization rewrites the keys.
func (r *Resolver) correctArguments(activity ir.IRObject, ctx *Context) {
	args, ok := activity.GetArray("arguments")
	if !ok {
		return
	}
	for _, item := range args {
		argObj, ok := item.(ir.IRObject)
		if !ok {
			continue
		}

		var hint string
		if argObj.Has("x:TypeArguments") {
			hint = argObj.StringOr("x:TypeArguments", "x:String")
			if hint == "" {
				hint = "x:String"
			}
		} else {
			jsonType := argObj.StringOr("type", "String")
			if jsonType == "" {
				jsonType = "String"
			}
			hint = r.mapper.ToTypeReference(jsonType)
		}

		if v, ok := argObj.GetString("value"); ok {
			argObj["value"] = ir.NewIRString(r.correctExpressionValue(v, hint, ctx))
		}
		if t, ok := argObj.GetString("x:TypeArguments"); ok {
			argObj["x:TypeArguments"] = ir.NewIRString(r.correctTypeReference(t, ctx))
		}
		if t, ok := argObj.GetString("type"); ok {
			argObj["type"] = ir.NewIRString(r.correctTypeReference(t, ctx))
		}
	}
}

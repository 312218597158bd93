package convert

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Preyvik/MCP-UiPath/internal/flowchart"
	"github.com/Preyvik/MCP-UiPath/internal/ir"
	"github.com/Preyvik/MCP-UiPath/internal/registry"
	"github.com/Preyvik/MCP-UiPath/internal/resolve"
)

// Writer runs the write half of the pipeline: auto-correction,
// namespace and assembly resolution, flowchart validation, then
// translation to the output document.
//
// A Writer is immutable after construction and safe for concurrent
// use; every conversion builds its own resolution context.
type Writer struct {
	reg        *registry.Registry
	translator Translator
	tokens     TraceTokenGenerator
	log        *slog.Logger
}

// WriterOption allows configuration of writer parameters.
type WriterOption func(*Writer)

// WithTranslator sets the document translator.
//
// Default: IdentityTranslator (the validated tree is the document).
func WithTranslator(t Translator) WriterOption {
	return func(w *Writer) {
		w.translator = t
	}
}

// WithTokenGenerator sets the trace token source.
//
// Default: UUIDv7Generator. Tests use NewFixedGenerator for
// deterministic tokens.
func WithTokenGenerator(g TraceTokenGenerator) WriterOption {
	return func(w *Writer) {
		w.tokens = g
	}
}

// WithLogger sets the structured logger.
//
// Default: slog.Default(). Every conversion's log lines carry its
// trace token.
func WithLogger(logger *slog.Logger) WriterOption {
	return func(w *Writer) {
		w.log = logger
	}
}

// NewWriter creates a Writer over the given registry. A nil registry
// uses the embedded default.
func NewWriter(reg *registry.Registry, opts ...WriterOption) *Writer {
	if reg == nil {
		reg = registry.Default()
	}
	w := &Writer{
		reg:        reg,
		translator: IdentityTranslator{},
		tokens:     UUIDv7Generator{},
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// ImportReference pairs one expression import with the assembly that
// provides it, for the output document's expression compiler settings.
type ImportReference struct {
	Import   string `json:"import"`
	Assembly string `json:"assembly"`
}

// WriteResult is the complete outcome of one write conversion.
type WriteResult struct {
	// Token is the trace token this conversion logged under.
	Token string

	// Document is the translated output tree.
	Document ir.IRValue

	// Declarations lists every namespace prefix the document must
	// declare, sorted.
	Declarations []string

	// Imports lists the expression namespace imports, metadata-carried
	// entries first.
	Imports []string

	// AssemblyRefs lists the referenced assemblies, metadata-carried
	// entries first.
	AssemblyRefs []string

	// VBImports pairs each import with its providing assembly. Imports
	// with no known assembly are absent.
	VBImports []ImportReference

	// CustomBindings holds the custom xmlns bindings actually used by
	// the workflow; unused ones are dropped.
	CustomBindings map[string]string

	// Report is the flowchart validation outcome, including the
	// reference-remapped and layout-annotated tree.
	Report *flowchart.Report

	// Context carries the resolution state: used prefixes and types,
	// applied corrections, warnings.
	Context *resolve.Context
}

// Convert runs the full write pipeline over a workflow body and its
// metadata envelope.
//
// Stage order is fixed: correct expressions and type references, pick
// the namespace declarations (auto-detected plus baseline plus
// metadata-preserved), filter custom bindings to those the workflow
// uses, resolve imports and assembly references, validate flowchart
// structure, translate. A failed validation aborts before translation;
// the returned error is a *ConversionError carrying the full report.
//
// The input body is never mutated; the translator receives the
// validated tree with references remapped and layout applied.
func (w *Writer) Convert(body ir.IRValue, meta ir.Metadata) (*WriteResult, error) {
	token := w.tokens.Generate()
	log := w.log.With("trace", token)
	resolver := resolve.NewResolver(w.reg, log)
	ctx := resolve.NewContext(meta.XmlnsBindings, w.reg)

	log.Info("conversion started",
		"class", meta.Class,
		"namespaces", len(meta.Namespaces),
		"assembly_refs", len(meta.AssemblyReferences),
		"arguments", len(meta.Arguments),
	)

	corrected := resolver.Correct(body, ctx)

	auto := resolver.DetectRequiredPrefixes(corrected)
	preserved := make(map[string]bool, len(ctx.URIToCanonical))
	for _, prefix := range ctx.URIToCanonical {
		preserved[prefix] = true
	}
	declared := resolve.ResolveNamespaceDeclarations(
		auto,
		resolve.PrefixSet(w.reg.BaselinePrefixes()),
		preserved,
	)

	usedCustom := resolver.FilterUsedCustomNamespaces(meta.XmlnsBindings, corrected)
	if len(meta.XmlnsBindings) > 0 {
		log.Debug("custom xmlns bindings",
			"preserved", len(usedCustom),
			"filtered", len(meta.XmlnsBindings)-len(usedCustom),
		)
	}

	validNamespaces := countNonBlank(meta.Namespaces)
	if validNamespaces == 0 && len(meta.Namespaces) > 0 {
		log.Warn("metadata namespaces all blank, relying on auto-detection")
	}
	imports := resolver.GenerateImportStrings(declared, meta.Namespaces)
	log.Info("namespaces resolved",
		"auto_detected", len(auto),
		"baseline", len(w.reg.BaselinePrefixes()),
		"from_metadata", validNamespaces,
		"declarations", len(declared),
	)

	validRefs := countNonBlank(meta.AssemblyReferences)
	assemblies := resolver.GenerateMinimalAssemblyReferences(auto, meta.AssemblyReferences)
	if validRefs == 0 && len(auto) == 0 {
		log.Info("assembly references defaulted", "count", len(assemblies))
	} else {
		log.Info("assembly references resolved",
			"from_metadata", validRefs,
			"prefix_derived", len(assemblies)-validRefs,
			"total", len(assemblies),
		)
	}

	report := flowchart.Validate(corrected)
	if !report.IsValid {
		log.Warn("flowchart validation failed",
			"failures", len(report.Failures),
			"fix", report.Remedy.Fix,
		)
		return nil, NewFlowchartError(token, report)
	}

	document, err := w.translator.Translate(report.ModifiedTree, ctx)
	if err != nil {
		return nil, fmt.Errorf("translate workflow (trace=%s): %w", token, err)
	}

	result := &WriteResult{
		Token:          token,
		Document:       document,
		Declarations:   resolve.SortedPrefixes(declared),
		Imports:        imports,
		AssemblyRefs:   assemblies,
		VBImports:      w.importReferences(imports),
		CustomBindings: usedCustom,
		Report:         report,
		Context:        ctx,
	}
	log.Info("conversion complete",
		"declarations", len(result.Declarations),
		"imports", len(imports),
		"assembly_refs", len(assemblies),
		"corrections", ctx.CorrectionCount(""),
		"warnings", len(ctx.Warnings),
	)
	return result, nil
}

// importReferences pairs each import with its providing assembly for
// the expression compiler settings block. Imports the registry cannot
// map are skipped rather than emitted with a blank assembly.
func (w *Writer) importReferences(imports []string) []ImportReference {
	refs := make([]ImportReference, 0, len(imports))
	for _, imp := range imports {
		assembly, ok := w.reg.AssemblyForImport(imp)
		if !ok || assembly == "" {
			continue
		}
		refs = append(refs, ImportReference{Import: imp, Assembly: assembly})
	}
	return refs
}

func countNonBlank(values []string) int {
	n := 0
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	return n
}

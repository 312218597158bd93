// Package convert assembles the conversion pipeline: payload envelope
// handling, the write path from IR workflow to output document, and
// the read path back from a parsed document to canonical IR.
//
// ARCHITECTURE:
//
// The Writer is the orchestrator. One Convert call runs the fixed
// stage order over its own resolution context:
//
//	correct -> detect prefixes -> declarations -> filter custom xmlns
//	        -> imports -> assembly refs -> validate flowcharts -> translate
//
// Every conversion gets a trace token from the TraceTokenGenerator up
// front, and every log line of that conversion carries it. Stage
// results are returned whole in WriteResult so callers can render a
// document, build a response envelope, or assert against any
// intermediate product.
//
// Flowchart validation is the only aborting stage. Resolution degrades
// to defaults with warnings, but a structurally broken flowchart would
// produce a document the designer cannot open, so Convert stops before
// translation and returns a ConversionError carrying the full report.
// The translator, when validation passes, receives the report's
// modified tree: references remapped, layout applied.
//
// The Translator is an interface because document rendering is a
// separate concern with separate churn; IdentityTranslator is the
// default and is what the conformance harness runs, since the
// validated tree already contains everything the pipeline guarantees.
//
// The Reader inverts the write path for round-tripping: it normalizes
// prefixes against the document's own xmlns bindings, recovers the
// metadata envelope, and rewrites variable and argument types back to
// IR type names. ParseEnvelope and BuildEnvelope are the two ends of
// the payload shape, so Reader output feeds Writer input directly.
package convert

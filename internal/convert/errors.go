package convert

import (
	"errors"
	"fmt"

	"github.com/Preyvik/MCP-UiPath/internal/flowchart"
)

// ConversionError represents an error detected during a conversion run.
//
// Conversion errors include:
//   - Flowchart rejected: structural validation accumulated failures;
//     Report carries every failure plus the remedy
//   - Envelope malformed: an edit payload carried metadata but no
//     workflow body
//
// ConversionError includes structured fields for diagnostics and recovery.
type ConversionError struct {
	// Code identifies the error category.
	Code ConversionErrorCode

	// Message is a human-readable description.
	Message string

	// Trace identifies the affected conversion.
	Trace string

	// Report holds the full validation report (for flowchart errors).
	Report *flowchart.Report
}

// ConversionErrorCode categorizes conversion errors.
type ConversionErrorCode string

const (
	// ErrCodeFlowchartRejected indicates structural validation failed.
	ErrCodeFlowchartRejected ConversionErrorCode = "FLOWCHART_REJECTED"

	// ErrCodeEnvelopeMalformed indicates an edit payload without a body.
	ErrCodeEnvelopeMalformed ConversionErrorCode = "ENVELOPE_MALFORMED"
)

// Error implements the error interface.
func (e *ConversionError) Error() string {
	if e.Trace != "" {
		return fmt.Sprintf("%s: %s (trace=%s)", e.Code, e.Message, e.Trace)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsFlowchartError returns true if the error is a flowchart rejection.
// Uses errors.As to handle wrapped errors.
func IsFlowchartError(err error) bool {
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeFlowchartRejected
	}
	return false
}

// IsEnvelopeError returns true if the error is a malformed envelope.
// Uses errors.As to handle wrapped errors.
func IsEnvelopeError(err error) bool {
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeEnvelopeMalformed
	}
	return false
}

// FlowchartReport extracts the validation report from a flowchart
// rejection. Returns nil when err is not one.
func FlowchartReport(err error) *flowchart.Report {
	var ce *ConversionError
	if errors.As(err, &ce) && ce.Code == ErrCodeFlowchartRejected {
		return ce.Report
	}
	return nil
}

// NewFlowchartError creates a ConversionError for a rejected flowchart.
func NewFlowchartError(trace string, report *flowchart.Report) *ConversionError {
	return &ConversionError{
		Code:    ErrCodeFlowchartRejected,
		Message: fmt.Sprintf("flowchart validation failed with %d failure(s)", len(report.Failures)),
		Trace:   trace,
		Report:  report,
	}
}

// NewEnvelopeError creates a ConversionError for a malformed payload.
func NewEnvelopeError(message string) *ConversionError {
	return &ConversionError{
		Code:    ErrCodeEnvelopeMalformed,
		Message: message,
	}
}

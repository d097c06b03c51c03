package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies pipeline failures so handlers can map them to
// HTTP statuses and user-safe messages without inspecting error strings.
type ErrorKind string

const (
	KindInvalidInput      ErrorKind = "invalid_input"
	KindUnsupportedFormat ErrorKind = "unsupported_format"
	KindEmptyContent      ErrorKind = "empty_content"
	KindEmptyInput        ErrorKind = "empty_input"
	KindModelUnavailable  ErrorKind = "model_unavailable"
	KindMalformedResponse ErrorKind = "malformed_response"
	KindInvalidProfile    ErrorKind = "invalid_profile"
)

// userMessages are the only texts ever shown to an end user. Internal
// diagnostics (snippets, library errors) stay in Detail and the logs.
var userMessages = map[ErrorKind]string{
	KindInvalidInput:      "The uploaded file or request is invalid. Please check it and try again.",
	KindUnsupportedFormat: "This file does not look like a valid PDF or DOCX document.",
	KindEmptyContent:      "No text could be read from the document. Please provide a complete resume.",
	KindEmptyInput:        "The resume text is too short to process. Please provide a complete resume.",
	KindModelUnavailable:  "The AI service is temporarily unavailable. Please try again in a moment.",
	KindMalformedResponse: "Something went wrong while generating the result. Please try again.",
	KindInvalidProfile:    "Your profile needs at least one experience or project before a resume can be tailored.",
}

// PipelineError is the typed error produced by the extraction and
// optimization pipeline. Error() carries internal diagnostics;
// UserMessage() is always safe to return to the client.
type PipelineError struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// UserMessage returns the client-facing text for this error kind.
func (e *PipelineError) UserMessage() string {
	if msg, ok := userMessages[e.Kind]; ok {
		return msg
	}
	return "An unexpected error occurred. Please try again."
}

// NewPipelineError builds a pipeline error with internal detail only.
func NewPipelineError(kind ErrorKind, detail string) *PipelineError {
	return &PipelineError{Kind: kind, Detail: detail}
}

// WrapPipelineError attaches an underlying cause for diagnostics.
func WrapPipelineError(kind ErrorKind, detail string, err error) *PipelineError {
	return &PipelineError{Kind: kind, Detail: detail, Err: err}
}

// KindOf extracts the error kind, or an empty kind for foreign errors.
func KindOf(err error) ErrorKind {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// IsKind reports whether err carries the given pipeline error kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

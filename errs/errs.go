// Package errs defines the error and non-fatal diagnostic taxonomy used
// across the xrklog parser.
//
// Two severities exist: fatal errors abort a Parse and are returned from it,
// non-fatal warnings are accumulated on a Diagnostics collector and surface
// on the resulting LogFile regardless of whether the caller attached their
// own collector.
package errs

import (
	"fmt"
)

// IOError wraps a failure opening or reading the underlying file.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("xrklog: io error reading %q: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// NewIOError wraps err as an IOError, or returns nil if err is nil.
func NewIOError(path string, err error) error {
	if err == nil {
		return nil
	}

	return &IOError{Path: path, Err: err}
}

// Reason enumerates the recognized causes of a FormatError.
type Reason string

const (
	ReasonBadMagic       Reason = "bad magic"
	ReasonShortHeader    Reason = "short header"
	ReasonTruncated      Reason = "truncated"
	ReasonUnrecoverable  Reason = "unrecoverable"
	ReasonOutOfRange     Reason = "field out of range"
	ReasonBadCompression Reason = "bad compression"
)

// FormatError reports a structural problem in the byte stream at a given
// position. Position is a byte offset from the start of the decoded (i.e.
// post-decompression) buffer; -1 when the position is not meaningful.
type FormatError struct {
	Position int64
	Reason   Reason
	Detail   string
}

func (e *FormatError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("xrklog: format error at %d: %s", e.Position, e.Reason)
	}

	return fmt.Sprintf("xrklog: format error at %d: %s (%s)", e.Position, e.Reason, e.Detail)
}

// NewFormatError constructs a FormatError.
func NewFormatError(position int64, reason Reason, detail string) error {
	return &FormatError{Position: position, Reason: reason, Detail: detail}
}

// WarningKind classifies a non-fatal SchemaWarning.
type WarningKind string

const (
	WarningDuplicateChannelName WarningKind = "duplicate_channel_name"
	WarningUnknownDiscriminator WarningKind = "unknown_discriminator_resync"
	WarningEmptyChannelDropped  WarningKind = "empty_channel_dropped"
)

// SchemaWarning is a non-fatal condition encountered while parsing. It is
// never returned as an error; it is accumulated on a Diagnostics collector.
type SchemaWarning struct {
	Kind     WarningKind
	Detail   string
	Position int64
}

func (w SchemaWarning) String() string {
	if w.Detail == "" {
		return string(w.Kind)
	}

	return fmt.Sprintf("%s: %s", w.Kind, w.Detail)
}

// Diagnostics accumulates SchemaWarnings raised during a single Parse call.
//
// Diagnostics is not safe for concurrent use; a Parse call owns exactly one
// instance for its duration.
type Diagnostics struct {
	warnings []SchemaWarning
}

// NewDiagnostics creates an empty diagnostics collector.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

// Warn records a SchemaWarning.
func (d *Diagnostics) Warn(kind WarningKind, position int64, detail string) {
	if d == nil {
		return
	}

	d.warnings = append(d.warnings, SchemaWarning{Kind: kind, Position: position, Detail: detail})
}

// Warnings returns the warnings recorded so far, in the order they occurred.
func (d *Diagnostics) Warnings() []SchemaWarning {
	if d == nil {
		return nil
	}

	return d.warnings
}

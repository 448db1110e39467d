// Package errors provides structured error reporting for the loom view
// layer.
//
// Fatal conditions (state-graph invariant violations, atom type
// mismatches, scheduler divergence) panic and are not routed through this
// package; it carries the recoverable, reported side of the error
// taxonomy, chiefly selector and stylesheet parse diagnostics.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindSelector indicates a selector string parse failure.
	KindSelector
	// KindStylesheet indicates a stylesheet document error.
	KindStylesheet
	// KindAsset indicates an asset resolution failure.
	KindAsset
	// KindHost indicates an error reported by the host engine.
	KindHost
)

func (k ErrorKind) String() string {
	switch k {
	case KindSelector:
		return "selector"
	case KindStylesheet:
		return "stylesheet"
	case KindAsset:
		return "asset"
	case KindHost:
		return "host"
	default:
		return "unknown"
	}
}

// LoomError represents a structured, reported error in the view layer.
type LoomError struct {
	// Op is the operation that failed (e.g., "style.LoadSheet").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *LoomError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *LoomError) Unwrap() error {
	return e.Err
}

// SelectorError describes a selector string that failed to parse. The
// selector is skipped; the rest of its StyleSet stays usable.
type SelectorError struct {
	// Source is the selector string as written.
	Source string
	// Pos is the byte offset where parsing failed.
	Pos int
	// Msg describes the failure.
	Msg string
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("invalid selector %q at offset %d: %s", e.Source, e.Pos, e.Msg)
}

// ErrorHandler receives errors reported by the view layer.
type ErrorHandler interface {
	// HandleError is called when a reported error occurs.
	HandleError(err *LoomError)
	// HandleSelectorError is called when a selector fails to parse.
	HandleSelectorError(err *SelectorError)
}

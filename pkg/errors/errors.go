// Package errors provides structured error handling for the Prism framework.
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
	// KindIdentity indicates an identity resolution failure.
	KindIdentity
	// KindBuild indicates a failure during the build pass.
	KindBuild
	// KindRender indicates a renderer or surface error.
	KindRender
	// KindAsync indicates an async result delivery problem.
	KindAsync
	// KindConfig indicates a configuration loading error.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindIdentity:
		return "identity"
	case KindBuild:
		return "build"
	case KindRender:
		return "render"
	case KindAsync:
		return "async"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// FrameError represents a structured error in the Prism framework.
type FrameError struct {
	// Op is the operation that failed (e.g., "core.RunFrame").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}

// IdentityCollisionError reports two sibling widget invocations resolving the
// same identity within a single frame. Disambiguating silently would let one
// widget read another's persisted state, so the build pass aborts instead.
type IdentityCollisionError struct {
	// ID is the string form of the colliding identity.
	ID string
	// Widget is the widget type name that triggered the second resolution.
	Widget string
}

func (e *IdentityCollisionError) Error() string {
	if e.Widget != "" {
		return fmt.Sprintf("duplicate widget identity %s resolved by %s in one frame; add an explicit key", e.ID, e.Widget)
	}
	return fmt.Sprintf("duplicate widget identity %s resolved twice in one frame; add an explicit key", e.ID)
}

// ReentrantBuildError reports a build pass started while another pass is
// already running on the same pipeline. The second pass is rejected, not
// queued, to keep per-frame ordering intact.
type ReentrantBuildError struct{}

func (e *ReentrantBuildError) Error() string {
	return "build pass already in progress on this pipeline"
}

// StaleResultError reports an async result delivered for an identity whose
// state has since been garbage-collected. The result is dropped; this error
// only ever reaches the diagnostic handler, never the application.
type StaleResultError struct {
	// ID is the string form of the originating identity.
	ID string
}

func (e *StaleResultError) Error() string {
	return fmt.Sprintf("async result for collected identity %s dropped", e.ID)
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "core.BuildContext.Provide").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

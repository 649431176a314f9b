package errors

import (
	"fmt"
	"io"
	"os"
)

// LogHandler is an ErrorHandler that logs errors to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Output overrides the destination. Defaults to os.Stderr when nil.
	Output io.Writer
}

func (h *LogHandler) out() io.Writer {
	if h.Output != nil {
		return h.Output
	}
	return os.Stderr
}

// HandleError logs a FrameError.
func (h *LogHandler) HandleError(err *FrameError) {
	if err == nil {
		return
	}
	if h.Verbose {
		fmt.Fprintf(h.out(), "[prism error] %s [%s]: %v\n", err.Op, err.Kind, err.Err)
	} else {
		fmt.Fprintf(h.out(), "[prism error] %s: %v\n", err.Op, err.Err)
	}
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Op != "" {
		fmt.Fprintf(h.out(), "[prism panic] %s: %v\n", err.Op, err.Value)
	} else {
		fmt.Fprintf(h.out(), "[prism panic] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(h.out(), "Stack trace:\n%s\n", err.StackTrace)
	}
}

package errors

import (
	"fmt"
	"os"
)

// LogHandler is an ErrorHandler that logs errors to stderr.
type LogHandler struct {
	// Verbose enables detailed output.
	Verbose bool
}

// HandleError logs a LoomError to stderr.
func (h *LogHandler) HandleError(err *LoomError) {
	if err == nil {
		return
	}
	if h.Verbose {
		fmt.Fprintf(os.Stderr, "[loom error] %s [%s]: %v\n", err.Op, err.Kind, err.Err)
	} else {
		fmt.Fprintf(os.Stderr, "[loom error] %s: %v\n", err.Op, err.Err)
	}
}

// HandleSelectorError logs a selector parse diagnostic to stderr.
func (h *LogHandler) HandleSelectorError(err *SelectorError) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "[loom selector] %v\n", err)
}

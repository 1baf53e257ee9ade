package inkwell

import (
	"fmt"
	"io"
	"os"
)

// An ErrorHandler receives diagnostics about internal failures, such as an
// unwritable log file. Implementations may alert, count, or re-log them; a
// handler that logs back into the same [Logger] is safe, see [Logger.Promote]
// for the failure semantics. Set one with [WithErrorHandler].
type ErrorHandler interface {
	HandleError(msg string)
}

// ErrorHandlerFunc adapts a plain function to the [ErrorHandler] interface.
type ErrorHandlerFunc func(msg string)

func (f ErrorHandlerFunc) HandleError(msg string) { f(msg) }

var _ ErrorHandler = (ErrorHandlerFunc)(nil)

// Diagnostic stream used when no handler is set or the handler cannot be
// entered. Overridable in tests.
var fallback io.Writer = os.Stderr

const (
	handlerPrefix  = "INKWELL INTERNAL: "
	fallbackPrefix = "INKWELL CRITICAL: "
)

// Funnel for every internal failure. Must not be called with l.mu held; the
// handler may call back into the logger. Reentry, either from the handler
// itself failing or from concurrent reporters, is diverted to the fallback
// stream so that reporting can never recurse or deadlock.
func (l *Logger) report(msg string) {
	if !l.reporting.CompareAndSwap(false, true) {
		writeFallback(msg)
		return
	}
	defer l.reporting.Store(false)

	l.mu.Lock()
	handler := l.errHandler
	l.mu.Unlock()

	if handler == nil {
		writeFallback(msg)
		return
	}
	invokeHandler(handler, handlerPrefix+msg)
}

func (l *Logger) reportf(format string, args ...any) {
	l.report(fmt.Sprintf(format, args...))
}

// A panicking handler is contained here.
func invokeHandler(h ErrorHandler, msg string) {
	defer func() {
		_ = recover()
	}()
	h.HandleError(msg)
}

func writeFallback(msg string) {
	_, _ = fmt.Fprintln(fallback, fallbackPrefix+msg)
}

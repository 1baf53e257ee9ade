package inkwell

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Captured once; the process id cannot change.
var pid = os.Getpid()

// Get default name for a [Logger].
func defaultLoggerName() string {
	if len(os.Args) > 0 && len(os.Args[0]) > 0 {
		return fmt.Sprintf("inkwell-%s", filepath.Base(os.Args[0]))
	}
	return "inkwell"
}

// The id of the calling goroutine, hashed so that it is a stable opaque
// number rather than a scheduler detail. Parsed from the first line of the
// stack trace, which reads "goroutine N [state]:".
func hashedGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	header := buf[:n]

	const prefix = "goroutine "
	if len(header) <= len(prefix) {
		return 0
	}
	header = header[len(prefix):]

	end := 0
	for end < len(header) && header[end] >= '0' && header[end] <= '9' {
		end++
	}

	h := fnv.New64a()
	_, _ = h.Write(header[:end])
	return h.Sum64()
}

// Trim a fully qualified function name down to package.Function form,
// e.g. "github.com/user/repo/pkg.(*T).Method" becomes "pkg.(*T).Method".
func shortFuncName(full string) string {
	if idx := strings.LastIndexByte(full, '/'); idx >= 0 {
		return full[idx+1:]
	}
	return full
}

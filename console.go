package inkwell

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// All console writes from every logger in the process serialize here, so
// colored lines from concurrent loggers never interleave mid-escape.
var (
	consoleMu  sync.Mutex
	consoleOut io.Writer = os.Stdout
)

// Probed once per process.
var (
	colorProbe sync.Once
	colorOK    bool
)

func consoleSupportsColor() bool {
	colorProbe.Do(func() {
		fd := os.Stdout.Fd()
		colorOK = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	})
	return colorOK
}

// Write one rendered line to the console. The reset escape is placed before
// the trailing newline so color never bleeds across lines.
func writeConsole(lvl Level, line []byte, colorize bool) {
	consoleMu.Lock()
	defer consoleMu.Unlock()

	if !colorize {
		_, _ = consoleOut.Write(line)
		return
	}

	body := line
	hasNL := len(body) > 0 && body[len(body)-1] == '\n'
	if hasNL {
		body = body[:len(body)-1]
	}
	_, _ = io.WriteString(consoleOut, levelColors[clampLevel(lvl)])
	_, _ = consoleOut.Write(body)
	_, _ = io.WriteString(consoleOut, colorReset)
	if hasNL {
		_, _ = io.WriteString(consoleOut, "\n")
	}
}

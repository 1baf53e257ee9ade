package inkwell

// A Level is the severity of a single log record.
// Records below a logger's configured threshold are dropped without error.
type Level int32

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
	Critical
	Alert
)

// Canonical names, indexed by Level.
var levelNames = [...]string{
	"DEBUG",
	"INFO",
	"NOTICE",
	"WARNING",
	"ERROR",
	"CRITICAL",
	"ALERT",
}

// Whole-line ANSI colors for console output, indexed by Level.
var levelColors = [...]string{
	"\x1b[32m", // green
	"\x1b[36m", // cyan
	"\x1b[34m", // blue
	"\x1b[33m", // yellow
	"\x1b[31m", // red
	"\x1b[35m", // magenta
	"\x1b[37m", // white
}

const colorReset = "\x1b[0m"

// Clamp an arbitrary value into the valid [Debug, Alert] range.
func clampLevel(lvl Level) Level {
	if lvl < Debug {
		return Debug
	}
	if lvl > Alert {
		return Alert
	}
	return lvl
}

// The canonical uppercase name of the level, e.g. "WARNING".
func (lvl Level) String() string {
	return levelNames[clampLevel(lvl)]
}

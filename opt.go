package inkwell

// An Opt is a function that mutates a [Logger]'s attributes.
// An Opt should return the mutated Logger or return an error if it fails to mutate the Logger.
// Opts are passed to [New], [Registry.Get], or [Logger.Configure]; every one
// of them may also be re-applied to a live logger and takes effect on the
// next record.
type Opt func(*Logger) (*Logger, error)

// The name of the Logger, rendered by the %n directive and used as the
// registry key. It will be kept unchanged if the name is empty.
// The default value is inkwell-<the executable name>.
func WithName(name string) Opt {
	return func(l *Logger) (*Logger, error) {
		if len(name) > 0 {
			l.name = name
		}
		return l, nil
	}
}

// The minimum severity a record needs to be accepted.
// The default value is [Info].
func WithLevel(lvl Level) Opt {
	return func(l *Logger) (*Logger, error) {
		l.threshold.Store(int32(clampLevel(lvl)))
		return l, nil
	}
}

// Enable or disable the file target.
// The default value is true.
func WithFile(on bool) Opt {
	return func(l *Logger) (*Logger, error) {
		l.fileEnabled = on
		return l, nil
	}
}

// Enable or disable the console target.
// The default value is false.
func WithConsole(on bool) Opt {
	return func(l *Logger) (*Logger, error) {
		l.consoleEnabled = on
		return l, nil
	}
}

// Enable or disable colorized console lines. Color is only emitted when
// standard output is an interactive terminal.
// The default value is true.
func WithColor(on bool) Opt {
	return func(l *Logger) (*Logger, error) {
		l.colorEnabled = on
		return l, nil
	}
}

// Suppress the line prefix and emit raw message text.
// The default value is false.
func WithMessageOnly(on bool) Opt {
	return func(l *Logger) (*Logger, error) {
		l.messageOnly = on
		return l, nil
	}
}

// Force file contents to stable storage after every write.
// The default value is false.
func WithAutoFlush(on bool) Opt {
	return func(l *Logger) (*Logger, error) {
		l.autoFlush = on
		return l, nil
	}
}

// Start a fresh file sequence when the calendar day changes.
// The default value is false.
func WithDayRotation(on bool) Opt {
	return func(l *Logger) (*Logger, error) {
		l.dayRotate.Store(on)
		return l, nil
	}
}

// The base path of the log files: directory plus name stem. Files are named
// <stem>_<timestamp>_<roll>.log next to it and the directory is created on
// demand. Changing the base path on a live logger closes the current file
// and restarts the rotation sequence under a fresh timestamp. An empty path
// is kept unchanged.
// The default value is <os.TempDir()>/<logger name>.
func WithBasePath(path string) Opt {
	return func(l *Logger) (*Logger, error) {
		if len(path) > 0 {
			l.basePath = path
			l.resetStorageLocked()
		}
		return l, nil
	}
}

// Maximum number of rotation slots before the sequence wraps around and
// starts truncating and reusing slot 1. Values below one are clamped to one.
// The default value is 5.
func WithMaxRolls(n int) Opt {
	return func(l *Logger) (*Logger, error) {
		if n < 1 {
			n = 1
		}
		l.maxRolls = n
		return l, nil
	}
}

// Maximum size in bytes per log file. The Logger rolls to the next slot
// before a write that would exceed it. Zero or negative disables
// size-triggered rotation.
// The default value is 100 [Mb].
func WithMaxBytes(n int) Opt {
	return func(l *Logger) (*Logger, error) {
		l.maxBytes = n
		return l, nil
	}
}

// Number of file writes between checks that the path on disk still names
// the open file. Zero disables self-healing; negatives are treated as zero.
// The default value is 100.
func WithSelfHealEvery(n int) Opt {
	return func(l *Logger) (*Logger, error) {
		if n < 0 {
			n = 0
		}
		l.healEvery = n
		return l, nil
	}
}

// Use minute precision (YYYYMMDDHHMM) instead of day precision (YYYYMMDD)
// for the timestamp embedded in file names. Takes effect the next time the
// timestamp is captured, that is on a base path change or a day rollover.
// The default value is false.
func WithMinuteStamp(on bool) Opt {
	return func(l *Logger) (*Logger, error) {
		l.minuteStamp = on
		return l, nil
	}
}

// The line template; see the package documentation for the directive set.
// The template is compiled once here and the compiled form is shared by all
// goroutines. An empty template selects the built-in default prefix.
func WithTemplate(tmpl string) Opt {
	return func(l *Logger) (*Logger, error) {
		l.prog.Store(compile(tmpl))
		return l, nil
	}
}

// The handler receiving internal failure diagnostics. Passing nil restores
// the default, which writes to standard error.
func WithErrorHandler(h ErrorHandler) Opt {
	return func(l *Logger) (*Logger, error) {
		l.errHandler = h
		return l, nil
	}
}

// The severity assigned to lines arriving through [Logger.Write].
// The default value is [Info].
func WithWriterLevel(lvl Level) Opt {
	return func(l *Logger) (*Logger, error) {
		l.writerLevel = clampLevel(lvl)
		return l, nil
	}
}

// Caps for the pending buffer that holds rendered lines before the first
// successful promotion: total bytes and record count. When either cap is
// exceeded the oldest lines are dropped first. Zero or negative disables
// that cap.
// The default values are 8 [Mb] and 10000 records.
func WithPendingCap(maxBytes, maxLines int) Opt {
	return func(l *Logger) (*Logger, error) {
		l.pendingCapBytes = maxBytes
		l.pendingCapLines = maxLines
		return l, nil
	}
}

// Run [Logger.Cleanup] with daysToKeep on a cron schedule, using the
// standard five-field cron expression format. An empty expression removes a
// previously configured job. An invalid expression is reported as an error
// when the option is applied.
func WithCleanupSchedule(expr string, daysToKeep int) Opt {
	return func(l *Logger) (*Logger, error) {
		l.cleanupSpec = expr
		l.cleanupDays = daysToKeep
		return l, nil
	}
}

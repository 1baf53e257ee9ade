package inkwell

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/trviph/collection"
)

// Lifecycle phases of a [Logger]. The phase only moves forward: a logger
// starts Off, StartLight makes it accept and buffer records without touching
// the disk, and a successful promotion switches it to direct file writes.
const (
	phaseOff int32 = iota
	phaseLight
	phaseFull
)

// Line recorded when [Logger.StartLight] is asked for a banner.
const startBanner = "---------- Start Inkwell ----------"

// A Logger accepts records from any number of goroutines, filters them by
// level, renders each into one line, and delivers lines to a rotating set of
// files and/or the console. Use [New] or [Registry.Get] to create one.
//
// A fresh Logger is Off and drops everything. Call [Logger.StartLight] as
// early as desired; it performs no I/O, so it is safe before the process has
// a working directory or a writable filesystem. Call [Logger.Promote] once
// the filesystem is ready.
type Logger struct {
	// Hot-path state, read without the lock.
	phase     atomic.Int32
	threshold atomic.Int32
	prog      atomic.Pointer[program]
	dayRotate atomic.Bool
	reporting atomic.Bool
	days      dayTracker

	mu sync.Mutex

	// See [WithName] for documentation.
	name string
	// See [WithMessageOnly] for documentation.
	messageOnly bool
	// See [WithFile] and [WithConsole] for documentation.
	fileEnabled    bool
	consoleEnabled bool
	// See [WithColor] for documentation.
	colorEnabled bool
	// See [WithWriterLevel] for documentation.
	writerLevel Level

	// Rotation state; see storage.go.
	basePath    string
	minuteStamp bool
	stamp       string
	maxBytes    int
	maxRolls    int
	rollIndex   int
	wrapped     bool
	size        int64
	file        *os.File
	healEvery   int
	healCount   int
	autoFlush   bool

	// Pending lines awaiting replay to disk; see buffer.go.
	pending         *collection.List[string]
	pendingBytes    int
	pendingCapBytes int
	pendingCapLines int
	promoteWanted   bool

	// See [WithErrorHandler] for documentation.
	errHandler ErrorHandler

	// Scheduled cleanup; see cleanup.go.
	c           *cron.Cron
	cEntryID    cron.EntryID
	cleanupSpec string
	cleanupDays int
}

// A Logger can stand in for any io.Writer based log destination.
var _ io.WriteCloser = (*Logger)(nil)

// The ephemeral per-call context consumed by rendering.
type record struct {
	level     Level
	t         time.Time
	ms        int
	name      string
	shortFile string
	fullPath  string
	function  string
	line      int
	msg       string
}

// Create a new unregistered [Logger] with the provided options. See [Opt]
// for all available options and [Registry.Get] for name-based sharing.
//
// Example usage:
//
//	logger, err := inkwell.New(
//		inkwell.WithBasePath("/var/log/myapp/myapp"),
//		inkwell.WithMaxBytes(25*inkwell.Mb),
//	)
func New(opts ...Opt) (*Logger, error) {
	defaultOpts := []Opt{
		WithName(defaultLoggerName()),
		WithLevel(Info),
		WithFile(true),
		WithConsole(false),
		WithColor(true),
		WithMaxBytes(defaultMaxBytes),
		WithMaxRolls(defaultMaxRolls),
		WithSelfHealEvery(defaultSelfHealEvery),
		WithPendingCap(defaultPendingBytes, defaultPendingLines),
		WithWriterLevel(Info),
	}
	finalOpts := append(defaultOpts, opts...)

	l := new(Logger)
	l.pending = collection.NewList[string]()
	if err := l.applyOpts(finalOpts...); err != nil {
		return nil, fmt.Errorf("failed to create new logger, caused by %w", err)
	}
	if l.basePath == "" {
		l.basePath = filepath.Join(os.TempDir(), l.name)
	}
	l.stamp = l.stampNow()
	return l, nil
}

func (l *Logger) applyOpts(opts ...Opt) error {
	var err error
	for _, opt := range opts {
		l, err = opt(l)
		if err != nil {
			return fmt.Errorf("failed to apply option, caused by %w", err)
		}
	}
	if err := l.setupCleanupLocked(); err != nil {
		return fmt.Errorf("failed to apply option, caused by %w", err)
	}
	return nil
}

// Configure re-applies options to a live logger. Changes take effect on the
// next record.
func (l *Logger) Configure(opts ...Opt) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.applyOpts(opts...)
}

// StartLight idempotently enables an Off logger without touching the disk.
// Records are rendered and buffered (and echoed to the console when that
// target is on) until a promotion writes them out. When banner is true a
// start marker is recorded first, at Alert so no threshold hides it.
func (l *Logger) StartLight(banner bool) {
	if !l.phase.CompareAndSwap(phaseOff, phaseLight) {
		return
	}
	if banner {
		l.ingest(Alert, 2, true, false, startBanner)
	}
}

// Promote replays every buffered line into the log file in original order
// and switches the logger to direct disk writes. Calling it again once the
// buffer has drained is a no-op; flushed lines are never replayed twice. On
// failure the phase and the buffer are left untouched, the condition is
// reported, and the call may be retried; every subsequent record also
// retries the promotion automatically.
func (l *Logger) Promote() error {
	l.mu.Lock()
	if l.phase.Load() == phaseFull && l.pending.Length() == 0 {
		l.mu.Unlock()
		return nil
	}
	l.promoteWanted = true
	err := l.promoteLocked()
	l.mu.Unlock()

	if err != nil {
		l.report(err.Error())
		return fmt.Errorf("failed to promote logger, caused by %w", err)
	}
	return nil
}

// Open the log file, replay the pending buffer, and enter Full phase. With
// file output disabled there is nothing to deliver, so the buffer is
// discarded and the switch is immediate. Caller must hold l.mu.
func (l *Logger) promoteLocked() error {
	if !l.fileEnabled {
		_ = l.drainPendingLocked()
		l.phase.Store(phaseFull)
		return nil
	}
	if err := l.ensureFileLocked(); err != nil {
		return err
	}
	if err := l.replayLocked(); err != nil {
		return err
	}
	l.phase.Store(phaseFull)
	return nil
}

// Write every pending line to the file in FIFO order, rotating exactly as
// live records do. On failure the unwritten remainder, the failed line
// included, goes back to the buffer. Caller must hold l.mu.
func (l *Logger) replayLocked() error {
	lines := l.drainPendingLocked()
	for i, line := range lines {
		if err := l.writeFileLocked([]byte(line)); err != nil {
			l.restorePendingLocked(lines[i:])
			return err
		}
	}
	return nil
}

// Log emits a record at an arbitrary level. Arguments are converted to text
// and joined with single spaces.
func (l *Logger) Log(lvl Level, args ...any) { l.logArgs(lvl, args...) }

// Logf emits a record at an arbitrary level, formatting like fmt.Sprintf.
func (l *Logger) Logf(lvl Level, format string, args ...any) { l.logf(lvl, format, args...) }

func (l *Logger) Debug(args ...any)   { l.logArgs(Debug, args...) }
func (l *Logger) Info(args ...any)    { l.logArgs(Info, args...) }
func (l *Logger) Notice(args ...any)  { l.logArgs(Notice, args...) }
func (l *Logger) Warning(args ...any) { l.logArgs(Warning, args...) }
func (l *Logger) Error(args ...any)   { l.logArgs(Error, args...) }
func (l *Logger) Critical(args ...any) {
	l.logArgs(Critical, args...)
}
func (l *Logger) Alert(args ...any) { l.logArgs(Alert, args...) }

func (l *Logger) Debugf(format string, args ...any)   { l.logf(Debug, format, args...) }
func (l *Logger) Infof(format string, args ...any)    { l.logf(Info, format, args...) }
func (l *Logger) Noticef(format string, args ...any)  { l.logf(Notice, format, args...) }
func (l *Logger) Warningf(format string, args ...any) { l.logf(Warning, format, args...) }
func (l *Logger) Errorf(format string, args ...any)   { l.logf(Error, format, args...) }
func (l *Logger) Criticalf(format string, args ...any) {
	l.logf(Critical, format, args...)
}
func (l *Logger) Alertf(format string, args ...any) { l.logf(Alert, format, args...) }

func (l *Logger) logArgs(lvl Level, args ...any) {
	if !l.accepts(lvl) {
		return
	}
	l.ingest(lvl, 3, true, false, string(appendArgs(nil, args...)))
}

func (l *Logger) logf(lvl Level, format string, args ...any) {
	if !l.accepts(lvl) {
		return
	}
	l.ingest(lvl, 3, true, false, fmt.Sprintf(format, args...))
}

func (l *Logger) accepts(lvl Level) bool {
	return l.phase.Load() != phaseOff && int32(clampLevel(lvl)) >= l.threshold.Load()
}

// Write delivers p through the logger at the configured writer level,
// bypassing prefix rendering: the bytes land in the file and on the console
// exactly as given. This lets a Logger serve as the output of the standard
// log package or of any other line-oriented producer. The returned error is
// always nil; delivery problems go to the error handler.
func (l *Logger) Write(p []byte) (int, error) {
	l.mu.Lock()
	lvl := l.writerLevel
	l.mu.Unlock()
	if l.accepts(lvl) {
		l.ingest(lvl, 2, false, true, string(p))
	}
	return len(p), nil
}

// The single record pipeline: filter, snapshot time, truncate, render,
// dispatch. It never returns an error; failures degrade per target and are
// reported through the error handler.
func (l *Logger) ingest(lvl Level, calldepth int, addNewline, raw bool, msg string) {
	lvl = clampLevel(lvl)
	if !l.accepts(lvl) {
		return
	}

	t, ms := snapshot()
	if l.dayRotate.Load() {
		l.days.observe(t)
	}

	if len(msg) > maxMessageSize {
		msg = msg[:maxMessageSize] + truncationMark
	}

	// Snapshot the mutable configuration consumed outside the lock.
	l.mu.Lock()
	name := l.name
	msgOnly := raw || l.messageOnly
	fileOn := l.fileEnabled
	consoleOn := l.consoleEnabled
	colorOn := l.colorEnabled
	l.mu.Unlock()

	prog := l.prog.Load()

	rec := record{
		level: lvl,
		t:     t,
		ms:    ms,
		name:  name,
		msg:   msg,
	}
	if !msgOnly && (prog == nil || prog.needsCaller) {
		if pc, file, line, ok := runtime.Caller(calldepth); ok {
			rec.fullPath = file
			rec.shortFile = filepath.Base(file)
			rec.line = line
			if fn := runtime.FuncForPC(pc); fn != nil {
				rec.function = shortFuncName(fn.Name())
			}
		}
	}

	s := getScratch()
	switch {
	case msgOnly:
		s.buf = append(s.buf, msg...)
	case prog != nil:
		prog.render(s, &rec)
	default:
		renderDefault(s, &rec)
	}
	if addNewline {
		s.buf = append(s.buf, '\n')
	}

	l.dispatch(lvl, s.buf, fileOn, consoleOn, colorOn && consoleSupportsColor())
	putScratch(s)
}

// Deliver one rendered line. The phase decision happens under the lock so a
// concurrent promotion cannot reorder records from a single caller; console
// output follows inside the same critical section, always taking the console
// lock after the logger's own.
func (l *Logger) dispatch(lvl Level, line []byte, fileOn, consoleOn, colorize bool) {
	var werr, perr error

	l.mu.Lock()
	if l.phase.Load() == phaseFull {
		if fileOn {
			if l.pending.Length() > 0 {
				// Lines buffered just before the promotion keep their place.
				if perr = l.replayLocked(); perr != nil {
					l.enqueuePendingLocked(string(line))
				}
			}
			if perr == nil {
				werr = l.writeFileLocked(line)
			}
		}
	} else {
		l.enqueuePendingLocked(string(line))
		if l.promoteWanted {
			perr = l.promoteLocked()
		}
	}
	if consoleOn {
		writeConsole(lvl, line, colorize)
	}
	l.mu.Unlock()

	if werr != nil {
		l.report(werr.Error())
	}
	if perr != nil {
		l.report(perr.Error())
	}
}

// SetLevel changes the minimum accepted severity.
func (l *Logger) SetLevel(lvl Level) {
	l.threshold.Store(int32(clampLevel(lvl)))
}

// Level reports the current minimum accepted severity.
func (l *Logger) Level() Level {
	return Level(l.threshold.Load())
}

// Enabled reports whether the logger accepts records at all.
func (l *Logger) Enabled() bool {
	return l.phase.Load() != phaseOff
}

// Name reports the logger's configured name.
func (l *Logger) Name() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.name
}

// Flush forces the current log file's contents to stable storage.
func (l *Logger) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("failed to flush log file, caused by %w", err)
	}
	return nil
}

// Close flushes and closes the current log file. The logger itself stays
// usable: the next record opens the following rotation slot. Close never
// removes a logger from a [Registry].
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	syncErr := l.file.Sync()
	closeErr := l.file.Close()
	l.file = nil
	if syncErr != nil {
		return fmt.Errorf("failed to flush log file, caused by %w", syncErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close log file, caused by %w", closeErr)
	}
	return nil
}

// Inkwell is an embeddable logging engine with phased startup, rotating
// files, and self-healing storage.
//
// Records submitted by any number of goroutines are filtered by severity,
// rendered into single lines, and delivered to a rotating set of files
// and/or the console. Inkwell is built to be safe very early in process
// life: a logger accepts records before the working directory or a writable
// filesystem exists, holds them in a bounded in-memory buffer, and replays
// them to disk once promoted. A logging call never fails, never panics the
// caller, and never deadlocks, whatever happens to the files underneath.
//
// # Phases
//
// Every [Logger] moves forward through three phases. Off is the initial
// state; records are dropped. [Logger.StartLight] enables the logger without
// any disk I/O: records are rendered, optionally echoed to the console, and
// buffered. [Logger.Promote] opens the log file, replays the buffer in
// order, and switches to direct writes. If promotion fails, nothing is lost;
// the logger stays in the buffering phase and every subsequent record
// retries the promotion until the filesystem cooperates.
//
//	logger, err := inkwell.New(
//		inkwell.WithBasePath("/var/log/myapp/myapp"),
//		inkwell.WithConsole(true),
//	)
//	if err != nil {
//		// Handle error
//	}
//	logger.StartLight(true) // safe immediately, emits a start banner
//	logger.Info("starting up")
//
//	// ... later, once the filesystem is ready ...
//	if err := logger.Promote(); err != nil {
//		// Buffered lines are intact; Promote may be retried.
//	}
//	logger.Infof("listening on %s", addr)
//
// # Files and rotation
//
// Log files are named <stem>_<timestamp>_<roll>.log, where the stem comes
// from [WithBasePath] and the timestamp is captured when the path is set and
// at every day rollover. A file is rolled to the next slot before a write
// that would push it past [WithMaxBytes]; after [WithMaxRolls] slots the
// sequence wraps around and reuses slot 1, truncating it first. With
// [WithDayRotation] enabled, the first write after midnight starts a fresh
// sequence under the new date.
//
// Every [WithSelfHealEvery] writes the logger verifies that its path still
// names the open file. If an external rotation tool deleted or renamed the
// active log, the logger reopens it in place and carries on; no process
// restart is needed.
//
// Old files are removed by [Logger.Cleanup], either called directly or put
// on a cron schedule with [WithCleanupSchedule].
//
// # Line layout
//
// Without a template, lines carry a fixed prefix:
//
//	2006-01-02 15:04:05.000 LEVEL [file.go:42] message
//
// [WithTemplate] installs a custom layout compiled from a directive string:
//
//	%Y %m %d %H %M %S  date and time fields, grouped into one formatting call
//	%e                 milliseconds, zero-padded to three digits
//	%l %L              level name
//	%n                 logger name
//	%P                 process id
//	%t                 hashed goroutine id
//	%s                 short source file name
//	%g                 full source file path
//	%#                 source line
//	%!                 function name
//	%v                 message body
//	%^ %$              color range markers, currently inert
//
// Unrecognized directives pass through as literal text. For example:
//
//	inkwell.WithTemplate("%Y-%m-%d %H:%M:%S.%e [%l] %n %s:%# | %v")
//
// # Sharing loggers by name
//
// A [Registry] hands out one logger per name, creating each on first use:
//
//	reg := inkwell.NewRegistry()
//	base, _ := reg.Get("app", inkwell.WithBasePath("/var/log/app/app"))
//	audit, _ := reg.Get("audit", inkwell.WithLevel(inkwell.Notice))
//
// Loggers are never removed from a registry, so a reference obtained during
// startup stays valid through shutdown.
//
// # Standard library interoperability
//
// A Logger implements [io.WriteCloser]. Bytes written through it bypass the
// prefix and are delivered verbatim at the [WithWriterLevel] severity, so
// the standard log package can be pointed at it:
//
//	std := log.New(logger, "", log.LstdFlags)
//	std.Println("from the standard logger")
//
// # When things go wrong
//
// Internal failures never reach the logging caller. They funnel to the
// [ErrorHandler] configured with [WithErrorHandler], or to standard error
// when none is set. A handler may itself log, even to the same logger;
// reentrant failures divert to standard error instead of recursing.
package inkwell

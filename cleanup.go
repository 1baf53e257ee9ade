package inkwell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/trviph/collection"
)

type agedFile struct {
	path string
	date time.Time
}

// Cleanup deletes rotated log files whose embedded date lies more than
// daysToKeep days behind the current time. Only files matching the logger's
// <stem>_* naming with a parseable 8-digit date are considered; anything
// else in the directory is left untouched. daysToKeep of zero or less is a
// no-op.
func (l *Logger) Cleanup(daysToKeep int) error {
	if daysToKeep <= 0 {
		return nil
	}

	l.mu.Lock()
	dir, stem := filepath.Split(l.basePath)
	l.mu.Unlock()

	matches, err := filepath.Glob(filepath.Join(dir, stem+"_*"))
	if err != nil {
		return fmt.Errorf("failed to list log files, caused by %w", err)
	}

	minHeap, err := collection.NewHeap(func(current, other *agedFile) bool {
		return current.date.Before(other.date)
	})
	if err != nil {
		return fmt.Errorf("failed to get heap, caused by %w", err)
	}
	for _, match := range matches {
		date, ok := parseNameDate(filepath.Base(match), stem)
		if !ok {
			continue
		}
		minHeap.Push(&agedFile{path: match, date: date})
	}

	cutoff := now().Add(-time.Duration(daysToKeep) * 24 * time.Hour)
	var firstErr error
	for !minHeap.IsEmpty() {
		oldest, err := minHeap.Pop()
		if err != nil {
			break
		}
		// The heap is date-ordered, so the first kept file ends the scan.
		if !oldest.date.Before(cutoff) {
			break
		}
		if err := os.Remove(oldest.path); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to remove old log file %s, caused by %w", oldest.path, err)
		}
	}
	return firstErr
}

// Extract the file date from a rotated file name of the form
// <stem>_<stamp>_<roll>.log. The first eight characters of the stamp must
// be digits forming a valid YYYYMMDD date; anything else is not ours to
// delete.
func parseNameDate(name, stem string) (time.Time, bool) {
	prefix := stem + "_"
	if !strings.HasPrefix(name, prefix) || len(name) < len(prefix)+len(dayStampLayout) {
		return time.Time{}, false
	}
	digits := name[len(prefix) : len(prefix)+len(dayStampLayout)]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return time.Time{}, false
		}
	}
	t, err := time.ParseInLocation(dayStampLayout, digits, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Wire or rewire the scheduled cleanup job. Any existing entry is removed
// first, so a reconfiguration never leaves two schedules running. Caller
// must hold l.mu or own the logger exclusively, as during construction.
func (l *Logger) setupCleanupLocked() error {
	if l.c != nil {
		l.c.Remove(l.cEntryID)
		l.cEntryID = 0
	}
	if len(l.cleanupSpec) == 0 {
		return nil
	}
	if l.c == nil {
		l.c = cron.New()
		l.c.Start()
	}

	days := l.cleanupDays
	id, err := l.c.AddFunc(l.cleanupSpec, func() {
		if err := l.Cleanup(days); err != nil {
			l.report(err.Error())
		}
	})
	if err != nil {
		return fmt.Errorf("failed to setup cleanup schedule, caused by %w", err)
	}
	l.cEntryID = id
	return nil
}

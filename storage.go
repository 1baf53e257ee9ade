package inkwell

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Filename timestamp layouts, day and minute precision.
const (
	dayStampLayout    = "20060102"
	minuteStampLayout = "200601021504"
)

func (l *Logger) stampNow() string {
	if l.minuteStamp {
		return now().Format(minuteStampLayout)
	}
	return now().Format(dayStampLayout)
}

// Path of the current rotation slot: <stem>_<stamp>_<rollIndex>.log placed
// next to the configured base path.
func (l *Logger) currentPathLocked() string {
	dir, stem := filepath.Split(l.basePath)
	return filepath.Join(dir, fmt.Sprintf("%s_%s_%d.log", stem, l.stamp, l.rollIndex))
}

// Close the handle and restart the rotation sequence under a fresh filename
// timestamp. Used when the base path changes and at day rollover; the next
// write opens slot 1 of the new sequence.
func (l *Logger) resetStorageLocked() {
	if l.file != nil {
		_ = l.file.Close()
		l.file = nil
	}
	l.rollIndex = 0
	l.size = 0
	l.wrapped = false
	l.healCount = 0
	l.stamp = l.stampNow()
}

// Advance to the next rotation slot and open it. Past maxRolls the index
// wraps to 1 and the sequence switches to truncate-and-reuse; from then on
// every slot entered is cut back to empty instead of appended.
func (l *Logger) rollLocked() error {
	if l.file != nil {
		_ = l.file.Close()
		l.file = nil
	}
	l.rollIndex++
	if l.maxRolls > 0 && l.rollIndex > l.maxRolls {
		l.rollIndex = 1
		l.wrapped = true
	}
	return l.openLocked()
}

// Open the current slot, creating parent directories on demand, and learn
// the file's true size from its end position.
func (l *Logger) openLocked() error {
	path := l.currentPathLocked()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory, caused by %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if l.wrapped {
		flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}
	file, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s, caused by %w", path, err)
	}

	size, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to seek log file %s, caused by %w", path, err)
	}
	l.file = file
	l.size = size
	l.healCount = 0
	return nil
}

func (l *Logger) ensureFileLocked() error {
	if l.file != nil {
		return nil
	}
	return l.rollLocked()
}

// Reopen the current path in append mode and resynchronize the tracked size.
// Shared by self-healing and the single write retry.
func (l *Logger) reopenLocked() error {
	if l.file != nil {
		_ = l.file.Close()
		l.file = nil
	}
	path := l.currentPathLocked()
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to reopen log file %s, caused by %w", path, err)
	}
	size, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to seek log file %s, caused by %w", path, err)
	}
	l.file = file
	l.size = size
	return nil
}

// Every healEvery writes, verify the path on disk still names the open file.
// External rotation tools delete or rename the active log; when that happens
// the identity check fails and the file is reopened in place.
func (l *Logger) healCheckLocked() error {
	if l.healEvery <= 0 || l.file == nil {
		return nil
	}
	l.healCount++
	if l.healCount < l.healEvery {
		return nil
	}
	l.healCount = 0

	onDisk, err := os.Stat(l.currentPathLocked())
	if err == nil {
		open, statErr := l.file.Stat()
		if statErr == nil && os.SameFile(onDisk, open) {
			return nil
		}
	}
	return l.reopenLocked()
}

// The full write path for one rendered line: consume a pending day switch,
// make sure a slot is open, rotate on size, run the periodic identity check,
// then write with a single reopen-and-retry. A second consecutive failure
// invalidates the handle so the next attempt starts from a fresh roll.
func (l *Logger) writeFileLocked(p []byte) error {
	if l.days.consume() {
		l.resetStorageLocked()
	}
	if err := l.ensureFileLocked(); err != nil {
		return err
	}
	if l.maxBytes > 0 && l.size > 0 && l.size+int64(len(p)) > int64(l.maxBytes) {
		if err := l.rollLocked(); err != nil {
			return err
		}
	}
	if err := l.healCheckLocked(); err != nil {
		return err
	}

	n, err := l.file.Write(p)
	if err != nil {
		if reopenErr := l.reopenLocked(); reopenErr != nil {
			l.invalidateLocked()
			return reopenErr
		}
		n, err = l.file.Write(p)
		if err != nil {
			l.invalidateLocked()
			return fmt.Errorf("failed to write log file, caused by %w", err)
		}
	}
	l.size += int64(n)

	if l.autoFlush {
		if err := l.file.Sync(); err != nil {
			l.invalidateLocked()
			return fmt.Errorf("failed to flush log file, caused by %w", err)
		}
	}
	return nil
}

func (l *Logger) invalidateLocked() {
	if l.file != nil {
		_ = l.file.Close()
		l.file = nil
	}
}

// Roll closes the current log file and continues in the next rotation slot.
// It is a no-op while no file is open.
func (l *Logger) Roll() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	if err := l.rollLocked(); err != nil {
		return fmt.Errorf("failed to roll log file, caused by %w", err)
	}
	return nil
}

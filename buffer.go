package inkwell

// Append a rendered line to the pending buffer, evicting oldest entries
// until both the byte and record caps hold again. A lone oversized record is
// kept; eviction never removes the entry that was just added. Caller must
// hold l.mu.
func (l *Logger) enqueuePendingLocked(line string) {
	l.pending.Append(line)
	l.pendingBytes += len(line)

	overCaps := func() bool {
		if l.pendingCapLines > 0 && l.pending.Length() > l.pendingCapLines {
			return true
		}
		return l.pendingCapBytes > 0 && l.pendingBytes > l.pendingCapBytes
	}
	for overCaps() && l.pending.Length() > 1 {
		oldest, err := l.pending.Dequeue()
		if err != nil {
			return
		}
		l.pendingBytes -= len(oldest)
	}
}

// Remove and return every pending line in FIFO order. Caller must hold l.mu.
func (l *Logger) drainPendingLocked() []string {
	n := l.pending.Length()
	if n == 0 {
		return nil
	}
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		line, err := l.pending.Dequeue()
		if err != nil {
			break
		}
		lines = append(lines, line)
	}
	l.pendingBytes = 0
	return lines
}

// Put lines back after a partial replay, preserving their order. No eviction
// happens here; a failed replay never costs buffered data. Caller must hold
// l.mu.
func (l *Logger) restorePendingLocked(lines []string) {
	for _, line := range lines {
		l.pending.Append(line)
		l.pendingBytes += len(line)
	}
}

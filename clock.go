package inkwell

import (
	"sync"
	"sync/atomic"
	"time"

	timecache "github.com/agilira/go-timecache"
)

// Layout of the cached per-second timestamp used by the default prefix.
const secondLayout = "2006-01-02 15:04:05"

// Process-wide cached wall clock. Reading it costs an atomic load instead of
// a syscall per record. The cache runs for the life of the process.
var wall = timecache.NewWithResolution(time.Millisecond)

// Overridable in tests.
var now = wall.CachedTime

// Current wall time and its millisecond offset within the second.
func snapshot() (time.Time, int) {
	t := now()
	return t, t.Nanosecond() / int(time.Millisecond)
}

// A scratch cell holds a record's growing output line plus the cell's own
// formatted-second cache. Cells are pooled; the second cache survives reuse,
// so the timestamp text is recomputed only when the wall-clock second moves.
type scratch struct {
	buf     []byte
	tmp     []byte
	lastSec int64
	secText []byte
}

var scratchPool = sync.Pool{
	New: func() any {
		return &scratch{buf: make([]byte, 0, 512)}
	},
}

func getScratch() *scratch {
	return scratchPool.Get().(*scratch)
}

func putScratch(s *scratch) {
	if cap(s.buf) > 64*Kb {
		return
	}
	s.buf = s.buf[:0]
	scratchPool.Put(s)
}

// Append the cached "2006-01-02 15:04:05" text for t, reformatting only when
// the second differs from the cell's last one.
func (s *scratch) appendSecond(buf []byte, t time.Time) []byte {
	sec := t.Unix()
	if sec != s.lastSec || len(s.secText) == 0 {
		s.secText = t.AppendFormat(s.secText[:0], secondLayout)
		s.lastSec = sec
	}
	return append(buf, s.secText...)
}

// Append ms as a zero-padded 3-digit field.
func appendMillis(buf []byte, ms int) []byte {
	return append(buf, byte('0'+ms/100), byte('0'+ms/10%10), byte('0'+ms%10))
}

func dayKey(t time.Time) int64 {
	y, m, d := t.Date()
	return int64(y)*10_000 + int64(m)*100 + int64(d)
}

// A dayTracker turns wall-clock day changes into a one-shot flag. Observation
// is lock-free and happens on the ingest path; the flag is consumed under the
// logger lock by the write path, which performs the actual rollover. The zero
// value means no day has been observed yet, so the first observation never
// raises the flag.
type dayTracker struct {
	last atomic.Int64
	flag atomic.Bool
}

func (d *dayTracker) observe(t time.Time) {
	key := dayKey(t)
	old := d.last.Load()
	if old == key {
		return
	}
	if d.last.CompareAndSwap(old, key) && old != 0 {
		d.flag.Store(true)
	}
}

func (d *dayTracker) consume() bool {
	return d.flag.CompareAndSwap(true, false)
}

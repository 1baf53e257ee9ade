package inkwell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileNaming(t *testing.T) {
	mockNow(t, time.Date(2024, 3, 9, 14, 5, 0, 0, time.Local))

	tests := []struct {
		name string // description of this test case
		opts []Opt
		want string
	}{
		{
			name: "day stamp",
			want: "app_20240309_1.log",
		},
		{
			name: "minute stamp",
			opts: []Opt{WithMinuteStamp(true)},
			want: "app_202403091405_1.log",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLogger(t, append([]Opt{WithMessageOnly(true)}, tt.opts...)...)
			startFull(t, l)
			l.Info("x")

			files := logFiles(t, l)
			require.Len(t, files, 1)
			assert.Equal(t, tt.want, filepath.Base(files[0]))
		})
	}
}

// The canonical rotation walk: 100-byte files, 2 slots, 5 records of exactly
// 40 bytes. Records 1-2 fill slot 1, records 3-4 fill slot 2, and record 5
// wraps around into a truncated reuse of slot 1.
func TestRotationWrapsAndReusesSlots(t *testing.T) {
	l := newTestLogger(t,
		WithMessageOnly(true),
		WithMaxBytes(100),
		WithMaxRolls(2),
	)
	startFull(t, l)

	var lines []string
	for i := 1; i <= 5; i++ {
		lines = append(lines, fmt.Sprintf("record %d %s", i, strings.Repeat("x", 30)))
	}
	for _, line := range lines {
		l.Info(line)
	}

	require.Len(t, logFiles(t, l), 2)
	assert.Equal(t, lines[4]+"\n", readFile(t, slotFile(l, 1)))
	assert.Equal(t, lines[2]+"\n"+lines[3]+"\n", readFile(t, slotFile(l, 2)))
}

func TestSizeRotationDisabled(t *testing.T) {
	l := newTestLogger(t, WithMessageOnly(true), WithMaxBytes(0))
	startFull(t, l)

	for i := 0; i < 50; i++ {
		l.Info(strings.Repeat("y", 100))
	}

	assert.Len(t, logFiles(t, l), 1)
}

func TestDayRollover(t *testing.T) {
	clock := mockClock(t, time.Date(2024, 3, 9, 23, 59, 58, 0, time.Local))
	l := newTestLogger(t, WithMessageOnly(true), WithDayRotation(true))
	startFull(t, l)

	l.Info("before midnight")
	firstPath := slotFile(l, 1)

	*clock = time.Date(2024, 3, 10, 0, 0, 1, 0, time.Local)
	l.Info("after midnight")

	secondPath := slotFile(l, 1)
	assert.NotEqual(t, firstPath, secondPath)
	assert.Contains(t, filepath.Base(secondPath), "20240310")
	assert.Equal(t, "before midnight\n", readFile(t, firstPath))
	assert.Equal(t, "after midnight\n", readFile(t, secondPath))
}

func TestSelfHealReopens(t *testing.T) {
	var reports []string
	l := newTestLogger(t,
		WithMessageOnly(true),
		WithSelfHealEvery(1),
		WithErrorHandler(ErrorHandlerFunc(func(msg string) { reports = append(reports, msg) })),
	)
	startFull(t, l)

	l.Info("first")
	path := slotFile(l, 1)
	require.NoError(t, os.Remove(path))

	l.Info("second")

	assert.Equal(t, "second\n", readFile(t, path))
	assert.Empty(t, reports, "healing is transparent")
}

func TestSelfHealDisabled(t *testing.T) {
	l := newTestLogger(t, WithMessageOnly(true), WithSelfHealEvery(0))
	startFull(t, l)

	l.Info("first")
	path := slotFile(l, 1)
	require.NoError(t, os.Remove(path))

	l.Info("second")

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "no identity check, no reopen")
}

func TestWriteRetrySurvivesClosedHandle(t *testing.T) {
	var reports []string
	l := newTestLogger(t,
		WithMessageOnly(true),
		WithErrorHandler(ErrorHandlerFunc(func(msg string) { reports = append(reports, msg) })),
	)
	startFull(t, l)

	l.Info("first")
	l.mu.Lock()
	err := l.file.Close()
	l.mu.Unlock()
	require.NoError(t, err)
	l.Info("second")

	assert.Equal(t, "first\nsecond\n", readFile(t, slotFile(l, 1)))
	assert.Empty(t, reports, "a successful retry is not an error")
}

func TestWriteFailureInvalidatesHandle(t *testing.T) {
	var reports []string
	l := newTestLogger(t,
		WithMessageOnly(true),
		WithErrorHandler(ErrorHandlerFunc(func(msg string) { reports = append(reports, msg) })),
	)
	startFull(t, l)

	l.Info("first")

	// Take the whole directory away and break the handle, so both the write
	// and the reopen retry fail.
	require.NoError(t, os.RemoveAll(filepath.Dir(slotFile(l, 1))))
	l.mu.Lock()
	_ = l.file.Close()
	l.mu.Unlock()

	l.Info("second")
	require.Len(t, reports, 1)
	assert.Contains(t, reports[0], "failed to reopen log file")

	// The handle was invalidated; the next record starts a fresh roll and
	// recreates the directory.
	l.Info("third")
	assert.Equal(t, "third\n", readFile(t, slotFile(l, 2)))
	assert.Len(t, reports, 1)
}

func TestRoll(t *testing.T) {
	l := newTestLogger(t, WithMessageOnly(true))
	require.NoError(t, l.Roll()) // nothing open yet

	startFull(t, l)
	l.Info("one")
	require.NoError(t, l.Roll())
	l.Info("two")

	assert.Equal(t, "one\n", readFile(t, slotFile(l, 1)))
	assert.Equal(t, "two\n", readFile(t, slotFile(l, 2)))
}

func TestBasePathChangeRestartsSequence(t *testing.T) {
	l := newTestLogger(t, WithMessageOnly(true))
	startFull(t, l)
	l.Info("one")
	oldPath := slotFile(l, 1)

	fresh := filepath.Join(t.TempDir(), "fresh")
	require.NoError(t, l.Configure(WithBasePath(fresh)))
	l.Info("two")

	assert.Equal(t, "one\n", readFile(t, oldPath))
	newPath := slotFile(l, 1)
	assert.Contains(t, newPath, "fresh")
	assert.Equal(t, "two\n", readFile(t, newPath))
}

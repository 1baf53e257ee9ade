package inkwell

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanup(t *testing.T) {
	mockNow(t, time.Date(2024, 3, 21, 12, 0, 0, 0, time.Local))

	dir := t.TempDir()
	l, err := New(WithBasePath(filepath.Join(dir, "app")))
	require.NoError(t, err)

	touch := func(name string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	touch("app_20240101_1.log")   // stale, must go
	touch("app_20240102_2.log")   // stale, must go
	touch("app_20240320_1.log")   // recent, must stay
	touch("app_notadate_1.log")   // unparseable, must stay
	touch("other_20240101_1.log") // different stem, must stay
	touch("README.txt")           // unrelated, must stay

	require.NoError(t, l.Cleanup(0)) // zero days keeps everything
	left, err := filepath.Glob(filepath.Join(dir, "*"))
	require.NoError(t, err)
	assert.Len(t, left, 6)

	require.NoError(t, l.Cleanup(30))

	left, err = filepath.Glob(filepath.Join(dir, "*"))
	require.NoError(t, err)
	var names []string
	for _, p := range left {
		names = append(names, filepath.Base(p))
	}
	assert.ElementsMatch(t, []string{
		"app_20240320_1.log",
		"app_notadate_1.log",
		"other_20240101_1.log",
		"README.txt",
	}, names)
}

func TestParseNameDate(t *testing.T) {
	tests := []struct {
		name string // description of this test case
		file string
		stem string
		want string
		ok   bool
	}{
		{name: "day stamp", file: "app_20240309_1.log", stem: "app", want: "20240309", ok: true},
		{name: "minute stamp", file: "app_202403091405_2.log", stem: "app", want: "20240309", ok: true},
		{name: "wrong stem", file: "other_20240309_1.log", stem: "app", ok: false},
		{name: "no digits", file: "app_notadate_1.log", stem: "app", ok: false},
		{name: "too short", file: "app_2024.log", stem: "app", ok: false},
		{name: "impossible date", file: "app_20241399_1.log", stem: "app", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseNameDate(tt.file, tt.stem)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.Format(dayStampLayout))
			}
		})
	}
}

func TestCleanupSchedule(t *testing.T) {
	l, err := New(WithCleanupSchedule("* * * * *", 7))
	require.NoError(t, err)

	l.mu.Lock()
	scheduler, entry := l.c, l.cEntryID
	l.mu.Unlock()
	require.NotNil(t, scheduler)
	assert.NotZero(t, entry)

	require.NoError(t, l.Configure(WithCleanupSchedule("", 0)))

	l.mu.Lock()
	entryAfter := l.cEntryID
	l.mu.Unlock()
	assert.Zero(t, entryAfter)
	assert.Empty(t, scheduler.Entries())
}

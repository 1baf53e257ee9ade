package inkwell

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testRecord() *record {
	return &record{
		level:     Warning,
		t:         time.Date(2024, 3, 9, 14, 5, 6, 7_000_000, time.UTC),
		ms:        7,
		name:      "worker",
		shortFile: "serve.go",
		fullPath:  "/src/app/serve.go",
		function:  "app.handle",
		line:      42,
		msg:       "hello",
	}
}

func renderToString(p *program, rec *record) string {
	s := &scratch{}
	p.render(s, rec)
	return string(s.buf)
}

func TestCompileEmptyTemplate(t *testing.T) {
	assert.Nil(t, compile(""))
}

func TestPatternRoundTrip(t *testing.T) {
	prog := compile("%Y-%m-%d %H:%M:%S.%e [%l] %n %s:%# %! | %v")
	assert.NotNil(t, prog)
	assert.True(t, prog.needsCaller)

	got := renderToString(prog, testRecord())
	assert.Equal(t, "2024-03-09 14:05:06.007 [WARNING] worker serve.go:42 app.handle | hello", got)
}

func TestPatternDirectives(t *testing.T) {
	rec := testRecord()
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{name: "message only", template: "%v", want: "hello"},
		{name: "level", template: "%l/%L", want: "WARNING/WARNING"},
		{name: "logger name", template: "%n", want: "worker"},
		{name: "short file", template: "%s", want: "serve.go"},
		{name: "full path", template: "%g", want: "/src/app/serve.go"},
		{name: "line", template: "%#", want: "42"},
		{name: "function", template: "%!", want: "app.handle"},
		{name: "milliseconds", template: "%e", want: "007"},
		{name: "seconds with millis", template: "%S.%e", want: "06.007"},
		{name: "color markers are inert", template: "%^%l%$", want: "WARNING"},
		{name: "percent escape", template: "100%% sure", want: "100% sure"},
		{name: "trailing percent", template: "x%", want: "x%"},
		{name: "unknown directive", template: "%Y%q", want: "2024%q"},
		{name: "unknown directive inside date run", template: "%d%q%m", want: "09%q03"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderToString(compile(tt.template), rec)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPatternGrouping(t *testing.T) {
	tests := []struct {
		name      string
		template  string
		wantKinds []opKind
	}{
		{
			name:      "date run folds into one op",
			template:  "%Y-%m-%d %H:%M:%S",
			wantKinds: []opKind{opDate},
		},
		{
			name:      "unsafe literal splits the run",
			template:  "%H x1 %M",
			wantKinds: []opKind{opDate, opLiteral, opDate},
		},
		{
			name:      "non-date directive closes the run",
			template:  "%H%l%M",
			wantKinds: []opKind{opDate, opLevel, opDate},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := compile(tt.template)
			var kinds []opKind
			for _, op := range prog.ops {
				kinds = append(kinds, op.kind)
			}
			assert.Equal(t, tt.wantKinds, kinds)
		})
	}
}

func TestNeedsCaller(t *testing.T) {
	assert.False(t, compile("%l %v").needsCaller)
	assert.True(t, compile("%s").needsCaller)
	assert.True(t, compile("%!").needsCaller)
	assert.True(t, compile("%g:%#").needsCaller)
}

func TestLayoutSafe(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: " -:/|[]", want: true},
		{in: "T", want: true},
		{in: "x1", want: false},
		{in: "2", want: false},
		{in: "Jan", want: false},
		{in: "Monday", want: false},
		{in: "MST", want: false},
		{in: "pm", want: false},
		{in: "am", want: true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, layoutSafe(tt.in), "layoutSafe(%q)", tt.in)
	}
}

func TestRenderDefaultPrefix(t *testing.T) {
	s := &scratch{}
	renderDefault(s, testRecord())
	assert.Equal(t, "2024-03-09 14:05:06.007 WARNING [serve.go:42] hello", string(s.buf))
}

func TestRenderPidAndTid(t *testing.T) {
	out := renderToString(compile("%P"), testRecord())
	assert.Equal(t, strconv.Itoa(pid), out)

	prog := compile("%t")
	first := renderToString(prog, testRecord())
	second := renderToString(prog, testRecord())
	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
	_, err := strconv.ParseUint(first, 10, 64)
	assert.NoError(t, err)
}

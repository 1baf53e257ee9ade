package inkwell

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortFuncName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "github.com/user/repo/pkg.(*T).Method", want: "pkg.(*T).Method"},
		{in: "main.main", want: "main.main"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, shortFuncName(tt.in))
	}
}

func TestDefaultLoggerName(t *testing.T) {
	assert.True(t, strings.HasPrefix(defaultLoggerName(), "inkwell-"))
}

func TestHashedGoroutineID(t *testing.T) {
	first := hashedGoroutineID()
	second := hashedGoroutineID()
	assert.NotZero(t, first)
	assert.Equal(t, first, second, "the id is stable within one goroutine")

	other := make(chan uint64, 1)
	go func() { other <- hashedGoroutineID() }()
	assert.NotEqual(t, first, <-other)
}

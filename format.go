package inkwell

import (
	"fmt"
	"strconv"
	"time"
)

// Append one value as text. Built-in scalar types convert through strconv
// without reflection; types carrying their own textual form use it; anything
// else falls back to the fmt machinery.
func appendValue(buf []byte, v any) []byte {
	switch x := v.(type) {
	case nil:
		return append(buf, "<nil>"...)
	case string:
		return append(buf, x...)
	case []byte:
		return append(buf, x...)
	case bool:
		return strconv.AppendBool(buf, x)
	case int:
		return strconv.AppendInt(buf, int64(x), 10)
	case int8:
		return strconv.AppendInt(buf, int64(x), 10)
	case int16:
		return strconv.AppendInt(buf, int64(x), 10)
	case int32:
		return strconv.AppendInt(buf, int64(x), 10)
	case int64:
		return strconv.AppendInt(buf, x, 10)
	case uint:
		return strconv.AppendUint(buf, uint64(x), 10)
	case uint8:
		return strconv.AppendUint(buf, uint64(x), 10)
	case uint16:
		return strconv.AppendUint(buf, uint64(x), 10)
	case uint32:
		return strconv.AppendUint(buf, uint64(x), 10)
	case uint64:
		return strconv.AppendUint(buf, x, 10)
	case float32:
		return strconv.AppendFloat(buf, float64(x), 'g', -1, 32)
	case float64:
		return strconv.AppendFloat(buf, x, 'g', -1, 64)
	case time.Duration:
		return append(buf, x.String()...)
	case time.Time:
		return x.AppendFormat(buf, time.RFC3339Nano)
	case error:
		return append(buf, x.Error()...)
	case fmt.Stringer:
		return append(buf, x.String()...)
	default:
		return fmt.Append(buf, v)
	}
}

// Join args separated by single spaces.
func appendArgs(buf []byte, args ...any) []byte {
	for i, a := range args {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = appendValue(buf, a)
	}
	return buf
}

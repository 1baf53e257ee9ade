package inkwell

import (
	"bytes"
	"strconv"
	"strings"
)

// Kinds of compiled render operations.
type opKind uint8

const (
	opLiteral opKind = iota
	opDate
	opLevel
	opName
	opPid
	opTid
	opShortFile
	opFullFile
	opLine
	opFunc
	opMessage
)

// One compiled operation. lit holds the literal text for opLiteral and the
// grouped Go time layout for opDate; a date layout may embed msMarker bytes,
// substituted with the record's millisecond field after the single Format
// call.
type patternOp struct {
	kind opKind
	lit  string
}

// A program is the compiled form of a template string. It is published
// through an atomic pointer, read concurrently by every logging goroutine,
// and never mutated after compilation.
type program struct {
	ops         []patternOp
	needsCaller bool
}

// Placeholder for %e inside a date layout. Go's reference layout never
// contains this byte, so Format passes it through untouched.
const msMarker = '\x01'

// Directive character to Go reference layout fragment.
var dateDirectives = map[byte]string{
	'Y': "2006",
	'm': "01",
	'd': "02",
	'H': "15",
	'M': "04",
	'S': "05",
}

// Reports whether time.Format would echo s unchanged. Digits and the named
// month/weekday/zone/meridiem tokens are reinterpreted by the reference
// layout; everything else passes through.
func layoutSafe(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			return false
		}
	}
	for _, tok := range []string{"Jan", "Mon", "MST", "PM", "pm"} {
		if strings.Contains(s, tok) {
			return false
		}
	}
	return true
}

// Compile a template into a program. An empty template compiles to nil and
// callers fall back to the default prefix. Runs of date/time directives,
// together with the layout-safe literals between them, are grouped into a
// single date operation so rendering costs one Format call per run.
func compile(template string) *program {
	if template == "" {
		return nil
	}

	prog := &program{}
	var lit []byte
	var chunk []byte

	closeChunk := func() {
		if chunk != nil {
			prog.ops = append(prog.ops, patternOp{kind: opDate, lit: string(chunk)})
			chunk = nil
		}
	}
	flushLit := func() {
		if len(lit) > 0 {
			prog.ops = append(prog.ops, patternOp{kind: opLiteral, lit: string(lit)})
			lit = lit[:0]
		}
	}
	// A date fragment joins the open chunk, folding the pending literal in
	// with it when that literal is layout-safe; otherwise the chunk closes
	// and a fresh one starts after the literal.
	joinChunk := func(fragment string) {
		if chunk != nil {
			if len(lit) > 0 && layoutSafe(string(lit)) {
				chunk = append(chunk, lit...)
				lit = lit[:0]
			} else if len(lit) > 0 {
				closeChunk()
				flushLit()
			}
		} else {
			flushLit()
		}
		if chunk == nil {
			chunk = make([]byte, 0, 32)
		}
		chunk = append(chunk, fragment...)
	}
	emit := func(kind opKind) {
		closeChunk()
		flushLit()
		prog.ops = append(prog.ops, patternOp{kind: kind})
	}

	for i := 0; i < len(template); i++ {
		ch := template[i]
		if ch != '%' {
			lit = append(lit, ch)
			continue
		}
		if i+1 >= len(template) {
			lit = append(lit, '%')
			break
		}
		i++
		d := template[i]
		if fragment, ok := dateDirectives[d]; ok {
			joinChunk(fragment)
			continue
		}
		switch d {
		case 'e':
			joinChunk(string(msMarker))
		case 'l', 'L':
			emit(opLevel)
		case 'n':
			emit(opName)
		case 'P':
			emit(opPid)
		case 't':
			emit(opTid)
		case 's':
			emit(opShortFile)
		case 'g':
			emit(opFullFile)
		case '#':
			emit(opLine)
		case '!':
			emit(opFunc)
		case 'v':
			emit(opMessage)
		case '^', '$':
			// Color markers are recognized but inert; coloring is whole-line.
		case '%':
			lit = append(lit, '%')
		default:
			// Unknown directive: kept as a two-character literal candidate.
			// The folding rules above pull it into an adjacent date chunk
			// when that is safe.
			lit = append(lit, '%', d)
		}
	}
	closeChunk()
	flushLit()

	for _, op := range prog.ops {
		switch op.kind {
		case opShortFile, opFullFile, opLine, opFunc:
			prog.needsCaller = true
		}
	}
	return prog
}

// Execute the program against one record, appending the line to s.buf.
// Safe for concurrent use; the program is read-only and all mutable state
// lives in the caller's scratch cell.
func (p *program) render(s *scratch, rec *record) {
	for _, op := range p.ops {
		switch op.kind {
		case opLiteral:
			s.buf = append(s.buf, op.lit...)
		case opDate:
			s.tmp = rec.t.AppendFormat(s.tmp[:0], op.lit)
			if bytes.IndexByte(s.tmp, msMarker) < 0 {
				s.buf = append(s.buf, s.tmp...)
				continue
			}
			for _, b := range s.tmp {
				if b == msMarker {
					s.buf = appendMillis(s.buf, rec.ms)
				} else {
					s.buf = append(s.buf, b)
				}
			}
		case opLevel:
			s.buf = append(s.buf, levelNames[clampLevel(rec.level)]...)
		case opName:
			s.buf = append(s.buf, rec.name...)
		case opPid:
			s.buf = strconv.AppendInt(s.buf, int64(pid), 10)
		case opTid:
			s.buf = strconv.AppendUint(s.buf, hashedGoroutineID(), 10)
		case opShortFile:
			s.buf = append(s.buf, rec.shortFile...)
		case opFullFile:
			s.buf = append(s.buf, rec.fullPath...)
		case opLine:
			s.buf = strconv.AppendInt(s.buf, int64(rec.line), 10)
		case opFunc:
			s.buf = append(s.buf, rec.function...)
		case opMessage:
			s.buf = append(s.buf, rec.msg...)
		}
	}
}

// The fixed layout used when no template is configured:
// "2006-01-02 15:04:05.mmm LEVEL [file.go:42] message".
func renderDefault(s *scratch, rec *record) {
	s.buf = s.appendSecond(s.buf, rec.t)
	s.buf = append(s.buf, '.')
	s.buf = appendMillis(s.buf, rec.ms)
	s.buf = append(s.buf, ' ')
	s.buf = append(s.buf, levelNames[clampLevel(rec.level)]...)
	s.buf = append(s.buf, ' ', '[')
	s.buf = append(s.buf, rec.shortFile...)
	s.buf = append(s.buf, ':')
	s.buf = strconv.AppendInt(s.buf, int64(rec.line), 10)
	s.buf = append(s.buf, ']', ' ')
	s.buf = append(s.buf, rec.msg...)
}

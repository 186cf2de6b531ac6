package jsonfix

import (
	"strings"
	"unicode"
)

// Repair rewrites almost-JSON into JSON. It handles leading and trailing
// prose, comments, single and typographic quotes, unquoted keys and bare
// string values, Python literals, trailing and missing commas, raw control
// characters inside strings, and output truncated mid-document.
func Repair(s string) string {
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return strings.TrimSpace(s)
	}
	r := &repairer{src: []rune(s[start:])}
	r.run()
	return string(r.out)
}

type repairer struct {
	src   []rune
	pos   int
	out   []rune
	stack []rune

	// valueEnded is set after a complete value or key and cleared by , : [ {
	valueEnded bool
}

func (r *repairer) run() {
	for r.pos < len(r.src) {
		c := r.src[r.pos]
		switch {
		case unicode.IsSpace(c):
			r.pos++
		case c == '/' && r.peek(1) == '/':
			r.skipLineComment()
		case c == '/' && r.peek(1) == '*':
			r.skipBlockComment()
		case c == '{' || c == '[':
			r.separate()
			r.out = append(r.out, c)
			r.stack = append(r.stack, c)
			r.valueEnded = false
			r.pos++
		case c == '}' || c == ']':
			r.pos++
			if len(r.stack) == 0 {
				continue
			}
			r.closeTop()
			if len(r.stack) == 0 {
				return
			}
		case c == ',':
			r.trimComma()
			if last := r.lastSignificant(); last != '[' && last != '{' && last != 0 {
				r.out = append(r.out, ',')
			}
			r.valueEnded = false
			r.pos++
		case c == ':':
			r.out = append(r.out, ':')
			r.valueEnded = false
			r.pos++
		case c == '"' || c == '\'' || c == '“' || c == '‘':
			r.separate()
			r.readString(c)
		case c == '-' || c == '.' || unicode.IsDigit(c):
			r.separate()
			r.readNumber()
		case unicode.IsLetter(c) || c == '_' || c == '$':
			r.separate()
			r.readWord()
		default:
			r.pos++
		}
	}
	r.finish()
}

func (r *repairer) peek(n int) rune {
	if r.pos+n < len(r.src) {
		return r.src[r.pos+n]
	}
	return 0
}

// separate inserts a comma between two adjacent values
func (r *repairer) separate() {
	if r.valueEnded {
		r.out = append(r.out, ',')
		r.valueEnded = false
	}
}

func (r *repairer) trimComma() {
	i := len(r.out) - 1
	for i >= 0 && unicode.IsSpace(r.out[i]) {
		i--
	}
	if i >= 0 && r.out[i] == ',' {
		r.out = r.out[:i]
	}
}

func (r *repairer) lastSignificant() rune {
	for i := len(r.out) - 1; i >= 0; i-- {
		if !unicode.IsSpace(r.out[i]) {
			return r.out[i]
		}
	}
	return 0
}

func (r *repairer) closeTop() {
	r.trimComma()
	if r.lastSignificant() == ':' {
		r.out = append(r.out, []rune("null")...)
	}
	top := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	if top == '{' {
		r.out = append(r.out, '}')
	} else {
		r.out = append(r.out, ']')
	}
	r.valueEnded = true
}

func (r *repairer) finish() {
	for len(r.stack) > 0 {
		r.closeTop()
	}
}

func (r *repairer) skipLineComment() {
	for r.pos < len(r.src) && r.src[r.pos] != '\n' {
		r.pos++
	}
}

func (r *repairer) skipBlockComment() {
	r.pos += 2
	for r.pos < len(r.src) {
		if r.src[r.pos] == '*' && r.peek(1) == '/' {
			r.pos += 2
			return
		}
		r.pos++
	}
}

func closingQuote(open rune) func(rune) bool {
	switch open {
	case '“':
		return func(c rune) bool { return c == '”' || c == '"' }
	case '‘':
		return func(c rune) bool { return c == '’' || c == '\'' }
	default:
		return func(c rune) bool { return c == open }
	}
}

func (r *repairer) readString(open rune) {
	closes := closingQuote(open)
	r.pos++
	r.out = append(r.out, '"')
	for r.pos < len(r.src) {
		c := r.src[r.pos]
		switch {
		case c == '\\' && r.pos+1 < len(r.src):
			next := r.src[r.pos+1]
			if next == '\'' {
				r.out = append(r.out, '\'')
			} else {
				r.out = append(r.out, c, next)
			}
			r.pos += 2
			continue
		case closes(c):
			r.pos++
			r.out = append(r.out, '"')
			r.valueEnded = true
			return
		case c == '"':
			r.out = append(r.out, '\\', '"')
		case c == '\n':
			r.out = append(r.out, '\\', 'n')
		case c == '\r':
			r.out = append(r.out, '\\', 'r')
		case c == '\t':
			r.out = append(r.out, '\\', 't')
		default:
			r.out = append(r.out, c)
		}
		r.pos++
	}
	// truncated inside a string
	if n := len(r.out); n > 0 && r.out[n-1] == '\\' {
		r.out = r.out[:n-1]
	}
	r.out = append(r.out, '"')
	r.valueEnded = true
}

func (r *repairer) readNumber() {
	begin := len(r.out)
	for r.pos < len(r.src) {
		c := r.src[r.pos]
		if unicode.IsDigit(c) || strings.ContainsRune("+-.eE", c) {
			r.out = append(r.out, c)
			r.pos++
			continue
		}
		break
	}
	num := string(r.out[begin:])
	if strings.HasPrefix(num, ".") {
		r.out = append(r.out[:begin], append([]rune{'0'}, r.out[begin:]...)...)
	} else if strings.HasSuffix(num, ".") {
		r.out = r.out[:len(r.out)-1]
	}
	r.valueEnded = true
}

var literals = map[string]string{
	"true":  "true",
	"false": "false",
	"null":  "null",
	"True":  "true",
	"False": "false",
	"None":  "null",
}

func (r *repairer) readWord() {
	begin := r.pos
	for r.pos < len(r.src) {
		c := r.src[r.pos]
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' || c == '$' || c == '-' {
			r.pos++
			continue
		}
		break
	}
	word := string(r.src[begin:r.pos])

	if r.nextSignificant() == ':' {
		r.writeQuoted(word)
		return
	}
	if lit, ok := literals[word]; ok {
		r.out = append(r.out, []rune(lit)...)
		r.valueEnded = true
		return
	}

	// bare string value: extend to the next delimiter
	for r.pos < len(r.src) && !strings.ContainsRune(",}]\n", r.src[r.pos]) {
		r.pos++
	}
	r.writeQuoted(strings.TrimSpace(string(r.src[begin:r.pos])))
}

func (r *repairer) nextSignificant() rune {
	for i := r.pos; i < len(r.src); i++ {
		if !unicode.IsSpace(r.src[i]) {
			return r.src[i]
		}
	}
	return 0
}

func (r *repairer) writeQuoted(s string) {
	r.out = append(r.out, '"')
	for _, c := range s {
		if c == '"' || c == '\\' {
			r.out = append(r.out, '\\')
		}
		r.out = append(r.out, c)
	}
	r.out = append(r.out, '"')
	r.valueEnded = true
}

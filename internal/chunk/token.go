package chunk

type tokenKind uint8

const (
	tokenError tokenKind = iota
	tokenString
	tokenNumber
	tokenComma
	tokenColon
	tokenObjectBegin
	tokenObjectEnd
	tokenArrayBegin
	tokenArrayEnd
	tokenFalse
	tokenTrue
)

// token is a view over the input buffer.  It stays valid until the tokenizer
// advances past it; string tokens cover only the content between the quotes.
type token struct {
	off, len int
	kind     tokenKind
}

func skipWhitespace(buf []byte, off int) int {
	for off < len(buf) {
		switch buf[off] {
		case ' ', '\t', '\n', '\r':
			off++
		default:
			return off
		}
	}
	return off
}

func literal(buf []byte, off int, lit string) bool {
	return len(buf)-off >= len(lit) && string(buf[off:off+len(lit)]) == lit
}

// nextToken lexes one token starting at off and returns it with the new
// cursor.  A lexical anomaly yields a tokenError; for broken literals and
// unterminated strings the cursor is forced to the end of the buffer so the
// caller chain unwinds without recovery.
//
// A string's closing quote is overwritten with NUL, making the matched span
// a self-terminated string inside the buffer.  Escaped quotes are not
// handled and end the string early.
func nextToken(buf []byte, off int) (token, int) {
	t := token{off: len(buf), kind: tokenError}
	off = skipWhitespace(buf, off)
	if off == len(buf) {
		return t, off
	}
	switch c := buf[off]; c {
	case '{':
		return token{off, 1, tokenObjectBegin}, off + 1
	case '}':
		return token{off, 1, tokenObjectEnd}, off + 1
	case '[':
		return token{off, 1, tokenArrayBegin}, off + 1
	case ']':
		return token{off, 1, tokenArrayEnd}, off + 1
	case ',':
		return token{off, 1, tokenComma}, off + 1
	case ':':
		return token{off, 1, tokenColon}, off + 1
	case '"':
		start := off + 1
		end := start
		for end < len(buf) && buf[end] != '"' {
			end++
		}
		if end == len(buf) {
			return t, end
		}
		buf[end] = 0
		return token{start, end - start, tokenString}, end + 1
	case 'f':
		if literal(buf, off, "false") {
			return token{off, 5, tokenFalse}, off + 5
		}
		return t, len(buf)
	case 't':
		if literal(buf, off, "true") {
			return token{off, 4, tokenTrue}, off + 4
		}
		return t, len(buf)
	}
	if buf[off] >= '0' && buf[off] <= '9' {
		end := off
		for end < len(buf) && buf[end] >= '0' && buf[end] <= '9' {
			end++
		}
		return token{off, end - off, tokenNumber}, end
	}
	return t, off
}

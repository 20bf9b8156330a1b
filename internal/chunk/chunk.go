package chunk

// Kind classifies a parsed chunk by the value of its "t" field.
type Kind int

const (
	KindUnknown Kind = iota
	KindFeatured
	KindFen
)

// Player holds the extracted fields of one player record.  Both fields are
// NUL-terminated views into the parsed buffer; Rating keeps the digits as
// text since the renderer only ever prints it.
type Player struct {
	Name   []byte
	Rating []byte
}

// Chunk is the output record of a parse.  All views point into the caller's
// buffer and stay valid only until the buffer is reused.  Players is indexed
// by color: 0 is black, 1 is white.
type Chunk struct {
	Kind    Kind
	FEN     []byte
	Players [2]Player
}

// parser threads the cursor through one Parse call.  Failure anywhere sets
// the cursor to the end of the buffer; every subsequent token read then
// reports tokenError and the caller chain unwinds.
type parser struct {
	buf []byte
	off int
}

func (p *parser) next() token {
	t, off := nextToken(p.buf, p.off)
	p.off = off
	return t
}

func (p *parser) fail() {
	p.off = len(p.buf)
}

// key reads a string token and its colon separator and interns the key.
func (p *parser) key() symbol {
	t := p.next()
	if t.kind != tokenString {
		p.fail()
		return symUnknown
	}
	if p.next().kind != tokenColon {
		p.fail()
		return symUnknown
	}
	return internSymbol(p.buf[t.off : t.off+t.len])
}

func (p *parser) str() []byte {
	t := p.next()
	if t.kind != tokenString {
		p.fail()
		return nil
	}
	return p.buf[t.off : t.off+t.len]
}

func (p *parser) number() token {
	t := p.next()
	if t.kind != tokenNumber {
		p.fail()
		return token{kind: tokenError}
	}
	return t
}

// enum reads a string value and interns it against the known vocabulary.
func (p *parser) enum() symbol {
	t := p.next()
	if t.kind != tokenString {
		p.fail()
		return symUnknown
	}
	return internSymbol(p.buf[t.off : t.off+t.len])
}

// skipValue consumes exactly one scalar value.  Object or array values under
// unrecognized keys are out of scope for the feed schema and fail the parse.
func (p *parser) skipValue() {
	switch p.next().kind {
	case tokenFalse, tokenTrue, tokenString, tokenNumber:
	default:
		p.fail()
	}
}

// terminateNumber NUL-terminates a number token in place and returns its
// view.  The byte after the digits is a structural delimiter already
// consumed by the time this runs, so it is free to carry the terminator.
func (p *parser) terminateNumber(t token) []byte {
	if t.kind != tokenNumber {
		return nil
	}
	p.buf[t.off+t.len] = 0
	return p.buf[t.off : t.off+t.len]
}

// player parses one player object into the slot picked by its "color"
// field.  A player without a recognized color is fatally malformed.  If the
// stream repeats a color the later object wins the slot; the feed never
// does this, and the parser does not guard against it.
func (p *parser) player(players *[2]Player) bool {
	idx := -1
	var name []byte
	var rating token

	if p.next().kind != tokenObjectBegin {
		p.fail()
		return false
	}
	for {
		switch p.key() {
		case symColor:
			switch p.enum() {
			case symBlack:
				idx = 0
			case symWhite:
				idx = 1
			}
		case symUser:
			if p.next().kind != tokenObjectBegin {
				p.fail()
				return false
			}
			for done := false; !done; {
				switch p.key() {
				case symName:
					name = p.str()
				default:
					p.skipValue()
				}
				switch p.next().kind {
				case tokenObjectEnd:
					done = true
				case tokenComma:
				default:
					p.fail()
					return false
				}
			}
		case symRating:
			rating = p.number()
		default:
			p.skipValue()
		}

		switch p.next().kind {
		case tokenObjectEnd:
			if idx < 0 {
				p.fail()
				return false
			}
			players[idx].Name = name
			players[idx].Rating = p.terminateNumber(rating)
			return true
		case tokenComma:
		default:
			p.fail()
			return false
		}
	}
}

// data parses the "d" payload object: the position string and, when
// present, the players array, which must hold exactly two player objects.
func (p *parser) data(c *Chunk) bool {
	if p.next().kind != tokenObjectBegin {
		p.fail()
		return false
	}
	for {
		switch p.key() {
		case symFen:
			c.FEN = p.str()
		case symPlayers:
			if p.next().kind != tokenArrayBegin {
				p.fail()
				return false
			}
			if !p.player(&c.Players) {
				return false
			}
			if p.next().kind != tokenComma {
				p.fail()
				return false
			}
			if !p.player(&c.Players) {
				return false
			}
			if p.next().kind != tokenArrayEnd {
				p.fail()
				return false
			}
		default:
			p.skipValue()
		}

		switch p.next().kind {
		case tokenObjectEnd:
			return true
		case tokenComma:
		default:
			p.fail()
			return false
		}
	}
}

// Parse extracts the renderer's fields from one complete JSON chunk held in
// buf, populating c.  It mutates buf in place to NUL-terminate string and
// number values; the views in c alias buf and are invalidated when buf is
// reused.  The result is strictly all-or-nothing: false means the chunk is
// malformed (lexically, structurally, or against the feed schema) and c
// must be ignored.
func Parse(buf []byte, c *Chunk) bool {
	p := parser{buf: buf}
	if p.next().kind != tokenObjectBegin {
		return false
	}
	for {
		switch p.key() {
		case symT:
			switch p.enum() {
			case symFeatured:
				c.Kind = KindFeatured
			case symFen:
				c.Kind = KindFen
			default:
				// An unrecognized event type is fatal, unlike an
				// unrecognized key.
				return false
			}
		case symD:
			if !p.data(c) {
				return false
			}
		default:
			p.skipValue()
		}

		switch p.next().kind {
		case tokenObjectEnd:
			return true
		case tokenComma:
		default:
			return false
		}
	}
}

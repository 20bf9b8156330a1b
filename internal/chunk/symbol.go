package chunk

// symbol is an interned identifier for a recognized JSON key (or enum-like
// string value).  The numbering matches the slot each key hashes to in
// symbolTable, so interning is a single table probe plus one verifying
// comparison.
type symbol uint8

const (
	symD symbol = iota
	symT
	symFeatured
	symUser
	symRating
	symBlack
	symColor
	symFen
	symWhite
	symPlayers
	symName
	symUnknown
)

// symbolPool packs the recognized keys back to back; symbolTable entries are
// (offset, length) pairs into it.  The five empty slots have length zero and
// can never verify against a real key.
const symbolPool = "dtfeatureduserratingblackcolorfenwhiteplayersname"

var symbolTable = [16]struct{ off, len uint8 }{
	{0, 1}, {1, 1}, {2, 8}, {10, 4}, {14, 6}, {20, 5},
	{25, 5}, {30, 3}, {33, 5}, {38, 7}, {45, 4},
}

// internSymbol maps a lexed key to its symbol.  The first four bytes (zero
// padded) combine into a 32-bit value whose multiplicative hash picks the
// table slot; the hash only routes, the length and byte comparison against
// the pool decides.  A near-miss like "ratingx" routes to the "rating" slot
// and is rejected there, so collisions can never produce a wrong symbol.
func internSymbol(key []byte) symbol {
	var tmp [4]byte
	copy(tmp[:], key)
	h := uint32(tmp[3])<<24 | uint32(tmp[2])<<16 | uint32(tmp[1])<<8 | uint32(tmp[0])
	i := h * 2367153 >> 28 & 15
	e := symbolTable[i]
	if int(e.len) == len(key) && symbolPool[e.off:e.off+e.len] == string(key) {
		return symbol(i)
	}
	return symUnknown
}

// Package fen expands the piece-placement field of a Forsyth-Edwards
// Notation position into a fixed 8x8 board for the renderer.  The rest of
// the FEN record (side to move, castling rights, clocks) is opaque to the
// viewer and ignored.
package fen

// Board holds one cell per square, row-major with rank 8 first, so cell
// row*8+col matches the order the board is drawn in.  Piece cells keep
// their FEN letter, empty cells hold a space.
type Board [64]byte

func isPiece(c byte) bool {
	switch c {
	case 'p', 'n', 'b', 'r', 'q', 'k', 'P', 'N', 'B', 'R', 'Q', 'K':
		return true
	}
	return false
}

// Parse expands the piece-placement field of fen into a Board.  The
// placement must describe exactly eight ranks of eight squares; on any
// violation ok is false and the board must be ignored.
func Parse(fen []byte) (Board, bool) {
	var b Board
	for i := range b {
		b[i] = ' '
	}

	row, col := 0, 0
	for i := 0; i < len(fen); i++ {
		switch c := fen[i]; {
		case c == ' ':
			return b, row == 7 && col == 8
		case c == '/':
			if col != 8 || row == 7 {
				return b, false
			}
			row++
			col = 0
		case c >= '1' && c <= '8':
			if col += int(c - '0'); col > 8 {
				return b, false
			}
		case isPiece(c):
			if col == 8 {
				return b, false
			}
			b[row*8+col] = c
			col++
		default:
			return b, false
		}
	}
	return b, row == 7 && col == 8
}

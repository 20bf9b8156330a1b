// Package render draws the board and player info with tcell.  Cell colors,
// piece glyphs, and layout follow the feed viewer's classic look: a centered
// 8x8 board two terminal cells wide per square, coordinates along the left
// and bottom edges, and one player line above and below the board.
package render

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"chesstv/internal/chunk"
	"chesstv/internal/fen"
)

var (
	pieceBlack = tcell.NewRGBColor(18, 19, 24)
	pieceWhite = tcell.NewRGBColor(255, 255, 255)
	cellLight  = tcell.NewRGBColor(130, 139, 184)
	cellDark   = tcell.NewRGBColor(66, 71, 94)
)

var (
	styleBlackOnLight = tcell.StyleDefault.Foreground(pieceBlack).Background(cellLight)
	styleBlackOnDark  = tcell.StyleDefault.Foreground(pieceBlack).Background(cellDark)
	styleWhiteOnLight = tcell.StyleDefault.Foreground(pieceWhite).Background(cellLight)
	styleWhiteOnDark  = tcell.StyleDefault.Foreground(pieceWhite).Background(cellDark)
	styleCoord        = tcell.StyleDefault.Foreground(cellDark)
	styleText         = tcell.StyleDefault.Foreground(cellLight)
	styleIconBlack    = tcell.StyleDefault.Foreground(pieceBlack)
	styleIconWhite    = tcell.StyleDefault.Foreground(pieceWhite)
)

func pieceGlyph(c byte) rune {
	switch c {
	case 'p', 'P':
		return '♟'
	case 'n', 'N':
		return '♞'
	case 'b', 'B':
		return '♝'
	case 'r', 'R':
		return '♜'
	case 'q', 'Q':
		return '♛'
	case 'k', 'K':
		return '♚'
	}
	return ' '
}

// Renderer owns the terminal screen.  It is safe to draw from the feed
// goroutine while the event goroutine polls, since tcell serializes screen
// access internally.
type Renderer struct {
	screen  tcell.Screen
	offsetX int
	offsetY int
}

func New() (*Renderer, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("render: creating screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("render: initializing screen: %w", err)
	}
	return NewWithScreen(s), nil
}

// NewWithScreen wraps an already-initialized screen; tests use it with
// tcell's SimulationScreen.
func NewWithScreen(s tcell.Screen) *Renderer {
	s.HideCursor()
	r := &Renderer{screen: s}
	r.Layout()
	return r
}

// Layout recenters the board; call it again after a resize event.
func (r *Renderer) Layout() {
	w, h := r.screen.Size()
	r.offsetX = w/2 - 10
	r.offsetY = h/2 - 6
	if r.offsetX < 0 {
		r.offsetX = 0
	}
	if r.offsetY < 4 {
		r.offsetY = 4
	}
}

// DrawBoard paints the coordinates and all 64 squares.
func (r *Renderer) DrawBoard(b fen.Board) {
	for i := 0; i < 8; i++ {
		r.screen.SetContent(r.offsetX, r.offsetY+i, rune('8'-i), nil, styleCoord)
		r.screen.SetContent(r.offsetX+i*2+2, r.offsetY+8, rune('a'+i), nil, styleCoord)
	}

	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			cell := b[row*8+col]
			light := (row+col)%2 == 0

			var style tcell.Style
			if cell >= 'a' && cell <= 'z' {
				if light {
					style = styleBlackOnLight
				} else {
					style = styleBlackOnDark
				}
			} else {
				if light {
					style = styleWhiteOnLight
				} else {
					style = styleWhiteOnDark
				}
			}

			x := r.offsetX + col*2 + 2
			y := r.offsetY + row
			r.screen.SetContent(x, y, pieceGlyph(cell), nil, style)
			r.screen.SetContent(x+1, y, ' ', nil, style)
		}
	}
}

// DrawPlayers writes "● name rating" for black above the board and white
// below it.  Unpopulated fields draw as nothing.
func (r *Renderer) DrawPlayers(players *[2]chunk.Player) {
	r.drawPlayer(r.offsetY-2, styleIconBlack, players[0])
	r.drawPlayer(r.offsetY+10, styleIconWhite, players[1])
}

func (r *Renderer) drawPlayer(y int, icon tcell.Style, p chunk.Player) {
	r.screen.SetContent(r.offsetX, y, '●', nil, icon)
	x := r.print(r.offsetX+2, y, styleText, string(p.Name))
	if len(p.Rating) > 0 {
		r.print(x, y, styleCoord, " "+string(p.Rating))
	}
}

func (r *Renderer) print(x, y int, style tcell.Style, s string) int {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}

// Events delivers key and resize events until ctx is canceled.
func (r *Renderer) Events(ctx context.Context) <-chan tcell.Event {
	ch := make(chan tcell.Event, 8)
	go r.screen.ChannelEvents(ch, ctx.Done())
	return ch
}

func (r *Renderer) Clear() { r.screen.Clear() }
func (r *Renderer) Show()  { r.screen.Show() }
func (r *Renderer) Sync()  { r.screen.Sync() }
func (r *Renderer) Fini()  { r.screen.Fini() }

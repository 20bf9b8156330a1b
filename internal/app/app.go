// Package app wires the feed, the chunk parser, the board, and the renderer
// into the viewer's single-threaded update loop.
package app

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"chesstv/internal/bootstrap"
	"chesstv/internal/chunk"
	"chesstv/internal/feed"
	"chesstv/internal/fen"
	"chesstv/internal/render"
)

// update carries one chunk buffer from the feed goroutine into the loop.
// The feed owns the buffer again once done is closed, so applying the
// update must finish before then.
type update struct {
	buf  []byte
	done chan struct{}
}

type viewer struct {
	r     *render.Renderer
	log   *zap.SugaredLogger
	board fen.Board
}

// Run blocks until ctx is canceled or the user quits.  All chunk handling
// happens on this goroutine; the feed and the terminal event pump only feed
// the select loop.
func Run(ctx context.Context, cfg *bootstrap.Config, log *zap.SugaredLogger) error {
	r, err := render.New()
	if err != nil {
		return err
	}
	defer r.Fini()

	return run(ctx, cfg, log, r)
}

func run(ctx context.Context, cfg *bootstrap.Config, log *zap.SugaredLogger, r *render.Renderer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	updates := make(chan update)
	client, err := feed.NewClient(cfg.FeedURL, log, func(buf []byte) {
		u := update{buf: buf, done: make(chan struct{})}
		select {
		case updates <- u:
			<-u.done
		case <-ctx.Done():
		}
	})
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}

	feedErr := make(chan error, 1)
	go func() { feedErr <- client.Run(ctx) }()

	v := &viewer{r: r, log: log}
	for i := range v.board {
		v.board[i] = ' '
	}
	v.r.DrawBoard(v.board)
	v.r.Show()

	events := r.Events(ctx)
	for {
		select {
		case u := <-updates:
			v.apply(u.buf)
			close(u.done)
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				r.Layout()
				r.Clear()
				v.r.DrawBoard(v.board)
				r.Sync()
			case *tcell.EventKey:
				if quitKey(ev) {
					cancel()
					return <-feedErr
				}
			}
		case err := <-feedErr:
			return err
		}
	}
}

// apply is the per-chunk pipeline: parse, track the board, redraw.  A
// malformed chunk is dropped; the stream's next update supersedes it anyway.
func (v *viewer) apply(buf []byte) {
	var c chunk.Chunk
	if !chunk.Parse(buf, &c) {
		v.log.Debugw("dropping malformed chunk", "size", len(buf))
		return
	}

	if c.Kind == chunk.KindFeatured {
		v.r.Clear()
		v.r.DrawPlayers(&c.Players)
	}
	if c.FEN != nil {
		if b, ok := fen.Parse(c.FEN); ok {
			v.board = b
		} else {
			v.log.Debugw("dropping unparseable position", "fen", string(c.FEN))
		}
	}
	v.r.DrawBoard(v.board)
	v.r.Show()
}

func quitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

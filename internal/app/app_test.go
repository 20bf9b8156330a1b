package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chesstv/internal/bootstrap"
	"chesstv/internal/render"
)

func newTestViewer(t *testing.T) (*viewer, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(80, 24)
	r := render.NewWithScreen(s)
	t.Cleanup(r.Fini)

	v := &viewer{r: r, log: zap.NewNop().Sugar()}
	for i := range v.board {
		v.board[i] = ' '
	}
	return v, s
}

func runeAt(s tcell.SimulationScreen, x, y int) rune {
	ch, _, _, _ := s.GetContent(x, y)
	return ch
}

func TestApplyFeaturedChunk(t *testing.T) {
	v, s := newTestViewer(t)

	buf := []byte(`{"t":"featured","d":{"fen":"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1","players":[{"color":"black","user":{"name":"Magnus"},"rating":2900},{"color":"white","user":{"name":"Hikaru"},"rating":2800}]}}`)
	v.apply(buf)

	// Player info and the board are both on screen.
	assert.Equal(t, 'M', runeAt(s, 32, 4))
	assert.Equal(t, 'H', runeAt(s, 32, 16))
	assert.Equal(t, '♜', runeAt(s, 32, 6))
}

func TestApplyFenChunkKeepsPlayers(t *testing.T) {
	v, s := newTestViewer(t)

	v.apply([]byte(`{"t":"featured","d":{"fen":"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1","players":[{"color":"black","user":{"name":"Magnus"},"rating":2900},{"color":"white","user":{"name":"Hikaru"},"rating":2800}]}}`))
	v.apply([]byte(`{"t":"fen","d":{"fen":"8/8/8/8/8/8/8/8 w - - 0 1"}}`))

	// The board was replaced, the player lines were not cleared.
	assert.Equal(t, ' ', runeAt(s, 32, 6))
	assert.Equal(t, 'M', runeAt(s, 32, 4))
}

func TestApplyMalformedChunkChangesNothing(t *testing.T) {
	v, s := newTestViewer(t)

	v.apply([]byte(`{"t":"fen","d":{"fen":"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"}}`))
	require.Equal(t, '♜', runeAt(s, 32, 6))

	v.apply([]byte(`{"t":"endGame"}`))
	assert.Equal(t, '♜', runeAt(s, 32, 6))
}

func TestApplyUnparseablePositionKeepsBoard(t *testing.T) {
	v, s := newTestViewer(t)

	v.apply([]byte(`{"t":"fen","d":{"fen":"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"}}`))
	v.apply([]byte(`{"t":"fen","d":{"fen":"totally/not/a/position"}}`))

	assert.Equal(t, '♜', runeAt(s, 32, 6))
}

func TestRunDrawsFromFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fl := w.(http.Flusher)
		w.Write([]byte(`{"t":"fen","d":{"fen":"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"}}` + "\n"))
		fl.Flush()
		<-r.Context().Done()
	}))
	defer srv.Close()

	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(80, 24)
	r := render.NewWithScreen(s)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- run(ctx, &bootstrap.Config{FeedURL: srv.URL}, zap.NewNop().Sugar(), r)
	}()

	require.Eventually(t, func() bool {
		return runeAt(s, 32, 6) == '♜'
	}, 3*time.Second, 10*time.Millisecond, "board never drawn from feed")

	cancel()
	err := <-done
	assert.ErrorIs(t, err, context.Canceled)
	r.Fini()
}

func TestQuitKeys(t *testing.T) {
	t.Parallel()

	quit := []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModNone),
	}
	for _, ev := range quit {
		assert.True(t, quitKey(ev), "key %v should quit", ev.Key())
	}

	stay := []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone),
	}
	for _, ev := range stay {
		assert.False(t, quitKey(ev), "key %v should not quit", ev.Key())
	}
}

// Package feed maintains the connection to the broadcast event stream and
// delivers complete chunk buffers, one JSON object each, to a handler.  It
// knows nothing about the chunk contents; reassembly and reconnection are
// its whole job.
package feed

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handler receives one complete chunk buffer per event.  The handler owns
// the buffer only until it returns: the parser mutates it in place and the
// transport reuses it for the next event.
type Handler func(buf []byte)

const (
	// maxChunkSize caps a single event; the feed's events are a few hundred
	// bytes, so anything near this is garbage.
	maxChunkSize = 1 << 20

	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second

	// A connection that survived this long resets the backoff.
	healthyAfter = time.Minute
)

var errStreamEnded = errors.New("stream ended")

// Client consumes a broadcast stream over ndjson HTTP (http/https URLs) or
// websocket (ws/wss URLs).
type Client struct {
	url     *url.URL
	log     *zap.SugaredLogger
	handler Handler
	httpc   *http.Client
	dialer  *websocket.Dialer
}

func NewClient(rawURL string, log *zap.SugaredLogger, h Handler) (*Client, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("feed: parsing url: %w", err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return nil, fmt.Errorf("feed: unsupported scheme %q", u.Scheme)
	}
	return &Client{
		url:     u,
		log:     log,
		handler: h,
		httpc:   &http.Client{},
		dialer:  websocket.DefaultDialer,
	}, nil
}

// Run consumes the stream until ctx is canceled, reconnecting after any
// connection error with capped exponential backoff.  It returns ctx.Err()
// on cancellation and nothing else ends it.
func (c *Client) Run(ctx context.Context) error {
	backoff := initialBackoff
	for {
		start := time.Now()
		err := c.consume(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if time.Since(start) >= healthyAfter {
			backoff = initialBackoff
		}
		c.log.Warnw("feed disconnected", "error", err, "retry_in", backoff)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		if backoff *= 2; backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}

func (c *Client) consume(ctx context.Context) error {
	if c.url.Scheme == "ws" || c.url.Scheme == "wss" {
		return c.consumeWebsocket(ctx)
	}
	return c.consumeNDJSON(ctx)
}

// consumeNDJSON streams one JSON object per line from an HTTP response
// body, the shape the Lichess TV feed uses.
func (c *Client) consumeNDJSON(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url.String(), nil)
	if err != nil {
		return fmt.Errorf("feed: building request: %w", err)
	}
	req.Header.Set("Accept", "application/x-ndjson")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("feed: connecting: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("feed: unexpected status %s", resp.Status)
	}
	c.log.Infow("feed connected", "url", c.url.String(), "transport", "ndjson")

	sc := bufio.NewScanner(resp.Body)
	sc.Buffer(make([]byte, 64*1024), maxChunkSize)
	for sc.Scan() {
		line := sc.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		c.handler(line)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("feed: reading stream: %w", err)
	}
	return errStreamEnded
}

// consumeWebsocket reads one chunk per text message.
func (c *Client) consumeWebsocket(ctx context.Context) error {
	conn, _, err := c.dialer.DialContext(ctx, c.url.String(), nil)
	if err != nil {
		return fmt.Errorf("feed: dialing: %w", err)
	}
	defer conn.Close()
	c.log.Infow("feed connected", "url", c.url.String(), "transport", "websocket")

	// ReadMessage has no context support; close the connection from the
	// side to unblock it on cancellation.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		kind, msg, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("feed: reading message: %w", err)
		}
		if kind != websocket.TextMessage {
			continue
		}
		c.handler(msg)
	}
}

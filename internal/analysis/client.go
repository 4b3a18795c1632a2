package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"CalmBoard/internal/state"
)

const maxResponseSize = 1 << 20

// Client submits drawings to the analysis service. http(s) endpoints get a
// JSON POST; ws(s) endpoints get one request message and one reply message.
type Client struct {
	endpoint *url.URL
	http     *http.Client
	dialer   *websocket.Dialer
	clock    state.Clock
	timeout  time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithDialer replaces websocket.DefaultDialer.
func WithDialer(d *websocket.Dialer) Option {
	return func(c *Client) { c.dialer = d }
}

// WithClock sets the time source used for payload timestamps.
func WithClock(clock state.Clock) Option {
	return func(c *Client) { c.clock = clock }
}

// WithTimeout bounds each exchange. Zero leaves timing to the transport.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New creates a client for the given endpoint.
func New(endpoint string, opts ...Option) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse analysis endpoint: %w", err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return nil, fmt.Errorf("unsupported analysis endpoint scheme %q", u.Scheme)
	}
	c := &Client{
		endpoint: u,
		http:     http.DefaultClient,
		dialer:   websocket.DefaultDialer,
		clock:    state.SystemClock,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the configured analysis URL.
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

func (c *Client) isWebSocket() bool {
	return c.endpoint.Scheme == "ws" || c.endpoint.Scheme == "wss"
}

// Analyze submits the snapshot and returns the service's feedback. An empty
// drawing fails with ErrEmptyDrawing before anything is sent. The call never
// retries.
func (c *Client) Analyze(ctx context.Context, snap state.Snapshot) (Feedback, error) {
	if snap.Empty() {
		return Feedback{}, ErrEmptyDrawing
	}
	body, err := json.Marshal(NewPayload(snap, c.clock.Now()))
	if err != nil {
		return Feedback{}, transportError("encode payload", err)
	}

	requestID := uuid.NewString()
	log.Printf("[ANALYZE] Submitting %d strokes, %d colors to %s (request %s)",
		len(snap.Samples), len(snap.Colors), c.endpoint.Redacted(), requestID)

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var data []byte
	if c.isWebSocket() {
		data, err = c.exchangeWS(ctx, body, requestID)
	} else {
		data, err = c.post(ctx, c.endpoint.String(), body, requestID)
	}
	if err != nil {
		log.Printf("[ANALYZE] Request %s failed: %v", requestID, err)
		return Feedback{}, err
	}

	resp, err := decodeResponse(data)
	if err != nil {
		log.Printf("[ANALYZE] Request %s failed: %v", requestID, err)
		return Feedback{}, err
	}
	if resp.Feedback == nil {
		return Feedback{}, transportError("response has no feedback", nil)
	}
	log.Printf("[ANALYZE] Request %s succeeded", requestID)
	return *resp.Feedback, nil
}

// Save asks the service to acknowledge the drawing. It returns the service's message.
func (c *Client) Save(ctx context.Context, snap state.Snapshot) (string, error) {
	if snap.Empty() {
		return "", ErrEmptyDrawing
	}
	body, err := json.Marshal(NewPayload(snap, c.clock.Now()))
	if err != nil {
		return "", transportError("encode payload", err)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	data, err := c.post(ctx, c.saveURL(), body, uuid.NewString())
	if err != nil {
		return "", err
	}
	resp, err := decodeResponse(data)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) saveURL() string {
	u := c.endpoint.ResolveReference(&url.URL{Path: "/save-drawing"})
	switch u.Scheme {
	case "ws":
		u.Scheme = "http"
	case "wss":
		u.Scheme = "https"
	}
	return u.String()
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

func (c *Client) post(ctx context.Context, target string, body []byte, requestID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return nil, transportError("build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, transportError("send request", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, transportError("read response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reason := fmt.Sprintf("status %d", resp.StatusCode)
		var r Response
		if json.Unmarshal(data, &r) == nil && r.Error != "" {
			reason = fmt.Sprintf("%s (%s)", reason, r.Error)
		}
		return nil, transportError(reason, nil)
	}
	return data, nil
}

func (c *Client) exchangeWS(ctx context.Context, body []byte, requestID string) ([]byte, error) {
	header := http.Header{}
	header.Set("X-Request-ID", requestID)
	conn, resp, err := c.dialer.DialContext(ctx, c.endpoint.String(), header)
	if err != nil {
		if resp != nil {
			return nil, transportError(fmt.Sprintf("dial status %d", resp.StatusCode), err)
		}
		return nil, transportError("dial", err)
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	conn.SetReadLimit(maxResponseSize)
	if err := conn.WriteMessage(websocket.TextMessage, body); err != nil {
		return nil, transportError("write message", err)
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		return nil, transportError("read message", err)
	}
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return data, nil
}

func decodeResponse(data []byte) (Response, error) {
	var r Response
	if err := json.Unmarshal(data, &r); err != nil {
		return Response{}, transportError("malformed response", err)
	}
	if !r.Success {
		return Response{}, &Error{Kind: KindRejected, Reason: r.Error}
	}
	return r, nil
}

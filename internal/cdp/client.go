// Package cdp is a minimal Chrome DevTools Protocol client: endpoint
// discovery over HTTP plus a synchronous, id-correlated command channel over
// a WebSocket. It speaks only the handful of Target/Runtime methods the
// watcher needs.
package cdp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// ErrAttachFailed means Target.attachToTarget answered without a session id,
// typically because the page navigated away or closed mid-attach.
var ErrAttachFailed = errors.New("attach returned no session id")

// Client owns the WebSocket connection and the request-id counter. It issues
// one command at a time and is not safe for concurrent use; the poll loop is
// strictly sequential so nothing else ever holds it.
type Client struct {
	conn    *websocket.Conn
	timeout time.Duration
	nextID  int
}

// Dial opens the debugger channel. timeout bounds the handshake and becomes
// the per-command read deadline; zero disables deadlines entirely, restoring
// the indefinite-blocking behavior of the simplest possible client.
func Dial(ctx context.Context, wsURL string, timeout time.Duration) (*Client, error) {
	dialCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, wsURL, nil)
	if err != nil {
		return nil, &ConnectionError{Endpoint: wsURL, Err: err}
	}
	return &Client{conn: conn, timeout: timeout}, nil
}

// Close releases the channel. Close errors are swallowed; by the time we
// close, the run is over either way.
func (c *Client) Close() {
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// Call sends {id, method, params?, sessionId?} and blocks until the response
// with the matching id arrives. Inbound protocol events and responses to
// other ids are skipped; with one command in flight at a time there is never
// another waiter to deliver them to.
func (c *Client) Call(method string, params any, sessionID string) (json.RawMessage, error) {
	c.nextID++
	id := c.nextID

	cmd := command{ID: id, Method: method, Params: params, SessionID: sessionID}
	if err := c.conn.WriteJSON(cmd); err != nil {
		return nil, &ConnectionError{Endpoint: c.conn.RemoteAddr().String(), Err: err}
	}

	if c.timeout > 0 {
		_ = c.conn.SetReadDeadline(time.Now().Add(c.timeout))
	}
	for {
		var msg message
		if err := c.conn.ReadJSON(&msg); err != nil {
			return nil, &ConnectionError{Endpoint: c.conn.RemoteAddr().String(), Err: err}
		}
		if msg.ID != id {
			continue
		}
		if msg.Error != nil {
			return nil, &ProtocolError{Method: method, Err: msg.Error}
		}
		return msg.Result, nil
	}
}

// ListTargets returns every debuggable surface the browser currently exposes.
func (c *Client) ListTargets() ([]Target, error) {
	raw, err := c.Call("Target.getTargets", nil, "")
	if err != nil {
		return nil, err
	}
	var result struct {
		TargetInfos []Target `json:"targetInfos"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &ProtocolError{Method: "Target.getTargets", Err: err}
	}
	return result.TargetInfos, nil
}

// AttachToTarget opens a flattened session against one target and returns
// the session id scoping all further commands.
func (c *Client) AttachToTarget(targetID string) (string, error) {
	raw, err := c.Call("Target.attachToTarget", map[string]any{
		"targetId": targetID,
		"flatten":  true,
	}, "")
	if err != nil {
		return "", err
	}
	var result struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", &ProtocolError{Method: "Target.attachToTarget", Err: err}
	}
	if result.SessionID == "" {
		return "", ErrAttachFailed
	}
	return result.SessionID, nil
}

// EnableRuntime turns on the Runtime domain for a session, a prerequisite
// for Runtime.evaluate.
func (c *Client) EnableRuntime(sessionID string) error {
	_, err := c.Call("Runtime.enable", nil, sessionID)
	return err
}

// Evaluate runs expression in the session's page context with
// returnByValue=true and returns the resulting string value. A non-string
// result is rendered with fmt; the extraction script always returns a
// string, so that path only fires against a misbehaving page.
func (c *Client) Evaluate(sessionID, expression string) (string, error) {
	raw, err := c.Call("Runtime.evaluate", map[string]any{
		"expression":    expression,
		"returnByValue": true,
	}, sessionID)
	if err != nil {
		return "", err
	}
	var result struct {
		Result struct {
			Type  string `json:"type"`
			Value any    `json:"value"`
		} `json:"result"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", &ProtocolError{Method: "Runtime.evaluate", Err: err}
	}
	switch v := result.Result.Value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return fmt.Sprint(v), nil
	}
}

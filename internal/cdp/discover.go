package cdp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// ErrNoWebSocketURL means /json/version answered but did not expose a
// debugger channel, usually because the app was launched without
// --remote-debugging-port.
var ErrNoWebSocketURL = errors.New("webSocketDebuggerUrl missing from version info")

type versionInfo struct {
	Browser              string `json:"Browser"`
	WebSocketDebuggerURL string `json:"webSocketDebuggerUrl"`
}

// DiscoverWebSocketURL fetches <baseURL>/json/version and returns the
// browser-level WebSocket debugger URL. Any failure, including an absent
// locator field, is reported as a ConnectionError.
func DiscoverWebSocketURL(ctx context.Context, baseURL string) (string, error) {
	endpoint := baseURL + "/json/version"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", &ConnectionError{Endpoint: endpoint, Err: err}
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", &ConnectionError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &ConnectionError{Endpoint: endpoint, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	var info versionInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", &ConnectionError{Endpoint: endpoint, Err: err}
	}
	if info.WebSocketDebuggerURL == "" {
		return "", &ConnectionError{Endpoint: endpoint, Err: ErrNoWebSocketURL}
	}
	return info.WebSocketDebuggerURL, nil
}

// DebugBaseURL builds the local discovery base for a remote-debugging port.
func DebugBaseURL(port int) string {
	return fmt.Sprintf("http://127.0.0.1:%d", port)
}

// IsPortOpen probes host:port with a short TCP connect. Used to decide
// whether the app needs to be launched first.
func IsPortOpen(host string, port int, timeout time.Duration) bool {
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, fmt.Sprintf("%d", port)), timeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

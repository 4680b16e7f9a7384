package cdp

import (
	"encoding/json"
	"fmt"
)

// Target describes a debuggable surface reported by Target.getTargets: a
// page, an extension background page, a devtools panel, etc.
type Target struct {
	TargetID string `json:"targetId"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Attached bool   `json:"attached"`
}

// command is the wire shape of a request: {id, method, params?, sessionId?}.
type command struct {
	ID        int    `json:"id"`
	Method    string `json:"method"`
	Params    any    `json:"params,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
}

// message is the wire shape of anything inbound. Responses carry an id;
// protocol events carry a method instead and are skipped by Call.
type message struct {
	ID        int             `json:"id"`
	Method    string          `json:"method,omitempty"`
	Result    json.RawMessage `json:"result,omitempty"`
	Error     *CommandError   `json:"error,omitempty"`
	SessionID string          `json:"sessionId,omitempty"`
}

// CommandError is the error member of a response envelope.
type CommandError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("cdp error %d: %s", e.Code, e.Message)
}

// ConnectionError covers an unreachable endpoint or a malformed discovery
// response. It is always fatal for the run.
type ConnectionError struct {
	Endpoint string
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cdp: cannot connect to %s: %v", e.Endpoint, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ProtocolError covers a response the peer answered but that we cannot use:
// a CDP-level error member or an unexpected result shape.
type ProtocolError struct {
	Method string
	Err    error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("cdp: %s failed: %v", e.Method, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

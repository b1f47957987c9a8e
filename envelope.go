// SPDX-License-Identifier: GPL-3.0-or-later

package dockrpc

import "encoding/json"

// EnvelopeType enumerates the six wire envelope types (§3).
type EnvelopeType string

const (
	EnvelopeHandshake   EnvelopeType = "handshake"
	EnvelopeRPCRequest  EnvelopeType = "rpc-request"
	EnvelopeRPCResponse EnvelopeType = "rpc-response"
	EnvelopeRPCEvent    EnvelopeType = "rpc-event"
	EnvelopeRegister    EnvelopeType = "register"
	EnvelopeUnregister  EnvelopeType = "unregister"
)

// knownEnvelopeTypes backs [Codec.Decode]'s unknown-type check (§4.2).
var knownEnvelopeTypes = map[EnvelopeType]bool{
	EnvelopeHandshake:   true,
	EnvelopeRPCRequest:  true,
	EnvelopeRPCResponse: true,
	EnvelopeRPCEvent:    true,
	EnvelopeRegister:    true,
	EnvelopeUnregister:  true,
}

// Envelope is the unit on the wire (§3, §6).
//
// Field declaration order is the JSON encoding order: [encoding/json]
// marshals struct fields in declaration order, which is how the codec
// achieves byte-identical output for identical input without an ordered-map
// encoder.
//
// Type and AppID never change after construction; ID is unique within a
// session.
type Envelope struct {
	Type      EnvelopeType    `json:"type"`
	AppID     string          `json:"appId"`
	ID        string          `json:"id"`
	Timestamp uint64          `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// HandshakePayload is the payload of a `handshake` envelope (§3).
type HandshakePayload struct {
	Step int `json:"step"`
}

// RPCRequestPayload is the payload of an `rpc-request` envelope (§3).
type RPCRequestPayload struct {
	ID     string            `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// RPCError is the `error` field of an `rpc-response` payload when
// HasError is true (§3).
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// RPCResponsePayload is the payload of an `rpc-response` envelope (§3).
//
// Exactly one of Result/Error is semantically present per value of
// HasError.
type RPCResponsePayload struct {
	ID       string          `json:"id"`
	HasError bool            `json:"hasError"`
	Result   json.RawMessage `json:"result,omitempty"`
	Error    *RPCError       `json:"error,omitempty"`
}

// RPCEventPayload is the payload of an `rpc-event` envelope (§3).
type RPCEventPayload struct {
	ID    string          `json:"id"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// RegisterAppInfo is the `appInfo` object of a `register` payload (§3, §6).
type RegisterAppInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	PipeName    string   `json:"pipeName"`
	Functions   []string `json:"functions,omitempty"`
	Events      []string `json:"events,omitempty"`
	HTTPURL     string   `json:"httpUrl,omitempty"`
	LocalPath   string   `json:"localPath,omitempty"`
}

// RegisterPayload is the payload of a `register` envelope (§3, §6).
//
// §6 permits this envelope to be emitted flat (without the outer [Envelope]
// wrapper) on the dock stream; see [Codec.EncodeRegisterFlat].
type RegisterPayload struct {
	Command string          `json:"command"`
	AppID   string          `json:"appId"`
	AppInfo RegisterAppInfo `json:"appInfo"`
}

// UnregisterPayload is the payload of an `unregister` envelope (§3, §6).
type UnregisterPayload struct {
	Command string `json:"command"`
	AppID   string `json:"appId"`
}

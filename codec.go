// SPDX-License-Identifier: GPL-3.0-or-later

package dockrpc

import "encoding/json"

// Codec serializes and deserializes [Envelope] values to/from the
// newline-free wire format described in §6.
//
// Same inputs produce byte-identical outputs: [encoding/json] encodes
// struct fields in declaration order and compact form contains no raw
// newline bytes (the `0x0A` frame delimiter is therefore safe to append).
//
// Construct via [NewCodec]; a zero-value [Codec] is not usable (Clock and
// IDGenerator are required).
type Codec struct {
	Clock       Clock
	IDGenerator IDGenerator
}

// NewCodec returns a [*Codec] wired from cfg.
func NewCodec(cfg *Config) *Codec {
	return &Codec{Clock: cfg.Clock, IDGenerator: cfg.IDGenerator}
}

// New builds an [Envelope] of the given type for appID, stamping it with a
// fresh ID and the current time.
func (c *Codec) New(appID string, typ EnvelopeType, payload any) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		Type:      typ,
		AppID:     appID,
		ID:        c.IDGenerator.NewEnvelopeID(),
		Timestamp: c.Clock.NowMS(),
		Payload:   raw,
	}, nil
}

// Encode serializes env as a newline-terminated frame.
func (c *Codec) Encode(env Envelope) ([]byte, error) {
	buf, err := json.Marshal(env)
	if err != nil {
		return nil, err
	}
	return append(buf, '\n'), nil
}

// EncodeRegisterFlat serializes a RegisterPayload without the outer
// [Envelope] wrapper, matching the wire-compat behavior the original
// source uses on the dock stream (§6, §9 Open Question). Normalizing to
// the wrapped form is a coordinated wire-compat decision left to the host;
// this method exists for implementations that must match that host.
func (c *Codec) EncodeRegisterFlat(payload RegisterPayload) ([]byte, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return append(buf, '\n'), nil
}

// Decode deserializes a single frame (delimiter already stripped by the
// caller) into an [Envelope].
//
// Decode rejects envelopes missing type, appId, id, or payload with
// [ErrBadEnvelope], and reports unrecognized types via [ErrUnknownType]
// rather than dropping them silently (§4.2).
func (c *Codec) Decode(frame []byte) (Envelope, error) {
	var raw struct {
		Type      *EnvelopeType    `json:"type"`
		AppID     *string          `json:"appId"`
		ID        *string          `json:"id"`
		Timestamp uint64           `json:"timestamp"`
		Payload   *json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(frame, &raw); err != nil {
		return Envelope{}, &BadEnvelopeError{Reason: err.Error()}
	}
	switch {
	case raw.Type == nil:
		return Envelope{}, &BadEnvelopeError{Reason: "missing type"}
	case raw.AppID == nil:
		return Envelope{}, &BadEnvelopeError{Reason: "missing appId"}
	case raw.ID == nil:
		return Envelope{}, &BadEnvelopeError{Reason: "missing id"}
	case raw.Payload == nil:
		return Envelope{}, &BadEnvelopeError{Reason: "missing payload"}
	}
	env := Envelope{
		Type:      *raw.Type,
		AppID:     *raw.AppID,
		ID:        *raw.ID,
		Timestamp: raw.Timestamp,
		Payload:   *raw.Payload,
	}
	if !knownEnvelopeTypes[env.Type] {
		return env, ErrUnknownType
	}
	return env, nil
}

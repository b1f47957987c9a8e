// SPDX-License-Identifier: GPL-3.0-or-later

package dockrpc

import (
	"github.com/bassosimone/runtimex"
	"github.com/google/uuid"
)

// IDGenerator produces globally-unique identifiers for envelopes.
//
// Implementations MUST return a value unique within the session (§3,
// Envelope invariant). The default implementation uses UUIDv7 so that IDs
// are also time-ordered, which is convenient for log correlation.
type IDGenerator interface {
	NewEnvelopeID() string
}

// IDGeneratorFunc adapts a function to the [IDGenerator] interface.
type IDGeneratorFunc func() string

var _ IDGenerator = IDGeneratorFunc(nil)

// NewEnvelopeID implements [IDGenerator].
func (f IDGeneratorFunc) NewEnvelopeID() string {
	return f()
}

// DefaultIDGenerator returns the default [IDGenerator], backed by UUIDv7.
//
// This function panics if the system random number generator fails, which
// should only happen under extraordinary circumstances (see
// [runtimex.PanicOnError1]).
func DefaultIDGenerator() IDGenerator {
	return IDGeneratorFunc(func() string {
		return runtimex.PanicOnError1(uuid.NewV7()).String()
	})
}

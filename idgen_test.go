// SPDX-License-Identifier: GPL-3.0-or-later

package dockrpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIDGeneratorProducesUniqueIDs(t *testing.T) {
	gen := DefaultIDGenerator()
	require.NotNil(t, gen)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := gen.NewEnvelopeID()
		require.NotEmpty(t, id)
		assert.False(t, seen[id], "generated duplicate id %q", id)
		seen[id] = true
	}
}

func TestIDGeneratorFunc(t *testing.T) {
	f := IDGeneratorFunc(func() string { return "fixed" })
	assert.Equal(t, "fixed", f.NewEnvelopeID())
}

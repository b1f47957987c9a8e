//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: bassosimone-nop/errclassifier.go (same [ErrClassifier]
// abstraction; default implementation wired to this module's own
// [dockrpc/errclass] package instead of an external classifier module,
// see DESIGN.md).
//

package dockrpc

import "github.com/leigod/dockrpc/errclass"

// ErrClassifier classifies errors into categorical strings for analysis.
//
// Implementations map errors to short, descriptive labels (e.g.,
// "ETIMEDOUT", "ECONNRESET") that facilitate systematic analysis of stream
// and dispatch failures, and let [DialStream] decide whether a connect
// failure is retryable.
type ErrClassifier interface {
	Classify(err error) string
}

// ErrClassifierFunc adapts a function to the [ErrClassifier] interface.
type ErrClassifierFunc func(error) string

var _ ErrClassifier = ErrClassifierFunc(nil)

// Classify implements [ErrClassifier].
func (f ErrClassifierFunc) Classify(err error) string {
	return f(err)
}

// DefaultErrClassifier classifies using [errclass.New].
var DefaultErrClassifier = ErrClassifierFunc(errclass.New)

//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: bassosimone-nop/config.go (same Config/NewConfig pattern,
// extended with the dependencies this runtime's components need).
//

package dockrpc

import "time"

// DefaultDockPipeName is the well-known name of the shared dock endpoint
// (§6), used when [Config.DockPipeName] is left empty.
const DefaultDockPipeName = "leigod_tool_main_pipe"

// DefaultWorkerCount is the default size of the [WorkerPool] used to execute
// dispatched RPC requests (§4.5).
const DefaultWorkerCount = 4

// DefaultConnectWait is the minimum bounded wait [DialStream] honors before
// failing with [ErrUnreachable] (§4.1).
const DefaultConnectWait = 5 * time.Second

// DefaultDelayedTaskTick is the granularity at which [TaskManager]'s
// delayed-task timer promotes due tasks to the immediate queue (§4.6).
const DefaultDelayedTaskTick = 100 * time.Millisecond

// DefaultEnvelopeBufferLimit is the bounded pre-Active envelope buffer
// size (§4.3).
const DefaultEnvelopeBufferLimit = 64

// DefaultWriteQueueCapacity is the bounded per-stream write-queue capacity
// (§9 Design Notes, "Ambient blocking I/O + threads").
const DefaultWriteQueueCapacity = 1024

// Config holds common configuration for dockrpc operations.
//
// Pass this to constructor functions to pre-wire dependencies. All fields
// have sensible defaults set by [NewConfig].
type Config struct {
	// Clock supplies envelope timestamps.
	//
	// Set by [NewConfig] to [SystemClock].
	Clock Clock

	// IDGenerator supplies envelope and rpc-event identifiers.
	//
	// Set by [NewConfig] to [DefaultIDGenerator].
	IDGenerator IDGenerator

	// ErrClassifier classifies errors for structured logging and for
	// [DialStream]'s retry decision.
	//
	// Set by [NewConfig] to [DefaultErrClassifier].
	ErrClassifier ErrClassifier

	// Logger is the [SLogger] used for structured logging.
	//
	// Set by [NewConfig] to [DefaultSLogger].
	Logger SLogger

	// DockPipeName is the well-known dock endpoint name.
	//
	// Set by [NewConfig] to [DefaultDockPipeName].
	DockPipeName string

	// WorkerCount is the number of workers in the RPC dispatch [WorkerPool].
	//
	// Set by [NewConfig] to [DefaultWorkerCount].
	WorkerCount int

	// ConnectWait is the minimum bounded wait for [DialStream].
	//
	// Set by [NewConfig] to [DefaultConnectWait].
	ConnectWait time.Duration

	// DelayedTaskTick is the [TaskManager] delayed-timer granularity.
	//
	// Set by [NewConfig] to [DefaultDelayedTaskTick].
	DelayedTaskTick time.Duration

	// EnvelopeBufferLimit bounds the pre-Active envelope buffer in
	// [Session].
	//
	// Set by [NewConfig] to [DefaultEnvelopeBufferLimit].
	EnvelopeBufferLimit int

	// WriteQueueCapacity bounds each [Stream]'s outbound write queue.
	//
	// Set by [NewConfig] to [DefaultWriteQueueCapacity].
	WriteQueueCapacity int
}

// NewConfig creates a [*Config] with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Clock:               SystemClock(),
		IDGenerator:         DefaultIDGenerator(),
		ErrClassifier:       DefaultErrClassifier,
		Logger:              DefaultSLogger(),
		DockPipeName:        DefaultDockPipeName,
		WorkerCount:         DefaultWorkerCount,
		ConnectWait:         DefaultConnectWait,
		DelayedTaskTick:     DefaultDelayedTaskTick,
		EnvelopeBufferLimit: DefaultEnvelopeBufferLimit,
		WriteQueueCapacity:  DefaultWriteQueueCapacity,
	}
}

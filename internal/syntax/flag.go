// internal/syntax/flag.go
package syntax

import (
	"context"
	"sync/atomic"
)

// Cancel flag states. The flag is the only state shared between the owner
// thread and a running parse job.
const (
	flagUnset        int32 = iota // job is current, keep going
	flagCancelled                 // owner superseded the job
	flagAcknowledged              // job noticed the cancellation
)

// CancelFlag is the cooperative cancellation cell for one parse job. The
// owner sets it, the worker reads and acknowledges it; neither side blocks
// on the other. The embedded context aborts a parse that is already inside
// the grammar when the flag is set.
type CancelFlag struct {
	state  atomic.Int32
	ctx    context.Context
	cancel context.CancelFunc
}

// NewCancelFlag returns a flag in the unset state.
func NewCancelFlag() *CancelFlag {
	ctx, cancel := context.WithCancel(context.Background())
	return &CancelFlag{ctx: ctx, cancel: cancel}
}

// Cancel marks the job superseded and aborts an in-progress parse. Safe to
// call more than once; only the first call transitions the flag.
func (f *CancelFlag) Cancel() {
	if f.state.CompareAndSwap(flagUnset, flagCancelled) {
		f.cancel()
	}
}

// Cancelled reports whether cancellation has been requested.
func (f *CancelFlag) Cancelled() bool {
	return f.state.Load() != flagUnset
}

// Acknowledge records that the worker noticed the cancellation. Only valid
// as a transition from the cancelled state.
func (f *CancelFlag) Acknowledge() {
	f.state.CompareAndSwap(flagCancelled, flagAcknowledged)
}

// Acknowledged reports whether the worker saw the cancellation.
func (f *CancelFlag) Acknowledged() bool {
	return f.state.Load() == flagAcknowledged
}

// Context is cancelled alongside the flag; parse calls run under it.
func (f *CancelFlag) Context() context.Context {
	return f.ctx
}

// release frees the context resources once the job's result is drained.
func (f *CancelFlag) release() {
	f.cancel()
}

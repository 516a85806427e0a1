// Package reactive is the state-scheduling primitive widgets run on.
//
// An Owner is the scope of one mounted component instance. Signals created
// with UseSignal or UseBool belong to an owner: every change marks the owner
// dirty, and a dirty owner re-invokes the render subscribers registered with
// Subscribe, so the host re-renders with the latest cell values and props.
//
// Changes made inside Owner.Batch are coalesced into a single notification.
// Disposing an owner runs its cleanups, disposes its children, and makes
// further signal changes silent.
//
// Owners and signals are safe to read from several goroutines, but a
// component instance is expected to be mutated from one event loop at a time.
package reactive

package pipe

import (
	"sync"
	"sync/atomic"

	"github.com/samber/lo"
)

// Receiver defines a function receiving a signal. A signal is an ordered list of arguments.
type Receiver[T any] func(args ...T)

// Marker is implemented by pipes, so callers can tell a pipe from any other value.
type Marker interface {
	IsPipe() bool
}

// Is reports whether v is a pipe.
func Is(v any) bool {
	m, ok := v.(Marker)
	return ok && m.IsPipe()
}

// subscription is the identity of one Connect call. The same receiver connected twice yields two subscriptions.
type subscription[T any] struct {
	fn Receiver[T]
}

// Pipe relays signals from producers to subscribers, through a chain of transformers.
//
// The zero value is an empty pipe, ready to use.
type Pipe[T any] struct {
	mu           sync.Mutex // guards transformers and dispatch rebuild
	transformers []*Transformer[T]
	outputs      atomic.Pointer[[]*subscription[T]] // copy on write
	dispatch     atomic.Pointer[Receiver[T]]
}

// New creates a pipe. Signals go through the transformers in the given order before reaching the subscribers.
func New[T any](transformers ...*Transformer[T]) *Pipe[T] {
	p := &Pipe[T]{transformers: lo.Compact(transformers)}
	dispatch := p.compose(p.transformers)
	p.dispatch.Store(&dispatch)
	return p
}

// IsPipe always returns true.
func (p *Pipe[T]) IsPipe() bool { return true }

// Connect subscribes fn to the pipe. The returned function removes this subscription only, and does nothing once
// it is already removed.
func (p *Pipe[T]) Connect(fn Receiver[T]) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	sub := &subscription[T]{fn: fn}

	p.mu.Lock()
	defer p.mu.Unlock()
	outputs := append(p.subscriptions(), sub)
	p.outputs.Store(&outputs)

	return func() { p.disconnect(sub) }
}

func (p *Pipe[T]) disconnect(sub *subscription[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	current := p.subscriptions()
	if lo.IndexOf(current, sub) < 0 {
		return
	}
	outputs := lo.Without(current, sub)
	p.outputs.Store(&outputs)
}

// subscriptions returns a copy of the current subscriptions, safe to append to.
func (p *Pipe[T]) subscriptions() []*subscription[T] {
	current := p.outputs.Load()
	if current == nil {
		return nil
	}
	return append([]*subscription[T](nil), *current...)
}

// Subscribers returns the number of active subscriptions.
func (p *Pipe[T]) Subscribers() int {
	if current := p.outputs.Load(); current != nil {
		return len(*current)
	}
	return 0
}

// Send passes args through the transformers, then to every subscriber. It returns once all of them were called.
func (p *Pipe[T]) Send(args ...T) {
	if dispatch := p.dispatch.Load(); dispatch != nil {
		(*dispatch)(args...)
		return
	}
	p.broadcast(args...) // zero value pipe
}

// broadcast is the end of every chain.
func (p *Pipe[T]) broadcast(args ...T) {
	outputs := p.outputs.Load()
	if outputs == nil {
		return
	}
	for _, out := range *outputs {
		out.fn(args...)
	}
}

// Extend creates a pipe with the given transformers, already connected to p.
func (p *Pipe[T]) Extend(transformers ...*Transformer[T]) *Pipe[T] {
	child := New(transformers...)
	p.Connect(child.Send)
	return child
}

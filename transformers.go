package pipe

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

var (
	ErrOutOfRange         = errors.New("index out of range")
	ErrInvalidTransformer = errors.New("invalid transformer")
)

// Transformer decorates the next receiver of a chain. Its pointer is its identity: Remove matches transformers by
// pointer, so keep the value returned by NewTransformer to remove it later.
type Transformer[T any] struct {
	wrap func(next Receiver[T]) Receiver[T]
}

// NewTransformer creates a transformer from a decorator. The decorator is called each time the chain is rebuilt, it
// should return a receiver doing its work and then calling next. It must not change the pipe it is added to.
func NewTransformer[T any](wrap func(next Receiver[T]) Receiver[T]) *Transformer[T] {
	if wrap == nil {
		panic(fmt.Errorf("%w: nil decorator", ErrInvalidTransformer))
	}
	return &Transformer[T]{wrap: wrap}
}

// compose folds transformers around broadcast, the first transformer being the outermost.
func (p *Pipe[T]) compose(transformers []*Transformer[T]) Receiver[T] {
	return lo.ReduceRight(transformers, func(next Receiver[T], t *Transformer[T], _ int) Receiver[T] {
		return t.wrap(next)
	}, Receiver[T](p.broadcast))
}

// update applies change to a copy of the transformers, then rebuilds the chain. Nothing is kept if a decorator
// panics.
func (p *Pipe[T]) update(change func([]*Transformer[T]) []*Transformer[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	transformers := change(append([]*Transformer[T](nil), p.transformers...))
	dispatch := p.compose(transformers)
	p.transformers = transformers
	p.dispatch.Store(&dispatch)
}

// Len returns the number of transformers.
func (p *Pipe[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.transformers)
}

// Push appends transformers at the end of the chain.
func (p *Pipe[T]) Push(transformers ...*Transformer[T]) {
	p.update(func(current []*Transformer[T]) []*Transformer[T] {
		return append(current, lo.Compact(transformers)...)
	})
}

// Unshift inserts transformers at the start of the chain, in the given order.
func (p *Pipe[T]) Unshift(transformers ...*Transformer[T]) {
	p.update(func(current []*Transformer[T]) []*Transformer[T] {
		return append(lo.Compact(transformers), current...)
	})
}

// Pop removes and returns the last transformer. It returns false if there is none.
func (p *Pipe[T]) Pop() (t *Transformer[T], ok bool) {
	p.update(func(current []*Transformer[T]) []*Transformer[T] {
		if len(current) == 0 {
			return current
		}
		t, ok = current[len(current)-1], true
		return current[:len(current)-1]
	})
	return t, ok
}

// PopAt removes and returns the transformer at index i. An invalid index yields ErrOutOfRange, and the chain is left
// untouched.
func (p *Pipe[T]) PopAt(i int) (t *Transformer[T], err error) {
	p.update(func(current []*Transformer[T]) []*Transformer[T] {
		if i < 0 || i >= len(current) {
			err = fmt.Errorf("%w: index %d, length %d", ErrOutOfRange, i, len(current))
			return current
		}
		t = current[i]
		return append(current[:i:i], current[i+1:]...)
	})
	return t, err
}

// Shift removes and returns the first transformer. It returns false if there is none.
func (p *Pipe[T]) Shift() (t *Transformer[T], ok bool) {
	p.update(func(current []*Transformer[T]) []*Transformer[T] {
		if len(current) == 0 {
			return current
		}
		t, ok = current[0], true
		return current[1:]
	})
	return t, ok
}

// Remove removes every occurrence of t from the chain.
func (p *Pipe[T]) Remove(t *Transformer[T]) {
	p.update(func(current []*Transformer[T]) []*Transformer[T] {
		return lo.Without(current, t)
	})
}

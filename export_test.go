package pipe

// Transformers returns a copy of the current chain
func (p *Pipe[T]) Transformers() []*Transformer[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*Transformer[T](nil), p.transformers...)
}

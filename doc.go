/*
pipe is a small broker between the source of a change and the code that wants to be notified about it.

A Pipe holds an ordered chain of transformers and a list of subscribers. Values sent into the pipe go through the
transformers in the order they were given, then are broadcast to every subscriber, in connection order. Everything
runs in the caller goroutine: when Send returns, every subscriber has been called.

For instance:

	p := pipe.New[string]()
	p.Connect(func(s ...string) { fmt.Println(s[0]) })
	p.Send("Hello, world!") // prints "Hello, world!"

Since Send is just a Receiver, pipes can be connected together:

	p1, p2 := pipe.New[string](), pipe.New[string]()
	p1.Connect(p2.Send) // p1 now sends to p2

Transformers are decorators. They take the next receiver of the chain and return a receiver calling it with a
(possibly) modified value:

	inc := pipe.NewTransformer(func(next pipe.Receiver[int]) pipe.Receiver[int] {
		return func(n ...int) { next(n[0] + 1) }
	})

The transformer chain can be changed at any time (Push, Unshift, Pop, PopAt, Shift, Remove). The chain is rebuilt on
each change, and p.Send keeps forwarding to the current one, so a Send already connected somewhere else sees the
change too.

p.Extend(t1, t2) creates a new pipe with the given transformers, connects it to p and returns it.

A pipe is safe for concurrent use. However, a panicking subscriber is not recovered: the panic goes up to the caller
of the outermost Send, and the remaining subscribers of that broadcast are skipped.
*/

package pipe

package pipe

import "github.com/samber/lo"

// Logger is the logging interface used by Log. *slog.Logger and hclog.Logger both implement it.
type Logger interface {
	Debug(msg string, args ...any)
}

// Map creates a transformer applying fn to every argument of a signal.
func Map[T any](fn func(T) T) *Transformer[T] {
	return NewTransformer(func(next Receiver[T]) Receiver[T] {
		return func(args ...T) {
			next(lo.Map(args, func(arg T, _ int) T { return fn(arg) })...)
		}
	})
}

// Filter creates a transformer dropping signals for which pred returns false.
func Filter[T any](pred func(args ...T) bool) *Transformer[T] {
	return NewTransformer(func(next Receiver[T]) Receiver[T] {
		return func(args ...T) {
			if pred(args...) {
				next(args...)
			}
		}
	})
}

// Tap creates a transformer calling fn with each signal before passing it on untouched.
func Tap[T any](fn Receiver[T]) *Transformer[T] {
	return NewTransformer(func(next Receiver[T]) Receiver[T] {
		return func(args ...T) {
			fn(args...)
			next(args...)
		}
	})
}

// Log creates a transformer logging each signal at debug level.
func Log[T any](logger Logger, msg string) *Transformer[T] {
	return Tap(func(args ...T) {
		logger.Debug(msg, "args", args)
	})
}

package watch

import (
	"context"
)

// Feed is a live, push-based sequence of values. Values are read from C;
// when C is closed, Err reports why.
type Feed[T any] struct {
	c   chan T
	err error
}

func newFeed[T any]() *Feed[T] {
	return &Feed[T]{c: make(chan T)}
}

// C returns the channel values are delivered on. It is closed when the
// feed's context is cancelled or its source fails.
func (f *Feed[T]) C() <-chan T {
	return f.c
}

// Err returns the error that ended the feed. It must only be called after C
// has been closed, and is nil when the feed ended by cancellation.
func (f *Feed[T]) Err() error {
	return f.err
}

// Query emits load's result immediately and again after every change
// notification for tables, skipping results equal to the last emitted one.
// The feed runs until ctx is cancelled or load fails.
func Query[T any](ctx context.Context, n *Notifier, load func(context.Context) (T, error), equal func(a, b T) bool, tables ...string) *Feed[T] {
	f := newFeed[T]()

	// Subscribe before the first load so no commit between the two is missed.
	signal, unsubscribe := n.Subscribe(tables...)

	go func() {
		defer close(f.c)
		defer unsubscribe()

		var last T
		emitted := false
		for {
			v, err := load(ctx)
			if err != nil {
				if ctx.Err() == nil {
					f.err = err
				}
				return
			}

			if !emitted || !equal(last, v) {
				select {
				case f.c <- v:
				case <-ctx.Done():
					return
				}
				last, emitted = v, true
			}

			select {
			case <-signal:
			case <-ctx.Done():
				return
			}
		}
	}()

	return f
}

// Map applies fn to every value of in. The returned feed ends when in does
// and carries its error.
func Map[T, R any](ctx context.Context, in *Feed[T], fn func(T) R) *Feed[R] {
	out := newFeed[R]()

	go func() {
		defer close(out.c)

		for v := range in.c {
			select {
			case out.c <- fn(v):
			case <-ctx.Done():
				return
			}
		}
		out.err = in.err
	}()

	return out
}

// Distinct drops values of in equal to the previously delivered one.
func Distinct[T any](ctx context.Context, in *Feed[T], equal func(a, b T) bool) *Feed[T] {
	out := newFeed[T]()

	go func() {
		defer close(out.c)

		var last T
		emitted := false
		for v := range in.c {
			if emitted && equal(last, v) {
				continue
			}
			select {
			case out.c <- v:
			case <-ctx.Done():
				return
			}
			last, emitted = v, true
		}
		out.err = in.err
	}()

	return out
}

// First waits for the first value of f. Callers should cancel the feed's
// context afterwards to release it.
func First[T any](ctx context.Context, f *Feed[T]) (T, error) {
	var zero T
	select {
	case v, ok := <-f.c:
		if !ok {
			if f.err != nil {
				return zero, f.err
			}
			return zero, context.Canceled
		}
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

package picker

// listeners is a multi-slot subscriber list invoked synchronously.
type listeners[T any] struct {
	fns []func(T)
}

func (l *listeners[T]) add(fn func(T)) {
	if fn != nil {
		l.fns = append(l.fns, fn)
	}
}

func (l *listeners[T]) emit(v T) {
	for _, fn := range l.fns {
		fn(v)
	}
}

// gate tracks controller liveness and programmatic-update depth. Settle
// callbacks arriving while a programmatic update is running, or after Close,
// are dropped so a cascade reports exactly once.
type gate struct {
	closed  bool
	depth   int
	initial bool
}

func (g *gate) accept() bool { return !g.closed && g.depth == 0 }

func (g *gate) enter() { g.depth++ }

func (g *gate) leave() { g.depth-- }

// firstDisplay returns true exactly once per live controller.
func (g *gate) firstDisplay() bool {
	if g.closed || g.initial {
		return false
	}
	g.initial = true
	return true
}

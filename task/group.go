package task

// A Group is a scope for a batch of tasks. Every task started with Go
// is joined by Wait, so no task outlives the call that created the
// group.
//
// A Group must not be copied, and Go must not be called concurrently
// with Wait.
type Group struct {
	exec    Executor
	handles []*Handle[struct{}]
}

// NewGroup returns a group that submits its tasks to exec. A nil exec
// means Goroutines.
func NewGroup(exec Executor) *Group {
	if exec == nil {
		exec = Goroutines
	}
	return &Group{exec: exec}
}

// Go submits fn as a new task of the group.
func (g *Group) Go(fn func()) {
	g.handles = append(g.handles, Async(g.exec, func() struct{} {
		fn()
		return struct{}{}
	}))
}

// Len returns the number of tasks started with Go since the last Wait.
func (g *Group) Len() int {
	return len(g.handles)
}

// Wait blocks until all tasks of the group have terminated.
//
// If one or more tasks panicked, Wait panics with the recovered panic
// value of the left-most such task, i.e. the one that was started
// first, but only after every other task has terminated as well.
func (g *Group) Wait() {
	var first interface{}
	for _, h := range g.handles {
		if _, p := h.join(); p != nil && first == nil {
			first = p
		}
	}
	g.handles = nil
	if first != nil {
		panic(first)
	}
}

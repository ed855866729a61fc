package cartsync

import "context"

// Task is the handle of an asynchronous remote call.
type Task struct {
	Name string

	done chan struct{}
	err  error
}

func newTask(name string) *Task {
	return &Task{Name: name, done: make(chan struct{})}
}

func (t *Task) finish(err error) {
	t.err = err
	close(t.done)
}

// Done is closed once the call has finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Err returns the outcome. It is only meaningful after Done is closed.
func (t *Task) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Wait blocks until the call finishes or ctx ends.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

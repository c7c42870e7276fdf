package domain

import "sync"

type Outcome struct {
	Available bool
	Reason    string
}

// Latch commits exactly one probe outcome; later commits are ignored.
type Latch struct {
	once    sync.Once
	done    chan struct{}
	outcome Outcome
}

func NewLatch() *Latch {
	return &Latch{done: make(chan struct{})}
}

// Commit records o if nothing was committed yet and reports whether it won.
func (l *Latch) Commit(o Outcome) bool {
	won := false
	l.once.Do(func() {
		l.outcome = o
		won = true
		close(l.done)
	})
	return won
}

func (l *Latch) Done() <-chan struct{} {
	return l.done
}

// Outcome is only meaningful after Done is closed.
func (l *Latch) Outcome() Outcome {
	<-l.done
	return l.outcome
}

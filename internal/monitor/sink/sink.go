// Package sink provides receivers for scheduler signals.
package sink

import (
	"github.com/goodnatureofminers/poolmonitor-backend/internal/monitor/model"
)

// Sink receives scheduler signals. Implementations must be safe for concurrent use:
// Unwatched may arrive from a different goroutine than the cycle signals.
type Sink interface {
	Watched()
	Data(ev model.Event)
	StateChanged(cp model.Checkpoint)
	Exception(err error)
	Unwatched()
}

// Funcs adapts optional callbacks to a Sink. Nil callbacks are skipped.
type Funcs struct {
	OnWatched      func()
	OnData         func(model.Event)
	OnStateChanged func(model.Checkpoint)
	OnException    func(error)
	OnUnwatched    func()
}

func (f Funcs) Watched() {
	if f.OnWatched != nil {
		f.OnWatched()
	}
}

func (f Funcs) Data(ev model.Event) {
	if f.OnData != nil {
		f.OnData(ev)
	}
}

func (f Funcs) StateChanged(cp model.Checkpoint) {
	if f.OnStateChanged != nil {
		f.OnStateChanged(cp)
	}
}

func (f Funcs) Exception(err error) {
	if f.OnException != nil {
		f.OnException(err)
	}
}

func (f Funcs) Unwatched() {
	if f.OnUnwatched != nil {
		f.OnUnwatched()
	}
}

// Multi forwards every signal to each sink in order.
type Multi []Sink

func (m Multi) Watched() {
	for _, s := range m {
		s.Watched()
	}
}

func (m Multi) Data(ev model.Event) {
	for _, s := range m {
		s.Data(ev)
	}
}

func (m Multi) StateChanged(cp model.Checkpoint) {
	for _, s := range m {
		s.StateChanged(cp.Clone())
	}
}

func (m Multi) Exception(err error) {
	for _, s := range m {
		s.Exception(err)
	}
}

func (m Multi) Unwatched() {
	for _, s := range m {
		s.Unwatched()
	}
}

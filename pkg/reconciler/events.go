package reconciler

import "github.com/cuemby/baliusd/pkg/crd"

// EventKind discriminates a watch event's effect on the runtime's worker
// set. Init/InitApply/InitDone bracket the watcher's initial listing (the
// resources that already existed when the watch started); Apply and
// Delete are steady-state add-or-update and removal events. The
// reconciler treats Init and InitApply identically to Apply — all three
// mean "this worker should be registered" — and only logs InitDone, which
// marks the end of the initial listing.
type EventKind int

const (
	EventInit EventKind = iota
	EventInitApply
	EventInitDone
	EventApply
	EventDelete
)

// Event is one observation from a BaliusWorker watch stream.
type Event struct {
	Kind   EventKind
	Worker *crd.BaliusWorker
}

// Watcher streams BaliusWorker watch events until ctx is cancelled or an
// unrecoverable error occurs, in which case it sends the error on Errs
// and closes both channels.
type Watcher interface {
	Events() <-chan Event
	Errs() <-chan error
}

package coach

import "sync"

type State string

const (
	StateIdle     State = "idle"
	StatePending  State = "pending"
	StateResolved State = "resolved"
)

// Snapshot is what the UI polls: the request state and, once resolved, the
// feedback text.
type Snapshot struct {
	State State  `json:"state"`
	Text  string `json:"text,omitempty"`
}

// Tracker serializes overlapping feedback requests. The policy is
// reject-if-superseded: each request takes a sequence number, and a response
// only lands when no newer request has started since. Stale responses are
// dropped, so the displayed text always belongs to the newest request.
type Tracker struct {
	mu     sync.Mutex
	latest uint64
	text   string
	state  State
}

func NewTracker() *Tracker {
	return &Tracker{state: StateIdle}
}

// Begin registers a new request and returns its sequence number. Any request
// still in flight is superseded from this point on.
func (t *Tracker) Begin() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.latest++
	t.state = StatePending
	return t.latest
}

// Resolve lands the response for the request with the given sequence number.
// It returns false, leaving the tracker untouched, when a newer request has
// started since.
func (t *Tracker) Resolve(seq uint64, text string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if seq != t.latest {
		return false
	}
	t.text = text
	t.state = StateResolved
	return true
}

func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	snap := Snapshot{State: t.state}
	if t.state == StateResolved {
		snap.Text = t.text
	}
	return snap
}

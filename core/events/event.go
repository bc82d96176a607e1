package events

// Record is the broadcastable form of a state change: a type tag plus a flat
// set of string attributes suitable for RPC streams and indexers.
type Record struct {
	Type       string
	Attributes map[string]string
}

// Event represents a structured state change emitted by the staking module.
type Event interface {
	EventType() string
	Record() *Record
}

// Emitter broadcasts events to downstream subscribers (e.g. RPC, indexers).
type Emitter interface {
	Emit(Event)
}

// NoopEmitter is a helper that satisfies the Emitter interface while discarding
// all events. It is useful when a component wants to optionally expose events.
type NoopEmitter struct{}

// Emit implements the Emitter interface.
func (NoopEmitter) Emit(Event) {}

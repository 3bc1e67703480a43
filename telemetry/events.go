// Package telemetry tracks sweep triggers, field heights and tick timing,
// and writes them as CSV.
package telemetry

// EventType identifies telemetry events.
type EventType uint8

const (
	EventTrigger EventType = iota // a sweep started
	EventGated                    // threshold crossed while a sweep was in flight
	EventImpulse                  // spring impulse from input
)

func (t EventType) String() string {
	switch t {
	case EventTrigger:
		return "trigger"
	case EventGated:
		return "gated"
	case EventImpulse:
		return "impulse"
	}
	return "unknown"
}

// Event is one row of events.csv.
type Event struct {
	Tick      int32   `csv:"tick"`
	SimTime   float64 `csv:"sim_time"`
	Type      string  `csv:"type"`
	Energy    float64 `csv:"energy"`
	Amplitude float64 `csv:"amplitude"`
}

// NewTriggerEvent records a sweep start.
func NewTriggerEvent(tick int32, simTime, energy, amplitude float64) Event {
	return Event{
		Tick:      tick,
		SimTime:   simTime,
		Type:      EventTrigger.String(),
		Energy:    energy,
		Amplitude: amplitude,
	}
}

// NewGatedEvent records a threshold crossing ignored by the gate.
func NewGatedEvent(tick int32, simTime, energy float64) Event {
	return Event{Tick: tick, SimTime: simTime, Type: EventGated.String(), Energy: energy}
}

// NewImpulseEvent records a spring impulse.
func NewImpulseEvent(tick int32, simTime, velocity float64) Event {
	return Event{Tick: tick, SimTime: simTime, Type: EventImpulse.String(), Amplitude: velocity}
}

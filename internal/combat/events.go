package combat

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType indicates the category of a combat event.
type EventType string

const (
	// Health events
	EventHealthChanged EventType = "HEALTH_CHANGED"
	EventCharacterDied EventType = "CHARACTER_DIED"

	// Action events
	EventActionStarted EventType = "ACTION_STARTED"
	EventActionEnded   EventType = "ACTION_ENDED"

	// Hit events
	EventHitLanded   EventType = "HIT_LANDED"
	EventHitReaction EventType = "HIT_REACTION"

	// AI events
	EventStateChanged EventType = "STATE_CHANGED"

	// Round events
	EventRoundEnded EventType = "ROUND_ENDED"
	EventRoundReset EventType = "ROUND_RESET"
	EventBoutEnded  EventType = "BOUT_ENDED"
)

// Event represents a state change the excluded collaborators (animation
// layer, round management, UI) react to. Fire-and-forget notifications,
// never queries.
type Event struct {
	Type     EventType
	ID       string        // Unique event ID
	TargetID string        // Fighter the event happened to
	SourceID string        // Fighter or subsystem that caused it
	Kind     ActionKind    // Action involved, if any
	Amount   float64       // Numeric value (damage, health, round number)
	Max      float64       // Upper bound for Amount where one applies
	Data     string        // Additional string data (state names, winner)
	At       time.Duration // Simulation time the event occurred
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// EventBus provides a synchronous publish/subscribe implementation with
// type filtering. The simulation is single-threaded, but the bus keeps
// its own lock so external tooling may subscribe from other goroutines.
type EventBus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener
	typedListeners map[EventType][]TypedListener
	nextHandle     int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	listener := TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	}
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], listener)
	return handle
}

// Unsubscribe removes the listener identified by the provided handle.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.listeners, handle)
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for _, listener := range bus.listeners {
		listener(event)
	}

	if typedListeners, ok := bus.typedListeners[event.Type]; ok {
		for _, listener := range typedListeners {
			listener.Callback(event)
		}
	}
}

// NewEvent creates a new event with common fields populated.
func NewEvent(eventType EventType, targetID, sourceID string, at time.Duration) Event {
	return Event{
		Type:     eventType,
		ID:       uuid.NewString(),
		TargetID: targetID,
		SourceID: sourceID,
		At:       at,
	}
}

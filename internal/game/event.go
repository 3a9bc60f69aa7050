package game

import (
	"encoding/json"
	"time"
)

// EventType enum for event classification
type EventType uint8

const (
	EventTypeUnknown EventType = iota
	EventTypeTick              // Tick boundary with RNG seed
	EventTypeShotFired
	EventTypeShotDiscarded
	EventTypeBubblePlaced
	EventTypeMatchPopped
	EventTypeFloatingDropped
	EventTypeForcedDrop
	EventTypeStatusChange
	EventTypeReset
	EventTypeLevelAdvance
)

// EventVersion for backwards compatibility in replay
const EventVersion uint8 = 1

// Event is the core event structure for the event log
type Event struct {
	Version   uint8     `json:"version"`   // Schema version
	Type      EventType `json:"type"`      // Event type
	Timestamp int64     `json:"timestamp"` // Unix nano
	Sequence  uint64    `json:"sequence"`  // Monotonic sequence
	TickNum   uint64    `json:"tickNum"`   // Game tick this occurred in
	Source    string    `json:"source"`    // Intent source (for rate limiting)
	Payload   []byte    `json:"payload"`   // JSON-encoded payload
}

// String returns human-readable event type
func (t EventType) String() string {
	switch t {
	case EventTypeTick:
		return "tick"
	case EventTypeShotFired:
		return "shot_fired"
	case EventTypeShotDiscarded:
		return "shot_discarded"
	case EventTypeBubblePlaced:
		return "bubble_placed"
	case EventTypeMatchPopped:
		return "match_popped"
	case EventTypeFloatingDropped:
		return "floating_dropped"
	case EventTypeForcedDrop:
		return "forced_drop"
	case EventTypeStatusChange:
		return "status_change"
	case EventTypeReset:
		return "reset"
	case EventTypeLevelAdvance:
		return "level_advance"
	default:
		return "unknown"
	}
}

// Intent sources recorded on events. The event log rate-limits per source.
const (
	SourcePointer = "pointer"
	SourceAuto    = "auto"
	SourceAPI     = "api"
	SourceSession = "session"
)

// Typed payloads for different event types

// TickPayload contains tick boundary information for replay
type TickPayload struct {
	RNGSeed     int64 `json:"rngSeed"`
	BubbleCount int   `json:"bubbleCount"`
	DeltaTimeNs int64 `json:"deltaTimeNs"`
}

// ShotFiredPayload contains shot dispatch details
type ShotFiredPayload struct {
	TurnID  uint64  `json:"turnId"`
	Color   string  `json:"color"`
	TargetX float64 `json:"targetX"`
	TargetY float64 `json:"targetY"`
	Auto    bool    `json:"auto"`
}

// ShotDiscardedPayload records a shot that found no legal placement cell
type ShotDiscardedPayload struct {
	TurnID uint64  `json:"turnId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// BubblePlacedPayload contains placement details
type BubblePlacedPayload struct {
	TurnID uint64 `json:"turnId"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Color  string `json:"color"`
}

// MatchPoppedPayload contains pop resolution details
type MatchPoppedPayload struct {
	TurnID uint64 `json:"turnId"`
	Cells  []Cell `json:"cells"`
	Points int    `json:"points"`
}

// FloatingDroppedPayload contains floating removal details
type FloatingDroppedPayload struct {
	TurnID uint64 `json:"turnId"`
	Cells  []Cell `json:"cells"`
	Points int    `json:"points"`
}

// ForcedDropPayload contains forced-drop details
type ForcedDropPayload struct {
	NewCeilingCount int `json:"newCeilingCount"`
	Discarded       int `json:"discarded"`
}

// StatusChangePayload contains session status transitions
type StatusChangePayload struct {
	Status string `json:"status"`
	Score  int    `json:"score"`
	Level  int    `json:"level"`
}

// EncodePayload marshals a payload to JSON bytes
func EncodePayload(payload interface{}) []byte {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	return data
}

// NewEvent creates a new event with the current timestamp
func NewEvent(eventType EventType, tickNum uint64, source string, payload interface{}) Event {
	return Event{
		Version:   EventVersion,
		Type:      eventType,
		Timestamp: time.Now().UnixNano(),
		TickNum:   tickNum,
		Source:    source,
		Payload:   EncodePayload(payload),
	}
}

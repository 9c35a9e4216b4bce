package registry

import (
	geoengine "github.com/sciagent/geo-engine"
)

// Handle is an opaque reference to a dataset in a table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Kind records how a dataset entered the registry.
type Kind uint32

const (
	// KindSource marks datasets loaded or created directly.
	KindSource Kind = iota + 1
	// KindDerived marks datasets produced by a filter operation.
	KindDerived
)

// Event types for dataset lifecycle notifications.
type EventType uint8

const (
	EventRegistered EventType = iota
	EventReleased
)

// Event represents a dataset lifecycle event.
type Event struct {
	Dataset geoengine.Dataset
	Handle  Handle
	Kind    Kind
	Type    EventType
}

// Observer receives notifications about dataset lifecycle events.
type Observer interface {
	OnDatasetEvent(Event)
}

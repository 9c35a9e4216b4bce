package registry

import (
	"sync"

	geoengine "github.com/sciagent/geo-engine"
)

// Table maps handles to live dataset references and notifies observers of
// register/release events. The table itself is internally locked; the
// datasets it hands out are not.
type Table struct {
	backend   *backend
	observers []Observer
	obsMu     sync.RWMutex
	closed    bool
	closeMu   sync.RWMutex
}

// NewTable creates an empty dataset table.
func NewTable() *Table {
	return &Table{
		backend: newBackend(),
	}
}

// Insert registers a dataset and returns its handle, or 0 if the table is
// closed.
func (t *Table) Insert(kind Kind, ds geoengine.Dataset) Handle {
	t.closeMu.RLock()
	if t.closed {
		t.closeMu.RUnlock()
		return 0
	}
	t.closeMu.RUnlock()

	handle, err := t.backend.create(kind, ds)
	if err != nil {
		return 0
	}

	t.notify(Event{
		Type:    EventRegistered,
		Handle:  handle,
		Kind:    kind,
		Dataset: ds,
	})

	return handle
}

// Get resolves a handle to its dataset.
func (t *Table) Get(handle Handle) (geoengine.Dataset, bool) {
	return t.backend.get(handle)
}

// Kind returns the kind recorded for a handle.
func (t *Table) Kind(handle Handle) (Kind, bool) {
	return t.backend.kindOf(handle)
}

// Remove drops a handle and returns (dataset, true) if it was live.
func (t *Table) Remove(handle Handle) (geoengine.Dataset, bool) {
	kind, _ := t.backend.kindOf(handle)
	ds, ok := t.backend.drop(handle)
	if !ok {
		return nil, false
	}

	t.notify(Event{
		Type:    EventReleased,
		Handle:  handle,
		Kind:    kind,
		Dataset: ds,
	})

	return ds, true
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Table) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered datasets.
func (t *Table) Len() int {
	return t.backend.len()
}

// Each iterates over registered datasets.
func (t *Table) Each(fn func(Handle, Kind, geoengine.Dataset) bool) {
	t.backend.each(fn)
}

// Clear drops all registered datasets.
func (t *Table) Clear() {
	// Collect handles first to avoid holding the lock during Remove
	var handles []Handle
	t.backend.each(func(h Handle, _ Kind, _ geoengine.Dataset) bool {
		handles = append(handles, h)
		return true
	})
	for _, h := range handles {
		t.Remove(h)
	}
}

// Close releases all entries and stops accepting inserts.
func (t *Table) Close() error {
	t.closeMu.Lock()
	t.closed = true
	t.closeMu.Unlock()

	return t.backend.close()
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnDatasetEvent(e)
	}
}

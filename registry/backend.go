package registry

import (
	"errors"
	"sync"

	geoengine "github.com/sciagent/geo-engine"
)

// ErrClosed is returned when inserting into a closed backend.
var ErrClosed = errors.New("dataset registry closed")

// backend is the in-memory handle store. Handles index into a slice of
// entries; released handles go on a free list and are reused.
type backend struct {
	entries  []entry
	freeList []Handle
	mu       sync.RWMutex
	closed   bool
}

type entry struct {
	dataset geoengine.Dataset
	kind    Kind
	valid   bool
}

func newBackend() *backend {
	return &backend{
		entries:  make([]entry, 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

// create stores a dataset and returns a handle.
func (b *backend) create(kind Kind, ds geoengine.Dataset) (Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0, ErrClosed
	}

	e := entry{
		kind:    kind,
		dataset: ds,
		valid:   true,
	}

	if len(b.freeList) > 0 {
		handle := b.freeList[len(b.freeList)-1]
		b.freeList = b.freeList[:len(b.freeList)-1]
		b.entries[handle-1] = e
		return handle, nil
	}

	b.entries = append(b.entries, e)
	return Handle(len(b.entries)), nil
}

// get retrieves a dataset by handle.
func (b *backend) get(handle Handle) (geoengine.Dataset, bool) {
	if handle == 0 {
		return nil, false
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	idx := handle - 1
	if int(idx) >= len(b.entries) {
		return nil, false
	}

	e := b.entries[idx]
	if !e.valid {
		return nil, false
	}
	return e.dataset, true
}

// drop removes an entry and returns its dataset.
func (b *backend) drop(handle Handle) (geoengine.Dataset, bool) {
	if handle == 0 {
		return nil, false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	idx := handle - 1
	if int(idx) >= len(b.entries) {
		return nil, false
	}

	e := &b.entries[idx]
	if !e.valid {
		return nil, false
	}

	ds := e.dataset
	e.valid = false
	e.dataset = nil
	b.freeList = append(b.freeList, handle)

	return ds, true
}

// kind returns the kind recorded for a handle.
func (b *backend) kindOf(handle Handle) (Kind, bool) {
	if handle == 0 {
		return 0, false
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	idx := handle - 1
	if int(idx) >= len(b.entries) {
		return 0, false
	}

	e := b.entries[idx]
	if !e.valid {
		return 0, false
	}
	return e.kind, true
}

// len returns the number of live entries.
func (b *backend) len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for _, e := range b.entries {
		if e.valid {
			count++
		}
	}
	return count
}

// each iterates over live entries.
func (b *backend) each(fn func(Handle, Kind, geoengine.Dataset) bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for i, e := range b.entries {
		if e.valid {
			if !fn(Handle(i+1), e.kind, e.dataset) {
				break
			}
		}
	}
}

// close invalidates all entries and rejects further inserts.
func (b *backend) close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for i := range b.entries {
		b.entries[i].valid = false
		b.entries[i].dataset = nil
	}

	b.entries = nil
	b.freeList = nil
	return nil
}

package game

import (
	"slices"
	"sync"

	"github.com/scythe504/skribblr-party/internal"
)

// =============================================================================
// ROOM REGISTRY
// =============================================================================

// Registry maps room ids to live rooms. It keeps insertion order so quick-join
// scans rooms oldest first.
//
// The registry lock is never held while a room lock is taken.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*internal.Room
	order []string
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*internal.Room)}
}

// Insert adds room unless its id is already taken.
func (r *Registry) Insert(room *internal.Room) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rooms[room.Id]; exists {
		return false
	}
	r.rooms[room.Id] = room
	r.order = append(r.order, room.Id)
	return true
}

func (r *Registry) Get(id string) (*internal.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[id]
	return room, ok
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[id]; !ok {
		return
	}
	delete(r.rooms, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// Snapshot copies the live rooms in insertion order.
func (r *Registry) Snapshot() []*internal.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*internal.Room, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.rooms[id])
	}
	return out
}

// FindJoinable returns the first room that quick-join may use. The answer can be
// stale by the time the caller locks the room, so callers re-check Joinable.
func (r *Registry) FindJoinable() *internal.Room {
	for _, room := range r.Snapshot() {
		room.Mu.RLock()
		ok := room.Joinable()
		room.Mu.RUnlock()
		if ok {
			return room
		}
	}
	return nil
}

// List summarizes rooms that have not started and still have space.
// Password rooms are included and flagged.
func (r *Registry) List() []internal.RoomSummary {
	out := make([]internal.RoomSummary, 0)
	for _, room := range r.Snapshot() {
		room.Mu.RLock()
		if !room.Closed && !room.GameStarted() && !room.IsFull() {
			out = append(out, room.Summary())
		}
		room.Mu.RUnlock()
	}
	return out
}

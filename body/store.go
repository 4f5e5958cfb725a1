package body

import "strconv"

// Handle is a stable reference to a body: a slot index packed with a
// generation counter so a reused slot never aliases a deleted body.
type Handle uint64

type slotIndex uint32
type generation uint32

const slotIndexBits = 32

func makeHandle(idx slotIndex, gen generation) Handle {
	return Handle(uint64(gen)<<slotIndexBits | uint64(idx))
}

func (h Handle) index() slotIndex {
	return slotIndex(uint32(h))
}

func (h Handle) generation() generation {
	return generation(uint32(uint64(h) >> slotIndexBits))
}

func (h Handle) String() string {
	return strconv.FormatUint(uint64(h), 10)
}

// Valid reports whether h could ever refer to a body. The zero Handle is
// always invalid.
func (h Handle) Valid() bool {
	return h.index() > 0
}

type slot struct {
	gen    generation
	live   bool
	marked bool
	body   Body
}

// Store is an arena of bodies indexed by Handle. Slot indices start at 1 and
// are reused through a free list; the generation counter bumps on every
// removal so stale handles miss. Removals requested mid-pass are deferred:
// MarkRemove hides the body from ForEach and Reap frees the slots once the
// pass is done, so iteration never invalidates.
type Store struct {
	slots  []slot
	free   []slotIndex
	marked []Handle
}

// NewStore creates an empty arena.
func NewStore() *Store {
	return &Store{}
}

// Insert adds b and returns its handle.
func (s *Store) Insert(b Body) Handle {
	var idx slotIndex
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.slots = append(s.slots, slot{})
		idx = slotIndex(len(s.slots))
	}
	sl := &s.slots[idx-1]
	sl.live = true
	sl.marked = false
	sl.body = b
	return makeHandle(idx, sl.gen)
}

func (s *Store) lookup(h Handle) *slot {
	idx := h.index()
	if idx == 0 || int(idx) > len(s.slots) {
		return nil
	}
	sl := &s.slots[idx-1]
	if !sl.live || sl.gen != h.generation() {
		return nil
	}
	return sl
}

// Get returns the body for h, or false if h is stale or marked for removal.
func (s *Store) Get(h Handle) (*Body, bool) {
	sl := s.lookup(h)
	if sl == nil || sl.marked {
		return nil, false
	}
	return &sl.body, true
}

// Alive reports whether h still refers to a body that has not been removed
// or marked for removal.
func (s *Store) Alive(h Handle) bool {
	sl := s.lookup(h)
	return sl != nil && !sl.marked
}

// Len returns the number of bodies visible to ForEach.
func (s *Store) Len() int {
	n := 0
	for i := range s.slots {
		if s.slots[i].live && !s.slots[i].marked {
			n++
		}
	}
	return n
}

// ForEach visits every body not marked for removal, in slot order. The
// visit order is stable across calls, which keeps pair evaluation
// reproducible.
func (s *Store) ForEach(fn func(Handle, *Body)) {
	if s == nil || fn == nil {
		return
	}
	for i := range s.slots {
		sl := &s.slots[i]
		if !sl.live || sl.marked {
			continue
		}
		fn(makeHandle(slotIndex(i+1), sl.gen), &sl.body)
	}
}

// Remove frees h immediately. It reports whether a body was removed.
// Callers iterating the store must use MarkRemove instead.
func (s *Store) Remove(h Handle) bool {
	sl := s.lookup(h)
	if sl == nil {
		return false
	}
	sl.live = false
	sl.marked = false
	sl.gen++
	sl.body = Body{}
	s.free = append(s.free, h.index())
	return true
}

// MarkRemove schedules h for removal at the next Reap. The body disappears
// from ForEach, Get, and Alive right away but its slot stays allocated so
// an in-flight pass keeps a stable view.
func (s *Store) MarkRemove(h Handle) bool {
	sl := s.lookup(h)
	if sl == nil || sl.marked {
		return false
	}
	sl.marked = true
	s.marked = append(s.marked, h)
	return true
}

// Reap frees every slot marked since the last call and returns how many
// bodies were removed.
func (s *Store) Reap() int {
	n := 0
	for _, h := range s.marked {
		idx := h.index()
		if idx == 0 || int(idx) > len(s.slots) {
			continue
		}
		sl := &s.slots[idx-1]
		if !sl.live || sl.gen != h.generation() || !sl.marked {
			continue
		}
		sl.marked = false
		if s.Remove(h) {
			n++
		}
	}
	s.marked = s.marked[:0]
	return n
}

// Clone deep-copies the arena, trails included. Handles taken from the
// original resolve to the matching body in the copy; mutating either store
// never touches the other.
func (s *Store) Clone() *Store {
	if s == nil {
		return nil
	}
	out := &Store{
		slots:  make([]slot, len(s.slots)),
		free:   append([]slotIndex(nil), s.free...),
		marked: append([]Handle(nil), s.marked...),
	}
	for i := range s.slots {
		out.slots[i] = s.slots[i]
		out.slots[i].body = s.slots[i].body.clone()
	}
	return out
}

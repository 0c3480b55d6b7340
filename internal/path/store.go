package path

// Store owns the authoritative path collection for one editing session.
// Tools read a snapshot at gesture start and commit a full replacement
// collection through Apply — the single writer entry point. The commit
// callback hands each new collection to the caller (persistence / undo),
// which owns versioning.
type Store struct {
	paths   []Path
	onApply func([]Path)
}

// NewStore creates a store with an optional commit callback.
func NewStore(onApply func([]Path)) *Store {
	return &Store{onApply: onApply}
}

// Snapshot returns a deep copy of the current collection. Mutating the
// returned paths never aliases the store.
func (s *Store) Snapshot() []Path {
	return ClonePaths(s.paths)
}

// Len returns the number of paths.
func (s *Store) Len() int {
	return len(s.paths)
}

// Find returns the path with the given ID.
func (s *Store) Find(id string) (Path, bool) {
	for _, p := range s.paths {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return Path{}, false
}

// Apply commits a new collection, replacing the previous one, and notifies
// the commit callback. The store keeps its own deep copy so later caller
// mutations cannot alias committed state.
func (s *Store) Apply(newPaths []Path) {
	s.paths = ClonePaths(newPaths)
	if s.onApply != nil {
		s.onApply(ClonePaths(newPaths))
	}
}

// Replace swaps the collection without firing the commit callback. Used when
// loading a document or receiving a remote sync, which are not local edits.
func (s *Store) Replace(newPaths []Path) {
	s.paths = ClonePaths(newPaths)
}

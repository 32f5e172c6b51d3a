package annot

import "errors"

// ErrNotFound indicates no annotation carries the requested id.
var ErrNotFound = errors.New("annotation not found")

// Set is the editor's authoritative, ordered annotation list.
type Set struct {
	annotations []*Annotation
	byID        map[string]*Annotation
}

// NewSet creates an empty annotation set.
func NewSet() *Set {
	return &Set{byID: make(map[string]*Annotation)}
}

// Add inserts an annotation. An existing annotation with the same id is
// replaced in place (idempotent by id).
func (s *Set) Add(a *Annotation) {
	if existing, ok := s.byID[a.ID]; ok {
		*existing = *a
		s.byID[a.ID] = existing
		return
	}
	s.annotations = append(s.annotations, a)
	s.byID[a.ID] = a
}

// Remove deletes the annotation with the given id.
func (s *Set) Remove(id string) error {
	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	for i, a := range s.annotations {
		if a.ID == id {
			s.annotations = append(s.annotations[:i], s.annotations[i+1:]...)
			break
		}
	}
	return nil
}

// ByID returns the annotation with the given id.
func (s *Set) ByID(id string) (*Annotation, error) {
	a, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return a, nil
}

// All returns the annotations in insertion order. The slice is a copy but
// the records are shared; callers must not mutate them.
func (s *Set) All() []*Annotation {
	out := make([]*Annotation, len(s.annotations))
	copy(out, s.annotations)
	return out
}

// Len returns the number of annotations.
func (s *Set) Len() int {
	return len(s.annotations)
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	out := NewSet()
	for _, a := range s.annotations {
		out.Add(a.Clone())
	}
	return out
}

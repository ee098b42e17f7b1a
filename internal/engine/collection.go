package engine

import (
	"fmt"
	"reflect"
)

// Marker is a capability tag a candidate system must satisfy to be admitted
// into a Collection. A marker wraps an interface type; a system satisfies it
// when its runtime type implements that interface.
type Marker struct {
	name  string
	iface reflect.Type
}

// MarkerFor captures the interface type T as an admission capability.
func MarkerFor[T any](name string) Marker {
	return Marker{name: name, iface: reflect.TypeOf((*T)(nil)).Elem()}
}

func (m Marker) Name() string { return m.name }

// Admits reports whether the system's runtime type implements the marker
// interface. A nil system has no runtime type and is never admitted.
func (m Marker) Admits(sys System) bool {
	t := reflect.TypeOf(sys)
	return t != nil && t.Implements(m.iface)
}

var (
	RodMarker       = MarkerFor[RodLike]("rod-like")
	RigidBodyMarker = MarkerFor[RigidBodyLike]("rigid-body-like")
)

// Collection is an ordered, type-gated registry of integrable systems.
// Insertion order is significant: it determines force application and
// integration order in the driver. The collection holds non-owning
// references; callers retain ownership of the systems themselves.
type Collection struct {
	allowed []Marker
	systems []System
	hooks   []func(time float64)
}

// NewCollection returns an empty collection admitting rod-like systems.
func NewCollection() *Collection {
	return &Collection{allowed: []Marker{RodMarker}}
}

// ExtendAllowedTypes unions additional capability markers into the allowed
// set. Existing members are not re-validated.
func (c *Collection) ExtendAllowedTypes(markers ...Marker) {
	c.allowed = append(c.allowed, markers...)
}

// OverrideAllowedTypes replaces the allowed set wholesale. Existing members
// are not re-validated; the policy governs future admissions only.
func (c *Collection) OverrideAllowedTypes(markers ...Marker) {
	c.allowed = append([]Marker(nil), markers...)
}

func (c *Collection) checkType(sys System) error {
	for _, m := range c.allowed {
		if m.Admits(sys) {
			return nil
		}
	}
	return TypeMismatchError{
		Candidate: reflect.TypeOf(sys),
		Allowed:   append([]Marker(nil), c.allowed...),
	}
}

func (c *Collection) Len() int { return len(c.systems) }

// normalize maps a possibly-negative index into [0, n) and validates bounds.
func (c *Collection) normalize(idx int) (int, error) {
	n := len(c.systems)
	if idx < -n || idx >= n {
		return 0, IndexOutOfRangeError{Index: idx, Len: n}
	}
	if idx < 0 {
		idx += n
	}
	return idx, nil
}

// At returns the system at idx. Negative indices count from the end.
func (c *Collection) At(idx int) (System, error) {
	i, err := c.normalize(idx)
	if err != nil {
		return nil, err
	}
	return c.systems[i], nil
}

// Set replaces the system at idx after running the type gate.
func (c *Collection) Set(idx int, sys System) error {
	if err := c.checkType(sys); err != nil {
		return err
	}
	i, err := c.normalize(idx)
	if err != nil {
		return err
	}
	c.systems[i] = sys
	return nil
}

// Insert places sys before idx, shifting subsequent systems up. idx may be
// Len() to append; negative indices count from the end.
func (c *Collection) Insert(idx int, sys System) error {
	if err := c.checkType(sys); err != nil {
		return err
	}
	n := len(c.systems)
	if idx < -n || idx > n {
		return IndexOutOfRangeError{Index: idx, Len: n}
	}
	if idx < 0 {
		idx += n
	}
	c.systems = append(c.systems, nil)
	copy(c.systems[idx+1:], c.systems[idx:])
	c.systems[idx] = sys
	return nil
}

// Append registers sys at the end of the collection.
func (c *Collection) Append(sys System) error {
	return c.Insert(len(c.systems), sys)
}

// Delete removes the system at idx, shifting subsequent systems down.
func (c *Collection) Delete(idx int) error {
	i, err := c.normalize(idx)
	if err != nil {
		return err
	}
	c.systems = append(c.systems[:i], c.systems[i+1:]...)
	return nil
}

// IndexOf resolves a system reference to its position by a first-match
// linear scan over the registration order. The candidate must pass the type
// gate even when merely searched for. Duplicate registrations of the same
// system resolve to the first occurrence.
func (c *Collection) IndexOf(sys System) (int, error) {
	if err := c.checkType(sys); err != nil {
		return 0, err
	}
	for i, registered := range c.systems {
		if registered == sys {
			return i, nil
		}
	}
	return 0, NotRegisteredError{Candidate: sys}
}

// ResolveIndex resolves ref, either an int index or a System, to a canonical
// index. An integer is bounds-checked against [-Len, Len) and returned
// unchanged, without normalizing negatives; a System is looked up by
// identity via IndexOf.
func (c *Collection) ResolveIndex(ref any) (int, error) {
	switch r := ref.(type) {
	case int:
		n := len(c.systems)
		if r < -n || r >= n {
			return 0, IndexOutOfRangeError{Index: r, Len: n}
		}
		return r, nil
	case System:
		return c.IndexOf(r)
	default:
		return 0, fmt.Errorf("cannot resolve %T to a system index", ref)
	}
}

// OnSynchronize registers a per-step coupling hook. Hooks run in
// registration order each time Synchronize is called. A hook must not
// mutate the collection it is registered on.
func (c *Collection) OnSynchronize(fn func(time float64)) {
	c.hooks = append(c.hooks, fn)
}

// Synchronize propagates cross-system effects for the step at the given
// time. Without registered hooks it is a no-op. The driver calls it exactly
// once per step, never concurrently or reentrantly.
func (c *Collection) Synchronize(time float64) {
	for _, fn := range c.hooks {
		fn(time)
	}
}

// String renders the registration order for diagnostics.
func (c *Collection) String() string {
	return fmt.Sprintf("%v", c.systems)
}

package engine

import (
	"fmt"
	"reflect"
	"strings"
)

// TypeMismatchError reports a candidate whose runtime type satisfies no
// marker in the collection's allowed set.
type TypeMismatchError struct {
	Candidate reflect.Type
	Allowed   []Marker
}

func (e TypeMismatchError) Error() string {
	names := make([]string, len(e.Allowed))
	for i, m := range e.Allowed {
		names[i] = m.Name()
	}
	return fmt.Sprintf(
		"%v does not satisfy any allowed capability; if it is a valid system, admit its kind via ExtendAllowedTypes (allowed: %s)",
		e.Candidate, strings.Join(names, ", "))
}

// IndexOutOfRangeError reports a positional index outside [-Len, Len).
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("system index %d exceeds number of registered systems (%d)", e.Index, e.Len)
}

// NotRegisteredError reports an identity lookup for a system that was never
// appended to the collection.
type NotRegisteredError struct {
	Candidate System
}

func (e NotRegisteredError) Error() string {
	return fmt.Sprintf("system %v was not found, did you append it to the collection?", e.Candidate)
}

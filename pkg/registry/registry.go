/*****************************************************************************************************************/

//	@package	artrack

/*****************************************************************************************************************/

// Package registry implements the fixed-capacity, id-addressed collection
// that owns every live augmentation instance. It is generic over the value
// type so the same ring of slots can be reused in tests with a lightweight
// stand-in, without the registry itself knowing anything about tracking.
package registry

/*****************************************************************************************************************/

import (
	"github.com/quietloom/artrack/pkg/trackerr"
)

/*****************************************************************************************************************/

// Capacity is the fixed number of augmentation slots.
const Capacity = 32

/*****************************************************************************************************************/

// ID identifies a slot. Ids are stable byte indices for the lifetime of the
// instance occupying them.
type ID int

/*****************************************************************************************************************/

// NoID is the sentinel used to denote that no augmentation has been
// assigned to a variable, carried over from the original library's
// MAR_NO_AUGMENTATION constant.
const NoID ID = 255

/*****************************************************************************************************************/

// Registry is a fixed-size array of slots, each either empty or holding one
// value of type T.
type Registry[T any] struct {
	slots [Capacity]*T
}

/*****************************************************************************************************************/

// New returns an empty registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{}
}

/*****************************************************************************************************************/

// Create linear-scans for the first empty slot and installs v there,
// returning its id. It fails with ErrNoResources if every slot is occupied.
func (r *Registry[T]) Create(v T) (ID, error) {
	for i := range r.slots {
		if r.slots[i] == nil {
			r.slots[i] = &v
			return ID(i), nil
		}
	}
	return NoID, trackerr.ErrNoResources
}

/*****************************************************************************************************************/

// Get returns the value stored at id, or ErrUnknownID if the slot is empty
// or id is out of range.
func (r *Registry[T]) Get(id ID) (*T, error) {
	if id < 0 || int(id) >= Capacity || r.slots[id] == nil {
		return nil, trackerr.ErrUnknownID
	}
	return r.slots[id], nil
}

/*****************************************************************************************************************/

// Destroy releases id's slot. Subsequent Get calls on id fail with
// ErrUnknownID. Destroying an already-empty or out-of-range id is a no-op
// error, mirroring Get's validation.
func (r *Registry[T]) Destroy(id ID) error {
	if id < 0 || int(id) >= Capacity || r.slots[id] == nil {
		return trackerr.ErrUnknownID
	}
	r.slots[id] = nil
	return nil
}

/*****************************************************************************************************************/

// ForEach visits every occupied slot in ascending id order. It is used by
// pkg/pipeline's UpdateFrame to guarantee that instances within one frame are
// processed in a deterministic order against the same frame snapshot.
func (r *Registry[T]) ForEach(fn func(ID, *T)) {
	for i := range r.slots {
		if r.slots[i] != nil {
			fn(ID(i), r.slots[i])
		}
	}
}

/*****************************************************************************************************************/

// Len returns the number of occupied slots.
func (r *Registry[T]) Len() int {
	n := 0
	for i := range r.slots {
		if r.slots[i] != nil {
			n++
		}
	}
	return n
}

/*****************************************************************************************************************/

// Package alloc plans file offsets for CDF internal records.
package alloc

import "fmt"

// Allocator hands out append-only file offsets. It is not safe for
// concurrent use.
type Allocator struct {
	// eof is the next allocation point
	eof int64

	// base is the minimum offset that can be allocated
	// (typically right after the magic numbers)
	base int64

	// allocations tracks all allocations made (for validation)
	allocations []Allocation
}

// Allocation represents a single allocation made.
type Allocation struct {
	Offset int64
	Size   int64
	Tag    string
}

// New creates a new Allocator starting at the given base offset.
func New(base int64) *Allocator {
	return &Allocator{
		eof:  base,
		base: base,
	}
}

// Alloc allocates size bytes at the end of the file and returns the offset.
// Zero-sized allocations return the current end without recording anything.
func (a *Allocator) Alloc(size int64, tag string) int64 {
	if size <= 0 {
		return a.eof
	}

	off := a.eof
	a.eof += size
	a.allocations = append(a.allocations, Allocation{
		Offset: off,
		Size:   size,
		Tag:    tag,
	})
	return off
}

// EOF returns the current end-of-file offset.
func (a *Allocator) EOF() int64 {
	return a.eof
}

// Base returns the base offset (start of allocatable space).
func (a *Allocator) Base() int64 {
	return a.base
}

// Allocations returns a copy of all allocations made.
func (a *Allocator) Allocations() []Allocation {
	result := make([]Allocation, len(a.allocations))
	copy(result, a.allocations)
	return result
}

// Lookup returns the first allocation carrying tag.
func (a *Allocator) Lookup(tag string) (Allocation, bool) {
	for _, al := range a.allocations {
		if al.Tag == tag {
			return al, true
		}
	}
	return Allocation{}, false
}

// Validate checks that allocations don't overlap and are within bounds.
func (a *Allocator) Validate() error {
	for _, al := range a.allocations {
		if al.Offset < a.base {
			return fmt.Errorf("allocation %q at %d is before base offset %d", al.Tag, al.Offset, a.base)
		}
		if al.Offset+al.Size > a.eof {
			return fmt.Errorf("allocation %q at %d size %d extends past EOF %d", al.Tag, al.Offset, al.Size, a.eof)
		}
	}

	for i := 0; i < len(a.allocations); i++ {
		for j := i + 1; j < len(a.allocations); j++ {
			a1, a2 := a.allocations[i], a.allocations[j]
			if a1.Offset < a2.Offset+a2.Size && a2.Offset < a1.Offset+a1.Size {
				return fmt.Errorf("overlapping allocations: %q [%d, size %d] and %q [%d, size %d]",
					a1.Tag, a1.Offset, a1.Size, a2.Tag, a2.Offset, a2.Size)
			}
		}
	}
	return nil
}

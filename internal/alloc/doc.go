// Package alloc plans file offsets for CDF internal records.
//
// Records in a CDF refer to each other by absolute file offset, so a
// writer must know where every record will land before it can serialize
// the first one. The [Allocator] hands out append-only offsets starting
// after the magic numbers and records each allocation with a tag so
// layouts can be validated and inspected.
//
// # Usage
//
//	a := alloc.New(8)                 // start after the magic numbers
//	cdr := a.Alloc(312, "CDR")
//	gdr := a.Alloc(84, "GDR")
//	eof := a.EOF()
package alloc

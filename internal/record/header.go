package record

import (
	"fmt"

	binpkg "github.com/robert-malhotra/go-cdf/internal/binary"
)

// Type is an internal record type.
type Type int32

// Internal record types.
const (
	TypeCDR    Type = 1
	TypeGDR    Type = 2
	TypeRVDR   Type = 3
	TypeADR    Type = 4
	TypeAgrEDR Type = 5
	TypeVXR    Type = 6
	TypeVVR    Type = 7
	TypeZVDR   Type = 8
	TypeAzEDR  Type = 9
	TypeCCR    Type = 10
	TypeCPR    Type = 11
	TypeSPR    Type = 12
	TypeCVVR   Type = 13
	TypeUIR    Type = -1
)

// Header precedes every internal record.
type Header struct {
	Offset int64
	Size   int64
	Type   Type
}

// headerSize returns the size of a record header for the given offset width.
func headerSize(offsetSize int) int64 {
	return int64(offsetSize) + 4
}

// readHeader reads a record header at the reader position and checks
// that its type is one of want.
func readHeader(r *binpkg.Reader, want ...Type) (Header, error) {
	h := Header{Offset: r.Pos()}
	size, err := r.ReadOffset()
	if err != nil {
		return h, fmt.Errorf("reading record size at %d: %w", h.Offset, err)
	}
	typ, err := r.ReadInt32()
	if err != nil {
		return h, fmt.Errorf("reading record type at %d: %w", h.Offset, err)
	}
	h.Size = size
	h.Type = Type(typ)

	if h.Size < headerSize(r.OffsetSize()) {
		return h, fmt.Errorf("%w: record at %d has size %d", ErrInvalidRecord, h.Offset, h.Size)
	}
	for _, t := range want {
		if h.Type == t {
			return h, nil
		}
	}
	return h, fmt.Errorf("%w: expected record type %v at %d, found %d", ErrInvalidRecord, want, h.Offset, h.Type)
}

func writeHeader(w *binpkg.Writer, size int64, typ Type) error {
	if err := w.WriteOffset(size); err != nil {
		return err
	}
	return w.WriteInt32(int32(typ))
}

// chain walks a linked list of records starting at head, calling visit
// with a reader positioned at each record. visit returns the next offset.
func chain(r *binpkg.Reader, head int64, visit func(*binpkg.Reader) (int64, error)) error {
	seen := make(map[int64]bool)
	for off := head; !binpkg.IsNullOffset(off); {
		if seen[off] {
			return fmt.Errorf("%w: offset %d", ErrCycle, off)
		}
		seen[off] = true
		next, err := visit(r.At(off))
		if err != nil {
			return err
		}
		off = next
	}
	return nil
}

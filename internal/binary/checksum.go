package binary

import (
	"bytes"
	"crypto/md5"
	"errors"
	"fmt"
	"io"
)

// MD5Size is the length of the checksum trailer appended to checksummed files.
const MD5Size = md5.Size

// ErrChecksumMismatch is returned when the stored file checksum does not
// match the computed one.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// FileMD5 computes the MD5 digest of the first size bytes of r.
func FileMD5(r io.ReaderAt, size int64) ([MD5Size]byte, error) {
	var sum [MD5Size]byte
	h := md5.New()
	if _, err := io.Copy(h, io.NewSectionReader(r, 0, size)); err != nil {
		return sum, fmt.Errorf("hashing file: %w", err)
	}
	copy(sum[:], h.Sum(nil))
	return sum, nil
}

// VerifyMD5 checks the MD5 trailer of a file of the given total size.
// The last MD5Size bytes hold the digest of everything before them.
func VerifyMD5(r io.ReaderAt, size int64) error {
	if size < MD5Size {
		return fmt.Errorf("%w: file too short for checksum", ErrChecksumMismatch)
	}
	body := size - MD5Size
	stored := make([]byte, MD5Size)
	if _, err := r.ReadAt(stored, body); err != nil && err != io.EOF {
		return fmt.Errorf("reading checksum: %w", err)
	}
	computed, err := FileMD5(r, body)
	if err != nil {
		return err
	}
	if !bytes.Equal(stored, computed[:]) {
		return fmt.Errorf("%w: stored %x, computed %x", ErrChecksumMismatch, stored, computed)
	}
	return nil
}

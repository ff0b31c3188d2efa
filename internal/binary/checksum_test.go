package binary

import (
	"crypto/md5"
	"errors"
	"testing"
)

func TestVerifyMD5(t *testing.T) {
	body := []byte("CDF file body used for checksumming")
	sum := md5.Sum(body)
	file := append(append([]byte{}, body...), sum[:]...)

	if err := VerifyMD5(bytesReaderAt(file), int64(len(file))); err != nil {
		t.Fatalf("VerifyMD5 failed: %v", err)
	}

	file[0] ^= 0xFF
	err := VerifyMD5(bytesReaderAt(file), int64(len(file)))
	if !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("expected ErrChecksumMismatch, got %v", err)
	}
}

func TestVerifyMD5TooShort(t *testing.T) {
	err := VerifyMD5(bytesReaderAt{1, 2, 3}, 3)
	if !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("expected ErrChecksumMismatch, got %v", err)
	}
}

func TestFileMD5(t *testing.T) {
	data := []byte("abcdef")
	got, err := FileMD5(bytesReaderAt(data), 3)
	if err != nil {
		t.Fatalf("FileMD5 failed: %v", err)
	}
	if got != md5.Sum([]byte("abc")) {
		t.Errorf("unexpected digest %x", got)
	}
}

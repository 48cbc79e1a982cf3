package world

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Serialize writes fixed-size data in the byte order used by every file the
// game writes.
func Serialize(w io.Writer, data any) error {
	return binary.Write(w, binary.LittleEndian, data)
}

func Deserialize(r io.Reader, data any) error {
	return binary.Read(r, binary.LittleEndian, data)
}

// SerializeSlice writes the length of s followed by its elements. The
// elements must have a fixed size.
func SerializeSlice[T any](w io.Writer, s []T) error {
	if err := Serialize(w, int64(len(s))); err != nil {
		return err
	}
	return Serialize(w, s)
}

func DeserializeSlice[T any](r io.Reader, s *[]T) error {
	var n int64
	if err := Deserialize(r, &n); err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("invalid slice length %d", n)
	}
	// A length that needs more bytes than the reader has left is corrupt.
	if l, ok := r.(interface{ Len() int }); ok {
		var zero T
		size := int64(binary.Size(zero))
		if size <= 0 {
			return fmt.Errorf("slice elements of %T have no fixed size", zero)
		}
		if n > int64(l.Len())/size {
			return fmt.Errorf("invalid slice length %d, only %d bytes left", n,
				l.Len())
		}
	}
	*s = make([]T, n)
	return Deserialize(r, *s)
}

// SerializeBytes writes a length-prefixed blob.
func SerializeBytes(w io.Writer, b []byte) error {
	return SerializeSlice(w, b)
}

func DeserializeBytes(r io.Reader) (b []byte, err error) {
	err = DeserializeSlice(r, &b)
	return
}

// zipEntryName is the single file inside every zipped blob.
const zipEntryName = "data"

// Zip compresses data into a zip archive with a single entry.
func Zip(data []byte) ([]byte, error) {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	f, err := zw.Create(zipEntryName)
	if err != nil {
		return nil, err
	}
	if _, err = f.Write(data); err != nil {
		return nil, err
	}
	if err = zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unzip reverses Zip.
func Unzip(data []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	if len(zr.File) != 1 || zr.File[0].Name != zipEntryName {
		return nil, fmt.Errorf("expected a single %q entry in the archive",
			zipEntryName)
	}
	f, err := zr.File[0].Open()
	if err != nil {
		return nil, err
	}
	defer func(f io.ReadCloser) { _ = f.Close() }(f)
	return io.ReadAll(f)
}

package oxml

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"slices"
)

var magicZipBytes = [][]byte{
	{0x50, 0x4b, 0x03, 0x04},
	{0x50, 0x4b, 0x05, 0x06},
	{0x50, 0x4b, 0x07, 0x08},
}

// Archive owns the xlsx container for one conversion call. Named parts
// are decompressed lazily on first lookup and memoized, so repeated
// lookups return the identical bytes.
type Archive struct {
	reader *zip.Reader
	parts  map[string][]byte
}

func OpenArchive(data []byte) (*Archive, error) {
	if !hasZipMagic(data) {
		return nil, errorf(ErrArchive, "no zip signature")
	}
	z, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errorf(ErrArchive, "%s", err)
	}
	a := Archive{
		reader: z,
		parts:  make(map[string][]byte),
	}
	return &a, nil
}

func (a *Archive) Has(name string) bool {
	return a.index(name) >= 0
}

func (a *Archive) Part(name string) ([]byte, error) {
	if buf, ok := a.parts[name]; ok {
		return buf, nil
	}
	ix := a.index(name)
	if ix < 0 {
		return nil, errorf(ErrPart, "%s", name)
	}
	file := a.reader.File[ix]
	switch file.Method {
	case zip.Store, zip.Deflate:
	default:
		return nil, errorf(ErrUnsupported, "compression method %d in %s", file.Method, name)
	}
	rs, err := file.Open()
	if err != nil {
		return nil, errorf(ErrArchive, "fail to open %s: %s", name, err)
	}
	defer rs.Close()

	buf, err := io.ReadAll(rs)
	if err != nil {
		if errors.Is(err, zip.ErrAlgorithm) {
			return nil, errorf(ErrUnsupported, "compression method in %s", name)
		}
		return nil, errorf(ErrArchive, "fail to read data from %s", name)
	}
	a.parts[name] = buf
	return buf, nil
}

func (a *Archive) index(name string) int {
	return slices.IndexFunc(a.reader.File, func(f *zip.File) bool {
		return f.Name == name
	})
}

func hasZipMagic(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	for _, mzb := range magicZipBytes {
		if bytes.Equal(data[:4], mzb) {
			return true
		}
	}
	return false
}

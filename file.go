package mmark

import (
	"io"
	"os"
)

// Convenience entry points for parsing from readers and files and
// storing the canonical rendering back to a file. The file name given
// to ParseFrom labels source positions in errors.

func ParseFrom(file string, r io.Reader) (*Doc, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(file, string(b))
}

func ParseFile(f string) (*Doc, error) {
	b, err := os.ReadFile(f)
	if err != nil {
		return nil, err
	}
	return Parse(f, string(b))
}

// Writes the canonical rendering of the document to file f.
func (d *Doc) StoreFile(f string) error {
	w, err := os.Create(f)
	if err != nil {
		return err
	}
	if err := d.write(w); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

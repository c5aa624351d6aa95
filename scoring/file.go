package scoring

import (
	"context"
	"fmt"
	"os"
)

// File is an attribute snapshot file on disk.
type File struct {
	Path    string
	Decoder Decoder
}

// Attributes reads every snapshot of the file.
func (f File) Attributes(context.Context) ([]Attributes, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("could not open attributes file %q: %w", f.Path, err)
	}
	defer file.Close()
	attrs, err := f.Decoder.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("could not decode attributes file %q: %w", f.Path, err)
	}
	return attrs, nil
}

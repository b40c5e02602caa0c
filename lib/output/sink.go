// Package output writes the finished animation to disk.
package output

import (
	"errors"
	"fmt"
)

var ErrIO = errors.New("write output")

const DefaultFilename = "output.gif"

// WriteFile replaces path with data atomically. The data is flushed to disk
// before it becomes visible under path, so path either holds the complete
// data or is left untouched.
func WriteFile(path string, data []byte) error {
	if err := writeFile(path, data); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

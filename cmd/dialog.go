package cmd

import (
	"errors"

	"github.com/piqueme/gif-capture/lib/output"
	"github.com/sqweek/dialog"
)

// pickOutput asks for the output file with a native save dialog. Cancelling
// keeps current.
func pickOutput(current string) (string, error) {
	filename, err := dialog.File().
		Filter("GIF image", "gif").
		Title("Save recording").
		Save()
	if errors.Is(err, dialog.ErrCancelled) {
		return current, nil
	}
	if err != nil {
		return "", err
	}
	base, ext := output.TrimExt(filename)
	if ext == "" {
		filename = base + ".gif"
	}
	return filename, nil
}

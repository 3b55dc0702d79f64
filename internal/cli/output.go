package cli

import (
	"io"
	"os"
)

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput creates path, or returns stdout when path is empty.
// Closing the stdout writer does nothing.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{stdout}, nil
	}
	return os.Create(path)
}

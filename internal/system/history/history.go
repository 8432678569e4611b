// Released under an MIT license. See LICENSE.

// Package history persists the interactive command history.
package history

import (
	"io"
	"os"
	"path/filepath"
)

// Load passes the history file to read.
func Load(read func(r io.Reader) (int, error)) error {
	f, err := file(os.Open)
	if err != nil {
		return err
	}

	_, err = read(f)
	if err != nil {
		f.Close()

		return err
	}

	return f.Close()
}

// Save passes a freshly truncated history file to write.
func Save(write func(w io.Writer) (int, error)) error {
	f, err := file(os.Create)
	if err != nil {
		return err
	}

	_, err = write(f)
	if err != nil {
		f.Close()

		return err
	}

	return f.Close()
}

func file(op func(string) (*os.File, error)) (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	return op(filepath.Join(home, ".unilang_history"))
}

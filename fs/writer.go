// Package fs writes capture documents to the file system.
package fs

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/lighterceptor"
)

// Encode writes capture as an indented JSON document.
func Encode(w io.Writer, capture *lighterceptor.Capture) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(capture)
}

// Writer writes capture documents to files. Each write goes to a temporary
// file in the target directory that is renamed over the target once
// complete, so readers never observe a partial document.
type Writer struct {
	perm os.FileMode
}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{perm: 0644}
}

// WriteCapture validates capture and writes it to path, creating parent
// directories as needed.
func (w *Writer) WriteCapture(path string, capture *lighterceptor.Capture) (err error) {
	if err := capture.Validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := Encode(tmp, capture); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encode capture: %w", err)
	}
	if err := tmp.Chmod(w.perm); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// ReadCapture reads a capture document written by WriteCapture.
func ReadCapture(path string) (*lighterceptor.Capture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var capture lighterceptor.Capture
	if err := json.NewDecoder(f).Decode(&capture); err != nil {
		return nil, lighterceptor.Errorf(lighterceptor.EINVALID, "invalid capture document %s: %v", path, err)
	}
	return &capture, nil
}

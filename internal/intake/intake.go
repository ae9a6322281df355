// Package intake turns a user-chosen path into a validated SelectedFile.
package intake

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/amishk599/cvcoach/internal/model"
)

// MaxFileSize is the upload limit enforced before any request (5 MiB).
const MaxFileSize int64 = 5 * 1024 * 1024

const pdfMIME = "application/pdf"

var (
	ErrNotPDF     = errors.New("file is not a PDF")
	ErrTooLarge   = errors.New("file exceeds size limit")
	ErrUnreadable = errors.New("file cannot be read")
)

// ValidationError is a client-side rejection. Message is the user-facing text.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return e.Err }

// Inspect stats path and detects its MIME type from content. It does not
// validate; see Validate.
func Inspect(path string) (model.SelectedFile, error) {
	name := filepath.Base(path)
	info, err := os.Stat(path)
	if err != nil {
		return model.SelectedFile{}, &ValidationError{
			Message: fmt.Sprintf("Nie można odczytać pliku: %s", name),
			Err:     fmt.Errorf("%w: %v", ErrUnreadable, err),
		}
	}
	if info.IsDir() {
		return model.SelectedFile{}, &ValidationError{
			Message: fmt.Sprintf("Nie można odczytać pliku: %s", name),
			Err:     fmt.Errorf("%w: %s is a directory", ErrUnreadable, path),
		}
	}

	f := model.SelectedFile{
		Path: path,
		Name: name,
		Size: info.Size(),
	}
	// An empty file has no detectable type; leave it blank like a browser would.
	if info.Size() > 0 {
		mt, err := mimetype.DetectFile(path)
		if err != nil {
			return model.SelectedFile{}, &ValidationError{
				Message: fmt.Sprintf("Nie można odczytać pliku: %s", name),
				Err:     fmt.Errorf("%w: %v", ErrUnreadable, err),
			}
		}
		// Parameters such as "; charset=utf-8" are dropped, as a browser would.
		f.MIMEType, _, _ = strings.Cut(mt.String(), ";")
	}
	return f, nil
}

// Validate applies the type rule, then the size rule.
func Validate(f model.SelectedFile) error {
	if f.MIMEType != pdfMIME && !strings.HasSuffix(strings.ToLower(f.Name), ".pdf") {
		return &ValidationError{
			Message: "Proszę wybrać plik PDF. Wybrany plik: " + f.MIMEType,
			Err:     ErrNotPDF,
		}
	}
	if f.Size > MaxFileSize {
		return &ValidationError{
			Message: fmt.Sprintf("Plik jest za duży (%s). Maksymalny rozmiar to 5MB.", FormatFileSize(f.Size)),
			Err:     ErrTooLarge,
		}
	}
	return nil
}

// FormatFileSize renders a byte count as B, KB or MB with one decimal.
func FormatFileSize(bytes int64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	}
}

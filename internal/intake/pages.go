package intake

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// CountPages returns the number of pages in the PDF at path. It is used for
// display only; callers treat an error as "unknown".
func CountPages(path string) (n int, err error) {
	// The parser panics on some malformed trailers.
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("reading pdf %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()

	return r.NumPage(), nil
}

package pdfutil

import (
	"bytes"
	"fmt"

	pdf "github.com/ledongthuc/pdf"
)

// PageCount reads PDF bytes and returns the number of pages.
func PageCount(data []byte) (int, error) {
	reader := bytes.NewReader(data)
	doc, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("new pdf reader: %w", err)
	}
	return doc.NumPage(), nil
}

package postgres

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/paneldeck/paneldeck/internal/core/document"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanDocumentRow scans one JSONB data column into a Document.
// Numbers are decoded as json.Number so large integers survive the round trip.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanDocumentRow(row scanner) (document.Document, error) {
	var data []byte
	if err := row.Scan(&data); err != nil {
		return nil, fmt.Errorf("failed to scan document row: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc document.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document data: %w", err)
	}
	if doc == nil {
		doc = document.Document{}
	}
	return doc, nil
}

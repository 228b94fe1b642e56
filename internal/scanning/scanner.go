package scanning

// Scanner turns a settlement document into plain text
type Scanner interface {
	// PageText returns the text of the first page of the document
	PageText(data []byte, contentType string) (string, error)
	// Close closes the scanner and releases resources
	Close() error
}

package statement

import "time"

// Status is the outcome of processing one document
type Status string

const (
	StatusProcessed Status = "processed"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// Document is the ledger record of one processed settlement document
type Document struct {
	ID          string    `json:"id"`
	Identifier  string    `json:"identifier"`
	ContentHash string    `json:"content_hash"`
	LedgerKey   string    `json:"ledger_key"`
	Layout      string    `json:"layout,omitempty"`
	Rows        int       `json:"rows"`
	TextFile    string    `json:"text_file,omitempty"`
	OutputFile  string    `json:"output_file,omitempty"`
	Status      Status    `json:"status"`
	Error       string    `json:"error,omitempty"`
	ProcessedAt time.Time `json:"processed_at"`
}

// Summary counts the outcomes of a batch run
type Summary struct {
	Processed int
	Skipped   int
	Failed    int
	Rows      int
}

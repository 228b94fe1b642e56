package statement

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zombor/trade-extract/internal/extract"
	"github.com/zombor/trade-extract/internal/scanning"
)

// textSuffix names the normalized text kept in the working storage
const textSuffix = ".txt"

// IDGenerator generates unique IDs for ledger records
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return uuid.NewString()
}

type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service turns settlement documents into purchase tables
type Service struct {
	db            DB
	scanner       scanning.Scanner
	work          Storage
	output        Storage
	writer        Writer
	profile       extract.Profile
	skipProcessed bool
	idGenerator   IDGenerator
	timeSource    TimeSource
}

// NewService creates a new Service with default ID generator and time source
func NewService(db DB, scanner scanning.Scanner, work, output Storage, writer Writer, profile extract.Profile) *Service {
	return NewServiceWithDeps(db, scanner, work, output, writer, profile, &defaultIDGenerator{}, &defaultTimeSource{})
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, scanner scanning.Scanner, work, output Storage, writer Writer, profile extract.Profile, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:          db,
		scanner:     scanner,
		work:        work,
		output:      output,
		writer:      writer,
		profile:     profile,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// SkipProcessed makes the service skip documents whose content was already processed
func (s *Service) SkipProcessed(skip bool) {
	s.skipProcessed = skip
}

// ProcessAll processes every settlement document in input in name order. A failing document
// does not stop the batch, all failures are returned joined.
func (s *Service) ProcessAll(input Storage) (Summary, error) {
	var summary Summary

	names, err := input.Documents()
	if err != nil {
		return summary, fmt.Errorf("listing input documents: %w", err)
	}

	var errs []error
	for _, name := range names {
		contentType := scanning.ContentType(name)
		if contentType == "" {
			slog.Debug("Ignoring file", "filename", name)
			continue
		}

		doc, err := s.processFile(input, name, contentType)
		if err != nil {
			slog.Error("Failed to process document", "document", name, "error", err)
			summary.Failed++
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}

		if doc.Status == StatusSkipped {
			summary.Skipped++
			continue
		}
		summary.Processed++
		summary.Rows += doc.Rows
	}

	return summary, errors.Join(errs...)
}

func (s *Service) processFile(input Storage, name, contentType string) (*Document, error) {
	data, err := input.Read(name)
	if err != nil {
		s.recordFailure(s.newDocument(name, ""), err)
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return s.ProcessDocument(name, data, contentType)
}

// ProcessDocument extracts the purchases of one document, writes its table and records it in
// the ledger
func (s *Service) ProcessDocument(identifier string, data []byte, contentType string) (*Document, error) {
	sum := sha256.Sum256(data)
	doc := s.newDocument(identifier, hex.EncodeToString(sum[:]))
	doc.LedgerKey = s.ledgerKey(identifier, doc.ContentHash)

	if s.skipProcessed {
		prev, err := s.findUpToDate(doc.LedgerKey)
		if err != nil {
			return nil, err
		}
		if prev != nil {
			slog.Info("Skipping processed document", "document", identifier, "output", prev.OutputFile)
			doc.Status = StatusSkipped
			doc.OutputFile = prev.OutputFile
			return doc, nil
		}
	}

	text, err := s.scanner.PageText(data, contentType)
	if err != nil {
		slog.Error("Failed to scan document",
			"document", identifier,
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		s.recordFailure(doc, err)
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	text = extract.Normalize(text, s.profile.Boilerplate, s.profile.Cutoff)
	doc.TextFile, err = s.work.Write(identifier, textSuffix, []byte(text))
	if err != nil {
		s.recordFailure(doc, err)
		return nil, fmt.Errorf("saving text: %w", err)
	}

	stmt := extract.Parse(identifier, text, s.profile)
	rows := stmt.Rows()
	doc.Layout = stmt.Layout.String()
	doc.Rows = len(rows)
	if len(rows) == 0 {
		slog.Warn("No line items found", "document", identifier, "layout", doc.Layout)
	}

	table, err := s.writer.Encode(rows)
	if err != nil {
		s.recordFailure(doc, err)
		return nil, fmt.Errorf("encoding table: %w", err)
	}

	doc.OutputFile, err = s.output.Write(identifier, s.writer.Extension(), table)
	if err != nil {
		s.recordFailure(doc, err)
		return nil, fmt.Errorf("saving table: %w", err)
	}

	doc.Status = StatusProcessed
	if err := s.db.SaveDocument(doc); err != nil {
		// Remove the table so a rerun does not find output without a ledger entry
		if delErr := s.output.Remove(doc.OutputFile); delErr != nil {
			slog.Warn("Failed to delete table", "filename", doc.OutputFile, "error", delErr)
		}
		return nil, fmt.Errorf("saving document to ledger: %w", err)
	}

	slog.Info("Processed document",
		"document", identifier,
		"layout", doc.Layout,
		"rows", doc.Rows,
		"output", doc.OutputFile,
	)
	return doc, nil
}

// History returns the ledger records, oldest first
func (s *Service) History() ([]*Document, error) {
	docs, err := s.db.ListDocuments()
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return docs, nil
}

// findUpToDate returns the processed record for key when its table is still in the output
// directory
func (s *Service) findUpToDate(key string) (*Document, error) {
	prev, err := s.db.FindProcessed(key)
	if err != nil {
		return nil, fmt.Errorf("looking up ledger: %w", err)
	}
	if prev == nil {
		return nil, nil
	}

	present, err := s.output.Exists(prev.OutputFile)
	if err != nil {
		return nil, fmt.Errorf("checking previous table: %w", err)
	}
	if !present {
		slog.Info("Previous table is missing, processing again", "document", prev.Identifier, "output", prev.OutputFile)
		return nil, nil
	}
	return prev, nil
}

// ledgerKey identifies one extraction run of a document: the same identifier and content,
// extracted with the same profile into the same output format
func (s *Service) ledgerKey(identifier, contentHash string) string {
	h := sha256.New()
	parts := []string{identifier, contentHash, s.profile.Cutoff, s.profile.DispatchMarker, s.writer.Extension()}
	parts = append(parts, s.profile.Boilerplate...)
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (s *Service) newDocument(identifier, hash string) *Document {
	return &Document{
		ID:          s.idGenerator.Generate(),
		Identifier:  identifier,
		ContentHash: hash,
		ProcessedAt: s.timeSource.Now(),
	}
}

// recordFailure stores a failed record. A ledger error is only logged, the original failure is
// what the caller reports.
func (s *Service) recordFailure(doc *Document, cause error) {
	doc.Status = StatusFailed
	doc.Error = cause.Error()
	if err := s.db.SaveDocument(doc); err != nil {
		slog.Warn("Failed to record failure", "document", doc.Identifier, "error", err)
	}
}

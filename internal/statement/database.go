package statement

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.etcd.io/bbolt"
)

const (
	documentBucketName = "documents"
	keyBucketName      = "processed_keys"
)

// DB defines the interface for the processing ledger
type DB interface {
	// SaveDocument saves a document record. Processed records also index their ledger key.
	SaveDocument(doc *Document) error

	// GetDocument retrieves a document record by ID
	GetDocument(id string) (*Document, error)

	// FindProcessed returns the processed record for a ledger key, or nil if there is none
	FindProcessed(key string) (*Document, error)

	// ListDocuments returns all records, oldest first
	ListDocuments() ([]*Document, error)

	// Close closes the database connection
	Close() error
}

// BoltDB implements the DB interface using BoltDB
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB creates a new BoltDB instance
func NewBoltDB(path string) (*BoltDB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	// Create buckets if they don't exist
	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(documentBucketName)); err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(keyBucketName)); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltDB{db: db}, nil
}

// SaveDocument saves a document record to the database
func (b *BoltDB) SaveDocument(doc *Document) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshaling document: %w", err)
		}
		if err := tx.Bucket([]byte(documentBucketName)).Put([]byte(doc.ID), data); err != nil {
			return err
		}
		if doc.Status != StatusProcessed || doc.LedgerKey == "" {
			return nil
		}
		return tx.Bucket([]byte(keyBucketName)).Put([]byte(doc.LedgerKey), []byte(doc.ID))
	})
}

// GetDocument retrieves a document record by ID
func (b *BoltDB) GetDocument(id string) (*Document, error) {
	var doc *Document
	err := b.db.View(func(tx *bbolt.Tx) error {
		var err error
		doc, err = getDocument(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FindProcessed looks up the processed record for a ledger key
func (b *BoltDB) FindProcessed(key string) (*Document, error) {
	var doc *Document
	err := b.db.View(func(tx *bbolt.Tx) error {
		id := tx.Bucket([]byte(keyBucketName)).Get([]byte(key))
		if id == nil {
			return nil
		}
		var err error
		doc, err = getDocument(tx, string(id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ListDocuments returns all document records ordered by processing time
func (b *BoltDB) ListDocuments() ([]*Document, error) {
	docs := make([]*Document, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(documentBucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var doc Document
			if err := json.Unmarshal(v, &doc); err != nil {
				return fmt.Errorf("unmarshaling document: %w", err)
			}
			docs = append(docs, &doc)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].ProcessedAt.Before(docs[j].ProcessedAt)
	})
	return docs, nil
}

// Close closes the database connection
func (b *BoltDB) Close() error {
	return b.db.Close()
}

func getDocument(tx *bbolt.Tx, id string) (*Document, error) {
	data := tx.Bucket([]byte(documentBucketName)).Get([]byte(id))
	if data == nil {
		return nil, fmt.Errorf("document not found: %s", id)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling document: %w", err)
	}
	return &doc, nil
}

// Package journal persists the orders a counter has received, using
// BoltDB (bbolt).
package journal

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/muurk/cupcraft/internal/order"
)

// Bucket names
var (
	// BucketOrders stores entries keyed by order id
	BucketOrders = []byte("orders")

	// BucketOrdersByTime indexes order ids by receive time
	BucketOrdersByTime = []byte("orders_by_time")
)

var (
	// ErrNotFound is returned when an order id is not in the journal.
	ErrNotFound = errors.New("order not found")
	// ErrDuplicate is returned when an order id has already been journaled.
	ErrDuplicate = errors.New("order already journaled")
)

// Entry is one journaled order.
type Entry struct {
	Ticket     order.Ticket `json:"ticket"`
	ReceivedAt time.Time    `json:"received_at"`
	Counter    string       `json:"counter,omitempty"`
	RemoteAddr string       `json:"remote_addr,omitempty"`
}

// Store wraps a BoltDB database holding the order journal.
// It is safe for concurrent use.
type Store struct {
	db *bolt.DB
}

// Options configures the journal database.
type Options struct {
	// Path to the database file. Parent directories will be created if needed.
	Path string

	// Timeout for obtaining a file lock on the database.
	// If zero, a default of 5 seconds is used.
	Timeout time.Duration

	// FileMode for creating the database file.
	// If zero, 0600 is used.
	FileMode os.FileMode
}

// DefaultOptions returns the defaults used by cupcraft-counter.
func DefaultOptions() Options {
	return Options{
		Path:     "cupcraft-orders.db",
		Timeout:  5 * time.Second,
		FileMode: 0600,
	}
}

// Open creates or opens the journal at opts.Path.
func Open(opts Options) (*Store, error) {
	defaults := DefaultOptions()
	if opts.Path == "" {
		opts.Path = defaults.Path
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaults.Timeout
	}
	if opts.FileMode == 0 {
		opts.FileMode = defaults.FileMode
	}

	dir := filepath.Dir(opts.Path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	db, err := bolt.Open(opts.Path, opts.FileMode, &bolt.Options{Timeout: opts.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{BucketOrders, BucketOrdersByTime} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save journals e. An order id can only be saved once.
func (s *Store) Save(e Entry) error {
	if e.Ticket.ID == "" {
		return fmt.Errorf("cannot journal order without id")
	}
	if e.ReceivedAt.IsZero() {
		e.ReceivedAt = time.Now()
	}
	e.ReceivedAt = e.ReceivedAt.UTC()

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal journal entry: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		orders := tx.Bucket(BucketOrders)
		id := []byte(e.Ticket.ID)
		if orders.Get(id) != nil {
			return fmt.Errorf("%w: %s", ErrDuplicate, e.Ticket.ID)
		}
		if err := orders.Put(id, data); err != nil {
			return err
		}
		return tx.Bucket(BucketOrdersByTime).Put(timeKey(e.ReceivedAt, e.Ticket.ID), id)
	})
}

// Get returns the entry for order id.
func (s *Store) Get(id string) (*Entry, error) {
	var entry *Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(BucketOrders).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		var e Entry
		if err := json.Unmarshal(data, &e); err != nil {
			return fmt.Errorf("failed to unmarshal journal entry: %w", err)
		}
		entry = &e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns up to limit entries, newest first. A limit <= 0 returns all.
func (s *Store) List(limit int) ([]Entry, error) {
	var entries []Entry

	err := s.db.View(func(tx *bolt.Tx) error {
		orders := tx.Bucket(BucketOrders)
		c := tx.Bucket(BucketOrdersByTime).Cursor()
		for k, id := c.Last(); k != nil; k, id = c.Prev() {
			if limit > 0 && len(entries) >= limit {
				break
			}
			data := orders.Get(id)
			if data == nil {
				continue
			}
			var e Entry
			if err := json.Unmarshal(data, &e); err != nil {
				return fmt.Errorf("failed to unmarshal journal entry %s: %w", id, err)
			}
			entries = append(entries, e)
		}
		return nil
	})

	return entries, err
}

// Count returns the number of journaled orders.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(BucketOrders).Stats().KeyN
		return nil
	})
	return n, err
}

// timeKey sorts by receive time, then order id.
func timeKey(t time.Time, id string) []byte {
	key := make([]byte, 8, 8+len(id))
	binary.BigEndian.PutUint64(key, uint64(t.UnixNano()))
	return append(key, id...)
}

// Package shelf persists the user's saved books. The store surface is
// deliberately narrow: indexed lookups by identifier and atomic single-row
// upserts, nothing more.
package shelf

import "time"

// Reading statuses for a saved book.
const (
	StatusWantToRead = "want-to-read"
	StatusReading    = "reading"
	StatusRead       = "read"
)

// Book is a saved book on the user's shelf: the chosen edition plus the
// resolved author and description.
type Book struct {
	OLID        string
	WorkID      string
	Title       string
	Author      string
	ISBN10      string
	ISBN13      string
	Pages       int
	PublishDate string
	Publisher   string
	Description string
	CoverPath   string
	Status      string
	Rating      int
	AddedAt     time.Time
}

// Store defines the interface for shelf persistence
type Store interface {
	// Connect establishes a connection to the data store
	Connect() error

	// Add upserts a book keyed by its OLID
	Add(book Book) error

	// Get returns the saved book for an OLID, or nil when absent
	Get(olid string) (*Book, error)

	// List returns all saved books ordered by when they were added
	List() ([]Book, error)

	// Remove deletes a book; removing an absent book is not an error
	Remove(olid string) error

	// SetStatus updates the reading status of a saved book
	SetStatus(olid, status string) error

	// SetRating updates the rating of a saved book
	SetRating(olid string, rating int) error

	// Close closes the connection to the data store
	Close() error
}

package shelf

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const shelfSchema = `
CREATE TABLE IF NOT EXISTS shelf (
	olid TEXT PRIMARY KEY NOT NULL,
	work_id TEXT,
	title TEXT NOT NULL,
	author TEXT NOT NULL,
	isbn_10 TEXT,
	isbn_13 TEXT,
	pages INTEGER,
	publish_date TEXT,
	publisher TEXT,
	description TEXT,
	cover_path TEXT,
	status TEXT NOT NULL DEFAULT 'want-to-read',
	rating INTEGER NOT NULL DEFAULT 0,
	added_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_shelf_status ON shelf(status);
`

// SQLiteStore implements the Store interface for local SQLite storage
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// Compile-time check that SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLiteStore instance
func NewSQLiteStore(dbPath string) *SQLiteStore {
	return &SQLiteStore{
		dbPath: dbPath,
	}
}

// Connect opens a connection to the SQLite database and ensures the schema
func (s *SQLiteStore) Connect() error {
	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(shelfSchema); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to create shelf table: %w", err)
	}
	s.db = db
	return nil
}

// Add upserts a book keyed by its OLID. The upsert is one statement, so a
// book is never duplicated by concurrent adds.
func (s *SQLiteStore) Add(book Book) error {
	if book.Status == "" {
		book.Status = StatusWantToRead
	}
	addedAt := book.AddedAt
	if addedAt.IsZero() {
		addedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO shelf (olid, work_id, title, author, isbn_10, isbn_13, pages,
			publish_date, publisher, description, cover_path, status, rating, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(olid) DO UPDATE SET
			work_id = excluded.work_id,
			title = excluded.title,
			author = excluded.author,
			isbn_10 = excluded.isbn_10,
			isbn_13 = excluded.isbn_13,
			pages = excluded.pages,
			publish_date = excluded.publish_date,
			publisher = excluded.publisher,
			description = excluded.description,
			cover_path = excluded.cover_path
	`
	_, err := s.db.Exec(query,
		book.OLID, book.WorkID, book.Title, book.Author, book.ISBN10, book.ISBN13,
		book.Pages, book.PublishDate, book.Publisher, book.Description, book.CoverPath,
		book.Status, book.Rating, addedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to save book: %w", err)
	}
	return nil
}

// Get returns the saved book for an OLID, or nil when absent
func (s *SQLiteStore) Get(olid string) (*Book, error) {
	row := s.db.QueryRow(`
		SELECT olid, work_id, title, author, isbn_10, isbn_13, pages,
			publish_date, publisher, description, cover_path, status, rating, added_at
		FROM shelf WHERE olid = ?
	`, olid)

	book, err := scanBook(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read book: %w", err)
	}
	return book, nil
}

// List returns all saved books ordered by when they were added
func (s *SQLiteStore) List() ([]Book, error) {
	rows, err := s.db.Query(`
		SELECT olid, work_id, title, author, isbn_10, isbn_13, pages,
			publish_date, publisher, description, cover_path, status, rating, added_at
		FROM shelf ORDER BY added_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list shelf: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var books []Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to read book: %w", err)
		}
		books = append(books, *book)
	}
	return books, rows.Err()
}

// Remove deletes a book; removing an absent book is not an error
func (s *SQLiteStore) Remove(olid string) error {
	_, err := s.db.Exec("DELETE FROM shelf WHERE olid = ?", olid)
	if err != nil {
		return fmt.Errorf("failed to remove book: %w", err)
	}
	return nil
}

// SetStatus updates the reading status of a saved book
func (s *SQLiteStore) SetStatus(olid, status string) error {
	switch status {
	case StatusWantToRead, StatusReading, StatusRead:
	default:
		return fmt.Errorf("invalid status %q", status)
	}
	return s.updateField(olid, "status", status)
}

// SetRating updates the rating of a saved book
func (s *SQLiteStore) SetRating(olid string, rating int) error {
	if rating < 0 || rating > 5 {
		return fmt.Errorf("rating must be between 0 and 5, got %d", rating)
	}
	return s.updateField(olid, "rating", rating)
}

func (s *SQLiteStore) updateField(olid, column string, value any) error {
	result, err := s.db.Exec(fmt.Sprintf("UPDATE shelf SET %s = ? WHERE olid = ?", column), value, olid)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", column, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("book %s is not on the shelf", olid)
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (*Book, error) {
	var book Book
	var workID, isbn10, isbn13, publishDate, publisher, description, coverPath sql.NullString
	var pages sql.NullInt64
	var addedAt int64

	err := row.Scan(&book.OLID, &workID, &book.Title, &book.Author, &isbn10, &isbn13,
		&pages, &publishDate, &publisher, &description, &coverPath,
		&book.Status, &book.Rating, &addedAt)
	if err != nil {
		return nil, err
	}

	book.WorkID = workID.String
	book.ISBN10 = isbn10.String
	book.ISBN13 = isbn13.String
	book.Pages = int(pages.Int64)
	book.PublishDate = publishDate.String
	book.Publisher = publisher.String
	book.Description = description.String
	book.CoverPath = coverPath.String
	book.AddedAt = time.UnixMilli(addedAt)
	return &book, nil
}
